package postman

import (
	"math"
	"sort"
)

// kExact is the largest odd-set size for which Matching enumerates every
// perfect matching exactly. Above it, Matching falls back to a greedy
// bounded-approximation. A design parameter, not a correctness guarantee —
// see §4.D's rationale: exact enumeration is O(k!!), tractable below ~10 but
// unbounded above it.
const kExact = 10

// Pair is one unordered matched pair of odd-degree vertices.
type Pair struct {
	A, B NodeID
}

// Matching computes a minimum-weight perfect matching over an even-sized
// set of vertices, given the all-pairs shortest paths among them (as
// produced by apspAmong). Returns ErrOddCardinality if len(odd) is odd.
//
// Policy by |odd|:
//   - 0: empty matching.
//   - 2: the single pair.
//   - 2 < k <= kExact: exact branch-and-bound enumeration of every perfect
//     matching, pruning partial matchings whose accumulated cost already
//     meets or exceeds the best complete matching found so far. Ties are
//     broken by enumeration order (first discovered wins).
//   - k > kExact: greedy — sort all C(k,2) pairs by ascending distance,
//     commit each pair in order iff both endpoints are still unmatched.
func Matching(odd []NodeID, paths map[NodeID]*ShortestPaths) ([]Pair, error) {
	k := len(odd)
	if k%2 != 0 {
		return nil, ErrOddCardinality
	}
	if k == 0 {
		return nil, nil
	}

	dist := func(u, v NodeID) (float64, error) {
		_, _, d, err := paths[u].PathTo(v)
		if err != nil {
			return 0, err
		}
		return d, nil
	}

	if k == 2 {
		if _, _, _, err := paths[odd[0]].PathTo(odd[1]); err != nil {
			return nil, err
		}
		return []Pair{{odd[0], odd[1]}}, nil
	}

	if k <= kExact {
		return exactMatching(odd, dist)
	}
	return greedyMatching(odd, dist)
}

// exactMatching enumerates every perfect matching of odd by always pairing
// the lowest-indexed remaining vertex with each possible partner in turn,
// recursing on the rest. Branch-and-bound prunes any partial matching whose
// accumulated cost already meets or exceeds the best complete cost found.
func exactMatching(odd []NodeID, dist func(u, v NodeID) (float64, error)) ([]Pair, error) {
	n := len(odd)
	var bestCost = math.Inf(1)
	var best []Pair
	var firstErr error

	used := make([]bool, n)
	current := make([]Pair, 0, n/2)

	var recurse func(acc float64)
	recurse = func(acc float64) {
		if firstErr != nil {
			return
		}
		if acc >= bestCost {
			return // prune: already no better than the best complete matching found
		}

		first := -1
		for i := 0; i < n; i++ {
			if !used[i] {
				first = i
				break
			}
		}
		if first == -1 {
			// Complete matching; since we only get here with acc < bestCost
			// (the guard above), this is strictly the new best.
			bestCost = acc
			best = append(best[:0], current...)
			return
		}

		used[first] = true
		for j := first + 1; j < n; j++ {
			if used[j] {
				continue
			}
			w, err := dist(odd[first], odd[j])
			if err != nil {
				firstErr = err
				used[first] = false
				return
			}
			used[j] = true
			current = append(current, Pair{odd[first], odd[j]})

			recurse(acc + w)

			current = current[:len(current)-1]
			used[j] = false
			if firstErr != nil {
				used[first] = false
				return
			}
		}
		used[first] = false
	}

	recurse(0)
	if firstErr != nil {
		return nil, firstErr
	}

	result := make([]Pair, len(best))
	copy(result, best)
	return result, nil
}

// greedyMatching sorts every candidate pair by ascending distance and
// commits each pair in order iff both endpoints remain unmatched.
func greedyMatching(odd []NodeID, dist func(u, v NodeID) (float64, error)) ([]Pair, error) {
	type candidate struct {
		i, j int
		w    float64
	}

	n := len(odd)
	candidates := make([]candidate, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			w, err := dist(odd[i], odd[j])
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, candidate{i, j, w})
		}
	}

	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].w != candidates[b].w {
			return candidates[a].w < candidates[b].w
		}
		if candidates[a].i != candidates[b].i {
			return candidates[a].i < candidates[b].i
		}
		return candidates[a].j < candidates[b].j
	})

	matched := make([]bool, n)
	remaining := n
	var pairs []Pair
	for _, c := range candidates {
		if remaining == 0 {
			break
		}
		if matched[c.i] || matched[c.j] {
			continue
		}
		matched[c.i] = true
		matched[c.j] = true
		remaining -= 2
		pairs = append(pairs, Pair{odd[c.i], odd[c.j]})
	}

	return pairs, nil
}
