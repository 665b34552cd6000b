package postman

import "sort"

// Option configures a Solve call.
type Option func(*solveConfig)

type solveConfig struct {
	start       *NodeID
	isCancelled func() bool
}

// WithStart pins the walk's start node. If it is not present in the input
// graph, Solve falls back to the §4.F default selection policy rather than
// erroring, since a caller-supplied id going stale (e.g. after a re-import)
// is an expected occurrence, not a malformed request.
func WithStart(node NodeID) Option {
	return func(c *solveConfig) { c.start = &node }
}

// WithCancellation installs a predicate Solve polls between phases. When it
// returns true, Solve aborts and returns ErrCancelled. A nil predicate (the
// default) disables cancellation.
func WithCancellation(isCancelled func() bool) Option {
	return func(c *solveConfig) { c.isCancelled = isCancelled }
}

// Solve computes a minimum-distance closed walk covering every edge of g at
// least once, plus its turn-by-turn instructions, per §4.G:
//
//	odd = odd_degree_nodes(graph)
//	if odd is empty:
//	    circuit = hierholzer(graph, start ?? any_node(graph))
//	else:
//	    pairs_paths = apsp_between(odd, graph)
//	    matching    = min_weight_matching(odd, pairs_paths)
//	    augmented   = augment(graph, matching, pairs_paths)
//	    circuit     = hierholzer(augmented, start ?? odd[0])
//	return build_result(graph, circuit)
//
// If g is disconnected, Solve restricts itself to the component reachable
// from the resolved start node (§7's Disconnected policy) and reports every
// edge outside it via RouteResult.UnreachedEdgeIDs, rather than failing.
func Solve(g *Graph, opts ...Option) (*RouteResult, error) {
	if g.NumEdges() == 0 {
		return nil, ErrEmptyGraph
	}

	cfg := &solveConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	start := resolveStart(g, cfg.start)
	sub, unreached := component(g, start)

	if cancelled(cfg) {
		return nil, ErrCancelled
	}

	odd := sub.OddDegreeNodes()

	var circuitGraph *Graph
	if len(odd) == 0 {
		circuitGraph = sub
	} else {
		paths := apspAmong(sub, odd)
		if cancelled(cfg) {
			return nil, ErrCancelled
		}

		matching, err := Matching(odd, paths)
		if err != nil {
			return nil, err
		}
		if cancelled(cfg) {
			return nil, ErrCancelled
		}

		augmented, err := Augment(sub, matching, paths)
		if err != nil {
			return nil, err
		}
		circuitGraph = augmented
	}

	if cancelled(cfg) {
		return nil, ErrCancelled
	}

	circuit := Hierholzer(circuitGraph, start)

	result := buildResult(sub, circuit, unreached)

	instructions, err := InstructionsFor(circuit)
	if err != nil {
		return nil, err
	}
	result.Instructions = instructions

	return result, nil
}

func cancelled(cfg *solveConfig) bool {
	return cfg.isCancelled != nil && cfg.isCancelled()
}

// resolveStart implements §4.F's start-node selection: a caller-supplied
// node wins outright if it exists in g; otherwise any odd-degree vertex of
// g; otherwise any node with positive degree. All ties favor the lowest
// node id, for reproducible output.
func resolveStart(g *Graph, want *NodeID) NodeID {
	if want != nil {
		if _, ok := g.Node(*want); ok {
			return *want
		}
	}

	if odd := g.OddDegreeNodes(); len(odd) > 0 {
		return odd[0]
	}

	for _, id := range g.NodeIDs() {
		if g.Degree(id) > 0 {
			return id
		}
	}

	// Unreachable in practice: Solve already rejected zero-edge graphs, and
	// every edge endpoint has degree >= 1.
	return g.NodeIDs()[0]
}

// buildResult derives a RouteResult from the solved component and its
// Eulerian circuit: the concatenated path geometry, edge-traversal order,
// accumulated distances, and the set of edges walked more than once.
func buildResult(g *Graph, circuit []EdgeTraversal, unreached []EdgeID) *RouteResult {
	result := &RouteResult{
		OriginalDistance: g.TotalLength(),
		UnreachedEdgeIDs: unreached,
	}

	counts := make(map[EdgeID]int, len(circuit))
	for _, t := range circuit {
		result.EdgeOrder = append(result.EdgeOrder, t.Edge.ID)
		result.TotalDistance += t.Edge.Length
		counts[t.Edge.ID]++

		geom := t.Edge.GeometryFrom(t.From)
		if len(result.Path) > 0 {
			geom = geom[1:] // drop the point shared with the previous traversal's end
		}
		result.Path = append(result.Path, geom...)
	}

	for id, n := range counts {
		if n > 1 {
			result.DuplicateEdgeIDs = append(result.DuplicateEdgeIDs, id)
		}
	}
	sort.Slice(result.DuplicateEdgeIDs, func(i, j int) bool {
		return result.DuplicateEdgeIDs[i] < result.DuplicateEdgeIDs[j]
	})

	return result
}
