package postman

import "math"

// pqItem is a Dijkstra priority queue entry.
type pqItem struct {
	node NodeID
	dist float64
}

// minHeap is a concrete-typed min-heap keyed by tentative distance, in the
// same shape as pkg/routing's CH Dijkstra heap: avoids the interface
// boxing overhead of container/heap for a hot inner loop.
type minHeap struct {
	items []pqItem
}

func (h *minHeap) Len() int { return len(h.items) }

func (h *minHeap) Push(node NodeID, dist float64) {
	h.items = append(h.items, pqItem{node, dist})
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) Pop() pqItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *minHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].dist >= h.items[parent].dist {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *minHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.items[left].dist < h.items[smallest].dist {
			smallest = left
		}
		if right < n && h.items[right].dist < h.items[smallest].dist {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

// ShortestPaths is the result of a single-source Dijkstra run: distances
// and predecessor node/edge maps over every reachable node.
type ShortestPaths struct {
	Source   NodeID
	Dist     map[NodeID]float64
	predNode map[NodeID]NodeID
	predEdge map[NodeID]*Edge
}

// Dijkstra runs single-source Dijkstra from source over g. Edge weights are
// edge lengths (non-negative by construction). Ties in tentative distance
// are broken by first-encountered predecessor, per §5's ordering rule:
// adjacency entries are scanned in ascending edge-id order (Graph.Neighbors
// already returns them that way) and a strict '<' comparison on relax
// means the first edge to reach a given tentative distance wins.
func Dijkstra(g *Graph, source NodeID) *ShortestPaths {
	dist := map[NodeID]float64{source: 0}
	predNode := make(map[NodeID]NodeID)
	predEdge := make(map[NodeID]*Edge)

	visited := make(map[NodeID]bool)

	var pq minHeap
	pq.Push(source, 0)

	for pq.Len() > 0 {
		item := pq.Pop()
		u := item.node
		if visited[u] {
			continue
		}
		// Lazy deletion: skip stale entries whose recorded distance has
		// since improved.
		if d, ok := dist[u]; ok && item.dist > d {
			continue
		}
		visited[u] = true

		for _, adj := range g.Neighbors(u) {
			v := adj.Neighbor
			nd := dist[u] + adj.Edge.Length
			cur, seen := dist[v]
			if !seen || nd < cur {
				dist[v] = nd
				predNode[v] = u
				predEdge[v] = adj.Edge
				pq.Push(v, nd)
			}
		}
	}

	return &ShortestPaths{Source: source, Dist: dist, predNode: predNode, predEdge: predEdge}
}

// PathTo reconstructs the shortest path from the Dijkstra source to target:
// the ordered node sequence, the ordered edge sequence walked between
// consecutive nodes, and the total distance. Returns ErrUnreachableOdd if
// target was not reached.
func (sp *ShortestPaths) PathTo(target NodeID) ([]NodeID, []*Edge, float64, error) {
	dist, ok := sp.Dist[target]
	if !ok {
		return nil, nil, 0, ErrUnreachableOdd
	}
	if target == sp.Source {
		return []NodeID{sp.Source}, nil, 0, nil
	}

	var nodes []NodeID
	var edges []*Edge
	cur := target
	for cur != sp.Source {
		nodes = append(nodes, cur)
		edge, ok := sp.predEdge[cur]
		if !ok {
			// Predecessor chain broke before reaching the source: the
			// recorded distance was spurious (should not happen for a
			// correctly-run Dijkstra, but fail safe rather than loop).
			return nil, nil, 0, ErrUnreachableOdd
		}
		edges = append(edges, edge)
		cur = sp.predNode[cur]
	}
	nodes = append(nodes, sp.Source)

	// Reverse into source->target order.
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}

	return nodes, edges, dist, nil
}

// apspAmong computes all-pairs shortest paths restricted to the given node
// set: one Dijkstra run per source, each run's full ShortestPaths kept as
// is (covering every reachable node, not only the set). The returned map
// is keyed by source node; sp[u].Dist[v] and
// sp[u].PathTo(v) are valid for every v in nodes.
func apspAmong(g *Graph, nodes []NodeID) map[NodeID]*ShortestPaths {
	result := make(map[NodeID]*ShortestPaths, len(nodes))
	for _, u := range nodes {
		result[u] = Dijkstra(g, u)
	}
	return result
}
