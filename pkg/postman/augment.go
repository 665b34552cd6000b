package postman

// Augment builds the augmented multigraph: a copy of g's half-edge index
// with one extra twin-linked half-edge pair added for every edge along
// every matched pair's shortest path. Duplicated edges keep their original
// id and *Edge pointer — augmentation never clones an edge object, so
// downstream reporting (RouteResult.DuplicateEdgeIDs) counts traversals
// against the same id the caller's original graph uses.
//
// Per §4.E's invariant, every node's degree in the result is even.
func Augment(g *Graph, matching []Pair, paths map[NodeID]*ShortestPaths) (*Graph, error) {
	half := make(map[NodeID][]*halfEdge, len(g.half))
	for id, entries := range g.half {
		cp := make([]*halfEdge, len(entries))
		copy(cp, entries)
		half[id] = cp
	}

	for _, pair := range matching {
		nodes, edges, _, err := paths[pair.A].PathTo(pair.B)
		if err != nil {
			return nil, err
		}
		for i, e := range edges {
			addHalfEdgePair(half, nodes[i], nodes[i+1], e)
		}
	}

	return buildGraph(g.nodes, g.edges, half), nil
}
