package postman

// EdgeTraversal is one directed walk across an edge: from {edge.From,
// edge.To} in the direction from->to.
type EdgeTraversal struct {
	Edge     *Edge
	From, To NodeID
}

// Hierholzer computes an Eulerian circuit over g starting and ending at
// start, using Hierholzer's algorithm over the half-edge representation:
// each undirected occurrence of an edge is two twin-linked half-edges, one
// per endpoint, and "used" is tracked per half-edge so parallel and
// duplicated occurrences of the same edge id are walked independently.
//
// Preconditions (the caller — RouteSolver — is responsible for these):
// g is connected on its positive-degree nodes, every node has even degree,
// and start is a node with positive degree. Violating the first yields a
// circuit covering only start's component, per §4.F.
//
// Tie-break: among a node's unused half-edges, the lowest edge id is
// walked first — g.half is already sorted that way by Builder/Augment.
//
// Complexity: O(E') on the augmented graph's edge count.
func Hierholzer(g *Graph, start NodeID) []EdgeTraversal {
	used := make(map[*halfEdge]bool)
	cursor := make(map[NodeID]int)

	nodeStack := []NodeID{start}
	edgeStack := make([]*Edge, 0, 16)
	circuit := make([]EdgeTraversal, 0, 16)

	for len(nodeStack) > 0 {
		v := nodeStack[len(nodeStack)-1]
		entries := g.half[v]
		i := cursor[v]
		for i < len(entries) && used[entries[i]] {
			i++
		}
		cursor[v] = i

		if i == len(entries) {
			// No unused half-edge leaves v: close out the arc that
			// brought us here (if any) and backtrack.
			if len(nodeStack) > 1 {
				e := edgeStack[len(edgeStack)-1]
				edgeStack = edgeStack[:len(edgeStack)-1]
				from := nodeStack[len(nodeStack)-2]
				circuit = append(circuit, EdgeTraversal{Edge: e, From: from, To: v})
			}
			nodeStack = nodeStack[:len(nodeStack)-1]
			continue
		}

		he := entries[i]
		used[he] = true
		used[he.twin] = true
		nodeStack = append(nodeStack, he.neighbor)
		edgeStack = append(edgeStack, he.edge)
	}

	// circuit was emitted in pop (reverse-walk) order; flip it once to get
	// the forward walk order instead of prepending on every emission.
	for i, j := 0, len(circuit)-1; i < j; i, j = i+1, j-1 {
		circuit[i], circuit[j] = circuit[j], circuit[i]
	}
	return circuit
}
