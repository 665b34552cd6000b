package postman

import (
	"github.com/everystreet/inspector/pkg/graph"
)

// component returns the subgraph weakly connected to start, plus the ids of
// every edge outside it. It reuses pkg/graph's UnionFind and its
// ComponentMembers helper exactly as the CH preprocessing pipeline does in
// graph.LargestComponent — the algorithm is representation-agnostic, so the
// only adaptation needed is mapping this package's sparse, possibly
// OSM-derived NodeIDs onto the dense uint32 indices UnionFind expects.
//
// Because g is undirected, any edge incident on a reachable node has a
// reachable other endpoint too: there is no edge straddling a component
// boundary, so filtering by "edge.From's component == start's component" is
// exact.
//
// The subgraph is assembled by filtering g's own half-edge index and edge
// list directly (the way Augment builds the augmented graph in augment.go)
// rather than by replaying every retained edge through Builder.AddEdge:
// AddEdge always mints a fresh sequential EdgeID, which would silently
// renumber every surviving edge and break §3/§8's invariant that edge_order
// reports the caller's own stable edge ids. Preserving the original *Edge
// pointers keeps their ids intact.
func component(g *Graph, start NodeID) (sub *Graph, unreached []EdgeID) {
	ids := g.NodeIDs()
	index := make(map[NodeID]uint32, len(ids))
	for i, id := range ids {
		index[id] = uint32(i)
	}

	uf := graph.NewUnionFind(uint32(len(ids)))
	for _, e := range g.Edges() {
		uf.Union(index[e.From], index[e.To])
	}

	root := uf.Find(index[start])
	reachable := make(map[NodeID]bool, len(ids))
	for _, idx := range graph.ComponentMembers(uf, uint32(len(ids)), root) {
		reachable[ids[idx]] = true
	}

	nodes := make(map[NodeID]*Node, len(reachable))
	for id := range reachable {
		if n, ok := g.Node(id); ok {
			nodes[id] = n
		}
	}

	var edges []*Edge
	half := make(map[NodeID][]*halfEdge, len(reachable))
	for _, e := range g.Edges() {
		if !reachable[e.From] {
			unreached = append(unreached, e.ID)
			continue
		}
		edges = append(edges, e)
	}
	for id, entries := range g.half {
		if reachable[id] {
			half[id] = entries
		}
	}

	return buildGraph(nodes, edges, half), unreached
}
