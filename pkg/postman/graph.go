// Package postman implements the Chinese Postman (Route Inspection) solver
// and its companion turn-by-turn instruction generator over an undirected
// street multigraph.
//
// Unlike the CSR-based graph in pkg/graph (built for fast directed
// point-to-point queries over a contracted hierarchy), the graph here is an
// adjacency-list multigraph: undirected, duplicate-edge-tolerant, and built
// to be cheaply augmented (§4.E of the design) without reindexing. See
// DESIGN.md for why the two representations coexist.
package postman

import (
	"sort"

	"github.com/everystreet/inspector/pkg/geo"
)

// NodeID identifies a graph node. Stable and opaque to the solver.
type NodeID int64

// EdgeID identifies a graph edge, unique within a Graph.
type EdgeID int64

// Node is a street intersection or endpoint.
type Node struct {
	ID  NodeID
	Loc geo.Point
}

// Edge is an undirected street segment. Traversal in either direction uses
// the same Edge value; Geometry is stored From->To and reversed at
// traversal time to match the walking direction.
type Edge struct {
	ID       EdgeID
	From, To NodeID
	Length   float64 // meters, > 0
	Geometry []geo.Point
	Name     string // empty if the source way was unnamed
}

// OtherEnd returns the endpoint of e that is not from.
func (e *Edge) OtherEnd(from NodeID) NodeID {
	if e.From == from {
		return e.To
	}
	return e.From
}

// GeometryFrom returns e's geometry ordered so it starts at `from`.
func (e *Edge) GeometryFrom(from NodeID) []geo.Point {
	if from == e.From {
		return e.Geometry
	}
	reversed := make([]geo.Point, len(e.Geometry))
	for i, p := range e.Geometry {
		reversed[len(e.Geometry)-1-i] = p
	}
	return reversed
}

// AdjEntry is one directed half of an undirected edge incident on a node.
type AdjEntry struct {
	Neighbor NodeID
	Edge     *Edge
}

// halfEdge is AdjEntry's internal twin: the two halfEdges of one edge
// occurrence point at each other directly, so Hierholzer can mark both
// sides of a traversal used in O(1) regardless of how many parallel or
// duplicated occurrences of the same edge id exist between two nodes —
// no index arithmetic or re-derivation after sorting is needed.
type halfEdge struct {
	neighbor NodeID
	edge     *Edge
	twin     *halfEdge
}

// Graph is an immutable undirected multigraph: nodes keyed by id, an edge
// list, and an adjacency index with one entry per incident edge per
// direction (two entries per undirected edge, one per endpoint).
type Graph struct {
	nodes map[NodeID]*Node
	edges []*Edge
	adj   map[NodeID][]AdjEntry
	half  map[NodeID][]*halfEdge
}

// Node looks up a node by id.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NumNodes returns the count of registered nodes, including any with no
// incident edge.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// Edges returns the full edge list. Callers must not mutate it.
func (g *Graph) Edges() []*Edge { return g.edges }

// NumEdges returns the count of distinct edges (not traversals).
func (g *Graph) NumEdges() int { return len(g.edges) }

// Neighbors returns the adjacency entries for a node, sorted by edge id
// (the tie-break order Hierholzer and Dijkstra both rely on for
// deterministic output). Callers must not mutate the returned slice.
func (g *Graph) Neighbors(id NodeID) []AdjEntry {
	return g.adj[id]
}

// Degree returns the number of incident edge-endpoints at a node (a
// self-loop, which this model forbids, would count twice).
func (g *Graph) Degree(id NodeID) int {
	return len(g.adj[id])
}

// NodeIDs returns every registered node id, including any with no incident
// edge, ascending.
func (g *Graph) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// OddDegreeNodes returns every node with odd degree, ascending by id.
func (g *Graph) OddDegreeNodes() []NodeID {
	var odd []NodeID
	for _, id := range g.NodeIDs() {
		if g.Degree(id)%2 == 1 {
			odd = append(odd, id)
		}
	}
	return odd
}

// TotalLength returns the sum of every distinct edge's length (the
// "original_distance" of §3's RouteResult).
func (g *Graph) TotalLength() float64 {
	var total float64
	for _, e := range g.edges {
		total += e.Length
	}
	return total
}

// Builder constructs a Graph incrementally. The graph source (OSM parser,
// test fixtures, ...) is the only intended caller; once Build is called the
// result is read-only for the rest of the pipeline.
type Builder struct {
	nodes   map[NodeID]*Node
	edges   []*Edge
	half    map[NodeID][]*halfEdge
	nextEID EdgeID
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		nodes: make(map[NodeID]*Node),
		half:  make(map[NodeID][]*halfEdge),
	}
}

// AddNode registers a node's location. Calling it more than once for the
// same id overwrites the location (last write wins), which is harmless
// since every edge referencing the id re-specifies endpoints by id, not
// by the location captured here.
func (b *Builder) AddNode(id NodeID, loc geo.Point) {
	b.nodes[id] = &Node{ID: id, Loc: loc}
}

// AddEdge adds an undirected edge from->to with the given length, geometry
// (ordered from->to, endpoints matching the node locations) and optional
// street name. Returns the assigned EdgeID. from and to must already be
// registered via AddNode and must differ.
func (b *Builder) AddEdge(from, to NodeID, length float64, geometry []geo.Point, name string) EdgeID {
	id := b.nextEID
	b.nextEID++

	e := &Edge{ID: id, From: from, To: to, Length: length, Geometry: geometry, Name: name}
	b.edges = append(b.edges, e)
	addHalfEdgePair(b.half, from, to, e)

	return id
}

// addHalfEdgePair appends the two twin halfEdges of one edge occurrence to
// their respective endpoints' lists.
func addHalfEdgePair(half map[NodeID][]*halfEdge, from, to NodeID, e *Edge) {
	hf := &halfEdge{neighbor: to, edge: e}
	hb := &halfEdge{neighbor: from, edge: e}
	hf.twin = hb
	hb.twin = hf
	half[from] = append(half[from], hf)
	half[to] = append(half[to], hb)
}

// Build finalizes the graph: adjacency entries are sorted by edge id
// (stably, so repeated occurrences of the same duplicated edge id keep
// their relative insertion order) so downstream algorithms get a
// deterministic traversal order.
func (b *Builder) Build() *Graph {
	return buildGraph(b.nodes, b.edges, b.half)
}

// buildGraph sorts each node's half-edge list by edge id and derives the
// public AdjEntry view from it.
func buildGraph(nodes map[NodeID]*Node, edges []*Edge, half map[NodeID][]*halfEdge) *Graph {
	sortedHalf := make(map[NodeID][]*halfEdge, len(half))
	adj := make(map[NodeID][]AdjEntry, len(half))
	for id, entries := range half {
		sorted := make([]*halfEdge, len(entries))
		copy(sorted, entries)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].edge.ID < sorted[j].edge.ID })
		sortedHalf[id] = sorted

		entryView := make([]AdjEntry, len(sorted))
		for i, h := range sorted {
			entryView[i] = AdjEntry{Neighbor: h.neighbor, Edge: h.edge}
		}
		adj[id] = entryView
	}
	return &Graph{nodes: nodes, edges: edges, adj: adj, half: sortedHalf}
}
