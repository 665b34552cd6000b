package postman

import (
	"github.com/paulmach/osm"

	"github.com/everystreet/inspector/pkg/geo"
	osmparser "github.com/everystreet/inspector/pkg/osm"
)

// BuildGraph converts a walk-profile OSM parse result into a Graph, the way
// pkg/graph.Build converts the same ParseResult into a CSR graph for CH
// routing. Node ids are carried over verbatim from osm.NodeID.
//
// result.Edges is directed (one RawEdge per traversable direction), but
// ProfileWalk parsing emits both directions for nearly every way, so the
// first occurrence of each undirected node pair wins and its reverse
// occurrence is skipped — the postman graph only needs one undirected edge
// per street segment.
func BuildGraph(result *osmparser.ParseResult) (*Graph, error) {
	if len(result.Edges) == 0 {
		return nil, ErrEmptyGraph
	}

	b := NewBuilder()
	added := make(map[osm.NodeID]bool, len(result.NodeLat))
	seen := make(map[[2]osm.NodeID]bool, len(result.Edges))

	loc := func(id osm.NodeID) geo.Point {
		return geo.Point{Lat: result.NodeLat[id], Lng: result.NodeLon[id]}
	}

	for _, e := range result.Edges {
		key := [2]osm.NodeID{e.FromNodeID, e.ToNodeID}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		if !added[e.FromNodeID] {
			b.AddNode(NodeID(e.FromNodeID), loc(e.FromNodeID))
			added[e.FromNodeID] = true
		}
		if !added[e.ToNodeID] {
			b.AddNode(NodeID(e.ToNodeID), loc(e.ToNodeID))
			added[e.ToNodeID] = true
		}

		length := float64(e.Weight) / 1000.0 // millimeters -> meters
		geometry := []geo.Point{loc(e.FromNodeID), loc(e.ToNodeID)}
		b.AddEdge(NodeID(e.FromNodeID), NodeID(e.ToNodeID), length, geometry, e.Name)
	}

	return b.Build(), nil
}
