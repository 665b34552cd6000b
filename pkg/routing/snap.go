package routing

import (
	"errors"
	"math"

	"github.com/tidwall/rtree"

	"github.com/everystreet/inspector/pkg/geo"
	"github.com/everystreet/inspector/pkg/graph"
)

const maxSnapDistMeters = 500.0

// ErrPointTooFar is returned when the query point is too far from any road.
var ErrPointTooFar = errors.New("point too far from road")

// SnapResult represents a point snapped to a road segment.
type SnapResult struct {
	EdgeIdx uint32  // index into original edge arrays
	NodeU   uint32  // source node of the edge
	NodeV   uint32  // target node of the edge
	Ratio   float64 // 0.0 = at NodeU, 1.0 = at NodeV
	Dist    float64 // distance in meters from query point to snapped point
}

// indexedEdge is the payload stored per bounding box in the R-tree.
type indexedEdge struct {
	edgeIdx uint32
	source  uint32
}

// initialSearchDeg is the starting half-width (degrees) of the bounding box
// probed around a query point. 0.002° ≈ 220 m, comfortably inside
// maxSnapDistMeters for a first attempt; Snap doubles it on a miss.
const initialSearchDeg = 0.002

// maxSearchDeg bounds how far the expanding search grows before giving up;
// past this a "too far" answer is certain regardless of what's indexed.
const maxSearchDeg = 0.2

// Snapper provides nearest-road snapping backed by a 2D R-tree over edge
// bounding boxes (longitude, latitude order, matching rtree's convention).
type Snapper struct {
	tr *rtree.RTree
	g  *graph.Graph
}

// NewSnapper builds an R-tree spatial index over the original graph's edges.
func NewSnapper(g *graph.Graph) *Snapper {
	var tr rtree.RTree
	for u := uint32(0); u < g.NumNodes; u++ {
		start, end := g.EdgesFrom(u)
		for e := start; e < end; e++ {
			v := g.Head[e]
			uLat, uLon := g.NodeLat[u], g.NodeLon[u]
			vLat, vLon := g.NodeLat[v], g.NodeLon[v]

			min := [2]float64{math.Min(uLon, vLon), math.Min(uLat, vLat)}
			max := [2]float64{math.Max(uLon, vLon), math.Max(uLat, vLat)}
			tr.Insert(min, max, indexedEdge{edgeIdx: e, source: u})
		}
	}
	return &Snapper{tr: &tr, g: g}
}

// Snap finds the nearest road segment to the given lat/lng, expanding the
// search box geometrically until a candidate is found within it or the
// search exceeds maxSearchDeg.
func (s *Snapper) Snap(lat, lng float64) (SnapResult, error) {
	var (
		bestDist   = math.Inf(1)
		bestResult SnapResult
		found      bool
	)

	for radius := initialSearchDeg; radius <= maxSearchDeg; radius *= 2 {
		bestDist = math.Inf(1)
		found = false

		min := [2]float64{lng - radius, lat - radius}
		max := [2]float64{lng + radius, lat + radius}
		s.tr.Search(min, max, func(_, _ [2]float64, data interface{}) bool {
			ie := data.(indexedEdge)
			u, v := ie.source, s.g.Head[ie.edgeIdx]

			exactDist, ratio := geo.PointToSegmentDist(
				lat, lng,
				s.g.NodeLat[u], s.g.NodeLon[u],
				s.g.NodeLat[v], s.g.NodeLon[v],
			)
			if exactDist < bestDist {
				bestDist = exactDist
				found = true
				bestResult = SnapResult{
					EdgeIdx: ie.edgeIdx,
					NodeU:   u,
					NodeV:   v,
					Ratio:   ratio,
					Dist:    exactDist,
				}
			}
			return true
		})

		// A result strictly inside the searched box can't be beaten by an
		// edge just outside it, so there's no need to keep expanding.
		if found && bestDist <= radius*111_000 {
			break
		}
	}

	if !found || bestDist > maxSnapDistMeters {
		return SnapResult{}, ErrPointTooFar
	}

	return bestResult, nil
}
