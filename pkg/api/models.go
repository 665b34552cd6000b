package api

import "github.com/paulmach/orb/geojson"

// RouteRequest is the JSON body for POST /api/v1/route.
type RouteRequest struct {
	Start LatLngJSON `json:"start"`
	End   LatLngJSON `json:"end"`
}

// LatLngJSON represents a lat/lng pair in JSON.
type LatLngJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteResponse is the JSON response for a successful route query.
type RouteResponse struct {
	TotalDistanceMeters float64       `json:"total_distance_meters"`
	Segments            []SegmentJSON `json:"segments"`
}

// SegmentJSON represents a road segment in the response.
type SegmentJSON struct {
	DistanceMeters float64      `json:"distance_meters"`
	Geometry       []LatLngJSON `json:"geometry"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error          string  `json:"error"`
	Field          string  `json:"field,omitempty"`
	DistanceMeters float64 `json:"distance_meters,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	NumNodes      uint32 `json:"num_nodes"`
	NumFwdEdges   int    `json:"num_fwd_edges"`
	NumBwdEdges   int    `json:"num_bwd_edges"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}

// InspectRequest is the JSON body for POST /api/v1/inspect.
type InspectRequest struct {
	Name    string `json:"name"`
	Area    string `json:"area,omitempty"`
	OSMPath string `json:"osm_path"`
	// AvgSpeedKmh overrides the default average speed (spec.md §4.H's
	// V_AVG_KMH = 30) used to derive EstimatedTimeMs. Zero means "use the
	// default".
	AvgSpeedKmh float64 `json:"avg_speed_kmh,omitempty"`
}

// InstructionJSON represents one turn-by-turn directive in the response.
type InstructionJSON struct {
	Kind       string     `json:"kind"`
	StreetName string     `json:"street_name,omitempty"`
	DistanceM  float64    `json:"distance_meters"`
	Bearing    float64    `json:"bearing"`
	Location   LatLngJSON `json:"location"`
}

// InspectResponse is the JSON response for both inspection endpoints. Path
// is encoded as a GeoJSON LineString Feature.
type InspectResponse struct {
	Name                   string            `json:"name"`
	AreaName               string            `json:"area_name"`
	Status                 string            `json:"status"`
	TotalDistanceMeters    float64           `json:"total_distance_meters,omitempty"`
	OriginalDistanceMeters float64           `json:"original_distance_meters,omitempty"`
	EstimatedTimeMs        int64             `json:"estimated_time_ms,omitempty"`
	DuplicateEdgeIDs       []int64           `json:"duplicate_edge_ids,omitempty"`
	UnreachedEdgeIDs       []int64           `json:"unreached_edge_ids,omitempty"`
	Instructions           []InstructionJSON `json:"instructions,omitempty"`
	Path                   *geojson.Feature  `json:"path,omitempty"`
}
