package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	osmparser "github.com/everystreet/inspector/pkg/osm"
	"github.com/everystreet/inspector/pkg/postman"
	"github.com/everystreet/inspector/pkg/routestore"
)

// InspectHandlers serves route-inspection records: cached reads and
// synchronous on-demand solves over a configured directory of OSM extracts.
// It is independent of Handlers (the CH point-to-point router) since the two
// features have unrelated dependencies — one never needs the other's graph.
type InspectHandlers struct {
	store  *routestore.Store
	osmDir string // base directory OSMPath is resolved against; empty disables POST
}

// NewInspectHandlers creates inspection handlers backed by store. osmDir, if
// non-empty, is the only directory POST /api/v1/inspect may read .osm.pbf
// extracts from — request-supplied paths are resolved relative to it and
// rejected if they'd escape it.
func NewInspectHandlers(store *routestore.Store, osmDir string) *InspectHandlers {
	return &InspectHandlers{store: store, osmDir: osmDir}
}

// HandleGetInspection handles GET /api/v1/inspect/{name}.
func (h *InspectHandlers) HandleGetInspection(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	rec, err := h.store.Load(name)
	if err != nil {
		if errors.Is(err, routestore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recordToResponse(rec))
}

// HandlePostInspection handles POST /api/v1/inspect: run a fresh inspection
// over a server-local OSM extract and persist it, or return the cached
// record if one of that name already exists.
func (h *InspectHandlers) HandlePostInspection(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	var req InspectRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}
	if req.Name == "" || req.OSMPath == "" {
		writeError(w, http.StatusBadRequest, "missing_field", "name_or_osm_path")
		return
	}

	if existing, err := h.store.Load(req.Name); err == nil {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(recordToResponse(existing))
		return
	}

	if h.osmDir == "" {
		writeError(w, http.StatusServiceUnavailable, "inspection_disabled", "")
		return
	}
	osmPath, err := resolveUnderDir(h.osmDir, req.OSMPath)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_osm_path", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	result, err := h.solve(ctx, osmPath)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "inspection_failed", "")
		return
	}

	area := req.Area
	if area == "" {
		area = req.Name
	}
	rec := &routestore.Record{
		Name:            req.Name,
		AreaName:        area,
		Status:          routestore.StatusComplete,
		CreatedAt:       time.Now().UTC(),
		Result:          result,
		EstimatedTimeMs: routestore.EstimatedTimeMs(result.TotalDistance, req.AvgSpeedKmh),
	}
	if err := h.store.Save(rec); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(recordToResponse(rec))
}

func (h *InspectHandlers) solve(ctx context.Context, osmPath string) (*postman.RouteResult, error) {
	f, err := openOSMFile(osmPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	parseResult, err := osmparser.Parse(ctx, f, osmparser.ParseOptions{Profile: osmparser.ProfileWalk})
	if err != nil {
		return nil, err
	}
	g, err := postman.BuildGraph(parseResult)
	if err != nil {
		return nil, err
	}
	return postman.Solve(g, postman.WithCancellation(func() bool { return ctx.Err() != nil }))
}

func recordToResponse(rec *routestore.Record) InspectResponse {
	resp := InspectResponse{
		Name:             rec.Name,
		AreaName:         rec.AreaName,
		Status:           string(rec.Status),
		EstimatedTimeMs:  rec.EstimatedTimeMs,
	}
	if rec.Result == nil {
		return resp
	}

	resp.TotalDistanceMeters = rec.Result.TotalDistance
	resp.OriginalDistanceMeters = rec.Result.OriginalDistance
	for _, id := range rec.Result.DuplicateEdgeIDs {
		resp.DuplicateEdgeIDs = append(resp.DuplicateEdgeIDs, int64(id))
	}
	for _, id := range rec.Result.UnreachedEdgeIDs {
		resp.UnreachedEdgeIDs = append(resp.UnreachedEdgeIDs, int64(id))
	}
	for _, instr := range rec.Result.Instructions {
		resp.Instructions = append(resp.Instructions, InstructionJSON{
			Kind:       string(instr.Kind),
			StreetName: instr.StreetName,
			DistanceM:  instr.Distance,
			Bearing:    instr.Bearing,
			Location:   LatLngJSON{Lat: instr.Location.Lat, Lng: instr.Location.Lng},
		})
	}

	line := make(orb.LineString, len(rec.Result.Path))
	for i, p := range rec.Result.Path {
		line[i] = orb.Point{p.Lng, p.Lat}
	}
	resp.Path = geojson.NewFeature(line)

	return resp
}

func openOSMFile(path string) (io.ReadSeekCloser, error) {
	return os.Open(path)
}

// resolveUnderDir joins base and rel, rejecting any result that escapes base
// via ".." segments. An absolute rel is joined under base like any other.
func resolveUnderDir(base, rel string) (string, error) {
	clean := filepath.Join(base, rel)
	if !strings.HasPrefix(clean, filepath.Clean(base)+string(filepath.Separator)) {
		return "", errors.New("path escapes base directory")
	}
	return clean, nil
}
