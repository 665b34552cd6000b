package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	osmparser "github.com/everystreet/inspector/pkg/osm"
	"github.com/everystreet/inspector/pkg/postman"
	"github.com/everystreet/inspector/pkg/routestore"
)

func main() {
	input := flag.String("input", "", "Path to .osm.pbf file")
	name := flag.String("name", "", "Record name to save the inspection under")
	area := flag.String("area", "", "Human-readable area name (defaults to --name)")
	storeDir := flag.String("store", "routestore-data", "Directory for the route record store")
	bbox := flag.String("bbox", "", "Bounding box filter: minLat,minLng,maxLat,maxLng")
	avgSpeedKmh := flag.Float64("avg-speed-kmh", routestore.DefaultAvgSpeedKmh, "Average speed used to derive the estimated completion time")
	flag.Parse()

	if *input == "" || *name == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect --input <file.osm.pbf> --name <record-name> [--area <area-name>] [--store dir] [--bbox minLat,minLng,maxLat,maxLng] [--avg-speed-kmh 30]")
		os.Exit(1)
	}
	if *area == "" {
		*area = *name
	}

	var opts osmparser.ParseOptions
	opts.Profile = osmparser.ProfileWalk
	if *bbox != "" {
		var minLat, minLng, maxLat, maxLng float64
		if _, err := fmt.Sscanf(*bbox, "%f,%f,%f,%f", &minLat, &minLng, &maxLat, &maxLng); err != nil {
			log.Fatalf("Invalid bbox format (expected minLat,minLng,maxLat,maxLng): %v", err)
		}
		opts.BBox = osmparser.BBox{MinLat: minLat, MaxLat: maxLat, MinLng: minLng, MaxLng: maxLng}
		log.Printf("Using bounding box filter: lat [%.4f, %.4f], lng [%.4f, %.4f]", minLat, maxLat, minLng, maxLng)
	}

	store, err := routestore.Open(*storeDir)
	if err != nil {
		log.Fatalf("Failed to open route store: %v", err)
	}

	start := time.Now()

	log.Println("Opening OSM file...")
	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("Failed to open input file: %v", err)
	}
	defer f.Close()

	log.Println("Parsing OSM data (walk profile)...")
	parseResult, err := osmparser.Parse(context.Background(), f, opts)
	if err != nil {
		saveFailure(store, *name, *area, err)
		log.Fatalf("Failed to parse OSM data: %v", err)
	}
	log.Printf("Parsed %d edges, %d nodes", len(parseResult.Edges), len(parseResult.NodeLat))

	log.Println("Building street graph...")
	g, err := postman.BuildGraph(parseResult)
	if err != nil {
		saveFailure(store, *name, *area, err)
		log.Fatalf("Failed to build graph: %v", err)
	}
	log.Printf("Graph: %d nodes, %d edges, %.1f m total street length", g.NumNodes(), g.NumEdges(), g.TotalLength())

	log.Println("Solving route inspection...")
	result, err := postman.Solve(g)
	if err != nil {
		saveFailure(store, *name, *area, err)
		log.Fatalf("Failed to solve: %v", err)
	}
	log.Printf("Solved: %.1f m walk covering %.1f m of street (%.1f%% overhead), %d duplicated edges",
		result.TotalDistance, result.OriginalDistance,
		(result.TotalDistance/result.OriginalDistance-1)*100, len(result.DuplicateEdgeIDs))
	if len(result.UnreachedEdgeIDs) > 0 {
		log.Printf("Warning: %d edges unreachable from the solved component", len(result.UnreachedEdgeIDs))
	}

	rec := &routestore.Record{
		Name:            *name,
		AreaName:        *area,
		Status:          routestore.StatusComplete,
		CreatedAt:       time.Now().UTC(),
		Result:          result,
		EstimatedTimeMs: routestore.EstimatedTimeMs(result.TotalDistance, *avgSpeedKmh),
	}
	if err := store.Save(rec); err != nil {
		log.Fatalf("Failed to save route record: %v", err)
	}

	log.Printf("Done in %s. Saved record %q to %s", time.Since(start).Round(time.Second), *name, *storeDir)
}

func saveFailure(store *routestore.Store, name, area string, cause error) {
	rec := &routestore.Record{
		Name:      name,
		AreaName:  area,
		Status:    routestore.StatusFailed,
		CreatedAt: time.Now().UTC(),
		Error:     cause.Error(),
	}
	if err := store.Save(rec); err != nil {
		log.Printf("Warning: failed to persist failure record: %v", err)
	}
}
