package routing

import (
	"math"
	"testing"
)

func TestSnapToExactNode(t *testing.T) {
	g, _ := buildTestGraphAndCH(t)
	s := NewSnapper(g)

	res, err := s.Snap(1.300, 103.800)
	if err != nil {
		t.Fatalf("Snap: %v", err)
	}
	if res.Dist > 1.0 {
		t.Errorf("Dist = %v, want near 0 for an exact node hit", res.Dist)
	}
}

func TestSnapToMidSegment(t *testing.T) {
	g, _ := buildTestGraphAndCH(t)
	s := NewSnapper(g)

	// Midpoint of the 10-20 edge (node 10 at 103.800, node 20 at 103.801).
	res, err := s.Snap(1.300, 103.8005)
	if err != nil {
		t.Fatalf("Snap: %v", err)
	}
	if res.Ratio < 0.3 || res.Ratio > 0.7 {
		t.Errorf("Ratio = %v, want close to 0.5 for a midpoint query", res.Ratio)
	}
}

func TestSnapTooFarReturnsError(t *testing.T) {
	g, _ := buildTestGraphAndCH(t)
	s := NewSnapper(g)

	_, err := s.Snap(40.0, -70.0) // nowhere near the test fixture
	if err != ErrPointTooFar {
		t.Errorf("err = %v, want ErrPointTooFar", err)
	}
}

func TestSnapExpandsSearchRadius(t *testing.T) {
	g, _ := buildTestGraphAndCH(t)
	s := NewSnapper(g)

	// A point just inside maxSnapDistMeters but outside the first search box
	// (initialSearchDeg ~= 220m) should still resolve via radius doubling.
	offsetDeg := (initialSearchDeg * 1.5)
	res, err := s.Snap(1.300+offsetDeg, 103.800)
	if err != nil {
		t.Fatalf("Snap: %v", err)
	}
	if math.IsInf(res.Dist, 1) {
		t.Errorf("Dist = +Inf, expected a finite snap distance")
	}
}
