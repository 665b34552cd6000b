package geo

import (
	"math"
	"testing"
)

func TestBearing(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Point
		wantDeg  float64
		toleance float64
	}{
		{
			name:     "due north",
			a:        Point{Lat: 1.30, Lng: 103.80},
			b:        Point{Lat: 1.40, Lng: 103.80},
			wantDeg:  0,
			toleance: 0.5,
		},
		{
			name:     "due east",
			a:        Point{Lat: 1.30, Lng: 103.80},
			b:        Point{Lat: 1.30, Lng: 103.90},
			wantDeg:  90,
			toleance: 0.5,
		},
		{
			name:     "due south",
			a:        Point{Lat: 1.40, Lng: 103.80},
			b:        Point{Lat: 1.30, Lng: 103.80},
			wantDeg:  180,
			toleance: 0.5,
		},
		{
			name:     "due west",
			a:        Point{Lat: 1.30, Lng: 103.90},
			b:        Point{Lat: 1.30, Lng: 103.80},
			wantDeg:  270,
			toleance: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(tt.a, tt.b)
			if got < 0 || got >= 360 {
				t.Fatalf("Bearing out of range: %f", got)
			}
			diff := math.Abs(got - tt.wantDeg)
			if diff > 180 {
				diff = 360 - diff
			}
			if diff > tt.toleance {
				t.Errorf("Bearing = %f, want ~%f", got, tt.wantDeg)
			}
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{181, -179},
		{-181, 179},
		{359, -1},
		{-359, 1},
		{720 + 10, 10},
		{-540, 180},
	}

	for _, tt := range tests {
		got := NormalizeAngle(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%f) = %f, want %f", tt.in, got, tt.want)
		}
		if got <= -180 || got > 180 {
			t.Errorf("NormalizeAngle(%f) = %f out of (-180, 180]", tt.in, got)
		}
	}
}

func TestDistanceMatchesHaversine(t *testing.T) {
	a := Point{Lat: 1.2830, Lng: 103.8513}
	b := Point{Lat: 1.3644, Lng: 103.9915}
	if Distance(a, b) != Haversine(a.Lat, a.Lng, b.Lat, b.Lng) {
		t.Errorf("Distance and Haversine disagree")
	}
}
