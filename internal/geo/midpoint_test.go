// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package geo

import (
	"math"
	"testing"
)

func TestCenter_EmptyInput(t *testing.T) {
	if _, err := Center(nil); err == nil {
		t.Fatal("Center(nil) should return an error")
	}
}

func TestCenter_SinglePoint(t *testing.T) {
	p := Coordinate{Lng: 116.3972, Lat: 39.9163}
	got, err := Center([]Coordinate{p})
	if err != nil {
		t.Fatalf("Center() error = %v", err)
	}
	if got != p {
		t.Errorf("Center() = %v, want identity %v", got, p)
	}
}

func TestCenter_TwoPointsSphericalMidpoint(t *testing.T) {
	// Tiananmen Square and the Summer Palace area.
	a := Coordinate{Lng: 116.3972, Lat: 39.9163}
	b := Coordinate{Lng: 116.3065, Lat: 39.9895}

	got, err := Center([]Coordinate{a, b})
	if err != nil {
		t.Fatalf("Center() error = %v", err)
	}

	// Reference output of the bearing-based midpoint formula.
	lat1, lng1 := a.Lat*math.Pi/180, a.Lng*math.Pi/180
	lat2, lng2 := b.Lat*math.Pi/180, b.Lng*math.Pi/180
	dLng := lng2 - lng1
	bx := math.Cos(lat2) * math.Cos(dLng)
	by := math.Cos(lat2) * math.Sin(dLng)
	wantLat := math.Atan2(math.Sin(lat1)+math.Sin(lat2),
		math.Sqrt((math.Cos(lat1)+bx)*(math.Cos(lat1)+bx)+by*by)) * 180 / math.Pi
	wantLng := (lng1 + math.Atan2(by, math.Cos(lat1)+bx)) * 180 / math.Pi

	if math.Abs(got.Lat-wantLat) > 1e-6 || math.Abs(got.Lng-wantLng) > 1e-6 {
		t.Errorf("Center() = (%.7f,%.7f), want (%.7f,%.7f)", got.Lng, got.Lat, wantLng, wantLat)
	}

	// The midpoint must lie between the endpoints for this short arc.
	if got.Lat < math.Min(a.Lat, b.Lat) || got.Lat > math.Max(a.Lat, b.Lat) {
		t.Errorf("midpoint latitude %.6f outside endpoint range", got.Lat)
	}
	if got.Lng < math.Min(a.Lng, b.Lng) || got.Lng > math.Max(a.Lng, b.Lng) {
		t.Errorf("midpoint longitude %.6f outside endpoint range", got.Lng)
	}
}

func TestCenter_TwoPointsSymmetric(t *testing.T) {
	tests := []struct {
		name string
		a, b Coordinate
	}{
		{"beijing pair", Coordinate{116.3972, 39.9163}, Coordinate{116.3065, 39.9895}},
		{"cross equator", Coordinate{10, -5}, Coordinate{12, 7}},
		{"same point", Coordinate{121.47, 31.23}, Coordinate{121.47, 31.23}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab, err := Center([]Coordinate{tt.a, tt.b})
			if err != nil {
				t.Fatalf("Center(a,b) error = %v", err)
			}
			ba, err := Center([]Coordinate{tt.b, tt.a})
			if err != nil {
				t.Fatalf("Center(b,a) error = %v", err)
			}
			if math.Abs(ab.Lat-ba.Lat) > 1e-9 || math.Abs(ab.Lng-ba.Lng) > 1e-9 {
				t.Errorf("midpoint not symmetric: %v vs %v", ab, ba)
			}
		})
	}
}

func TestCenter_MidpointOnGreatCircle(t *testing.T) {
	a := Coordinate{Lng: 116.3972, Lat: 39.9163}
	b := Coordinate{Lng: 116.3065, Lat: 39.9895}
	mid, err := Center([]Coordinate{a, b})
	if err != nil {
		t.Fatalf("Center() error = %v", err)
	}

	// On the great-circle arc the midpoint is equidistant from both ends.
	da := Distance(mid, a)
	db := Distance(mid, b)
	if rel := math.Abs(da-db) / math.Max(da, db); rel > 0.01 {
		t.Errorf("midpoint not equidistant: %.1fm vs %.1fm", da, db)
	}
}

func TestCenter_MeanWithinBounds(t *testing.T) {
	coords := []Coordinate{
		{Lng: 116.30, Lat: 39.90},
		{Lng: 116.45, Lat: 39.95},
		{Lng: 116.40, Lat: 40.02},
		{Lng: 116.35, Lat: 39.88},
	}
	got, err := Center(coords)
	if err != nil {
		t.Fatalf("Center() error = %v", err)
	}

	minLng, maxLng := coords[0].Lng, coords[0].Lng
	minLat, maxLat := coords[0].Lat, coords[0].Lat
	for _, c := range coords {
		minLng = math.Min(minLng, c.Lng)
		maxLng = math.Max(maxLng, c.Lng)
		minLat = math.Min(minLat, c.Lat)
		maxLat = math.Max(maxLat, c.Lat)
	}

	if got.Lng < minLng || got.Lng > maxLng {
		t.Errorf("mean longitude %.6f outside [%.6f, %.6f]", got.Lng, minLng, maxLng)
	}
	if got.Lat < minLat || got.Lat > maxLat {
		t.Errorf("mean latitude %.6f outside [%.6f, %.6f]", got.Lat, minLat, maxLat)
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Coordinate
		want   float64
		within float64
	}{
		{"same point", Coordinate{116.4, 39.9}, Coordinate{116.4, 39.9}, 0, 0.001},
		{"one degree latitude", Coordinate{116.4, 39.9}, Coordinate{116.4, 40.9}, 111000, 1},
		{"one degree longitude", Coordinate{116.4, 39.9}, Coordinate{117.4, 39.9}, 85000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.want) > tt.within {
				t.Errorf("Distance() = %.1f, want %.1f", got, tt.want)
			}
			// Distance is symmetric.
			if rev := Distance(tt.b, tt.a); math.Abs(got-rev) > 1e-9 {
				t.Errorf("Distance not symmetric: %.3f vs %.3f", got, rev)
			}
		})
	}
}
