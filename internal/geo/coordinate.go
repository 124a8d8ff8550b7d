// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package geo

import (
	"fmt"
	"math"
)

// Coordinate is a WGS84 position in float degrees, longitude first to match
// the places provider's "lng,lat" wire order.
type Coordinate struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// String formats the coordinate as the provider's "lng,lat" pair.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lng, c.Lat)
}

// Meters-per-degree constants for the city-scale planar distance
// approximation. Longitude uses 85 km/degree (mid-latitude average for the
// service area) and latitude 111 km/degree. Good to a few percent at city
// scale, which is all venue scoring needs.
const (
	metersPerLngDegree = 85000.0
	metersPerLatDegree = 111000.0
)

// Distance returns the approximate distance between two coordinates in
// meters using an equirectangular projection. Not suitable for
// inter-continental distances; callers comparing city-scale distances only.
func Distance(a, b Coordinate) float64 {
	x := (b.Lng - a.Lng) * metersPerLngDegree
	y := (b.Lat - a.Lat) * metersPerLatDegree
	return math.Sqrt(x*x + y*y)
}
