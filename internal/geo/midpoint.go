// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package geo

import (
	"errors"
	"math"
)

// ErrNoCoordinates is returned when a center is requested for an empty set.
var ErrNoCoordinates = errors.New("geo: at least one coordinate required")

// Center computes the geometric meeting point for a set of coordinates.
//
//   - 1 point: identity.
//   - 2 points: spherical great-circle midpoint. Measurably more accurate
//     than a planar average over any non-trivial distance.
//   - N>2 points: arithmetic mean of longitudes and latitudes. This is a
//     deliberate simplification, not an iterative geometric median: the
//     venue search radius absorbs the residual error at city scale.
func Center(coords []Coordinate) (Coordinate, error) {
	switch len(coords) {
	case 0:
		return Coordinate{}, ErrNoCoordinates
	case 1:
		return coords[0], nil
	case 2:
		return sphericalMidpoint(coords[0], coords[1]), nil
	}

	var sumLng, sumLat float64
	for _, c := range coords {
		sumLng += c.Lng
		sumLat += c.Lat
	}
	n := float64(len(coords))
	return Coordinate{Lng: sumLng / n, Lat: sumLat / n}, nil
}

// sphericalMidpoint computes the great-circle midpoint via the standard
// bearing-based formula: convert to radians, average on the sphere,
// convert back to degrees.
func sphericalMidpoint(a, b Coordinate) Coordinate {
	lat1 := degToRad(a.Lat)
	lng1 := degToRad(a.Lng)
	lat2 := degToRad(b.Lat)
	lng2 := degToRad(b.Lng)

	dLng := lng2 - lng1
	bx := math.Cos(lat2) * math.Cos(dLng)
	by := math.Cos(lat2) * math.Sin(dLng)

	lat3 := math.Atan2(
		math.Sin(lat1)+math.Sin(lat2),
		math.Sqrt((math.Cos(lat1)+bx)*(math.Cos(lat1)+bx)+by*by),
	)
	lng3 := lng1 + math.Atan2(by, math.Cos(lat1)+bx)

	return Coordinate{Lng: radToDeg(lng3), Lat: radToDeg(lat3)}
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
func radToDeg(r float64) float64 { return r * 180 / math.Pi }
