// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package resolver

import (
	"context"
	"strings"

	"github.com/convenehq/convene/internal/geo"
)

// City-consistency thresholds.
const (
	// majorityShare is the minimum fraction of locations that must share a
	// city before minority points are considered outliers.
	majorityShare = 0.6
	// crossCityPairDistance: two points further apart than this are treated
	// as a deliberate cross-city meeting, never corrected.
	crossCityPairDistance = 300_000 // meters
	// outlierAvgDistance: a minority-city point whose average distance to
	// the others exceeds this is re-resolved with the majority city.
	outlierAvgDistance = 100_000 // meters
)

// Reconcile corrects locations that resolved to the wrong city. Short
// landmark names ("Central Plaza") can resolve to a same-named place
// anywhere in the country; when most locations agree on one city and an
// outlier sits in another far away, the outlier is re-resolved with the
// majority city as a prefix, and the correction is kept only if it brings
// the point closer to the group.
//
// Deliberate cross-city meetings are left alone: an even city split, a
// majority below 60%, two points over 300 km apart, or an explicit city
// hint the results contradict all skip correction.
func (r *Resolver) Reconcile(ctx context.Context, resolved []*Resolved, cityHint string) []*Resolved {
	if len(resolved) < 2 {
		return resolved
	}

	cities := make([]string, len(resolved))
	coords := make([]geo.Coordinate, len(resolved))
	for i, item := range resolved {
		city := item.City
		if city == "" {
			city = item.Province
		}
		cities[i] = city
		coords[i] = item.Coordinate
	}

	// A hint states the user's intent; when some result disagrees with it
	// the input is cross-city on purpose (or hopeless), so don't touch it.
	if cityHint != "" {
		hinted := 0
		for _, city := range cities {
			if containsCity(city, cityHint) {
				hinted++
			}
		}
		if hinted < len(cities) {
			return resolved
		}
	}

	mainCity, mainCount, tied := majorityCity(cities)
	if mainCity == "" || tied {
		return resolved
	}
	if mainCount == len(cities) {
		return resolved
	}
	if float64(mainCount)/float64(len(cities)) < majorityShare {
		return resolved
	}
	if len(resolved) == 2 && geo.Distance(coords[0], coords[1]) > crossCityPairDistance {
		return resolved
	}
	if cityHint != "" && !containsCity(mainCity, cityHint) {
		return resolved
	}

	out := make([]*Resolved, len(resolved))
	copy(out, resolved)
	for i, item := range resolved {
		if cities[i] == mainCity {
			continue
		}
		avg := avgDistanceToOthers(coords, i)
		if avg <= outlierAvgDistance {
			continue
		}

		r.logger.Warn().
			Str("address", item.Input).
			Str("resolved_city", cities[i]).
			Str("majority_city", mainCity).
			Msg("re-resolving outlier with majority city")

		corrected, err := r.Resolve(ctx, mainCity+" "+item.Input)
		if err != nil {
			continue
		}
		newAvg := 0.0
		for j, c := range coords {
			if j != i {
				newAvg += geo.Distance(corrected.Coordinate, c)
			}
		}
		newAvg /= float64(len(coords) - 1)
		if newAvg < avg {
			// Resolve can hand back a cache-shared pointer; copy before
			// restoring the caller's original input.
			cc := *corrected
			cc.Input = item.Input
			out[i] = &cc
		}
	}
	return out
}

// majorityCity returns the most common city, its count, and whether the top
// two counts tie (which makes "majority" meaningless).
func majorityCity(cities []string) (string, int, bool) {
	counts := map[string]int{}
	for _, c := range cities {
		counts[c]++
	}

	best, bestCount, secondCount := "", 0, 0
	for _, c := range cities {
		n := counts[c]
		if c == best {
			continue
		}
		if n > bestCount {
			best, bestCount, secondCount = c, n, bestCount
		} else if n > secondCount {
			secondCount = n
		}
	}
	return best, bestCount, bestCount == secondCount
}

func avgDistanceToOthers(coords []geo.Coordinate, i int) float64 {
	total := 0.0
	for j, c := range coords {
		if j != i {
			total += geo.Distance(coords[i], c)
		}
	}
	return total / float64(len(coords)-1)
}

// containsCity tolerates provider strings like "Beijing Municipality"
// against a bare "Beijing" hint.
func containsCity(resolved, hint string) bool {
	return resolved != "" && hint != "" && strings.Contains(resolved, hint)
}
