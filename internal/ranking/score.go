// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package ranking

import (
	"math"
	"strings"

	"github.com/convenehq/convene/internal/geo"
	"github.com/convenehq/convene/internal/venues"
)

// Component maxima of the 100-point composite.
const (
	maxBaseScore         = 30.0
	maxPopularityScore   = 20.0
	maxDistanceScore     = 25.0
	maxScenarioScore     = 15.0
	partialScenarioScore = 8.0

	// defaultRating substitutes for venues the provider has no rating for.
	defaultRating = 3.5

	// Distance decay shape: full points inside nearRadius, power-1.5 decay
	// down to a 20% floor at farRadius, flat minimum beyond.
	nearRadius       = 500.0
	farRadius        = 2500.0
	farDistanceScore = 5.0
)

// Breakdown itemizes one venue's composite score.
type Breakdown struct {
	Base        float64 `json:"base"`
	Popularity  float64 `json:"popularity"`
	Distance    float64 `json:"distance"`
	Scenario    float64 `json:"scenario"`
	Requirement float64 `json:"requirement"`
}

// baseScore converts the provider rating to up to 30 points. Unrated
// venues score as a middling 3.5 so missing data neither buries nor
// inflates them.
func baseScore(v *venues.Venue) float64 {
	rating := v.Rating
	if !v.HasRating {
		rating = defaultRating
	}
	return math.Min(rating, 5) * 6
}

// popularityScore awards up to 20 points from review and photo counts.
// Reviews contribute logarithmically so huge counts cannot swamp the
// composite; photos add up to 6 points.
func popularityScore(v *venues.Venue) float64 {
	reviewScore := 0.0
	if v.ReviewCount > 0 {
		reviewScore = math.Log10(float64(v.ReviewCount)+1) * 5
	}
	photoScore := math.Min(float64(v.PhotoCount)*2, 6)
	return math.Min(maxPopularityScore, reviewScore+photoScore)
}

// distanceScore awards up to 25 points with nonlinear decay: full points
// within 500m, a power-1.5 curve keeping at least 20% out to 2500m, and a
// flat minimum beyond.
func distanceScore(distance float64) float64 {
	switch {
	case distance <= nearRadius:
		return maxDistanceScore
	case distance <= farRadius:
		ratio := (distance - nearRadius) / (farRadius - nearRadius)
		decay := math.Pow(ratio, 1.5)
		return maxDistanceScore * (1 - decay*0.8)
	default:
		return farDistanceScore
	}
}

// scenarioScore awards 15 points when the venue was found by one of the
// requested keywords, or 8 when a keyword merely appears in its category
// string. Returns the matched keyword for the recommendation reason.
func scenarioScore(v *venues.Venue, keywords []string) (float64, string) {
	if v.SourceKeyword != "" {
		for _, kw := range keywords {
			if kw == v.SourceKeyword {
				return maxScenarioScore, v.SourceKeyword
			}
		}
	}
	for _, kw := range keywords {
		if kw != "" && strings.Contains(v.Type, kw) {
			return partialScenarioScore, kw
		}
	}
	return 0, ""
}

// venueDistance measures a venue's distance to the meeting center.
func venueDistance(v *venues.Venue, center geo.Coordinate) float64 {
	return geo.Distance(v.Coordinate, center)
}
