// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package geo

import (
	"context"
	"math"

	"github.com/rs/zerolog"
)

// POICounter is the narrow slice of the venue search client the optimizer
// needs. Defined here so the geo package stays free of dependencies on the
// search layer.
type POICounter interface {
	// NearbyCount returns how many places match the keyword within radius
	// meters of the point, capped at limit.
	NearbyCount(ctx context.Context, point Coordinate, keyword string, radius, limit int) (int, error)
}

// Candidate evaluation weights. POI density dominates because a fair point
// with nothing around it is useless.
const (
	maxPOIDensityScore = 40.0
	maxTransitScore    = 30.0
	maxFairnessScore   = 30.0
)

// MeetingPoint is a computed meeting location with provenance. When the
// optimizer ran, Trail carries the evaluated candidates for explainability.
type MeetingPoint struct {
	Coordinate Coordinate `json:"coordinate"`
	// Provenance is "geometric" or "optimized".
	Provenance string            `json:"provenance"`
	Trail      []CandidateResult `json:"trail,omitempty"`
}

// CandidateResult records one evaluated candidate point and its sub-scores.
type CandidateResult struct {
	Point       Coordinate `json:"point"`
	Score       float64    `json:"score"`
	POIDensity  float64    `json:"poi_density"`
	Transit     float64    `json:"transit"`
	Fairness    float64    `json:"fairness"`
	MaxDistance float64    `json:"max_distance_m"`
}

// OptimizerConfig controls the candidate grid around the geometric center.
type OptimizerConfig struct {
	// RadiusKM is the half-width of the candidate grid. Default 1.5.
	RadiusKM float64
	// GridSize is the number of grid steps per side from the center.
	// A value of 3 yields a 7x7 grid minus the center: 48 candidates.
	GridSize int
	// TrailSize bounds how many evaluated candidates are reported back.
	TrailSize int
}

// DefaultOptimizerConfig returns the production grid settings.
func DefaultOptimizerConfig() OptimizerConfig {
	return OptimizerConfig{RadiusKM: 1.5, GridSize: 3, TrailSize: 5}
}

// Optimizer searches a grid of candidate meeting points around the
// geometric center and scores each on POI density, transit proximity and
// participant fairness.
type Optimizer struct {
	pois   POICounter
	cfg    OptimizerConfig
	logger zerolog.Logger
}

// NewOptimizer creates a center optimizer backed by the given POI counter.
//
//nolint:gocritic // zerolog.Logger passed by value per upstream convention
func NewOptimizer(pois POICounter, cfg OptimizerConfig, logger zerolog.Logger) *Optimizer {
	if cfg.RadiusKM <= 0 {
		cfg.RadiusKM = 1.5
	}
	if cfg.GridSize <= 0 {
		cfg.GridSize = 3
	}
	if cfg.TrailSize <= 0 {
		cfg.TrailSize = 5
	}
	return &Optimizer{pois: pois, cfg: cfg, logger: logger}
}

// Optimize evaluates the geometric center plus a grid of candidates and
// returns the best-scoring meeting point. The geometric center is always
// the first candidate, so ties resolve in its favor.
func (o *Optimizer) Optimize(ctx context.Context, participants []Coordinate, keyword string) (MeetingPoint, error) {
	geoCenter, err := Center(participants)
	if err != nil {
		return MeetingPoint{}, err
	}

	candidates := append([]Coordinate{geoCenter}, CandidateGrid(geoCenter, o.cfg.RadiusKM, o.cfg.GridSize)...)
	o.logger.Debug().Int("candidates", len(candidates)).Msg("evaluating center candidates")

	best := geoCenter
	bestScore := -1.0
	trail := make([]CandidateResult, 0, len(candidates))

	for _, cand := range candidates {
		if ctx.Err() != nil {
			return MeetingPoint{}, ctx.Err()
		}
		result := o.evaluate(ctx, cand, participants, keyword)
		trail = append(trail, result)
		if result.Score > bestScore {
			bestScore = result.Score
			best = cand
		}
	}

	// Highest-scoring candidates first in the reported trail.
	sortCandidates(trail)
	if len(trail) > o.cfg.TrailSize {
		trail = trail[:o.cfg.TrailSize]
	}

	o.logger.Info().
		Str("center", best.String()).
		Float64("score", bestScore).
		Msg("optimized meeting point selected")

	return MeetingPoint{Coordinate: best, Provenance: "optimized", Trail: trail}, nil
}

// evaluate scores a single candidate point out of 100.
func (o *Optimizer) evaluate(ctx context.Context, cand Coordinate, participants []Coordinate, keyword string) CandidateResult {
	result := CandidateResult{Point: cand}

	// POI density: 0 places = 0, 10+ places = full marks. A failed count
	// degrades to a small floor instead of disqualifying the candidate.
	if count, err := o.pois.NearbyCount(ctx, cand, keyword, 1500, 10); err != nil {
		result.POIDensity = 10
	} else {
		result.POIDensity = math.Min(maxPOIDensityScore, float64(count)*4)
	}

	result.Transit = o.transitScore(ctx, cand)

	maxDist := 0.0
	for _, p := range participants {
		if d := Distance(cand, p); d > maxDist {
			maxDist = d
		}
	}
	result.MaxDistance = maxDist
	result.Fairness = fairnessScore(maxDist)

	result.Score = result.POIDensity + result.Transit + result.Fairness
	return result
}

// transitScore favors candidates near rail transit; bus coverage earns a
// partial score when no metro station is in range.
func (o *Optimizer) transitScore(ctx context.Context, cand Coordinate) float64 {
	metro, err := o.pois.NearbyCount(ctx, cand, "metro station", 1000, 5)
	if err == nil {
		switch {
		case metro >= 2:
			return maxTransitScore
		case metro == 1:
			return 20
		}
	}
	bus, err := o.pois.NearbyCount(ctx, cand, "bus stop", 500, 5)
	if err != nil {
		return 10
	}
	return math.Min(15, float64(bus)*5)
}

// fairnessScore applies a non-linear falloff on the worst-case participant
// distance, with full marks at or under 1 km.
func fairnessScore(maxDist float64) float64 {
	switch {
	case maxDist <= 1000:
		return maxFairnessScore
	case maxDist <= 2000:
		return 25 - (maxDist-1000)/200
	case maxDist <= 3000:
		return 15 - (maxDist-2000)/200
	default:
		return math.Max(5, 10-(maxDist-3000)/500)
	}
}

// CandidateGrid generates a (2*gridSize+1)^2-1 point grid around the center
// within radiusKM, excluding the center itself.
func CandidateGrid(center Coordinate, radiusKM float64, gridSize int) []Coordinate {
	// Rough degree offsets: 1 degree latitude ~ 111 km, longitude shrinks
	// by cos(lat).
	latOffset := radiusKM / 111.0
	lngOffset := radiusKM / (111.0 * math.Cos(degToRad(center.Lat)))

	stepLat := latOffset / float64(gridSize)
	stepLng := lngOffset / float64(gridSize)

	candidates := make([]Coordinate, 0, (2*gridSize+1)*(2*gridSize+1)-1)
	for i := -gridSize; i <= gridSize; i++ {
		for j := -gridSize; j <= gridSize; j++ {
			if i == 0 && j == 0 {
				continue
			}
			candidates = append(candidates, Coordinate{
				Lng: center.Lng + float64(j)*stepLng,
				Lat: center.Lat + float64(i)*stepLat,
			})
		}
	}
	return candidates
}

// sortCandidates orders results by score descending (insertion sort; the
// trail is tiny).
func sortCandidates(results []CandidateResult) {
	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && results[j].Score > results[j-1].Score; j-- {
			results[j], results[j-1] = results[j-1], results[j]
		}
	}
}
