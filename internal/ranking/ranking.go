// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package ranking

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/convenehq/convene/internal/geo"
	"github.com/convenehq/convene/internal/oracle"
	"github.com/convenehq/convene/internal/requirements"
	"github.com/convenehq/convene/internal/venues"
)

// Result-set sizing.
const (
	singleKeywordTopN = 6
	multiKeywordTopN  = 8
	// minPerKeyword guarantees every requested scenario keeps
	// representation in a multi-keyword result.
	minPerKeyword = 2

	// oracleCandidateLimit bounds how many venues go to the oracle.
	oracleCandidateLimit = 15
	// Final score blend when the oracle responds.
	ruleWeight   = 0.4
	oracleWeight = 0.6

	// unboundedDistance disables the distance filter.
	unboundedDistance = 100_000
)

// Options control filtering and scoring for one ranking run.
type Options struct {
	Center geo.Coordinate
	// Keywords are the search keywords, primary first.
	Keywords []string
	// Requirements is the user's free-text requirement description.
	Requirements string
	// MinRating filters out venues rated below it (unrated venues too).
	// Zero disables the filter.
	MinRating float64
	// MaxDistance in meters filters venues farther from the center.
	// Zero or >= 100000 disables the filter.
	MaxDistance float64
	// PriceTier is a soft preference: "economy", "mid" or "high".
	PriceTier string
	// ParticipantLocations feed the oracle's fairness judgement.
	ParticipantLocations []string
}

// RankedVenue is a venue with its composite score and explanation.
type RankedVenue struct {
	venues.Venue

	Distance         float64   `json:"distance"`
	Score            float64   `json:"score"`
	Breakdown        Breakdown `json:"breakdown"`
	DiversityPenalty float64   `json:"diversityPenalty,omitempty"`

	MatchedRequirements   []string                           `json:"matchedRequirements,omitempty"`
	RequirementConfidence map[string]requirements.Confidence `json:"requirementConfidence,omitempty"`
	MatchedScenario       string                             `json:"matchedScenario,omitempty"`
	Reason                string                             `json:"reason"`

	OracleScore  float64 `json:"oracleScore,omitempty"`
	OracleScored bool    `json:"oracleScored,omitempty"`
	FinalScore   float64 `json:"finalScore"`
}

// Ranker scores and orders candidate venues. The input venues are never
// mutated; results are built fresh on every run.
type Ranker struct {
	oracle oracle.Reranker
	logger zerolog.Logger
}

// New creates a Ranker. A nil reranker disables oracle blending.
func New(reranker oracle.Reranker, logger zerolog.Logger) *Ranker {
	if reranker == nil {
		reranker = oracle.Noop{}
	}
	return &Ranker{
		oracle: reranker,
		logger: logger.With().Str("component", "ranking").Logger(),
	}
}

// Rank filters, scores, diversifies and orders the candidates, returning
// the final recommendation list (at most 6 for a single keyword, 8 for
// multi-keyword searches).
func (r *Ranker) Rank(ctx context.Context, candidates []venues.Venue, opts Options) []RankedVenue {
	parsedReqs := requirements.Parse(opts.Requirements)

	ranked := make([]RankedVenue, 0, len(candidates))
	for i := range candidates {
		v := candidates[i]

		if opts.MinRating > 0 && v.Rating < opts.MinRating {
			continue
		}
		distance := venueDistance(&v, opts.Center)
		if opts.MaxDistance > 0 && opts.MaxDistance < unboundedDistance && distance > opts.MaxDistance {
			continue
		}

		rv := RankedVenue{Venue: v, Distance: distance}

		rv.Breakdown.Base = baseScore(&v)
		rv.Breakdown.Popularity = popularityScore(&v)
		rv.Breakdown.Distance = distanceScore(distance)
		rv.Breakdown.Scenario, rv.MatchedScenario = scenarioScore(&v, opts.Keywords)

		match := requirements.Match(v.POI(), parsedReqs)
		rv.Breakdown.Requirement = match.Score
		rv.MatchedRequirements = match.Matched
		if len(match.Confidence) > 0 {
			rv.RequirementConfidence = match.Confidence
		}

		rv.Score = rv.Breakdown.Base + rv.Breakdown.Popularity + rv.Breakdown.Distance +
			rv.Breakdown.Scenario + rv.Breakdown.Requirement
		rv.Score += priceTierBonus(&v, opts.PriceTier)
		ranked = append(ranked, rv)
	}
	if len(ranked) == 0 {
		return nil
	}

	sortByScore(ranked)
	applyDiversityPenalty(ranked)
	sortByScore(ranked)

	for i := range ranked {
		ranked[i].Reason = recommendationReason(&ranked[i])
		ranked[i].FinalScore = ranked[i].Score
	}

	if blended, ok := r.blendWithOracle(ctx, ranked, opts); ok {
		return blended
	}

	if hasSourceKeywords(ranked) {
		return balanceScenarios(ranked)
	}
	return truncate(ranked, singleKeywordTopN)
}

// blendWithOracle asks the oracle to rescore the leading candidates. On
// success the final score is 0.4·rule + 0.6·oracle and oracle-scored venues
// rank ahead of unscored ones; any failure leaves the rule ranking
// untouched.
func (r *Ranker) blendWithOracle(ctx context.Context, ranked []RankedVenue, opts Options) ([]RankedVenue, bool) {
	head := ranked
	if len(head) > oracleCandidateLimit {
		head = head[:oracleCandidateLimit]
	}

	candidates := make([]oracle.Candidate, len(head))
	for i := range head {
		rating := 0.0
		if head[i].HasRating {
			rating = head[i].Rating
		}
		features := head[i].Tag
		if len(features) > 100 {
			features = features[:100]
		}
		candidates[i] = oracle.Candidate{
			ID:          i,
			Name:        head[i].Name,
			Type:        head[i].Type,
			Rating:      rating,
			ReviewCount: head[i].ReviewCount,
			Distance:    int(head[i].Distance),
			Address:     head[i].Address,
			RuleScore:   round1(head[i].Score),
			Features:    features,
		}
	}

	scored, err := r.oracle.Score(ctx, oracle.Meeting{
		ParticipantLocations: opts.ParticipantLocations,
		Keywords:             strings.Join(opts.Keywords, " "),
		Requirements:         opts.Requirements,
	}, candidates)
	if err != nil {
		return nil, false
	}

	byID := map[int]oracle.Scored{}
	for _, s := range scored {
		if s.Score > 0 {
			byID[s.ID] = s
		}
	}
	if len(byID) == 0 {
		return nil, false
	}

	var withOracle, withoutOracle []RankedVenue
	for i := range head {
		rv := head[i]
		if s, ok := byID[i]; ok {
			rv.OracleScore = s.Score
			rv.OracleScored = true
			rv.FinalScore = rv.Score*ruleWeight + s.Score*oracleWeight
			if s.Reason != "" {
				rv.Reason = s.Reason
			}
			withOracle = append(withOracle, rv)
		} else {
			rv.FinalScore = rv.Score * ruleWeight
			withoutOracle = append(withoutOracle, rv)
		}
	}

	sort.SliceStable(withOracle, func(i, j int) bool {
		return withOracle[i].FinalScore > withOracle[j].FinalScore
	})
	sort.SliceStable(withoutOracle, func(i, j int) bool {
		return withoutOracle[i].Score > withoutOracle[j].Score
	})

	blended := append(withOracle, withoutOracle...)
	r.logger.Debug().Int("scored", len(withOracle)).Msg("oracle rerank applied")
	return truncate(blended, multiKeywordTopN), true
}

// balanceScenarios guarantees every keyword keeps representation: each
// scenario contributes its best max(2, 8/scenarios) venues, then the pool
// is re-sorted by score and truncated.
func balanceScenarios(ranked []RankedVenue) []RankedVenue {
	byKeyword := map[string][]RankedVenue{}
	var order []string
	for _, rv := range ranked {
		kw := rv.SourceKeyword
		if _, ok := byKeyword[kw]; !ok {
			order = append(order, kw)
		}
		byKeyword[kw] = append(byKeyword[kw], rv)
	}

	perKeyword := multiKeywordTopN / len(byKeyword)
	if perKeyword < minPerKeyword {
		perKeyword = minPerKeyword
	}

	var balanced []RankedVenue
	for _, kw := range order {
		group := byKeyword[kw]
		if len(group) > perKeyword {
			group = group[:perKeyword]
		}
		balanced = append(balanced, group...)
	}
	sortByScore(balanced)
	return truncate(balanced, multiKeywordTopN)
}

// priceTierBonus nudges venues whose average cost falls inside the
// requested tier. The tiers are coarse cost bands; a missing or
// unparseable cost never penalizes.
func priceTierBonus(v *venues.Venue, tier string) float64 {
	if tier == "" || v.Cost == "" {
		return 0
	}
	cost, err := strconv.ParseFloat(v.Cost, 64)
	if err != nil {
		return 0
	}
	switch tier {
	case "economy":
		if cost <= 50 {
			return 2
		}
	case "mid":
		if cost > 50 && cost <= 120 {
			return 2
		}
	case "high":
		if cost > 120 {
			return 2
		}
	}
	return 0
}

func hasSourceKeywords(ranked []RankedVenue) bool {
	for i := range ranked {
		if ranked[i].SourceKeyword != "" {
			return true
		}
	}
	return false
}

func sortByScore(ranked []RankedVenue) {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
}

func truncate(ranked []RankedVenue, n int) []RankedVenue {
	if len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}

func round1(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}
