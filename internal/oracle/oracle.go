// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package oracle

import (
	"context"
	"errors"
)

// ErrUnavailable signals the oracle cannot serve right now (not configured,
// timed out, or returned garbage). Callers fall back to rule-based results
// and never surface this to users.
var ErrUnavailable = errors.New("oracle: unavailable")

// Candidate is a venue summary sent for scoring.
type Candidate struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	Distance    int     `json:"distance"`
	Address     string  `json:"address"`
	RuleScore   float64 `json:"rule_score"`
	Features    string  `json:"features,omitempty"`
}

// Meeting describes the request context the oracle scores against.
type Meeting struct {
	ParticipantLocations []string
	Keywords             string
	Requirements         string
}

// Scored is one oracle verdict, keyed back to the Candidate ID.
type Scored struct {
	ID     int     `json:"id"`
	Score  float64 `json:"llm_score"`
	Reason string  `json:"reason"`
}

// Reranker scores candidate venues with semantic understanding of the
// user's requirements and produces transport advice. Implementations must
// respect the context deadline; callers treat every error as ErrUnavailable
// and fall back silently.
type Reranker interface {
	Score(ctx context.Context, meeting Meeting, candidates []Candidate) ([]Scored, error)
	TransportAdvice(ctx context.Context, meeting Meeting, venueNames []string) ([]string, error)
}

// Noop is the disabled oracle: always unavailable.
type Noop struct{}

// Score implements Reranker.
func (Noop) Score(context.Context, Meeting, []Candidate) ([]Scored, error) {
	return nil, ErrUnavailable
}

// TransportAdvice implements Reranker.
func (Noop) TransportAdvice(context.Context, Meeting, []string) ([]string, error) {
	return nil, ErrUnavailable
}

// DefaultTransportTips is the deterministic fallback advice used when the
// oracle cannot produce personalized tips.
func DefaultTransportTips() []string {
	return []string{
		"Use a map app to navigate to the venue",
		"Leave 30 minutes early during rush hour",
		"Some venues offer parking; confirm ahead of time",
		"Check nearby metro and bus stops if using public transport",
	}
}
