// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package venues

import (
	"context"

	"github.com/convenehq/convene/internal/geo"
	"github.com/convenehq/convene/internal/metrics"
)

// wideRadius is the provider's maximum search radius, used as the final
// fallback rung.
const wideRadius = 50_000

// genericCategories are tried in order when the requested keyword finds
// nothing nearby.
var genericCategories = []string{"restaurant", "café", "mall", "food"}

// Outcome reports a venue search and which fallback rung, if any, produced
// the results.
type Outcome struct {
	Venues []Venue
	// FallbackUsed is true when the results did not come from the
	// requested keywords.
	FallbackUsed bool
	// FallbackKeyword is the substitute keyword that produced results.
	FallbackKeyword string
	// WideRadius is true when the 50 km last-resort search was used.
	WideRadius bool
}

// SearchWithFallback runs the requested search and walks a fallback ladder
// until something is found:
//
//  1. the keyword(s) with the category filter
//  2. the primary keyword without the category filter
//  3. generic categories in order, skipping any that duplicate an
//     already-tried keyword
//  4. "restaurant" at the provider's maximum 50 km radius
//
// An exhausted ladder returns an Outcome with no venues and no error;
// provider failures on the primary rung surface as errors so retryable
// conditions are not masked by an empty ladder walk.
func (s *Searcher) SearchWithFallback(ctx context.Context, point geo.Coordinate, keywords []string, category string) (*Outcome, error) {
	if len(keywords) == 0 {
		keywords = []string{"café"}
	}
	primary := keywords[0]

	var venues []Venue
	var err error
	if len(keywords) > 1 {
		venues = s.SearchMulti(ctx, point, keywords, DefaultRadius)
	} else {
		venues, err = s.Search(ctx, point, primary, DefaultRadius, category)
		if err != nil {
			return nil, err
		}
	}
	if len(venues) > 0 {
		metrics.FallbackSearches.WithLabelValues("primary").Inc()
		return &Outcome{Venues: venues}, nil
	}

	// Rung 2: drop the category filter.
	if category != "" {
		venues, err = s.Search(ctx, point, primary, DefaultRadius, "")
		if err == nil && len(venues) > 0 {
			metrics.FallbackSearches.WithLabelValues("keyword_only").Inc()
			return &Outcome{Venues: venues, FallbackUsed: true, FallbackKeyword: primary}, nil
		}
	}

	// Rung 3: generic categories, never repeating a keyword already tried.
	for _, generic := range genericCategories {
		if containsKeyword(keywords, generic) {
			continue
		}
		venues, err = s.Search(ctx, point, generic, DefaultRadius, "")
		if err != nil {
			s.logger.Warn().Err(err).Str("keyword", generic).Msg("fallback search failed")
			continue
		}
		if len(venues) > 0 {
			metrics.FallbackSearches.WithLabelValues("generic_category").Inc()
			s.logger.Info().Str("keyword", generic).Int("count", len(venues)).Msg("fallback category succeeded")
			return &Outcome{Venues: venues, FallbackUsed: true, FallbackKeyword: generic}, nil
		}
	}

	// Rung 4: widen to the provider maximum.
	venues, err = s.Search(ctx, point, "restaurant", wideRadius, "")
	if err == nil && len(venues) > 0 {
		metrics.FallbackSearches.WithLabelValues("wide_radius").Inc()
		return &Outcome{
			Venues:          venues,
			FallbackUsed:    true,
			FallbackKeyword: "restaurant",
			WideRadius:      true,
		}, nil
	}

	metrics.FallbackSearches.WithLabelValues("exhausted").Inc()
	return &Outcome{}, nil
}

func containsKeyword(keywords []string, kw string) bool {
	for _, k := range keywords {
		if k == kw {
			return true
		}
	}
	return false
}
