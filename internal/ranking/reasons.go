// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package ranking

import (
	"fmt"
	"strings"
)

// recommendationReason builds a short human-readable justification from a
// venue's strongest signals, at most two clauses.
func recommendationReason(rv *RankedVenue) string {
	var reasons []string

	switch {
	case rv.Distance < 500:
		reasons = append(reasons, fmt.Sprintf("closest option, only %dm away", int(rv.Distance)))
	case rv.Distance < 800:
		reasons = append(reasons, fmt.Sprintf("convenient location, about %dm away", int(rv.Distance)))
	}

	if rv.HasRating {
		switch {
		case rv.Rating >= 4.5:
			reasons = append(reasons, fmt.Sprintf("outstanding reputation, rated %.1f", rv.Rating))
		case rv.Rating >= 4.0:
			reasons = append(reasons, fmt.Sprintf("well reviewed at %.1f", rv.Rating))
		}
	}

	switch {
	case rv.ReviewCount >= 500:
		reasons = append(reasons, fmt.Sprintf("very popular with %d reviews", rv.ReviewCount))
	case rv.ReviewCount >= 100:
		reasons = append(reasons, fmt.Sprintf("a local favorite, %d reviews", rv.ReviewCount))
	}

	if len(rv.MatchedRequirements) > 0 {
		shown := rv.MatchedRequirements
		if len(shown) > 2 {
			shown = shown[:2]
		}
		reasons = append(reasons, "meets your "+strings.Join(shown, " and ")+" needs")
	}

	if rv.MatchedScenario != "" {
		reasons = append(reasons, "fits the "+rv.MatchedScenario+" occasion")
	}

	if len(reasons) == 0 {
		if rv.Distance < 1500 {
			return "well placed with solid overall marks"
		}
		return "a distinctive spot worth the trip"
	}
	if len(reasons) > 2 {
		reasons = reasons[:2]
	}
	return strings.Join(reasons, "; ")
}
