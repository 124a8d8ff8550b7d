// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package ranking

import "strings"

// Diversity penalty shape: the second venue of a brand loses 5 points, the
// third 10, capped at 15.
const (
	diversityStep = 5.0
	diversityCap  = 15.0
)

// branch suffixes stripped during brand normalization.
var branchSuffixes = []string{" branch", " store", " outlet"}

// normalizeBrand reduces a venue name to its brand: parenthetical branch
// info and trailing branch/store words are dropped so "Starbucks (Riverside
// Mall Branch)" and "Starbucks Central Store" count as the same chain.
func normalizeBrand(name string) string {
	if idx := strings.IndexAny(name, "(（"); idx >= 0 {
		name = name[:idx]
	}
	name = strings.TrimSpace(name)
	lower := strings.ToLower(name)
	for _, suffix := range branchSuffixes {
		if strings.HasSuffix(lower, suffix) {
			name = strings.TrimSpace(name[:len(name)-len(suffix)])
			break
		}
	}
	return name
}

// applyDiversityPenalty subtracts points from repeated appearances of the
// same brand in score order: the first keeps its score, later ones lose
// 5 points per prior occurrence up to 15. Venues must already be sorted by
// score descending.
func applyDiversityPenalty(ranked []RankedVenue) {
	counts := map[string]int{}
	for i := range ranked {
		counts[normalizeBrand(ranked[i].Name)]++
	}

	seen := map[string]int{}
	for i := range ranked {
		brand := normalizeBrand(ranked[i].Name)
		if counts[brand] < 2 {
			continue
		}
		occurrence := seen[brand]
		if occurrence > 0 {
			penalty := diversityStep * float64(occurrence)
			if penalty > diversityCap {
				penalty = diversityCap
			}
			ranked[i].Score -= penalty
			ranked[i].DiversityPenalty = penalty
		}
		seen[brand] = occurrence + 1
	}
}
