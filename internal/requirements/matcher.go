// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package requirements

import (
	"strings"

	"github.com/convenehq/convene/internal/places"
)

// Confidence grades how a requirement match was established.
type Confidence string

const (
	// ConfidenceHigh: the provider's own tags state the feature.
	ConfidenceHigh Confidence = "high"
	// ConfidenceMedium: inferred from a known chain's typical features.
	ConfidenceMedium Confidence = "medium"
	// ConfidenceLow: inferred from the venue category alone.
	ConfidenceLow Confidence = "low"
)

// Tier weights and admission thresholds.
const (
	hardMatchPoints = 4
	brandPoints     = 2
	categoryPoints  = 1

	brandThreshold    = 0.7
	categoryThreshold = 0.8

	// maxScore caps the requirement component's contribution to the
	// composite score.
	maxScore = 10
)

// Result is the outcome of matching one venue against the user's
// requirements.
type Result struct {
	// Score is the capped requirement component, 0..10.
	Score float64
	// Matched lists the canonical requirements satisfied, in canonical
	// order.
	Matched []string
	// Confidence records how each matched requirement was established.
	Confidence map[string]Confidence
}

// Parse normalizes free-text requirements onto the canonical labels. The
// result preserves canonical order and contains no duplicates; an empty
// slice means nothing recognizable was asked for.
func Parse(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	var reqs []string
	for _, name := range canonicalOrder {
		for _, alias := range requirementAliases[name] {
			if strings.Contains(lower, alias) {
				reqs = append(reqs, name)
				break
			}
		}
	}
	return reqs
}

// Match scores a venue against parsed requirements using three tiers in
// strictly descending confidence. Each requirement is satisfied at most
// once: a hard tag match precludes the brand and category tiers for that
// requirement, and a brand match precludes the category tier.
func Match(poi *places.POI, reqs []string) Result {
	result := Result{Confidence: map[string]Confidence{}}
	if len(reqs) == 0 {
		return result
	}

	satisfied := map[string]bool{}
	score := 0.0

	// Tier 1: provider tag/field hard matches.
	for _, req := range reqs {
		rule, ok := hardMatchRules[req]
		if !ok {
			continue
		}
		for _, field := range rule.fields {
			if containsAny(fieldValue(poi, field), rule.values) {
				satisfied[req] = true
				result.Confidence[req] = ConfidenceHigh
				score += hardMatchPoints
				break
			}
		}
	}

	// Tier 2: brand feature inference. Only the first recognized brand in
	// the venue name contributes.
	for _, brand := range brandOrder {
		if !strings.Contains(poi.Name, brand) {
			continue
		}
		features := BrandFeatures[brand]
		for _, req := range reqs {
			if satisfied[req] {
				continue
			}
			if features[req] >= brandThreshold {
				satisfied[req] = true
				result.Confidence[req] = ConfidenceMedium
				score += brandPoints
			}
		}
		break
	}

	// Tier 3: category defaults, at a stricter threshold. Only the first
	// recognized category contributes.
	lowerType := strings.ToLower(poi.Type)
	lowerName := strings.ToLower(poi.Name)
	for _, category := range categoryOrder {
		if !strings.Contains(lowerType, category) && !strings.Contains(lowerName, category) {
			continue
		}
		defaults := CategoryDefaults[category]
		for _, req := range reqs {
			if satisfied[req] {
				continue
			}
			if defaults[req] >= categoryThreshold {
				satisfied[req] = true
				result.Confidence[req] = ConfidenceLow
				score += categoryPoints
			}
		}
		break
	}

	for _, req := range canonicalOrder {
		if satisfied[req] {
			result.Matched = append(result.Matched, req)
		}
	}
	if score > maxScore {
		score = maxScore
	}
	result.Score = score
	return result
}

// fieldValue extracts the named wire field from a POI, lowercased.
func fieldValue(poi *places.POI, field string) string {
	switch field {
	case fieldTag:
		return strings.ToLower(poi.Tag.String())
	case fieldType:
		return strings.ToLower(poi.Type)
	case fieldAddress:
		return strings.ToLower(poi.Address.String())
	case fieldParkingType:
		return strings.ToLower(poi.ParkingType.String())
	case fieldNaviPOIID:
		return strings.ToLower(poi.NaviPOIID.String())
	default:
		return ""
	}
}

func containsAny(haystack string, needles []string) bool {
	if haystack == "" {
		return false
	}
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
