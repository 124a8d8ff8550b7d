// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package requirements

import (
	"reflect"
	"testing"

	"github.com/convenehq/convene/internal/places"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"unrecognized", "something ineffable", nil},
		{"single", "needs wifi", []string{ReqWiFi}},
		{"multiple in canonical order", "quiet place with parking and wifi", []string{ReqParking, ReqQuiet, ReqWiFi}},
		{"alias phrasing", "easy to park, good atmosphere", []string{ReqParking, ReqQuiet}},
		{"case insensitive", "QUIET with WiFi", []string{ReqQuiet, ReqWiFi}},
		{"no duplicates", "parking lot with free parking", []string{ReqParking}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatchHardTagIsHighConfidence(t *testing.T) {
	poi := &places.POI{
		Name: "Some Local Cafe",
		Type: "Food;Cafe",
		Tag:  "wifi,quiet,outdoor seating",
	}

	result := Match(poi, []string{ReqQuiet, ReqWiFi})
	if result.Score != 8 {
		t.Errorf("score = %v, want 8 (two hard matches)", result.Score)
	}
	for _, req := range []string{ReqQuiet, ReqWiFi} {
		if result.Confidence[req] != ConfidenceHigh {
			t.Errorf("confidence[%s] = %q, want high", req, result.Confidence[req])
		}
	}
}

func TestMatchBrandInference(t *testing.T) {
	// No tags at all: only the brand tier can fire.
	poi := &places.POI{Name: "Starbucks (Riverside Mall Branch)", Type: "Food;Cafe"}

	result := Match(poi, []string{ReqQuiet})
	if result.Score != 2 {
		t.Errorf("score = %v, want 2 (brand tier)", result.Score)
	}
	if result.Confidence[ReqQuiet] != ConfidenceMedium {
		t.Errorf("confidence = %q, want medium", result.Confidence[ReqQuiet])
	}
	if !reflect.DeepEqual(result.Matched, []string{ReqQuiet}) {
		t.Errorf("matched = %v", result.Matched)
	}
}

func TestMatchBrandBelowThresholdDoesNotFire(t *testing.T) {
	// Starbucks parking strength is 0.3, below the 0.7 brand threshold.
	poi := &places.POI{Name: "Starbucks", Type: "Food;Cafe"}

	result := Match(poi, []string{ReqParking})
	if result.Score != 0 {
		t.Errorf("score = %v, want 0", result.Score)
	}
	if len(result.Matched) != 0 {
		t.Errorf("matched = %v, want none", result.Matched)
	}
}

func TestMatchCategoryDefaults(t *testing.T) {
	poi := &places.POI{Name: "Riverside Public Library", Type: "Culture;Library"}

	result := Match(poi, []string{ReqQuiet, ReqLongStay, ReqWiFi})
	// quiet 1.0 and long-stay 1.0 pass the 0.8 category threshold;
	// wifi 0.9 passes too. Three low-confidence matches.
	if result.Score != 3 {
		t.Errorf("score = %v, want 3", result.Score)
	}
	for _, req := range result.Matched {
		if result.Confidence[req] != ConfidenceLow {
			t.Errorf("confidence[%s] = %q, want low", req, result.Confidence[req])
		}
	}
}

func TestMatchFirstTierWinsPerRequirement(t *testing.T) {
	// Tagged quiet AND a quiet-scoring brand: the hard match must claim the
	// requirement so the brand tier cannot double-count it.
	poi := &places.POI{Name: "Starbucks", Type: "Food;Cafe", Tag: "quiet"}

	result := Match(poi, []string{ReqQuiet})
	if result.Score != 4 {
		t.Errorf("score = %v, want 4 (hard match only)", result.Score)
	}
	if result.Confidence[ReqQuiet] != ConfidenceHigh {
		t.Errorf("confidence = %q, want high", result.Confidence[ReqQuiet])
	}
}

func TestMatchScoreCap(t *testing.T) {
	poi := &places.POI{
		Name:        "Grand Hotel Conference Center",
		Type:        "Hotel",
		Tag:         "quiet,business,wifi,private room,metro",
		ParkingType: "garage",
	}

	reqs := []string{ReqParking, ReqQuiet, ReqBusiness, ReqTransit, ReqPrivateRoom, ReqWiFi}
	result := Match(poi, reqs)
	if result.Score != 10 {
		t.Errorf("score = %v, want capped at 10", result.Score)
	}
}

func TestMatchNoRequirements(t *testing.T) {
	poi := &places.POI{Name: "Starbucks", Tag: "quiet,wifi"}
	result := Match(poi, nil)
	if result.Score != 0 || len(result.Matched) != 0 {
		t.Errorf("got %+v, want zero result", result)
	}
}

func TestMatchTierOneOnlyForRuledRequirements(t *testing.T) {
	// kid-friendly has no hard-match rule; even a literal tag cannot make
	// it high confidence.
	poi := &places.POI{Name: "McDonald's", Type: "Fast Food", Tag: "kid"}

	result := Match(poi, []string{ReqKidFriendly})
	if result.Confidence[ReqKidFriendly] == ConfidenceHigh {
		t.Error("kid-friendly must not match at high confidence")
	}
	// McDonald's kid-friendly strength is 0.9, so the brand tier fires.
	if result.Confidence[ReqKidFriendly] != ConfidenceMedium {
		t.Errorf("confidence = %q, want medium", result.Confidence[ReqKidFriendly])
	}
	if result.Score != 2 {
		t.Errorf("score = %v, want 2", result.Score)
	}
}
