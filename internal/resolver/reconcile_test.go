// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package resolver

import (
	"context"
	"testing"

	"github.com/convenehq/convene/internal/geo"
	"github.com/convenehq/convene/internal/places"
)

func resolvedAt(input, city string, lng, lat float64) *Resolved {
	return &Resolved{
		Input:      input,
		Name:       input,
		City:       city,
		Coordinate: geo.Coordinate{Lng: lng, Lat: lat},
	}
}

func TestReconcileSkipsSmallGroups(t *testing.T) {
	r := newTestResolver(&fakeProvider{})
	in := []*Resolved{resolvedAt("a", "Beijing", 116.4, 39.9)}
	out := r.Reconcile(context.Background(), in, "")
	if len(out) != 1 || out[0] != in[0] {
		t.Error("single location must pass through untouched")
	}
}

func TestReconcileSkipsEvenSplit(t *testing.T) {
	r := newTestResolver(&fakeProvider{})
	in := []*Resolved{
		resolvedAt("a", "Beijing", 116.4, 39.9),
		resolvedAt("b", "Shanghai", 121.47, 31.23),
	}
	out := r.Reconcile(context.Background(), in, "")
	for i := range in {
		if out[i] != in[i] {
			t.Error("1:1 city split must not be corrected")
		}
	}
}

func TestReconcileSkipsDistantPair(t *testing.T) {
	// Same-city majority cannot exist for a pair, but guard the distance
	// rule explicitly with a pair over 300km apart.
	r := newTestResolver(&fakeProvider{})
	in := []*Resolved{
		resolvedAt("a", "Beijing", 116.4, 39.9),
		resolvedAt("b", "Beijing", 121.47, 31.23), // provider mislabeled, far away
	}
	out := r.Reconcile(context.Background(), in, "")
	for i := range in {
		if out[i] != in[i] {
			t.Error("pair over 300km apart must not be corrected")
		}
	}
}

func TestReconcileSkipsWeakMajority(t *testing.T) {
	r := newTestResolver(&fakeProvider{})
	// 2 of 4 share a city: 50% < 60% threshold.
	in := []*Resolved{
		resolvedAt("a", "Beijing", 116.40, 39.90),
		resolvedAt("b", "Beijing", 116.41, 39.91),
		resolvedAt("c", "Shanghai", 121.47, 31.23),
		resolvedAt("d", "Guangzhou", 113.26, 23.13),
	}
	out := r.Reconcile(context.Background(), in, "")
	for i := range in {
		if out[i] != in[i] {
			t.Error("majority below 60% must not trigger correction")
		}
	}
}

func TestReconcileCorrectsOutlier(t *testing.T) {
	provider := &fakeProvider{
		pois: map[string][]places.POI{
			"Beijing central plaza": {
				{Name: "Central Plaza", Location: "116.420000,39.920000", CityName: "Beijing"},
			},
		},
	}
	r := newTestResolver(provider)

	in := []*Resolved{
		resolvedAt("east gate", "Beijing", 116.40, 39.90),
		resolvedAt("west tower", "Beijing", 116.41, 39.91),
		resolvedAt("central plaza", "Shanghai", 121.47, 31.23),
	}
	out := r.Reconcile(context.Background(), in, "")

	if out[2].City != "Beijing" {
		t.Fatalf("outlier city = %q, want Beijing", out[2].City)
	}
	if out[2].Input != "central plaza" {
		t.Errorf("corrected result must keep the original input, got %q", out[2].Input)
	}
	if out[0] != in[0] || out[1] != in[1] {
		t.Error("majority members must not change")
	}
}

func TestReconcileRejectsWorseCorrection(t *testing.T) {
	// Re-resolution lands even further away: keep the original.
	provider := &fakeProvider{
		pois: map[string][]places.POI{
			"Beijing central plaza": {
				{Name: "Central Plaza", Location: "90.000000,45.000000", CityName: "Beijing"},
			},
		},
	}
	r := newTestResolver(provider)

	in := []*Resolved{
		resolvedAt("east gate", "Beijing", 116.40, 39.90),
		resolvedAt("west tower", "Beijing", 116.41, 39.91),
		resolvedAt("central plaza", "Shanghai", 121.47, 31.23),
	}
	out := r.Reconcile(context.Background(), in, "")
	if out[2] != in[2] {
		t.Error("correction that increases distance must be discarded")
	}
}

func TestReconcileLeavesCacheEntryIntact(t *testing.T) {
	provider := &fakeProvider{
		pois: map[string][]places.POI{
			"Beijing central plaza": {
				{Name: "Central Plaza", Location: "116.420000,39.920000", CityName: "Beijing"},
			},
		},
	}
	r := newTestResolver(provider)

	in := []*Resolved{
		resolvedAt("east gate", "Beijing", 116.40, 39.90),
		resolvedAt("west tower", "Beijing", 116.41, 39.91),
		resolvedAt("central plaza", "Shanghai", 121.47, 31.23),
	}
	out := r.Reconcile(context.Background(), in, "")
	if out[2].Input != "central plaza" {
		t.Fatalf("corrected input = %q, want central plaza", out[2].Input)
	}

	// The correction re-resolved "Beijing central plaza"; the cached entry
	// for that query must still carry its own input, not the outlier's.
	cached, err := r.Resolve(context.Background(), "Beijing central plaza")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cached.Input != "Beijing central plaza" {
		t.Errorf("cached input = %q, want %q", cached.Input, "Beijing central plaza")
	}
}

func TestReconcileRespectsContradictedHint(t *testing.T) {
	r := newTestResolver(&fakeProvider{})
	in := []*Resolved{
		resolvedAt("a", "Beijing", 116.40, 39.90),
		resolvedAt("b", "Beijing", 116.41, 39.91),
		resolvedAt("c", "Shanghai", 121.47, 31.23),
	}
	// Hint says Shanghai but results are mostly Beijing: skip entirely.
	out := r.Reconcile(context.Background(), in, "Shanghai")
	for i := range in {
		if out[i] != in[i] {
			t.Error("hint contradiction must disable correction")
		}
	}
}
