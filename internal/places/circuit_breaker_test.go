// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package places

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/convenehq/convene/internal/geo"
)

// scriptedProvider returns queued results in order, repeating the last.
type scriptedProvider struct {
	geocodeErrs []error
	calls       int
}

func (s *scriptedProvider) TextSearch(ctx context.Context, keyword, cityHint string, limit int) ([]POI, error) {
	return nil, nil
}

func (s *scriptedProvider) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	idx := s.calls
	if idx >= len(s.geocodeErrs) {
		idx = len(s.geocodeErrs) - 1
	}
	s.calls++
	if err := s.geocodeErrs[idx]; err != nil {
		return nil, err
	}
	return &GeocodeResult{Location: "116.400000,39.900000"}, nil
}

func (s *scriptedProvider) NearbySearch(ctx context.Context, point geo.Coordinate, keyword string, radius int, categoryCode string, limit int) ([]POI, error) {
	return []POI{{ID: "B001", Name: "Anchor"}}, nil
}

func TestBreakerPassesThroughSuccess(t *testing.T) {
	provider := &scriptedProvider{geocodeErrs: []error{nil}}
	bc := NewBreakerClient(provider, zerolog.Nop())

	result, err := bc.Geocode(context.Background(), "1 Main St")
	if err != nil {
		t.Fatalf("Geocode() error = %v", err)
	}
	if result.Location != "116.400000,39.900000" {
		t.Errorf("location = %q", result.Location)
	}

	pois, err := bc.NearbySearch(context.Background(), geo.Coordinate{}, "cafe", 3000, "", 25)
	if err != nil {
		t.Fatalf("NearbySearch() error = %v", err)
	}
	if len(pois) != 1 {
		t.Errorf("got %d POIs, want 1", len(pois))
	}
}

func TestBreakerOpensOnHardFailures(t *testing.T) {
	hardErr := errors.New("connection refused")
	provider := &scriptedProvider{geocodeErrs: []error{hardErr}}
	bc := NewBreakerClient(provider, zerolog.Nop())

	for i := 0; i < 12; i++ {
		bc.Geocode(context.Background(), "1 Main St")
	}

	calls := provider.calls
	_, err := bc.Geocode(context.Background(), "1 Main St")
	if err == nil {
		t.Fatal("expected rejection from open breaker")
	}
	if provider.calls != calls {
		t.Error("open breaker should not call the provider")
	}
}

func TestBreakerIgnoresRateLimitAndEmptyResults(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"rate limited", ErrRateLimited},
		{"no results", ErrNoResults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &scriptedProvider{geocodeErrs: []error{tt.err}}
			bc := NewBreakerClient(provider, zerolog.Nop())

			for i := 0; i < 20; i++ {
				_, err := bc.Geocode(context.Background(), "1 Main St")
				if !errors.Is(err, tt.err) {
					t.Fatalf("call %d: error = %v, want %v", i, err, tt.err)
				}
			}
			if provider.calls != 20 {
				t.Errorf("provider calls = %d, want 20 (breaker must stay closed)", provider.calls)
			}
		})
	}
}
