// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package places

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/convenehq/convene/internal/geo"
	"github.com/convenehq/convene/internal/metrics"
)

// BreakerClient wraps a Provider with a circuit breaker so a failing or
// slow upstream cannot cascade into every recommendation request.
//
// Rate-limit responses are deliberately NOT counted as breaker failures:
// they are an expected, retryable condition handled by caller backoff, and
// tripping the breaker on them would turn a transient quota blip into a
// multi-minute outage.
type BreakerClient struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker[interface{}]
	name     string
}

// NewBreakerClient wraps the provider with a circuit breaker.
// Breaker configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 30 second timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
func NewBreakerClient(provider Provider, logger zerolog.Logger) *BreakerClient {
	cbName := "places-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("opening places circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("places circuit state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},

		IsSuccessful: func(err error) bool {
			// Quota pushback and empty geocodes are upstream health
			// signals only in the HTTP sense; neither means the provider
			// is down.
			return err == nil || errors.Is(err, ErrRateLimited) || errors.Is(err, ErrNoResults)
		},
	})

	return &BreakerClient{provider: provider, cb: cb, name: cbName}
}

// TextSearch implements Provider.
func (b *BreakerClient) TextSearch(ctx context.Context, keyword, cityHint string, limit int) ([]POI, error) {
	result, err := b.execute(func() (interface{}, error) {
		return b.provider.TextSearch(ctx, keyword, cityHint, limit)
	})
	return castSlice(result, err)
}

// Geocode implements Provider.
func (b *BreakerClient) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	result, err := b.execute(func() (interface{}, error) {
		return b.provider.Geocode(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*GeocodeResult)
	if !ok {
		return nil, fmt.Errorf("places: unexpected breaker result type %T", result)
	}
	return typed, nil
}

// NearbySearch implements Provider.
func (b *BreakerClient) NearbySearch(ctx context.Context, point geo.Coordinate, keyword string, radius int, categoryCode string, limit int) ([]POI, error) {
	result, err := b.execute(func() (interface{}, error) {
		return b.provider.NearbySearch(ctx, point, keyword, radius, categoryCode, limit)
	})
	return castSlice(result, err)
}

// execute wraps a provider call with breaker accounting.
func (b *BreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
	}
	return result, err
}

// castSlice recovers the []POI result from the breaker's interface{}.
func castSlice(result interface{}, err error) ([]POI, error) {
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	typed, ok := result.([]POI)
	if !ok {
		return nil, fmt.Errorf("places: unexpected breaker result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts a breaker state to its metrics gauge value.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
