// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/convenehq/convene/internal/cache"
	"github.com/convenehq/convene/internal/geo"
	"github.com/convenehq/convene/internal/metrics"
	"github.com/convenehq/convene/internal/places"
)

// Defaults.
const (
	defaultCacheSize  = 30
	maxRetries        = 3
	retryBackoff      = 200 * time.Millisecond
	rateLimitBackoff  = 500 * time.Millisecond
	poiCandidateLimit = 5
)

// Resolved is a successfully located address.
type Resolved struct {
	// Input is the raw address as the user gave it.
	Input string `json:"input"`
	// Name is the resolved place name (POI path) or the input (geocode path).
	Name             string         `json:"name"`
	FormattedAddress string         `json:"formattedAddress"`
	Coordinate       geo.Coordinate `json:"coordinate"`
	City             string         `json:"city"`
	Province         string         `json:"province,omitempty"`
	District         string         `json:"district,omitempty"`
	// Source is "poi" or "geocode".
	Source string `json:"source"`
}

// Ambiguity classifications carried on UnresolvableAddressError.
const (
	ReasonBareCityName = "bare city name"
	ReasonTooShort     = "too short"
	ReasonKnownAlias   = "known alias"
	ReasonNotFound     = "not found"
)

// UnresolvableAddressError reports an address that could not be located,
// with a classification and a user-facing suggestion.
type UnresolvableAddressError struct {
	Address    string
	Reason     string
	Suggestion string
}

// Error implements the error interface.
func (e *UnresolvableAddressError) Error() string {
	return fmt.Sprintf("resolver: cannot resolve %q (%s)", e.Address, e.Reason)
}

// Resolver locates free-text addresses via the places provider, preferring
// POI text search over raw geocoding so short landmark names land in the
// right city.
type Resolver struct {
	provider places.Provider
	cache    *cache.FIFO
	logger   zerolog.Logger
	// sleep is swapped out in tests.
	sleep func(context.Context, time.Duration) error
}

// New creates a Resolver with a bounded geocode cache.
func New(provider places.Provider, logger zerolog.Logger) *Resolver {
	return &Resolver{
		provider: provider,
		cache:    cache.NewFIFO("geocode", defaultCacheSize),
		logger:   logger.With().Str("component", "resolver").Logger(),
		sleep:    sleepCtx,
	}
}

// Resolve locates one address. The POI text search runs first; when it
// yields nothing the raw geocoder is tried with up to maxRetries attempts,
// backing off longer on rate limits. Results are cached by the raw input.
func (r *Resolver) Resolve(ctx context.Context, address string) (*Resolved, error) {
	if cached, ok := r.cache.Get(address); ok {
		resolved := cached.(*Resolved)
		return resolved, nil
	}

	cityHint := CityHint([]string{address})

	if resolved := r.resolveViaPOI(ctx, address, cityHint); resolved != nil {
		r.cache.Set(address, resolved)
		return resolved, nil
	}

	resolved, err := r.resolveViaGeocode(ctx, address)
	if err != nil {
		return nil, err
	}
	r.cache.Set(address, resolved)
	return resolved, nil
}

// resolveViaPOI resolves through text search. Any failure degrades to nil
// so the geocode fallback runs.
func (r *Resolver) resolveViaPOI(ctx context.Context, address, cityHint string) *Resolved {
	keyword := ExpandAlias(address)
	if keyword == "" {
		return nil
	}

	pois, err := r.provider.TextSearch(ctx, keyword, cityHint, poiCandidateLimit)
	if err != nil {
		r.logger.Debug().Err(err).Str("address", address).Msg("poi lookup failed, falling back to geocode")
		return nil
	}

	poi := selectBestPOI(pois, keyword, cityHint)
	if poi == nil {
		return nil
	}
	coord, err := poi.Coordinate()
	if err != nil {
		return nil
	}

	formatted := poi.Address.String()
	if formatted == "" {
		formatted = poi.Name
	}
	return &Resolved{
		Input:            address,
		Name:             poi.Name,
		FormattedAddress: formatted,
		Coordinate:       coord,
		City:             poi.CityName,
		Province:         poi.Province,
		District:         poi.District,
		Source:           "poi",
	}
}

// selectBestPOI picks the candidate most likely to be what the user meant:
// exact name match first, then a name-contains match in the hinted city,
// then any name-contains match, then the provider's top hit.
func selectBestPOI(pois []places.POI, keyword, cityHint string) *places.POI {
	if len(pois) == 0 {
		return nil
	}
	lower := strings.ToLower(keyword)

	for i := range pois {
		if strings.ToLower(pois[i].Name) == lower {
			return &pois[i]
		}
	}
	if cityHint != "" {
		for i := range pois {
			if strings.Contains(strings.ToLower(pois[i].Name), lower) && strings.Contains(pois[i].CityName, cityHint) {
				return &pois[i]
			}
		}
	}
	for i := range pois {
		if strings.Contains(strings.ToLower(pois[i].Name), lower) {
			return &pois[i]
		}
	}
	return &pois[0]
}

// resolveViaGeocode resolves through the raw geocoder with retries.
func (r *Resolver) resolveViaGeocode(ctx context.Context, address string) (*Resolved, error) {
	expanded := ExpandAlias(address)

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			metrics.GeocodeRetries.Inc()
			if err := r.sleep(ctx, retryBackoff*time.Duration(attempt)); err != nil {
				return nil, err
			}
		}

		result, err := r.provider.Geocode(ctx, expanded)
		if err == nil {
			coord, cerr := result.Coordinate()
			if cerr != nil {
				return nil, fmt.Errorf("resolver: bad coordinates for %q: %w", address, cerr)
			}
			formatted := result.FormattedAddress
			if formatted == "" {
				formatted = address
			}
			return &Resolved{
				Input:            address,
				Name:             address,
				FormattedAddress: formatted,
				Coordinate:       coord,
				City:             result.City.String(),
				Province:         result.Province.String(),
				District:         result.District.String(),
				Source:           "geocode",
			}, nil
		}

		lastErr = err
		switch {
		case errors.Is(err, places.ErrRateLimited):
			// Longer pause; the quota window needs time to roll over.
			if attempt < maxRetries-1 {
				if serr := r.sleep(ctx, rateLimitBackoff*time.Duration(attempt+1)); serr != nil {
					return nil, serr
				}
			}
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		}
	}

	if errors.Is(lastErr, places.ErrRateLimited) {
		return nil, fmt.Errorf("resolver: resolving %q: %w", address, lastErr)
	}
	r.logger.Error().Err(lastErr).Str("address", address).Msg("geocoding exhausted retries")
	return nil, r.unresolvable(address)
}

// unresolvable classifies why an address failed and builds the error.
func (r *Resolver) unresolvable(address string) *UnresolvableAddressError {
	trimmed := strings.TrimSpace(address)
	switch {
	case isBareCityName(trimmed):
		return &UnresolvableAddressError{
			Address:    address,
			Reason:     ReasonBareCityName,
			Suggestion: fmt.Sprintf("a city name alone is too broad; add a district or landmark, e.g. %q", trimmed+" central station"),
		}
	case ExpandAlias(trimmed) != trimmed:
		return &UnresolvableAddressError{
			Address:    address,
			Reason:     ReasonKnownAlias,
			Suggestion: fmt.Sprintf("try the full name %q or add the city", ExpandAlias(trimmed)),
		}
	case utf8.RuneCountInString(trimmed) <= 4:
		return &UnresolvableAddressError{
			Address:    address,
			Reason:     ReasonTooShort,
			Suggestion: "the address is very short; use a full venue or street name, ideally with the city",
		}
	default:
		return &UnresolvableAddressError{
			Address:    address,
			Reason:     ReasonNotFound,
			Suggestion: "check the spelling, or use a well-known landmark or a complete street address",
		}
	}
}

// sleepCtx pauses for d or until the context ends.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
