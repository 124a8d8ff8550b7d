// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/convenehq/convene/internal/geo"
	"github.com/convenehq/convene/internal/metrics"
	"github.com/convenehq/convene/internal/oracle"
	"github.com/convenehq/convene/internal/ranking"
	"github.com/convenehq/convene/internal/resolver"
	"github.com/convenehq/convene/internal/venues"
)

// ErrNoCoordinatesResolved means every address failed resolution, so there
// is no geometry to work with.
var ErrNoCoordinatesResolved = errors.New("recommend: no coordinates resolved")

// geocodeStagger spaces concurrent geocode launches so a burst of
// addresses does not trip the provider quota.
const geocodeStagger = 50 * time.Millisecond

// Config tunes the orchestrating service.
type Config struct {
	// MaxConcurrent bounds simultaneously processed requests; excess
	// requests queue rather than fail.
	MaxConcurrent int
	// SmartCenter enables meeting-point optimization by default.
	// Individual requests can still turn it on.
	SmartCenter bool
}

// PreResolved is a client-supplied coordinate, typically from a frontend
// autocomplete, letting the engine skip geocoding.
type PreResolved struct {
	Lng     float64 `json:"lng"`
	Lat     float64 `json:"lat"`
	Address string  `json:"address,omitempty"`
	City    string  `json:"city,omitempty"`
}

// Request is one recommendation request.
type Request struct {
	// Addresses are the participants' starting locations.
	Addresses []string
	// Keywords are the venue types to search for; the first is primary.
	Keywords []string
	// Requirements is the free-text requirement description.
	Requirements string
	// Category optionally narrows the primary search by provider
	// category code.
	Category string

	MinRating   float64
	MaxDistance float64
	PriceTier   string

	// OptimizeCenter requests the POI-density/transit/fairness optimized
	// meeting point instead of the plain geometric one.
	OptimizeCenter bool

	// PreResolvedCoords bypass geocoding when their length matches
	// Addresses exactly; otherwise they are ignored.
	PreResolvedCoords []PreResolved
}

// Response is the full recommendation result.
type Response struct {
	Locations []*resolver.Resolved  `json:"locations"`
	Center    geo.MeetingPoint      `json:"center"`
	Venues    []ranking.RankedVenue `json:"venues"`

	FallbackUsed    bool   `json:"fallbackUsed"`
	FallbackKeyword string `json:"fallbackKeyword,omitempty"`
	WideRadius      bool   `json:"wideRadius,omitempty"`

	// NoVenuesFound marks the benign nothing-nearby outcome: the request
	// succeeded but the area has no venues even after all fallbacks.
	NoVenuesFound bool `json:"noVenuesFound,omitempty"`

	TransportTips []string `json:"transportTips,omitempty"`

	ProcessingTime time.Duration `json:"-"`
}

// Service orchestrates the full pipeline: resolve, reconcile, center,
// search, rank, advise.
type Service struct {
	resolver  *resolver.Resolver
	searcher  *venues.Searcher
	ranker    *ranking.Ranker
	oracle    oracle.Reranker
	optimizer *geo.Optimizer
	cfg       Config
	admission chan struct{}
	logger    zerolog.Logger
	// stagger is swapped out in tests.
	stagger func(context.Context, time.Duration) error
}

// New wires the orchestrating service.
func New(res *resolver.Resolver, searcher *venues.Searcher, ranker *ranking.Ranker, reranker oracle.Reranker, cfg Config, logger zerolog.Logger) *Service {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 3
	}
	if reranker == nil {
		reranker = oracle.Noop{}
	}
	return &Service{
		resolver:  res,
		searcher:  searcher,
		ranker:    ranker,
		oracle:    reranker,
		optimizer: geo.NewOptimizer(searcher, geo.DefaultOptimizerConfig(), logger),
		cfg:       cfg,
		admission: make(chan struct{}, cfg.MaxConcurrent),
		logger:    logger.With().Str("component", "recommend").Logger(),
		stagger:   sleepCtx,
	}
}

// Recommend runs the pipeline for one request. Requests beyond the
// concurrency bound queue until a slot frees; they are never rejected.
func (s *Service) Recommend(ctx context.Context, req Request) (*Response, error) {
	metrics.RecommendQueued.Inc()
	select {
	case s.admission <- struct{}{}:
		metrics.RecommendQueued.Dec()
	case <-ctx.Done():
		metrics.RecommendQueued.Dec()
		return nil, ctx.Err()
	}
	defer func() { <-s.admission }()

	metrics.RecommendInFlight.Inc()
	defer metrics.RecommendInFlight.Dec()

	start := time.Now()
	resp, err := s.process(ctx, req)
	elapsed := time.Since(start)
	metrics.RecommendDuration.Observe(elapsed.Seconds())
	metrics.RecommendRequestsTotal.WithLabelValues(requestStatus(resp, err)).Inc()
	if err != nil {
		return nil, err
	}
	resp.ProcessingTime = elapsed
	return resp, nil
}

func requestStatus(resp *Response, err error) string {
	switch {
	case err == nil && resp.NoVenuesFound:
		return "no_venues"
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNoCoordinatesResolved), isUnresolvable(err):
		return "unresolved"
	default:
		return "error"
	}
}

func isUnresolvable(err error) bool {
	var unresolvable *resolver.UnresolvableAddressError
	return errors.As(err, &unresolvable)
}

func (s *Service) process(ctx context.Context, req Request) (*Response, error) {
	if len(req.Addresses) == 0 {
		return nil, ErrNoCoordinatesResolved
	}
	keywords := cleanKeywords(req.Keywords)

	locations, err := s.resolveAll(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, ErrNoCoordinatesResolved
	}

	coords := make([]geo.Coordinate, len(locations))
	for i, loc := range locations {
		coords[i] = loc.Coordinate
	}

	center, err := s.meetingPoint(ctx, coords, keywords[0], req.OptimizeCenter || s.cfg.SmartCenter)
	if err != nil {
		return nil, err
	}

	outcome, err := s.searcher.SearchWithFallback(ctx, center.Coordinate, keywords, req.Category)
	if err != nil {
		return nil, fmt.Errorf("recommend: venue search: %w", err)
	}

	resp := &Response{
		Locations:       locations,
		Center:          center,
		FallbackUsed:    outcome.FallbackUsed,
		FallbackKeyword: outcome.FallbackKeyword,
		WideRadius:      outcome.WideRadius,
	}

	if len(outcome.Venues) == 0 {
		s.logger.Warn().
			Str("center", center.Coordinate.String()).
			Msg("no venues found after all fallbacks")
		resp.NoVenuesFound = true
		return resp, nil
	}

	resp.Venues = s.ranker.Rank(ctx, outcome.Venues, ranking.Options{
		Center:               center.Coordinate,
		Keywords:             keywords,
		Requirements:         req.Requirements,
		MinRating:            req.MinRating,
		MaxDistance:          req.MaxDistance,
		PriceTier:            req.PriceTier,
		ParticipantLocations: req.Addresses,
	})

	resp.TransportTips = s.transportTips(ctx, req, resp.Venues)
	return resp, nil
}

// resolveAll geocodes every address concurrently with a staggered launch,
// then runs city reconciliation. Pre-resolved coordinates bypass the whole
// step when they cover every address.
func (s *Service) resolveAll(ctx context.Context, req Request) ([]*resolver.Resolved, error) {
	if len(req.PreResolvedCoords) == len(req.Addresses) && len(req.PreResolvedCoords) > 0 {
		s.logger.Info().Int("count", len(req.Addresses)).Msg("using pre-resolved coordinates")
		locations := make([]*resolver.Resolved, len(req.Addresses))
		for i, pre := range req.PreResolvedCoords {
			formatted := pre.Address
			if formatted == "" {
				formatted = req.Addresses[i]
			}
			locations[i] = &resolver.Resolved{
				Input:            req.Addresses[i],
				Name:             req.Addresses[i],
				FormattedAddress: formatted,
				Coordinate:       geo.Coordinate{Lng: pre.Lng, Lat: pre.Lat},
				City:             pre.City,
				Source:           "pre-resolved",
			}
		}
		return locations, nil
	}

	locations := make([]*resolver.Resolved, len(req.Addresses))
	errs := make([]error, len(req.Addresses))

	var wg sync.WaitGroup
	for i, address := range req.Addresses {
		wg.Add(1)
		go func(i int, address string) {
			defer wg.Done()
			if i > 0 {
				if err := s.stagger(ctx, geocodeStagger*time.Duration(i)); err != nil {
					errs[i] = err
					return
				}
			}
			locations[i], errs[i] = s.resolver.Resolve(ctx, address)
		}(i, address)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	if len(locations) > 1 {
		cityHint := resolver.CityHint(req.Addresses)
		locations = s.resolver.Reconcile(ctx, locations, cityHint)
	}
	return locations, nil
}

// meetingPoint computes the search anchor, optionally optimized over a
// candidate grid.
func (s *Service) meetingPoint(ctx context.Context, coords []geo.Coordinate, keyword string, optimize bool) (geo.MeetingPoint, error) {
	if optimize {
		point, err := s.optimizer.Optimize(ctx, coords, keyword)
		if err == nil {
			return point, nil
		}
		s.logger.Warn().Err(err).Msg("center optimization failed, using geometric center")
	}

	center, err := geo.Center(coords)
	if err != nil {
		return geo.MeetingPoint{}, ErrNoCoordinatesResolved
	}
	return geo.MeetingPoint{Coordinate: center, Provenance: "geometric"}, nil
}

// transportTips asks the oracle for personalized advice and falls back to
// the deterministic defaults.
func (s *Service) transportTips(ctx context.Context, req Request, ranked []ranking.RankedVenue) []string {
	names := make([]string, 0, 5)
	for i, rv := range ranked {
		if i == 5 {
			break
		}
		names = append(names, rv.Name)
	}

	tips, err := s.oracle.TransportAdvice(ctx, oracle.Meeting{
		ParticipantLocations: req.Addresses,
		Keywords:             strings.Join(req.Keywords, " "),
		Requirements:         req.Requirements,
	}, names)
	if err != nil || len(tips) == 0 {
		return oracle.DefaultTransportTips()
	}
	return tips
}

// cleanKeywords trims and drops empty keywords, defaulting to café.
func cleanKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if trimmed := strings.TrimSpace(kw); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		out = append(out, "café")
	}
	return out
}

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
