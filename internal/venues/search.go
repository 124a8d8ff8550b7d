// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package venues

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/convenehq/convene/internal/cache"
	"github.com/convenehq/convene/internal/geo"
	"github.com/convenehq/convene/internal/places"
)

// Defaults.
const (
	defaultCacheSize = 15
	searchLimit      = 20
	// DefaultRadius is the standard venue search radius in meters.
	DefaultRadius = 5000
)

// Searcher finds candidate venues around a point, caching recent searches.
type Searcher struct {
	provider places.Provider
	cache    *cache.FIFO
	logger   zerolog.Logger
}

// NewSearcher creates a venue searcher with a bounded result cache.
func NewSearcher(provider places.Provider, logger zerolog.Logger) *Searcher {
	return &Searcher{
		provider: provider,
		cache:    cache.NewFIFO("poi_search", defaultCacheSize),
		logger:   logger.With().Str("component", "venues").Logger(),
	}
}

// Search finds venues matching the keyword within radius meters of the
// point. An empty result is not an error.
func (s *Searcher) Search(ctx context.Context, point geo.Coordinate, keyword string, radius int, category string) ([]Venue, error) {
	key := fmt.Sprintf("%s_%s_%d_%s", point.String(), keyword, radius, category)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]Venue), nil
	}

	pois, err := s.provider.NearbySearch(ctx, point, keyword, radius, category, searchLimit)
	if err != nil {
		return nil, err
	}

	venues := make([]Venue, 0, len(pois))
	for _, poi := range pois {
		if v, ok := fromPOI(poi, ""); ok {
			venues = append(venues, v)
		}
	}
	s.cache.Set(key, venues)
	return venues, nil
}

// NearbyCount returns how many venues match the keyword near the point.
// It satisfies the counter interface the meeting-point optimizer uses for
// density and transit probing.
func (s *Searcher) NearbyCount(ctx context.Context, point geo.Coordinate, keyword string, radius, limit int) (int, error) {
	pois, err := s.provider.NearbySearch(ctx, point, keyword, radius, "", limit)
	if err != nil {
		return 0, err
	}
	return len(pois), nil
}

// SearchMulti fans one search out per keyword concurrently and merges the
// results. Venues are tagged with the keyword that found them; duplicates
// appearing under several keywords keep the first tag. A failing keyword
// degrades to an empty contribution rather than failing the merge.
func (s *Searcher) SearchMulti(ctx context.Context, point geo.Coordinate, keywords []string, radius int) []Venue {
	results := make([][]Venue, len(keywords))
	var wg sync.WaitGroup
	for i, keyword := range keywords {
		wg.Add(1)
		go func(i int, keyword string) {
			defer wg.Done()
			venues, err := s.Search(ctx, point, keyword, radius, "")
			if err != nil {
				s.logger.Warn().Err(err).Str("keyword", keyword).Msg("keyword search failed")
				return
			}
			tagged := make([]Venue, len(venues))
			for j, v := range venues {
				v.SourceKeyword = keyword
				tagged[j] = v
			}
			results[i] = tagged
		}(i, keyword)
	}
	wg.Wait()

	seen := map[string]bool{}
	var merged []Venue
	for _, batch := range results {
		for _, v := range batch {
			id := v.Name + "_" + v.Coordinate.String()
			if seen[id] {
				continue
			}
			seen[id] = true
			merged = append(merged, v)
		}
	}
	return merged
}
