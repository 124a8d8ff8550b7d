// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package places

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/convenehq/convene/internal/geo"
	"github.com/convenehq/convene/internal/metrics"
)

// maxErrorBodySize bounds how much of an error response body is read for
// diagnostics.
const maxErrorBodySize = 16 * 1024 // 16KB

// Provider is the geocoding/POI search contract the engine depends on.
// The production implementation talks to an Amap-compatible REST API; tests
// substitute fakes.
type Provider interface {
	// TextSearch runs a keyword place search, optionally constrained to a
	// city. An empty result is (nil, nil), not an error.
	TextSearch(ctx context.Context, keyword, cityHint string, limit int) ([]POI, error)

	// Geocode resolves a free-text address to coordinates. Returns
	// ErrNoResults when the provider recognizes nothing.
	Geocode(ctx context.Context, address string) (*GeocodeResult, error)

	// NearbySearch returns venues matching the keyword within radius
	// meters of the point. categoryCode optionally narrows by the
	// provider's category taxonomy. An empty result is (nil, nil).
	NearbySearch(ctx context.Context, point geo.Coordinate, keyword string, radius int, categoryCode string, limit int) ([]POI, error)
}

// Config holds provider connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration
	// RequestsPerSecond paces outbound calls below the provider quota.
	// Zero disables pacing.
	RequestsPerSecond float64
}

// Client is the HTTP places provider client.
//
// The client performs no retries itself: it classifies failures
// (ErrRateLimited vs StatusError vs transport errors) and leaves the retry
// policy to callers, which need different backoff schedules per operation.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a places provider client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

// rateLimitInfo is the provider's quota-exceeded info code. It arrives with
// HTTP 200, so it must be checked in the body, not the status line.
const rateLimitInfo = "QUOTA_EXCEEDED"

// envelope is the provider's common response wrapper.
type envelope struct {
	Status   string          `json:"status"` // "1" on success
	Info     string          `json:"info"`
	POIs     []POI           `json:"pois"`
	Geocodes []GeocodeResult `json:"geocodes"`
}

// TextSearch implements Provider.
func (c *Client) TextSearch(ctx context.Context, keyword, cityHint string, limit int) ([]POI, error) {
	params := url.Values{}
	params.Set("keywords", keyword)
	params.Set("offset", strconv.Itoa(limit))
	if cityHint != "" {
		params.Set("city", cityHint)
		params.Set("citylimit", "true")
	}

	env, err := c.makeRequest(ctx, "text_search", "/v3/place/text", params)
	if err != nil {
		return nil, err
	}
	return env.POIs, nil
}

// Geocode implements Provider.
func (c *Client) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	params := url.Values{}
	params.Set("address", address)

	env, err := c.makeRequest(ctx, "geocode", "/v3/geocode/geo", params)
	if err != nil {
		return nil, err
	}
	if len(env.Geocodes) == 0 {
		return nil, ErrNoResults
	}
	return &env.Geocodes[0], nil
}

// NearbySearch implements Provider.
func (c *Client) NearbySearch(ctx context.Context, point geo.Coordinate, keyword string, radius int, categoryCode string, limit int) ([]POI, error) {
	params := url.Values{}
	params.Set("location", point.String())
	params.Set("keywords", keyword)
	params.Set("radius", strconv.Itoa(radius))
	params.Set("offset", strconv.Itoa(limit))
	params.Set("page", "1")
	params.Set("extensions", "all")
	if categoryCode != "" {
		params.Set("types", categoryCode)
	}

	env, err := c.makeRequest(ctx, "nearby_search", "/v3/place/around", params)
	if err != nil {
		return nil, err
	}
	metrics.VenueSearchResults.Observe(float64(len(env.POIs)))
	return env.POIs, nil
}

// makeRequest handles the shared request boilerplate: pacing, key
// injection, status checking, envelope decoding and failure classification.
func (c *Client) makeRequest(ctx context.Context, operation, path string, params url.Values) (*envelope, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	start := time.Now()
	env, err := c.doRequest(ctx, operation, reqURL)
	reason := ""
	if err != nil {
		reason = classifyReason(err)
	}
	metrics.RecordPlacesCall(operation, time.Since(start), reason)
	return env, err
}

func (c *Client) doRequest(ctx context.Context, operation, reqURL string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("places: creating %s request: %w", operation, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places: %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &StatusError{Operation: operation, HTTPCode: resp.StatusCode, Info: string(body)}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("places: decoding %s response: %w", operation, err)
	}

	// Quota exhaustion arrives as a 200 with a dedicated info code.
	if env.Info == rateLimitInfo {
		return nil, ErrRateLimited
	}
	if env.Status != "1" {
		return nil, &StatusError{Operation: operation, HTTPCode: resp.StatusCode, Info: env.Info}
	}
	return &env, nil
}

// classifyReason maps an error to a metrics label.
func classifyReason(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.As(err, &statusErr):
		return "status"
	default:
		return "http"
	}
}
