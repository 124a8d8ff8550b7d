// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/convenehq/convene/internal/places"
	"github.com/convenehq/convene/internal/ranking"
	"github.com/convenehq/convene/internal/recommend"
	"github.com/convenehq/convene/internal/resolver"
	"github.com/convenehq/convene/internal/venues"
)

// stubService scripts the recommendation outcome and records the request.
type stubService struct {
	resp *recommend.Response
	err  error
	got  recommend.Request
}

func (s *stubService) Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func newTestRouter(svc Recommender) http.Handler {
	return NewRouter(NewHandler(svc, zerolog.Nop()), RouterConfig{})
}

func postRecommend(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommend", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return resp
}

func TestRecommendSuccess(t *testing.T) {
	svc := &stubService{
		resp: &recommend.Response{
			Venues: []ranking.RankedVenue{
				{Venue: venues.Venue{Name: "Quiet Cafe"}, Score: 86.3},
			},
			TransportTips: []string{"take the metro"},
		},
	}
	router := newTestRouter(svc)

	rec := postRecommend(t, router, `{
		"addresses": ["East Tower", "West Plaza"],
		"keywords": ["café"],
		"requirements": "quiet, parking"
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	if resp.Status != "success" || resp.Error != nil {
		t.Errorf("envelope = %+v", resp)
	}
	if resp.Metadata.RequestID == "" {
		t.Error("metadata missing request id")
	}
	if len(svc.got.Addresses) != 2 || svc.got.Requirements != "quiet, parking" {
		t.Errorf("service request = %+v", svc.got)
	}
}

func TestRecommendInvalidJSON(t *testing.T) {
	rec := postRecommend(t, newTestRouter(&stubService{}), `{"addresses": [`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Error == nil || resp.Error.Code != CodeInvalidJSON {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestRecommendValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no addresses", `{"addresses": []}`},
		{"too many addresses", `{"addresses": ["a","b","c","d","e","f","g","h","i","j","k"]}`},
		{"rating out of range", `{"addresses": ["a"], "min_rating": 7}`},
		{"bad price tier", `{"addresses": ["a"], "price_tier": "luxury"}`},
		{"bad coordinate", `{"addresses": ["a"], "coordinates": [{"lng": 500, "lat": 0}]}`},
	}
	router := newTestRouter(&stubService{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postRecommend(t, router, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			if resp := decodeResponse(t, rec); resp.Error == nil || resp.Error.Code != CodeValidationError {
				t.Errorf("error = %+v", resp.Error)
			}
		})
	}
}

func TestRecommendUnresolvableAddress(t *testing.T) {
	svc := &stubService{err: &resolver.UnresolvableAddressError{
		Address:    "Central Plaza",
		Reason:     "not found",
		Suggestion: "add a city or district to the address",
	}}

	rec := postRecommend(t, newTestRouter(svc), `{"addresses": ["Central Plaza"]}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Error == nil || resp.Error.Code != CodeAddressUnresolvable {
		t.Fatalf("error = %+v", resp.Error)
	}
	if resp.Error.Details["address"] != "Central Plaza" {
		t.Errorf("details = %v", resp.Error.Details)
	}
}

func TestRecommendProviderRateLimited(t *testing.T) {
	rec := postRecommend(t, newTestRouter(&stubService{err: places.ErrRateLimited}), `{"addresses": ["a"]}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Error == nil || resp.Error.Code != CodeRateLimited {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestRecommendTimeout(t *testing.T) {
	rec := postRecommend(t, newTestRouter(&stubService{err: context.DeadlineExceeded}), `{"addresses": ["a"]}`)
	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&stubService{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	if !ok || data["status"] != "ok" {
		t.Errorf("data = %v", resp.Data)
	}
}

func TestRequestIDEcho(t *testing.T) {
	router := newTestRouter(&stubService{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set(RequestIDHeader, "client-supplied-id")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "client-supplied-id" {
		t.Errorf("request id = %q, want echoed client id", got)
	}
	if resp := decodeResponse(t, rec); resp.Metadata.RequestID != "client-supplied-id" {
		t.Errorf("metadata request id = %q", resp.Metadata.RequestID)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(&stubService{})
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	rec := httptest.NewRecorder()
	Recovery(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Error == nil || resp.Error.Code != CodeInternalError {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestRateLimit(t *testing.T) {
	router := NewRouter(NewHandler(&stubService{resp: &recommend.Response{}}, zerolog.Nop()), RouterConfig{
		RateLimitReqs:   2,
		RateLimitWindow: time.Minute,
	})

	var last int
	for i := 0; i < 4; i++ {
		rec := postRecommend(t, router, `{"addresses": ["a"]}`)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("status after burst = %d, want 429", last)
	}
}
