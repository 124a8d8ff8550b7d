// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/convenehq/convene/internal/places"
	"github.com/convenehq/convene/internal/recommend"
	"github.com/convenehq/convene/internal/resolver"
	"github.com/convenehq/convene/internal/validation"
)

// maxRequestBodySize bounds recommendation request bodies.
const maxRequestBodySize = 64 * 1024 // 64KB

// Recommender is the recommendation service contract the handlers depend on.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// Handler serves the HTTP API.
type Handler struct {
	svc    Recommender
	logger zerolog.Logger
}

// NewHandler creates the API handler.
func NewHandler(svc Recommender, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger.With().Str("component", "api").Logger()}
}

// Recommend handles POST /api/v1/recommend.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeInvalidJSON, "request body is not valid JSON", nil)
		return
	}

	if verr := validation.Struct(&req); verr != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidationError, verr.Error(), validationDetails(verr))
		return
	}

	start := time.Now()
	resp, err := h.svc.Recommend(r.Context(), toServiceRequest(&req))
	if err != nil {
		h.respondRecommendError(w, r, err)
		return
	}

	respondSuccess(w, r, resp, time.Since(start))
}

// respondRecommendError maps pipeline errors to HTTP responses.
func (h *Handler) respondRecommendError(w http.ResponseWriter, r *http.Request, err error) {
	var unresolvable *resolver.UnresolvableAddressError
	switch {
	case errors.As(err, &unresolvable):
		respondError(w, r, http.StatusUnprocessableEntity, CodeAddressUnresolvable, unresolvable.Error(), map[string]interface{}{
			"address":    unresolvable.Address,
			"reason":     unresolvable.Reason,
			"suggestion": unresolvable.Suggestion,
		})
	case errors.Is(err, recommend.ErrNoCoordinatesResolved):
		respondError(w, r, http.StatusUnprocessableEntity, CodeAddressUnresolvable, "none of the addresses could be resolved", nil)
	case errors.Is(err, places.ErrRateLimited):
		respondError(w, r, http.StatusServiceUnavailable, CodeRateLimited, "places provider quota exceeded, try again shortly", nil)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusGatewayTimeout, CodeTimeout, "recommendation timed out", nil)
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to write.
		respondError(w, r, http.StatusBadRequest, CodeTimeout, "request canceled", nil)
	default:
		h.logger.Error().Err(err).Msg("recommendation failed")
		respondError(w, r, http.StatusInternalServerError, CodeInternalError, "internal error", nil)
	}
}

func toServiceRequest(req *RecommendRequest) recommend.Request {
	out := recommend.Request{
		Addresses:      req.Addresses,
		Keywords:       req.Keywords,
		Requirements:   req.Requirements,
		Category:       req.Category,
		MinRating:      req.MinRating,
		MaxDistance:    req.MaxDistance,
		PriceTier:      req.PriceTier,
		OptimizeCenter: req.OptimizeCenter,
	}
	for _, c := range req.Coordinates {
		out.PreResolvedCoords = append(out.PreResolvedCoords, recommend.PreResolved{
			Lng:     c.Lng,
			Lat:     c.Lat,
			Address: c.Address,
			City:    c.City,
		})
	}
	return out
}

func validationDetails(verr *validation.RequestError) map[string]interface{} {
	fields := make([]map[string]interface{}, len(verr.Fields()))
	for i, fe := range verr.Fields() {
		fields[i] = map[string]interface{}{
			"field":   fe.Field,
			"tag":     fe.Tag,
			"message": fe.Message,
		}
	}
	return map[string]interface{}{"fields": fields}
}
