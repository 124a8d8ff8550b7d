// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package api

import "time"

// APIResponse is the uniform response envelope for every endpoint.
type APIResponse struct {
	Status   string      `json:"status"` // "success" or "error"
	Data     interface{} `json:"data,omitempty"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries per-response observability fields.
type Metadata struct {
	Timestamp    time.Time `json:"timestamp"`
	RequestID    string    `json:"request_id,omitempty"`
	ProcessingMS int64     `json:"processing_ms"`
}

// APIError is the structured error payload.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes returned by the API.
const (
	CodeValidationError     = "VALIDATION_ERROR"
	CodeInvalidJSON         = "INVALID_JSON"
	CodeAddressUnresolvable = "ADDRESS_UNRESOLVABLE"
	CodeRateLimited         = "RATE_LIMITED"
	CodeTimeout             = "TIMEOUT"
	CodeInternalError       = "INTERNAL_ERROR"
)

// RecommendRequest is the recommendation request body.
type RecommendRequest struct {
	// Addresses are the participants' starting locations.
	Addresses []string `json:"addresses" validate:"required,min=1,max=10,dive,min=1,max=200"`
	// Keywords are the venue types to search for.
	Keywords []string `json:"keywords" validate:"omitempty,max=5,dive,min=1,max=50"`
	// Requirements is a free-text description like "quiet, with parking".
	Requirements string `json:"requirements" validate:"omitempty,max=500"`
	// Category optionally narrows the primary search by provider category
	// code.
	Category string `json:"category" validate:"omitempty,max=20"`

	MinRating   float64 `json:"min_rating" validate:"gte=0,lte=5"`
	MaxDistance float64 `json:"max_distance" validate:"gte=0,lte=100000"`
	PriceTier   string  `json:"price_tier" validate:"omitempty,oneof=economy mid high"`

	// OptimizeCenter requests the optimized meeting point instead of the
	// plain geometric one.
	OptimizeCenter bool `json:"optimize_center"`

	// Coordinates optionally bypass geocoding; must match Addresses
	// one-to-one to be used.
	Coordinates []CoordinateInput `json:"coordinates" validate:"omitempty,max=10,dive"`
}

// CoordinateInput is a client-supplied pre-resolved coordinate.
type CoordinateInput struct {
	Lng     float64 `json:"lng" validate:"longitude"`
	Lat     float64 `json:"lat" validate:"latitude"`
	Address string  `json:"address" validate:"omitempty,max=200"`
	City    string  `json:"city" validate:"omitempty,max=50"`
}
