// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/convenehq/convene/internal/logging"
)

func respondJSON(w http.ResponseWriter, status int, body *APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Err(err).Msg("failed to encode response")
	}
}

func respondSuccess(w http.ResponseWriter, r *http.Request, data interface{}, processing time.Duration) {
	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "success",
		Data:   data,
		Metadata: Metadata{
			Timestamp:    time.Now().UTC(),
			RequestID:    RequestIDFrom(r),
			ProcessingMS: processing.Milliseconds(),
		},
	})
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}) {
	respondJSON(w, status, &APIResponse{
		Status: "error",
		Metadata: Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: RequestIDFrom(r),
		},
		Error: &APIError{Code: code, Message: message, Details: details},
	})
}
