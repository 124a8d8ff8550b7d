// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package api

import (
	"net/http"
	"time"
)

var startTime = time.Now()

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, HealthStatus{
		Status:        "ok",
		Version:       Version,
		UptimeSeconds: time.Since(startTime).Seconds(),
	}, 0)
}
