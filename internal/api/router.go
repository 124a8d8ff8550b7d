// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds router protection settings.
type RouterConfig struct {
	RateLimitReqs   int
	RateLimitWindow time.Duration
	CORSOrigins     []string
}

// NewRouter assembles the HTTP routing tree.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	if cfg.RateLimitReqs <= 0 {
		cfg.RateLimitReqs = 100
	}
	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = time.Minute
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Recovery)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Metrics)

		// Health gets a permissive limit so monitoring never starves.
		r.With(httprate.LimitByIP(1000, time.Minute)).Get("/health", h.Health)

		r.With(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow)).
			Post("/recommend", h.Recommend)
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
