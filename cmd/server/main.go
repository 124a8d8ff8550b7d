// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

// Package main is the entry point for the Convene server.
//
// Convene recommends fair meeting places for groups: it resolves every
// participant's address, corrects cross-city geocoding mistakes, computes a
// meeting point, searches nearby venues with progressive fallback, and
// ranks candidates on a 100-point scale with optional LLM reranking.
//
// # Startup order
//
//  1. Configuration: koanf layers defaults, an optional YAML file, and
//     environment variables (highest priority).
//  2. Logging: global zerolog logger per the logging config.
//  3. Places provider: HTTP client, optionally wrapped in a circuit breaker.
//  4. Pipeline: resolver, venue searcher, ranker, oracle, recommend service.
//  5. HTTP server under suture supervision.
//
// The server shuts down gracefully on SIGINT and SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/convenehq/convene/internal/api"
	"github.com/convenehq/convene/internal/config"
	"github.com/convenehq/convene/internal/logging"
	"github.com/convenehq/convene/internal/oracle"
	"github.com/convenehq/convene/internal/places"
	"github.com/convenehq/convene/internal/ranking"
	"github.com/convenehq/convene/internal/recommend"
	"github.com/convenehq/convene/internal/resolver"
	"github.com/convenehq/convene/internal/supervisor"
	"github.com/convenehq/convene/internal/venues"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()
	logger.Info().Str("version", api.Version).Msg("starting convene")

	var provider places.Provider = places.NewClient(places.Config{
		BaseURL:           cfg.Places.BaseURL,
		APIKey:            cfg.Places.APIKey,
		Timeout:           cfg.Places.Timeout,
		RequestsPerSecond: cfg.Places.RequestsPerSecond,
	})
	if cfg.Places.CircuitBreaker {
		provider = places.NewBreakerClient(provider, logger)
	}

	var reranker oracle.Reranker = oracle.Noop{}
	if cfg.Oracle.Enabled {
		reranker = oracle.NewClient(oracle.Config{
			BaseURL: cfg.Oracle.BaseURL,
			APIKey:  cfg.Oracle.APIKey,
			Model:   cfg.Oracle.Model,
			Timeout: cfg.Oracle.Timeout,
		}, logger)
		logger.Info().Str("model", cfg.Oracle.Model).Msg("rerank oracle enabled")
	}

	searcher := venues.NewSearcher(provider, logger)
	svc := recommend.New(
		resolver.New(provider, logger),
		searcher,
		ranking.New(reranker, logger),
		reranker,
		recommend.Config{
			MaxConcurrent: cfg.Recommend.MaxConcurrent,
			SmartCenter:   cfg.Recommend.SmartCenter,
		},
		logger,
	)

	router := api.NewRouter(api.NewHandler(svc, logger), api.RouterConfig{
		RateLimitReqs:   cfg.Security.RateLimitReqs,
		RateLimitWindow: cfg.Security.RateLimitWindow,
		CORSOrigins:     cfg.Security.CORSOrigins,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.Add(supervisor.NewHTTPService(addr, router, cfg.Server.Timeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = tree.Serve(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info().Msg("shutdown complete")
		return nil
	}
	return err
}
