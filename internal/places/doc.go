// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

// Package places implements the client for the upstream geocoding/POI
// provider (an Amap-compatible REST API).
//
// The client distinguishes three failure classes the rest of the engine
// depends on: ErrRateLimited (retryable quota pushback, which the provider
// reports inside an HTTP 200 body), ErrNoResults (well-formed but empty),
// and StatusError / transport errors (hard failures). Outbound calls are
// paced with a token-bucket limiter and can be wrapped in a circuit
// breaker via NewBreakerClient.
package places
