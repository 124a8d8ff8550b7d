// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

// Package api provides the HTTP surface: chi routing, request validation,
// the uniform response envelope, and middleware for correlation IDs,
// metrics, CORS, rate limiting and panic recovery.
package api
