// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

// Package venues searches for candidate meeting places around a point.
// Multi-keyword requests fan out concurrently and merge with
// (name, coordinate) de-duplication; empty results walk a fallback ladder
// (drop category filter, generic categories, 50 km radius) so a reasonable
// area always yields candidates.
package venues
