// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

// Package resolver turns free-text addresses into coordinates. Resolution
// prefers POI text search (which disambiguates short landmark names by
// city) and falls back to raw geocoding with retries. Reconcile detects
// locations that resolved to the wrong city relative to the rest of a
// group and re-resolves them with the majority city.
package resolver
