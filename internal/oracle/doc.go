// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

// Package oracle optionally reranks candidate venues through a language
// model with semantic understanding of the user's requirements. The oracle
// is strictly best-effort: every failure collapses to ErrUnavailable and
// callers fall back to rule-based ranking without surfacing the error.
package oracle
