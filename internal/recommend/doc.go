// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

// Package recommend orchestrates the recommendation pipeline: resolve
// every participant address (staggered, concurrent), reconcile city
// outliers, compute the meeting point, search venues with fallback, rank,
// and attach transport advice. A bounded admission gate queues excess
// requests instead of rejecting them.
package recommend
