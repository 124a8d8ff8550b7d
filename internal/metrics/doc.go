// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

// Package metrics provides Prometheus metrics collection and export.
//
// Metrics are registered on the default registry via promauto and exposed
// at the /metrics endpoint in Prometheus text format.
package metrics
