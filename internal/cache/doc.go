// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

// Package cache provides the bounded FIFO caches shared by the resolver
// and venue search client.
//
// Caches are explicit service objects injected into their consumers with a
// configured capacity, which keeps unit tests able to exercise eviction
// with tiny capacities instead of production-sized ones.
package cache
