// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

// Package geo provides coordinate math for meeting point computation:
// city-scale distances, the spherical two-point midpoint, the N-point mean
// center, and the optional grid-search center optimizer.
//
// This package has no dependencies on the provider or search layers; the
// optimizer consumes a narrow POICounter interface instead.
package geo
