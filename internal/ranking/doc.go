// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

// Package ranking orders candidate venues on a 100-point composite:
// rating (30), popularity (20), distance with nonlinear decay (25),
// scenario match (15) and requirement match (10). Repeated chains are
// penalized for diversity, multi-keyword searches keep every scenario
// represented, and an optional oracle reranks the leaders with its score
// blended at 60%.
package ranking
