// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

// Package requirements matches venues against user requirements using a
// three-tier algorithm: explicit provider tags (high confidence, 4 points),
// known-chain brand features (medium, 2 points), and venue category
// defaults (low, 1 point). Each requirement is satisfied by at most one
// tier and the total contribution is capped at 10 points.
package requirements
