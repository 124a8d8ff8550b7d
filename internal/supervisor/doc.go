// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

// Package supervisor provides suture-based process supervision: a restart
// tree with backoff and the supervised HTTP server service.
package supervisor
