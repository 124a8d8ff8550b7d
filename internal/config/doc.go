// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

// Package config loads layered application configuration with koanf:
// built-in defaults, then an optional YAML file, then environment
// variables. Precedence: ENV > file > defaults.
package config
