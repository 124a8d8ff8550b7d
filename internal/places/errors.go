// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package places

import (
	"errors"
	"fmt"
)

// ErrRateLimited signals the provider rejected the call for quota reasons.
// Callers treat this as retryable with backoff, distinct from hard failures
// and from empty result sets.
var ErrRateLimited = errors.New("places: provider rate limit exceeded")

// ErrNoResults signals a well-formed response that contained no matches.
var ErrNoResults = errors.New("places: no results")

// StatusError is a non-success provider response that is neither a rate
// limit nor an empty result: bad key, malformed parameters, upstream 5xx.
type StatusError struct {
	Operation string
	HTTPCode  int
	Info      string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Info != "" {
		return fmt.Sprintf("places: %s failed: %s (http %d)", e.Operation, e.Info, e.HTTPCode)
	}
	return fmt.Sprintf("places: %s failed with http %d", e.Operation, e.HTTPCode)
}
