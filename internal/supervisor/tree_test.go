// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package supervisor

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func newTestSlogLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// flappingService fails a fixed number of times, then runs until canceled.
type flappingService struct {
	failures int32
	runs     int32
}

func (f *flappingService) Serve(ctx context.Context) error {
	run := atomic.AddInt32(&f.runs, 1)
	if run <= atomic.LoadInt32(&f.failures) {
		return context.DeadlineExceeded
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestTreeRestartsFailedService(t *testing.T) {
	svc := &flappingService{failures: 2}
	tree := NewTree(newTestSlogLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureDecay:     30,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
	tree.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	deadline := time.Now().Add(5 * time.Second)
	for atomic.LoadInt32(&svc.runs) < 3 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := atomic.LoadInt32(&svc.runs); got < 3 {
		t.Errorf("runs = %d, want at least 3 (two failures + steady run)", got)
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(5 * time.Second):
		t.Fatal("tree did not stop")
	}
}

func TestDefaultTreeConfig(t *testing.T) {
	cfg := DefaultTreeConfig()
	if cfg.FailureThreshold != 5 || cfg.FailureBackoff != 15*time.Second {
		t.Errorf("defaults = %+v", cfg)
	}
}
