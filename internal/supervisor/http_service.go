// Convene - Fair Meeting Place Recommendation Engine
// Copyright 2026 Convene Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/convenehq/convene

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// shutdownGrace bounds in-flight request draining on shutdown.
const shutdownGrace = 10 * time.Second

// HTTPService runs the API server under suture supervision. Serve blocks
// until the listener fails or the context is canceled, matching the
// suture.Service contract.
type HTTPService struct {
	addr    string
	handler http.Handler
	timeout time.Duration
	logger  zerolog.Logger
}

// NewHTTPService creates the supervised HTTP server service.
func NewHTTPService(addr string, handler http.Handler, timeout time.Duration, logger zerolog.Logger) *HTTPService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPService{
		addr:    addr,
		handler: handler,
		timeout: timeout,
		logger:  logger.With().Str("component", "http").Logger(),
	}
}

// Serve implements suture.Service.
func (s *HTTPService) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadTimeout:       s.timeout,
		WriteTimeout:      s.timeout,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn().Err(err).Msg("graceful shutdown incomplete, closing")
			_ = srv.Close()
		}
		<-errCh
		return ctx.Err()
	}
}

func (s *HTTPService) String() string {
	return "http-server " + s.addr
}
