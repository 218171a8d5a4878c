// Package server boots the application's dependencies and runs the HTTP
// server until the context is cancelled.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/shashiranjanraj/orderdesk/config"
	"github.com/shashiranjanraj/orderdesk/internal/kernel"
	"github.com/shashiranjanraj/orderdesk/pkg/logger"
	"github.com/shashiranjanraj/orderdesk/pkg/middleware"
)

// shutdownGrace bounds how long in-flight requests may take after a stop
// signal.
const shutdownGrace = 15 * time.Second

// Start boots dependencies, builds the kernel and serves on APP_PORT until
// ctx is cancelled.
func Start(ctx context.Context) error {
	app, err := Boot(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	k := kernel.NewHTTPKernel(app.Services(), kernel.Options{
		RateLimitPerMinute: config.RateLimitPerMinute(),
		TrustProxy:         config.TrustProxy(),
		CORS:               middleware.DefaultCORSOptions(),
		Health:             app.Ping,
	})

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}
	return Serve(ctx, srv, ln, shutdownGrace)
}

// Serve runs srv on ln and shuts it down gracefully when ctx is done.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down http server", "grace", grace.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("http server stopped")
	return nil
}
