/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/friendsincode/itinerary_clock/internal/api"
	"github.com/friendsincode/itinerary_clock/internal/config"
	"github.com/friendsincode/itinerary_clock/internal/itinerary"
	"github.com/friendsincode/itinerary_clock/internal/telemetry"
)

// Server bundles the HTTP API and the optional metrics listener.
type Server struct {
	cfg        *config.Config
	logger     zerolog.Logger
	router     chi.Router
	httpServer *http.Server
	metrics    *http.Server
	closers    []func() error
}

// New constructs the server and wires dependencies.
func New(cfg *config.Config, calc *itinerary.Calculator, logger zerolog.Logger) *Server {
	logger = logger.With().Str("component", "server").Logger()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(securityHeadersMiddleware)
	router.Use(telemetry.TracingMiddleware("itinerary-api"))
	router.Use(telemetry.MetricsMiddleware)
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	srv := &Server{
		cfg:    cfg,
		logger: logger,
		router: router,
	}
	srv.configureRoutes(api.New(calc, cfg.MaxBatchBytes, logger))

	srv.httpServer = &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           srv.router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if cfg.MetricsBind != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", telemetry.Handler())
		srv.metrics = &http.Server{
			Addr:              cfg.MetricsBind,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return srv
}

func (s *Server) configureRoutes(a *api.API) {
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	s.router.Handle("/metrics", telemetry.Handler())
	a.Routes(s.router)
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the API (and metrics listener when configured) until
// ctx is cancelled, then shuts both down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 2)

	serve := func(name string, hs *http.Server) {
		s.logger.Info().Str("addr", hs.Addr).Str("listener", name).Msg("HTTP server listening")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}

	go serve("api", s.httpServer)
	if s.metrics != nil {
		go serve("metrics", s.metrics)
	}

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
		s.logger.Error().Err(serveErr).Msg("http server error")
	}

	s.logger.Info().Msg("shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	if s.metrics != nil {
		if err := s.metrics.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("metrics shutdown failed")
		}
	}

	if err := s.Close(); err != nil {
		s.logger.Error().Err(err).Msg("shutdown cleanup failed")
	}
	return serveErr
}

// Close releases owned resources in reverse order.
func (s *Server) Close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	return firstErr
}

// DeferClose registers a cleanup hook.
func (s *Server) DeferClose(fn func() error) {
	s.closers = append(s.closers, fn)
}

func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("Cache-Control", "no-store")

		// Only advertise HSTS for requests served over HTTPS.
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
