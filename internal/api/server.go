// SPDX-License-Identifier: MIT

// Package api exposes the active channel list over a read-only HTTP API.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ManuGH/dvbchannels/internal/api/middleware"
	"github.com/ManuGH/dvbchannels/internal/channellist"
	"github.com/ManuGH/dvbchannels/internal/hdhr"
	xglog "github.com/ManuGH/dvbchannels/internal/log"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config configures the HTTP server.
type Config struct {
	ListenAddr string
	// RateLimit is requests per minute and client IP; 0 disables it.
	RateLimit int
	// HDHR mounts the HDHomeRun endpoints at the root when set.
	HDHR *hdhr.Server
}

// Server serves the channel list held by a Store.
type Server struct {
	cfg    Config
	store  *channellist.Store
	router chi.Router
}

// New builds the server and its routes.
func New(cfg Config, store *channellist.Store) *Server {
	s := &Server{cfg: cfg, store: store}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := middleware.NewRouter(middleware.StackConfig{
		EnableMetrics: true,
		EnableLogging: true,
		RateLimit:     s.cfg.RateLimit,
	})

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/channels", s.handleChannels)
		r.Get("/channels/{number}", s.handleChannel)
		r.Get("/transponders", s.handleTransponders)
	})

	if h := s.cfg.HDHR; h != nil {
		r.Get("/discover.json", h.HandleDiscover)
		r.Get("/lineup_status.json", h.HandleLineupStatus)
		r.Get("/lineup.json", h.HandleLineup)
		r.Post("/lineup.json", h.HandleLineupPost)
	}
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	logger := xglog.WithComponentFromContext(ctx, "api")
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str(xglog.FieldListenAddr, s.cfg.ListenAddr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info().Msg("HTTP server stopped")
	return nil
}
