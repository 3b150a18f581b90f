// Package server exposes CSV conversion over HTTP.
//
// Routes:
//
//	GET  /healthz     liveness probe
//	POST /v1/convert  convert a CSV body, form upload or pasted text
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/shapestone/shape-csv2json/internal/config"
	"github.com/shapestone/shape-csv2json/internal/logger"
)

// slowRequest marks access log entries at warn level.
const slowRequest = 2 * time.Second

// Server is a thin wrapper over chi + stdlib http.Server
type Server struct {
	cfg config.ServerConfig
	out config.OutputConfig
	mux *chi.Mux
	srv *http.Server
	log zerolog.Logger
	now func() time.Time
}

// New builds a server with all routes and middleware mounted.
func New(cfg config.ServerConfig, out config.OutputConfig) *Server {
	s := &Server{
		cfg: cfg,
		out: out,
		mux: chi.NewRouter(),
		log: logger.Named("http"),
		now: time.Now,
	}

	s.mux.Use(requestID)
	s.mux.Use(accessLog(slowRequest))
	s.mux.Use(recoverJSON)
	s.mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", headerRequestID},
		ExposedHeaders: []string{headerRequestID, headerRowCount, "Content-Disposition"},
		MaxAge:         300,
	}))

	s.mux.Get("/healthz", s.handleHealth)
	s.mux.With(chimw.RequestSize(cfg.MaxBodyBytes)).Post("/v1/convert", s.handleConvert)

	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	return s
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.mux }

// Addr returns the configured listen address
func (s *Server) Addr() string { return s.cfg.Addr }

// Run listens on the configured address and blocks until ctx is cancelled,
// then shuts down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.log.Info().Str("addr", ln.Addr().String()).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.log.Info().Dur("timeout", s.cfg.ShutdownTimeout).Msg("http shutting down")
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
