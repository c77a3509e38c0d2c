// Package server wires the cardscan endpoints into an HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/jackzampolin/cardscan/internal/api"
	"github.com/jackzampolin/cardscan/internal/config"
	"github.com/jackzampolin/cardscan/internal/scanner"
	"github.com/jackzampolin/cardscan/internal/server/endpoints"
	"github.com/jackzampolin/cardscan/internal/svcctx"
)

const (
	shutdownGrace = 30 * time.Second
	// writeSlack is added to the scan timeout so the page can still be
	// rendered after a slow model call.
	writeSlack = 30 * time.Second
)

// Config holds server configuration.
type Config struct {
	Host string // default 127.0.0.1
	Port string // default 8080; "0" picks a free port

	// MaxUploadBytes caps image uploads (default 10 MiB).
	MaxUploadBytes int64

	// ScanTimeout is the inference timeout. Zero means a request may block
	// until the model answers, so no write timeout is set either.
	ScanTimeout time.Duration

	// Scanner runs scans. Nil leaves scan endpoints returning 503.
	Scanner   *scanner.Service
	AppConfig *config.Config
	Logger    *slog.Logger
}

// Server serves the upload page and the JSON API.
type Server struct {
	logger   *slog.Logger
	services *svcctx.Services
	registry *api.Registry
	http     *http.Server

	mu      sync.RWMutex
	running bool
	addr    string
}

// New builds a server. Page templates are parsed here so a broken build
// fails at startup.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if _, err := endpoints.PageTemplates(); err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}

	s := &Server{
		logger: cfg.Logger,
		services: &svcctx.Services{
			Scanner: cfg.Scanner,
			Config:  cfg.AppConfig,
			Logger:  cfg.Logger,
		},
		registry: api.NewRegistry(endpoints.All(endpoints.Config{MaxUploadBytes: cfg.MaxUploadBytes})...),
	}

	mux := http.NewServeMux()
	s.registry.Mount(mux, s.requireInit)

	var writeTimeout time.Duration
	if cfg.ScanTimeout > 0 {
		writeTimeout = cfg.ScanTimeout + writeSlack
	}

	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	s.addr = addr
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.logRequests(s.withServices(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

// Start listens and serves until ctx is cancelled, then shuts down
// gracefully. It returns an error if the server is already running.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
	}
	s.running = true
	s.addr = ln.Addr().String()
	s.mu.Unlock()

	if s.services.Scanner == nil {
		s.logger.Warn("no vision client configured; scan endpoints will return 503")
	}
	s.logger.Debug("routes", "patterns", s.registry.Patterns())

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		serveErr <- s.http.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-serveErr:
		s.setRunning(false)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	err = s.http.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}
	s.setRunning(false)
	s.logger.Info("server stopped")
	return err
}

func (s *Server) setRunning(v bool) {
	s.mu.Lock()
	s.running = v
	s.mu.Unlock()
}

// IsRunning reports whether Start is serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr is the configured address, or the bound one once Start has listened.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// Handler returns the fully wrapped handler, for httptest.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}
