// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Server is the vcgend HTTP server.
type Server struct {
	config         *Config
	httpServer     *http.Server
	rateLimiter    *rate.Limiter
	registry       *prometheus.Registry
	readinessCheck func(context.Context) error
	onReady        []func()

	mu         sync.RWMutex
	ready      bool
	listenAddr string
}

// Option is a functional option for configuring Server instances.
type Option func(*Server)

// WithName sets the server name reported at the root path.
func WithName(name string) Option {
	return func(s *Server) {
		s.config.Name = name
	}
}

// WithVersion sets the server version reported at the root path.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.config.Version = version
	}
}

// WithHandler adds API handlers keyed by path. They are served behind the
// full middleware chain.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		if s.config.Handlers == nil {
			s.config.Handlers = make(map[string]http.HandlerFunc, len(handlers))
		}
		for path, h := range handlers {
			s.config.Handlers[path] = h
		}
	}
}

// WithConfig replaces the configuration. Handlers, name and version already
// set by earlier options are kept when cfg leaves them empty.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg == nil {
			return
		}
		prev := s.config
		s.config = cfg
		if cfg.Name == "" {
			cfg.Name = prev.Name
		}
		if cfg.Version == "" {
			cfg.Version = prev.Version
		}
		if cfg.Handlers == nil {
			cfg.Handlers = prev.Handlers
		}
	}
}

// WithCollector registers collectors served on /metrics.
func WithCollector(collectors ...prometheus.Collector) Option {
	return func(s *Server) {
		s.registry.MustRegister(collectors...)
	}
}

// WithReadinessCheck makes /ready report not ready while check fails.
func WithReadinessCheck(check func(context.Context) error) Option {
	return func(s *Server) {
		s.readinessCheck = check
	}
}

// WithOnReady registers fn to run once the server is listening.
func WithOnReady(fn func()) Option {
	return func(s *Server) {
		if fn != nil {
			s.onReady = append(s.onReady, fn)
		}
	}
}

// New creates a new server instance
func New(opts ...Option) *Server {
	s := &Server{
		config:   parseConfig(),
		registry: prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.config.Name == "" {
		s.config.Name = defaultName
	}
	if s.config.Version == "" {
		s.config.Version = defaultVersion
	}

	s.rateLimiter = rate.NewLimiter(s.config.RateLimit, s.config.RateLimitBurst)
	s.httpServer = &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.setupRoutes(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
	}

	return s
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// SetReady marks the server as ready to serve traffic
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady reports whether the server is ready to serve traffic.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// ListenAddr returns the bound address once Run is listening.
func (s *Server) ListenAddr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listenAddr
}

// Run serves until ctx is done or SIGINT/SIGTERM arrives, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	s.mu.Lock()
	s.listenAddr = ln.Addr().String()
	s.mu.Unlock()

	slog.Info("server listening",
		slog.String("name", s.config.Name),
		slog.String("version", s.config.Version),
		slog.String("address", ln.Addr().String()),
		slog.Any("rateLimit", s.config.RateLimit),
		slog.Int("rateLimitBurst", s.config.RateLimitBurst),
		slog.Duration("shutdownTimeout", s.config.ShutdownTimeout),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	s.SetReady(true)
	for _, fn := range s.onReady {
		fn()
	}

	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("server stopped gracefully")
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
