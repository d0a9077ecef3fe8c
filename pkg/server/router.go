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
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NVIDIA/vcgencmd/pkg/errors"
	"github.com/NVIDIA/vcgencmd/pkg/serializer"
)

// IndexResponse is served at the root path.
type IndexResponse struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Ready     bool     `json:"ready"`
	Timestamp string   `json:"timestamp"`
	Routes    []string `json:"routes"`
}

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.metricsMiddleware(s.handleDefault))

	// System endpoints (no rate limiting)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.HandlerFor(
		prometheus.Gatherers{s.registry, prometheus.DefaultGatherer},
		promhttp.HandlerOpts{ErrorLog: slog.NewLogLogger(slog.Default().Handler(), slog.LevelError)},
	))

	// API endpoints with middleware
	for _, path := range s.routes() {
		mux.HandleFunc(path, s.withMiddleware(s.config.Handlers[path]))
	}

	return mux
}

func (s *Server) routes() []string {
	paths := make([]string, 0, len(s.config.Handlers))
	for path, h := range s.config.Handlers {
		if h == nil || reservedPath(path) {
			continue
		}
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, r, http.StatusNotFound, errors.ErrCodeInvalidRequest,
			"no such route: "+r.URL.Path, false, nil)
		return
	}

	slog.Debug("handling default route",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	routes := []string{"GET /health", "GET /ready", "GET /metrics"}
	for _, path := range s.routes() {
		routes = append(routes, "GET "+path)
	}

	serializer.RespondJSON(w, http.StatusOK, IndexResponse{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Ready:     s.IsReady(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    routes,
	})
}

func reservedPath(path string) bool {
	switch path {
	case "/", "/health", "/ready", "/metrics":
		slog.Warn("ignoring handler for reserved path", "path", path)
		return true
	}
	return false
}
