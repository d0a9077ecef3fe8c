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
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/NVIDIA/vcgencmd/pkg/errors"
)

const metricsNamespace = "vcgend"

// unmatchedRoute labels requests no route pattern claimed.
const unmatchedRoute = "unmatched"

// Reading requests wait on a vcgencmd process, so latency buckets run from
// a fast firmware answer up to the command timeout.
var readingBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served, by route pattern and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, including the vcgencmd invocations behind it.",
			Buckets:   readingBuckets,
		},
		[]string{"method", "route"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "HTTP requests currently being served.",
		},
	)

	// vcgencmd failures surface here by code (EXECUTION_FAILED, MALFORMED_RESPONSE, TIMEOUT).
	httpErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "errors_total",
			Help:      "Error responses written, by error code.",
		},
		[]string{"code"},
	)

	rateLimitRejects = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rate_limit_rejects_total",
			Help:      "Requests rejected before reaching vcgencmd because of rate limiting.",
		},
	)

	panicRecoveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "panic_recoveries_total",
			Help:      "Panics recovered in HTTP handlers.",
		},
	)
)

func recordError(code errors.ErrorCode) {
	httpErrorsTotal.WithLabelValues(string(code)).Inc()
}

// metricsMiddleware records request rate, latency and status per route
// pattern. Labeling by pattern keeps unknown paths from growing cardinality.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := newResponseWriter(w)
		next.ServeHTTP(wrapped, r)

		route := r.Pattern
		if route == "" {
			route = unmatchedRoute
		}
		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.Status())).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	}
}
