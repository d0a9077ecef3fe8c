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

// Package server provides the HTTP server behind vcgend.
//
// The server owns the system routes and the middleware chain; API handlers
// are supplied by the caller:
//
//	s := server.New(
//	    server.WithName("vcgend"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/temperature": h.Temperature,
//	    }),
//	    server.WithCollector(exporter.New(client)),
//	)
//	err := s.Run(ctx)
//
// # System routes
//
//	GET /         name, version, readiness and the route list
//	GET /health   liveness; never runs vcgencmd
//	GET /ready    readiness; 503 until listening or while the readiness check fails
//	GET /metrics  Prometheus metrics from the server's registry and the default one
//
// # Middleware
//
// API handlers run behind, outermost first: request metrics, API version
// negotiation, request IDs (X-Request-Id, generated with google/uuid when
// absent or invalid), panic recovery, a GET/HEAD method filter, token-bucket
// rate limiting (golang.org/x/time/rate) and request logging.
//
// # Errors
//
// Errors are JSON ErrorResponse bodies. WriteErrorFromErr maps a
// StructuredError code to a status: INVALID_REQUEST 400,
// METHOD_NOT_ALLOWED 405, RATE_LIMIT_EXCEEDED 429, MALFORMED_RESPONSE 502,
// EXECUTION_FAILED 503 and anything else 500.
//
// # Configuration
//
// NewConfig reads PORT, VCGEND_ADDRESS, VCGEND_RATE_LIMIT,
// VCGEND_RATE_LIMIT_BURST and SHUTDOWN_TIMEOUT_SECONDS.
package server
