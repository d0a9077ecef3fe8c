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

// Package api wires the vcgencmd readings into the vcgend HTTP server.
//
// # Usage
//
//	client := vcgencmd.NewClient(vcgencmd.WithConfig(vcgencmd.ConfigFromEnv()))
//	if err := api.Serve(ctx, client); err != nil {
//	    log.Fatalf("server error: %v", err)
//	}
//
// The pkg/server package handles the HTTP lifecycle, middleware, health
// and readiness endpoints. This package adds the reading handlers and
// registers the Prometheus exporter.
//
// # Endpoints
//
// Application endpoints (rate limited, GET only):
//   - GET /v1/temperature          - SoC temperature in degrees Celsius
//   - GET /v1/volts?source=core    - Rail voltage (core, sdram_c, sdram_i, sdram_p)
//   - GET /v1/mem?source=arm       - Memory split in megabytes (arm, gpu)
//   - GET /v1/clock?source=arm     - Clock frequency in hertz
//   - GET /v1/throttled            - Decoded throttling state
//   - GET /v1/throttled/decode?bits=0x50005 - Decode a pattern without reading
//   - GET /v1/snapshot             - Every reading at once (category= may repeat)
//   - GET /v1/sources              - Declared commands and source tokens
//
// System endpoints:
//   - GET /health  - Liveness probe
//   - GET /ready   - Readiness probe, fails while vcgencmd cannot run
//   - GET /metrics - Prometheus metrics including the vcgencmd exporter
//
// # Errors
//
// Errors are JSON documents carrying a code, message and request ID. A
// vcgencmd that cannot run maps to 503, output that cannot be parsed to 502
// and a bad source or bit pattern to 400.
//
// Example:
//
//	curl -s "http://localhost:8080/v1/volts?source=sdram_c"
package api
