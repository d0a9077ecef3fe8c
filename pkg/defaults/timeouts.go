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

package defaults

import "time"

// Command timeouts for vcgencmd invocations.
const (
	// CommandTimeout bounds a single vcgencmd invocation.
	// Callers should respect parent context deadlines when shorter.
	CommandTimeout = 5 * time.Second

	// CommandWaitDelay is how long a timed-out invocation waits for its
	// output pipes to close before they are closed forcibly.
	CommandWaitDelay = 500 * time.Millisecond
)

// Snapshot and exporter timeouts.
const (
	// SnapshotTimeout bounds collection of every reading into one snapshot.
	SnapshotTimeout = 30 * time.Second

	// SnapshotConcurrency is the number of vcgencmd processes a snapshot runs at once.
	SnapshotConcurrency = 4

	// ScrapeTimeout bounds a single Prometheus scrape of the exporter.
	ScrapeTimeout = 15 * time.Second
)

// Handler timeouts for HTTP request processing.
const (
	// ReadingHandlerTimeout is the timeout for single-reading requests.
	ReadingHandlerTimeout = 10 * time.Second

	// SnapshotHandlerTimeout is the timeout for snapshot requests.
	// Must not be shorter than SnapshotTimeout.
	SnapshotHandlerTimeout = 30 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 45 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// HTTP client timeouts for fetching snapshots from a remote vcgend.
const (
	// HTTPClientTimeout bounds a whole remote request.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout bounds TCP connection establishment.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout bounds the TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout bounds the wait for response headers.
	// vcgend answers a snapshot only after collecting it.
	HTTPResponseHeaderTimeout = SnapshotHandlerTimeout

	// HTTPKeepAlive is the TCP keep-alive period.
	HTTPKeepAlive = 30 * time.Second

	// HTTPIdleConnTimeout closes idle pooled connections.
	HTTPIdleConnTimeout = 90 * time.Second
)

// CLI defaults for command-line operations.
const (
	// CLIWatchInterval is the default polling interval of the watch command.
	CLIWatchInterval = 5 * time.Second

	// CLIWatchMinInterval is the shortest interval the watch command accepts.
	CLIWatchMinInterval = 500 * time.Millisecond
)
