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

// Package logging provides structured logging utilities for the vcgen CLI and
// the vcgend server.
//
// It wraps the standard library slog package with consistent defaults: JSON
// records on stderr, module and version attributes on every record, and
// source locations when running at debug level.
//
// # Log Levels
//
// Supported log levels (case-insensitive): debug, info (default),
// warn/warning, error.
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("vcgend", version)
//	    slog.Info("server starting", "port", 8080)
//	}
//
// Setting an explicit level, as the CLI does from --log-level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("vcgen", version, "debug")
//
// # Environment Configuration
//
// LOG_LEVEL controls the default level:
//
//	LOG_LEVEL=debug vcgend
//
// Library packages (pkg/vcgencmd, pkg/snapshot, pkg/exporter) never configure
// logging themselves and only emit debug records through slog's default logger.
package logging
