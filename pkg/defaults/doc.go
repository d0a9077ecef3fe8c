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

// Package defaults provides centralized configuration constants for vcgencmd
// bindings, the vcgen CLI and the vcgend server.
//
// # Timeout Categories
//
//   - Command timeouts: a single vcgencmd invocation
//   - Snapshot timeouts: collecting every reading at once
//   - Handler timeouts: HTTP request processing
//   - Server timeouts: HTTP server configuration
//   - CLI defaults: polling intervals
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CommandTimeout)
//	defer cancel()
//
// vcgencmd normally answers in a few milliseconds; the command timeout only
// guards against a wedged firmware mailbox.
package defaults
