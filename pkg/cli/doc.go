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

// Package cli implements the vcgen command-line interface.
//
// # Commands
//
// temp - Read the SoC temperature:
//
//	vcgen temp
//
// volts, mem, clock - Read one source, or every source with --all:
//
//	vcgen volts --source sdram_c
//	vcgen mem --source gpu
//	vcgen clock --all --format table
//
// throttled - Read and decode the throttling state:
//
//	vcgen throttled [--raw]
//
// decode - Decode a bit pattern without running vcgencmd:
//
//	vcgen decode 0x50005
//
// sources - List the declared commands and source tokens.
//
// snapshot - Take every reading at once, or load one with --from:
//
//	vcgen snapshot --output pi.yaml
//	vcgen snapshot --from http://pi.local:8080/v1/snapshot --format table
//
// watch - Take a snapshot every interval:
//
//	vcgen watch --interval 10s --count 6
//
// serve - Run the vcgend HTTP server in the foreground.
//
// # Global Flags
//
//	--log-level      Log level: debug, info, warn, error (env LOG_LEVEL)
//	--vcgencmd-path  vcgencmd binary (env VCGENCMD_PATH)
//	--sudo           Run vcgencmd through sudo (env VCGENCMD_SUDO)
//	--timeout        Per-invocation timeout (env VCGENCMD_TIMEOUT)
//	--format, -t     Output format: yaml, json, table (default: yaml)
//	--output, -o     Output file path (default: stdout)
//
// # Exit Codes
//
//	0  Success
//	1  General error (vcgencmd failed or returned unparsable output)
//	2  Context canceled or timeout
//	3  Invalid arguments
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/vcgencmd/pkg/cli.version=1.0.0'"
package cli
