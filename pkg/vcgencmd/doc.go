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

// Package vcgencmd binds the Raspberry Pi vcgencmd utility.
//
// It renders typed measurement selectors into vcgencmd arguments, runs the
// utility and parses its fixed-format text output into Go values.
//
// # Sources
//
// Commands that measure a hardware block take a Source. Sources form a closed
// set of three enumerations:
//
//	ClockSource  measure_clock  arm core dpi emmc h264 hdmi isp pixel pwm uart v3d vec
//	VoltSource   measure_volts  core sdram_c sdram_i sdram_p
//	MemSource    get_mem        arm gpu
//
// # Usage
//
//	c := vcgencmd.NewClient()
//	temp, err := c.MeasureTemp(ctx)           // 42.8 from "temp=42.8'C"
//	volts, err := c.MeasureVolts(ctx, vcgencmd.VoltCore)
//	hz, err := c.MeasureClock(ctx, vcgencmd.ClockArm)
//	status, err := c.GetThrottledStatus(ctx)
//
// Package-level functions use a default client configured from
// VCGENCMD_PATH, VCGENCMD_SUDO and VCGENCMD_TIMEOUT.
//
// # Errors
//
// Every measurement fails with exactly one of two kinds, distinguishable with
// IsExecutionError and IsMalformedResponse (or errors.CodeOf):
//
//   - ErrCodeExecution: vcgencmd could not be started, exited non-zero or timed out
//   - ErrCodeMalformedResponse: the output did not match the expected format
//
// Passing an undeclared source value (e.g. ClockSource(99)) is rejected with
// ErrCodeInvalidRequest before anything is executed.
//
// # Throttling
//
// DecodeThrottled turns the get_throttled bit pattern into a ThrottledStatus.
// Bits 0-3 describe the current state and bits 16-19 what happened since boot,
// following the firmware documentation. If a firmware release changes that
// layout, the Bit* constants are the single place to update.
package vcgencmd
