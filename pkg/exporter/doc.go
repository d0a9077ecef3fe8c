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

// Package exporter exposes vcgencmd readings as Prometheus metrics.
//
// Exporter implements prometheus.Collector. Every scrape takes a fresh
// snapshot, so readings are never older than the scrape itself:
//
//	reg := prometheus.NewRegistry()
//	reg.MustRegister(exporter.New(client))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// Series:
//
//	vcgencmd_up                                   1 when every reading succeeded
//	vcgencmd_scrape_errors                        failed readings in this scrape
//	vcgencmd_scrape_duration_seconds              time taken by this scrape
//	vcgencmd_temperature_celsius                  SoC temperature
//	vcgencmd_voltage_volts{source}                voltage per rail
//	vcgencmd_memory_megabytes{source}             arm/gpu memory split
//	vcgencmd_clock_hertz{source}                  frequency per clock domain
//	vcgencmd_throttled_bits                       raw get_throttled pattern
//	vcgencmd_throttled_condition{condition}       1 when the condition bit is set
//
// A reading that fails is omitted from the scrape rather than reported as 0.
package exporter
