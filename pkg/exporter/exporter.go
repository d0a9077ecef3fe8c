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

package exporter

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/NVIDIA/vcgencmd/pkg/defaults"
	"github.com/NVIDIA/vcgencmd/pkg/snapshot"
	"github.com/NVIDIA/vcgencmd/pkg/vcgencmd"
)

const namespace = "vcgencmd"

var (
	upDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "up"),
		"Whether every reading of the last scrape succeeded.",
		nil, nil,
	)
	scrapeErrorsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "scrape", "errors"),
		"Number of readings that failed in the last scrape.",
		nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "scrape", "duration_seconds"),
		"Time taken by the last scrape.",
		nil, nil,
	)
	temperatureDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "temperature_celsius"),
		"SoC temperature in degrees Celsius.",
		nil, nil,
	)
	voltageDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "voltage_volts"),
		"Voltage of a rail in volts.",
		[]string{"source"}, nil,
	)
	memoryDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "memory_megabytes"),
		"Memory assigned to the ARM or GPU in megabytes.",
		[]string{"source"}, nil,
	)
	clockDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "", "clock_hertz"),
		"Frequency of a clock domain in hertz.",
		[]string{"source"}, nil,
	)
	throttledBitsDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "throttled", "bits"),
		"Raw get_throttled bit pattern.",
		nil, nil,
	)
	throttledConditionDesc = prometheus.NewDesc(
		prometheus.BuildFQName(namespace, "throttled", "condition"),
		"Whether a throttle condition bit is set.",
		[]string{"condition"}, nil,
	)
)

// Exporter is a prometheus.Collector that reads vcgencmd on every scrape.
type Exporter struct {
	snapshotter *snapshot.Snapshotter
	timeout     time.Duration
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithTimeout bounds each scrape. Defaults to defaults.ScrapeTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Exporter) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithConcurrency bounds the vcgencmd processes a scrape runs at once.
func WithConcurrency(n int) Option {
	return func(e *Exporter) {
		e.snapshotter.Concurrency = n
	}
}

// New creates an Exporter reading through client.
func New(client *vcgencmd.Client, opts ...Option) *Exporter {
	e := &Exporter{
		snapshotter: &snapshot.Snapshotter{Client: client},
		timeout:     defaults.ScrapeTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Describe implements prometheus.Collector.
func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeErrorsDesc
	ch <- scrapeDurationDesc
	ch <- temperatureDesc
	ch <- voltageDesc
	ch <- memoryDesc
	ch <- clockDesc
	ch <- throttledBitsDesc
	ch <- throttledConditionDesc
}

// Collect implements prometheus.Collector.
func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	start := time.Now()
	snap, err := e.snapshotter.Collect(ctx)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())

	if err != nil {
		slog.Warn("vcgencmd scrape failed", slog.String("error", err.Error()))
		ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, 0)
		// every reading counts as failed
		ch <- prometheus.MustNewConstMetric(scrapeErrorsDesc, prometheus.GaugeValue,
			float64(len(vcgencmd.AllSources())+2))
		return
	}

	for reading, msg := range snap.Errors {
		slog.Debug("vcgencmd reading failed during scrape", slog.String("reading", reading), slog.String("error", msg))
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, boolValue(snap.Complete()))
	ch <- prometheus.MustNewConstMetric(scrapeErrorsDesc, prometheus.GaugeValue, float64(len(snap.Errors)))

	if snap.Temperature != nil {
		ch <- prometheus.MustNewConstMetric(temperatureDesc, prometheus.GaugeValue, *snap.Temperature)
	}
	for token, v := range snap.Volts {
		ch <- prometheus.MustNewConstMetric(voltageDesc, prometheus.GaugeValue, v, token)
	}
	for token, v := range snap.Mem {
		ch <- prometheus.MustNewConstMetric(memoryDesc, prometheus.GaugeValue, v, token)
	}
	for token, v := range snap.Clocks {
		ch <- prometheus.MustNewConstMetric(clockDesc, prometheus.GaugeValue, float64(v), token)
	}
	if t := snap.Throttled; t != nil {
		ch <- prometheus.MustNewConstMetric(throttledBitsDesc, prometheus.GaugeValue, float64(t.Bits))
		for _, c := range vcgencmd.Conditions {
			ch <- prometheus.MustNewConstMetric(throttledConditionDesc, prometheus.GaugeValue,
				boolValue(t.Status.Get(c.Bit)), c.Name)
		}
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
