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

package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/vcgencmd/pkg/defaults"
	"github.com/NVIDIA/vcgencmd/pkg/vcgencmd"
)

// Snapshotter reads every declared source in parallel.
type Snapshotter struct {
	// Client performs the readings. If nil, vcgencmd.Default() is used.
	Client *vcgencmd.Client

	// Version is stamped into each snapshot's metadata.
	Version string

	// Concurrency bounds the number of vcgencmd processes running at once.
	// Zero means defaults.SnapshotConcurrency.
	Concurrency int

	// Categories limits which sourced readings are taken. Empty means all.
	Categories []vcgencmd.Category
}

// Collect takes a snapshot. A failed reading is recorded in Snapshot.Errors
// and does not stop the others; only a done context fails the collection.
func (s *Snapshotter) Collect(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("snapshot canceled: %w", err)
	}

	client := s.Client
	if client == nil {
		client = vcgencmd.Default()
	}
	limit := s.Concurrency
	if limit <= 0 {
		limit = defaults.SnapshotConcurrency
	}

	slog.Debug("starting snapshot", slog.Int("concurrency", limit))

	start := time.Now()
	defer func() {
		snapshotCollectionDuration.Observe(time.Since(start).Seconds())
	}()

	ctx, cancel := context.WithTimeout(ctx, defaults.SnapshotTimeout)
	defer cancel()

	snap := New(s.Version)
	if host, err := os.Hostname(); err == nil {
		snap.Set("hostname", host)
	}

	var mu sync.Mutex
	fail := func(key string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if snap.Errors == nil {
			snap.Errors = make(map[string]string)
		}
		snap.Errors[key] = err.Error()
		slog.Debug("snapshot reading failed", slog.String("reading", key), slog.String("error", err.Error()))
	}

	// Readings never return an error to the group so one failure cannot
	// cancel the rest.
	var g errgroup.Group
	g.SetLimit(limit)

	g.Go(func() error {
		v, err := client.MeasureTemp(ctx)
		if err != nil {
			fail(KeyTemperature, err)
			return nil
		}
		mu.Lock()
		snap.Temperature = &v
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		bits, err := client.GetThrottled(ctx)
		if err != nil {
			fail(KeyThrottled, err)
			return nil
		}
		t := NewThrottle(bits)
		mu.Lock()
		snap.Throttled = &t
		mu.Unlock()
		return nil
	})

	for _, src := range s.sources() {
		g.Go(func() error {
			s.read(ctx, client, src, snap, &mu, fail)
			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("snapshot did not complete: %w", err)
	}

	snapshotReadingErrors.Set(float64(len(snap.Errors)))
	if snap.Complete() {
		snapshotCollectionTotal.WithLabelValues("complete").Inc()
	} else {
		snapshotCollectionTotal.WithLabelValues("partial").Inc()
	}

	slog.Debug("snapshot collection complete",
		slog.Int("readings", snap.Readings()),
		slog.Int("errors", len(snap.Errors)))

	return snap, nil
}

func (s *Snapshotter) read(ctx context.Context, client *vcgencmd.Client, src vcgencmd.Source,
	snap *Snapshot, mu *sync.Mutex, fail func(string, error)) {
	switch v := src.(type) {
	case vcgencmd.VoltSource:
		volts, err := client.MeasureVolts(ctx, v)
		if err != nil {
			fail(src.String(), err)
			return
		}
		mu.Lock()
		snap.Volts[v.Token()] = volts
		mu.Unlock()
	case vcgencmd.MemSource:
		mb, err := client.GetMem(ctx, v)
		if err != nil {
			fail(src.String(), err)
			return
		}
		mu.Lock()
		snap.Mem[v.Token()] = mb
		mu.Unlock()
	case vcgencmd.ClockSource:
		hz, err := client.MeasureClock(ctx, v)
		if err != nil {
			fail(src.String(), err)
			return
		}
		mu.Lock()
		snap.Clocks[v.Token()] = hz
		mu.Unlock()
	}
}

func (s *Snapshotter) sources() []vcgencmd.Source {
	if len(s.Categories) == 0 {
		return vcgencmd.AllSources()
	}
	var out []vcgencmd.Source
	for _, c := range s.Categories {
		out = append(out, vcgencmd.SourcesOf(c)...)
	}
	return out
}
