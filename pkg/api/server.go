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

package api

import (
	"context"
	"log/slog"
	"slices"

	"github.com/NVIDIA/vcgencmd/pkg/exporter"
	"github.com/NVIDIA/vcgencmd/pkg/server"
	"github.com/NVIDIA/vcgencmd/pkg/vcgencmd"
)

const (
	name           = "vcgend"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/vcgencmd/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Version returns the build version.
func Version() string {
	return version
}

// NewServer builds the vcgend server around client. The exporter is served
// on /metrics and /ready fails while vcgencmd cannot be run.
func NewServer(client *vcgencmd.Client, opts ...server.Option) *server.Server {
	h := NewHandler(client, version)

	// Caller options go first so a WithConfig cannot drop the routes.
	base := []server.Option{
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(h.Routes()),
		server.WithCollector(exporter.New(client)),
		server.WithReadinessCheck(func(ctx context.Context) error {
			_, err := client.MeasureTemp(ctx)
			return err
		}),
	}

	return server.New(slices.Concat(opts, base)...)
}

// Serve starts the API server and blocks until ctx is done or a shutdown
// signal arrives.
func Serve(ctx context.Context, client *vcgencmd.Client, opts ...server.Option) error {
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	if err := NewServer(client, opts...).Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
