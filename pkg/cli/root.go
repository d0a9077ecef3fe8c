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

package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/vcgencmd/pkg/errors"
	"github.com/NVIDIA/vcgencmd/pkg/logging"
	"github.com/NVIDIA/vcgencmd/pkg/vcgencmd"
)

const (
	name           = "vcgen"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK       = 0
	exitError    = 1
	exitCanceled = 2
	exitUsage    = 3
)

// app carries what every command needs to reach vcgencmd.
type app struct {
	// clientOpts are applied after the flag-derived config, so tests can
	// swap in a fake invoker.
	clientOpts []vcgencmd.Option
}

// Execute runs the CLI with os.Args and exits with a status derived from
// the returned error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(exitCode(err))
	}
}

func newRootCmd(opts ...vcgencmd.Option) *cli.Command {
	a := &app{clientOpts: opts}

	return &cli.Command{
		Name:                  name,
		Usage:                 "Read Raspberry Pi firmware measurements through vcgencmd",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Description: `vcgen runs the VideoCore vcgencmd utility and reports typed readings:
SoC temperature, rail voltages, the ARM/GPU memory split, clock frequencies
and the decoded throttling state.

Readings can be written as JSON, YAML or a flat table, to stdout or a file.
The serve command exposes the same readings over HTTP with Prometheus metrics.`,
		Flags: globalFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String(flagLogLevel))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			a.tempCmd(),
			a.voltsCmd(),
			a.memCmd(),
			a.clockCmd(),
			a.throttledCmd(),
			decodeCmd(),
			sourcesCmd(),
			a.snapshotCmd(),
			a.watchCmd(),
			a.serveCmd(),
		},
	}
}

// client builds a vcgencmd client from the global flags.
func (a *app) client(cmd *cli.Command) *vcgencmd.Client {
	cfg := vcgencmd.Config{
		Path:    cmd.String(flagVcgencmdPath),
		Sudo:    cmd.Bool(flagSudo),
		Timeout: cmd.Duration(flagTimeout),
	}
	opts := append([]vcgencmd.Option{vcgencmd.WithConfig(cfg)}, a.clientOpts...)
	return vcgencmd.NewClient(opts...)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return exitCanceled
	case errors.IsCode(err, errors.ErrCodeInvalidRequest):
		return exitUsage
	default:
		return exitError
	}
}
