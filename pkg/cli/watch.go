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
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/vcgencmd/pkg/defaults"
	"github.com/NVIDIA/vcgencmd/pkg/errors"
)

func (a *app) watchCmd() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Take a snapshot every interval until interrupted",
		Description: `Polls the board and writes one snapshot per interval. With --output the
file always holds the latest snapshot. Stops after --count snapshots when
set, otherwise on SIGINT or SIGTERM.`,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:    "interval",
				Aliases: []string{"n"},
				Usage:   fmt.Sprintf("time between snapshots (minimum %s)", defaults.CLIWatchMinInterval),
				Value:   defaults.CLIWatchInterval,
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "number of snapshots to take, 0 for no limit",
			},
			categoryFlag(),
			concurrencyFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			interval := cmd.Duration("interval")
			if interval < defaults.CLIWatchMinInterval {
				return errors.NewWithContext(errors.ErrCodeInvalidRequest, "--interval is too short",
					map[string]any{"interval": interval.String(), "minimum": defaults.CLIWatchMinInterval.String()})
			}
			count := cmd.Int("count")
			if count < 0 {
				return errors.New(errors.ErrCodeInvalidRequest, "--count must not be negative")
			}

			s, err := a.snapshotter(cmd)
			if err != nil {
				return err
			}

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for n := 1; ; n++ {
				snap, err := s.Collect(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					return err
				}
				if err := write(ctx, cmd, snap); err != nil {
					return err
				}
				slog.Debug("watch snapshot written", "n", n, "errors", len(snap.Errors))

				if count > 0 && n >= count {
					return nil
				}

				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}
}
