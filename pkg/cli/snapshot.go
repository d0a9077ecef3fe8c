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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/vcgencmd/pkg/defaults"
	"github.com/NVIDIA/vcgencmd/pkg/errors"
	"github.com/NVIDIA/vcgencmd/pkg/serializer"
	"github.com/NVIDIA/vcgencmd/pkg/snapshot"
	"github.com/NVIDIA/vcgencmd/pkg/vcgencmd"
)

func categoryFlag() *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:    "category",
		Aliases: []string{"c"},
		Usage:   "limit sourced readings to a category (clock, mem, volt), can be repeated",
	}
}

func concurrencyFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "concurrency",
		Usage: "number of vcgencmd processes run at once",
		Value: defaults.SnapshotConcurrency,
	}
}

func (a *app) snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Take every reading at once",
		Description: `Reads the temperature, every voltage rail, both memory splits, every clock
and the throttling state in parallel. A reading that fails is reported under
"errors" and does not fail the snapshot.

Use --from to load a snapshot saved earlier or fetch one from a remote vcgend
instead of reading the local board:

  vcgen snapshot --output pi.yaml
  vcgen snapshot --from pi.yaml --format table
  vcgen snapshot --from http://pi.local:8080/v1/snapshot`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "from",
				Aliases: []string{"f"},
				Usage:   "path or http(s) URL of an existing snapshot",
			},
			&cli.BoolFlag{
				Name:  "insecure-skip-verify",
				Usage: "skip TLS verification when --from is an https URL",
			},
			categoryFlag(),
			concurrencyFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if from := cmd.String("from"); from != "" {
				hr := serializer.NewHTTPReader(
					serializer.WithInsecureSkipVerify(cmd.Bool("insecure-skip-verify")),
				)
				snap, err := serializer.FromFile[snapshot.Snapshot](ctx, from, hr)
				if err != nil {
					return fmt.Errorf("failed to load snapshot from %q: %w", from, err)
				}
				return write(ctx, cmd, snap)
			}

			s, err := a.snapshotter(cmd)
			if err != nil {
				return err
			}
			snap, err := s.Collect(ctx)
			if err != nil {
				return err
			}
			if !snap.Complete() {
				slog.Warn("snapshot is partial", "errors", len(snap.Errors))
			}
			return write(ctx, cmd, snap)
		},
	}
}

func (a *app) snapshotter(cmd *cli.Command) (*snapshot.Snapshotter, error) {
	var categories []vcgencmd.Category
	for _, name := range cmd.StringSlice("category") {
		c, err := vcgencmd.ParseCategory(name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid --category", err)
		}
		categories = append(categories, c)
	}

	return &snapshot.Snapshotter{
		Client:      a.client(cmd),
		Version:     version,
		Concurrency: cmd.Int("concurrency"),
		Categories:  categories,
	}, nil
}
