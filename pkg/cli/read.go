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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/vcgencmd/pkg/errors"
	"github.com/NVIDIA/vcgencmd/pkg/snapshot"
	"github.com/NVIDIA/vcgencmd/pkg/vcgencmd"
)

func (a *app) tempCmd() *cli.Command {
	return &cli.Command{
		Name:    "temp",
		Aliases: []string{"temperature"},
		Usage:   "Read the SoC temperature in degrees Celsius",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			v, err := a.client(cmd).MeasureTemp(ctx)
			if err != nil {
				return err
			}
			return write(ctx, cmd, snapshot.NewReading(vcgencmd.CommandMeasureTemp, nil, v, version))
		},
	}
}

func (a *app) voltsCmd() *cli.Command {
	return a.sourcedCmd("volts", "Read a rail voltage in volts", vcgencmd.CategoryVolt, vcgencmd.VoltCore)
}

func (a *app) memCmd() *cli.Command {
	return a.sourcedCmd("mem", "Read the memory assigned to the ARM or GPU in megabytes", vcgencmd.CategoryMem, vcgencmd.MemArm)
}

func (a *app) clockCmd() *cli.Command {
	return a.sourcedCmd("clock", "Read a clock frequency in hertz", vcgencmd.CategoryClock, vcgencmd.ClockArm)
}

// sourcedCmd reads one source of category c, or every source with --all.
func (a *app) sourcedCmd(cmdName, usage string, c vcgencmd.Category, def vcgencmd.Source) *cli.Command {
	return &cli.Command{
		Name:  cmdName,
		Usage: usage,
		Flags: []cli.Flag{
			sourceFlag(c, def),
			&cli.BoolFlag{
				Name:  "all",
				Usage: "read every " + c.String() + " source",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client := a.client(cmd)

			if cmd.Bool("all") {
				var out []*snapshot.Reading
				for _, src := range vcgencmd.SourcesOf(c) {
					r, err := readSource(ctx, client, src)
					if err != nil {
						return err
					}
					out = append(out, r)
				}
				return write(ctx, cmd, out)
			}

			src, err := vcgencmd.ParseSource(c, cmd.String(flagSource))
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid --source", err)
			}
			r, err := readSource(ctx, client, src)
			if err != nil {
				return err
			}
			return write(ctx, cmd, r)
		},
	}
}

func readSource(ctx context.Context, client *vcgencmd.Client, src vcgencmd.Source) (*snapshot.Reading, error) {
	v, err := client.Measure(ctx, src)
	if err != nil {
		return nil, err
	}
	return snapshot.NewReading(snapshot.CommandFor(src.Category()), src, v, version), nil
}
