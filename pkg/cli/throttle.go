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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/vcgencmd/pkg/errors"
	"github.com/NVIDIA/vcgencmd/pkg/snapshot"
	"github.com/NVIDIA/vcgencmd/pkg/vcgencmd"
)

func (a *app) throttledCmd() *cli.Command {
	return &cli.Command{
		Name:  "throttled",
		Usage: "Read and decode the throttling state",
		Description: `Reads get_throttled and decodes it. The low bits report the current
state, the high bits what has happened since boot:

  bit 0   under-voltage detected
  bit 1   arm frequency capped
  bit 2   currently throttled
  bit 3   soft temperature limit active
  bit 16  under-voltage has occurred
  bit 17  arm frequency capping has occurred
  bit 18  throttling has occurred
  bit 19  soft temperature limit has occurred

Use --raw to print vcgencmd's output unparsed.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "print the unparsed vcgencmd output",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client := a.client(cmd)

			if cmd.Bool("raw") {
				out, err := client.Exec(ctx, vcgencmd.CommandGetThrottled, nil)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.Root().Writer, strings.TrimSpace(out))
				return err
			}

			bits, err := client.GetThrottled(ctx)
			if err != nil {
				return err
			}
			return write(ctx, cmd, snapshot.NewThrottleReport(bits, version))
		},
	}
}

func decodeCmd() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode a throttling bit pattern without running vcgencmd",
		ArgsUsage: "<bits>",
		Description: `Decodes a get_throttled bit pattern given in hex (0x50005) or decimal,
for example one copied from a log.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New(errors.ErrCodeInvalidRequest, "decode takes exactly one bit pattern")
			}
			bits, err := vcgencmd.ParsePattern(cmd.Args().First())
			if err != nil {
				return err
			}
			return write(ctx, cmd, snapshot.NewThrottleReport(bits, version))
		},
	}
}

// Sources lists the declared commands and source tokens.
type Sources struct {
	Commands []string            `json:"commands" yaml:"commands"`
	Sources  map[string][]string `json:"sources" yaml:"sources"`
}

func sourcesCmd() *cli.Command {
	return &cli.Command{
		Name:  "sources",
		Usage: "List the commands and sources vcgen can read",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := Sources{Sources: make(map[string][]string, len(vcgencmd.Categories))}
			for _, c := range vcgencmd.Commands {
				out.Commands = append(out.Commands, c.String())
			}
			for _, c := range vcgencmd.Categories {
				out.Sources[c.String()] = sourceTokens(c)
			}
			return write(ctx, cmd, out)
		},
	}
}
