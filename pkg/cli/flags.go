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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/vcgencmd/pkg/defaults"
	"github.com/NVIDIA/vcgencmd/pkg/errors"
	"github.com/NVIDIA/vcgencmd/pkg/logging"
	"github.com/NVIDIA/vcgencmd/pkg/serializer"
	"github.com/NVIDIA/vcgencmd/pkg/vcgencmd"
)

const (
	flagLogLevel     = "log-level"
	flagVcgencmdPath = "vcgencmd-path"
	flagSudo         = "sudo"
	flagTimeout      = "timeout"
	flagFormat       = "format"
	flagOutput       = "output"
	flagSource       = "source"
)

// globalFlags are inherited by every subcommand. A fresh set is built per
// root command since flags keep parse state.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagLogLevel,
			Usage:   "log level (debug, info, warn, error)",
			Value:   "info",
			Sources: cli.EnvVars(logging.EnvLogLevel),
		},
		&cli.StringFlag{
			Name:    flagVcgencmdPath,
			Usage:   "vcgencmd binary, resolved through PATH when not absolute",
			Value:   vcgencmd.DefaultPath,
			Sources: cli.EnvVars(vcgencmd.EnvPath),
		},
		&cli.BoolFlag{
			Name:    flagSudo,
			Usage:   "run vcgencmd through sudo",
			Sources: cli.EnvVars(vcgencmd.EnvSudo),
		},
		&cli.DurationFlag{
			Name:    flagTimeout,
			Usage:   "timeout for a single vcgencmd invocation",
			Value:   defaults.CommandTimeout,
			Sources: cli.EnvVars(vcgencmd.EnvTimeout),
		},
		&cli.StringFlag{
			Name:    flagFormat,
			Aliases: []string{"t"},
			Usage:   fmt.Sprintf("output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
			Value:   string(serializer.FormatYAML),
			Sources: cli.EnvVars("VCGEN_FORMAT"),
		},
		&cli.StringFlag{
			Name:    flagOutput,
			Aliases: []string{"o"},
			Usage:   "output file path (default: stdout)",
		},
	}
}

func sourceFlag(c vcgencmd.Category, def vcgencmd.Source) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    flagSource,
		Aliases: []string{"s"},
		Usage:   fmt.Sprintf("%s source (supported values: %s)", c, strings.Join(sourceTokens(c), ", ")),
		Value:   def.Token(),
	}
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	format := serializer.Format(strings.ToLower(strings.TrimSpace(cmd.String(flagFormat))))
	if format.IsUnknown() {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown output format: %q", cmd.String(flagFormat)),
			map[string]any{"supported": serializer.SupportedFormats()})
	}
	return format, nil
}

// write serializes v per the --format and --output flags. Without --output
// it writes to the root command's writer, which is stdout unless replaced.
func write(ctx context.Context, cmd *cli.Command, v any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	var ser *serializer.Writer
	if path := strings.TrimSpace(cmd.String(flagOutput)); path != "" {
		ser = serializer.NewFileWriterOrStdout(format, path)
	} else {
		ser = serializer.NewWriter(format, cmd.Root().Writer)
	}
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	return ser.Serialize(ctx, v)
}

func sourceTokens(c vcgencmd.Category) []string {
	var out []string
	for _, s := range vcgencmd.SourcesOf(c) {
		out = append(out, s.Token())
	}
	return out
}
