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

package vcgencmd

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/vcgencmd/pkg/defaults"
	"github.com/NVIDIA/vcgencmd/pkg/errors"
)

const (
	// DefaultPath is the vcgencmd binary looked up in PATH when none is configured.
	DefaultPath = "vcgencmd"

	sudoCommand = "sudo"

	// EnvPath overrides Config.Path.
	EnvPath = "VCGENCMD_PATH"
	// EnvSudo enables Config.Sudo when set to a true value.
	EnvSudo = "VCGENCMD_SUDO"
	// EnvTimeout overrides Config.Timeout, e.g. "2s".
	EnvTimeout = "VCGENCMD_TIMEOUT"
)

// Invoker runs vcgencmd with the given arguments and returns its standard output.
type Invoker interface {
	Invoke(ctx context.Context, args ...string) (string, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, args ...string) (string, error)

// Invoke implements Invoker.
func (f InvokerFunc) Invoke(ctx context.Context, args ...string) (string, error) {
	return f(ctx, args...)
}

// Config holds configuration for running vcgencmd.
type Config struct {
	// Path is the vcgencmd binary, resolved through PATH when not absolute.
	Path string
	// Sudo runs vcgencmd through sudo, for users outside the video group.
	Sudo bool
	// Timeout bounds a single invocation.
	Timeout time.Duration
}

// ConfigFromEnv returns a Config populated from VCGENCMD_PATH, VCGENCMD_SUDO
// and VCGENCMD_TIMEOUT, with defaults for anything unset or invalid.
func ConfigFromEnv() Config {
	var cfg Config
	cfg.Path = os.Getenv(EnvPath)
	if v := os.Getenv(EnvSudo); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Sudo = b
		}
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return normalizeConfig(cfg)
}

func normalizeConfig(cfg Config) Config {
	normalized := cfg
	normalized.Path = strings.TrimSpace(normalized.Path)
	if normalized.Path == "" {
		normalized.Path = DefaultPath
	}
	if normalized.Timeout <= 0 {
		normalized.Timeout = defaults.CommandTimeout
	}
	return normalized
}

// ExecInvoker runs vcgencmd as a child process.
type ExecInvoker struct {
	config Config
}

// NewExecInvoker creates an ExecInvoker, filling in defaults as required.
func NewExecInvoker(cfg Config) *ExecInvoker {
	return &ExecInvoker{config: normalizeConfig(cfg)}
}

// Config returns the normalized configuration.
func (e *ExecInvoker) Config() Config {
	return e.config
}

// Invoke implements Invoker. Failures to start the process, non-zero exits
// and timeouts are all reported as ErrCodeExecution.
func (e *ExecInvoker) Invoke(ctx context.Context, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", execFailure("context done before invocation", err, args)
	}

	name, argv, err := e.command(args)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, argv...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// sudo and wrapper scripts leave grandchildren holding the pipes.
	cmd.WaitDelay = defaults.CommandWaitDelay
	killProcessGroup(cmd)

	slog.Debug("invoking vcgencmd", slog.String("path", name), slog.Any("args", argv))

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		se := execFailure("vcgencmd failed", err, args)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			se.With("stderr", msg)
		}
		return "", se
	}

	return stdout.String(), nil
}

// command resolves the binary and prepends sudo when configured.
func (e *ExecInvoker) command(args []string) (string, []string, error) {
	bin, err := exec.LookPath(e.config.Path)
	if err != nil {
		return "", nil, execFailure(fmt.Sprintf("%s not found", e.config.Path), err, args)
	}
	if !e.config.Sudo {
		return bin, args, nil
	}

	sudo, err := exec.LookPath(sudoCommand)
	if err != nil {
		return "", nil, execFailure("sudo not found", err, args)
	}
	// -n: never prompt for a password from a library call.
	return sudo, append([]string{"-n", bin}, args...), nil
}

func execFailure(msg string, cause error, args []string) *errors.StructuredError {
	return errors.WrapWithContext(errors.ErrCodeExecution, msg, cause, map[string]any{"args": args})
}
