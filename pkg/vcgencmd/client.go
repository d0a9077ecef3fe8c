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
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NVIDIA/vcgencmd/pkg/errors"
)

// Client reads measurements through vcgencmd. It holds no mutable state and
// is safe for concurrent use.
type Client struct {
	invoker Invoker
}

// Option configures a Client.
type Option func(*Client)

// WithInvoker replaces the process collaborator, e.g. with a fake in tests.
func WithInvoker(inv Invoker) Option {
	return func(c *Client) {
		if inv != nil {
			c.invoker = inv
		}
	}
}

// WithConfig runs vcgencmd as described by cfg.
func WithConfig(cfg Config) Option {
	return func(c *Client) {
		c.invoker = NewExecInvoker(cfg)
	}
}

// NewClient creates a Client. Without options it runs vcgencmd configured
// from the environment (see ConfigFromEnv).
func NewClient(opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	if c.invoker == nil {
		c.invoker = NewExecInvoker(ConfigFromEnv())
	}
	return c
}

// Exec runs cmd with src and returns the unparsed output. src may be nil for
// commands that take no source.
func (c *Client) Exec(ctx context.Context, cmd Command, src Source) (string, error) {
	if err := validate(cmd, src); err != nil {
		return "", err
	}
	out, err := c.invoker.Invoke(ctx, Args(cmd, src)...)
	if err != nil && errors.CodeOf(err) == "" {
		// Custom invokers may return plain errors; they are execution failures.
		return "", execFailure("vcgencmd invocation failed", err, Args(cmd, src))
	}
	return out, err
}

// MeasureTemp returns the SoC temperature in degrees Celsius.
func (c *Client) MeasureTemp(ctx context.Context) (float64, error) {
	return run(ctx, c, CommandMeasureTemp, nil, ParseNumeric)
}

// MeasureVolts returns the voltage of a rail in volts.
func (c *Client) MeasureVolts(ctx context.Context, src VoltSource) (float64, error) {
	return run(ctx, c, CommandMeasureVolts, src, ParseNumeric)
}

// GetMem returns the memory assigned to the ARM or GPU in megabytes.
func (c *Client) GetMem(ctx context.Context, src MemSource) (float64, error) {
	return run(ctx, c, CommandGetMem, src, ParseNumeric)
}

// MeasureClock returns the frequency of a clock domain in hertz.
func (c *Client) MeasureClock(ctx context.Context, src ClockSource) (int64, error) {
	return run(ctx, c, CommandMeasureClock, src, ParseFrequency)
}

// GetThrottled returns the raw throttling bit pattern.
func (c *Client) GetThrottled(ctx context.Context) (uint32, error) {
	return run(ctx, c, CommandGetThrottled, nil, ParseBits)
}

// GetThrottledStatus reads and decodes the throttling bit pattern.
func (c *Client) GetThrottledStatus(ctx context.Context) (ThrottledStatus, error) {
	bits, err := c.GetThrottled(ctx)
	if err != nil {
		return ThrottledStatus{}, err
	}
	return DecodeThrottled(bits), nil
}

// Measure reads any numeric measurement by source: volts, megabytes or hertz
// depending on the source category.
func (c *Client) Measure(ctx context.Context, src Source) (float64, error) {
	switch s := src.(type) {
	case VoltSource:
		return c.MeasureVolts(ctx, s)
	case MemSource:
		return c.GetMem(ctx, s)
	case ClockSource:
		hz, err := c.MeasureClock(ctx, s)
		return float64(hz), err
	}
	return 0, errors.New(errors.ErrCodeInvalidRequest, "source is required")
}

func run[T any](ctx context.Context, c *Client, cmd Command, src Source, parse func(string) (T, error)) (T, error) {
	var zero T
	start := time.Now()
	defer func() {
		invocationDuration.WithLabelValues(cmd.String()).Observe(time.Since(start).Seconds())
	}()

	out, err := c.Exec(ctx, cmd, src)
	if err != nil {
		invocationsTotal.WithLabelValues(cmd.String(), statusOf(err)).Inc()
		slog.Debug("vcgencmd invocation failed", slog.String("command", cmd.String()), slog.String("error", err.Error()))
		return zero, fmt.Errorf("%s: %w", cmd, err)
	}

	v, err := parse(out)
	if err != nil {
		invocationsTotal.WithLabelValues(cmd.String(), statusOf(err)).Inc()
		slog.Debug("unparsable vcgencmd response", slog.String("command", cmd.String()), slog.String("output", out))
		return zero, fmt.Errorf("%s: %w", cmd, err)
	}

	invocationsTotal.WithLabelValues(cmd.String(), "success").Inc()
	return v, nil
}

func validate(cmd Command, src Source) error {
	want, takesSource := cmd.Category()
	switch {
	case !takesSource && src != nil:
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "command takes no source",
			map[string]any{"command": cmd.String()})
	case takesSource && src == nil:
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "command requires a source",
			map[string]any{"command": cmd.String()})
	case takesSource && src.Category() != want:
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "source category mismatch",
			map[string]any{"command": cmd.String(), "source": src.String()})
	case src != nil && !src.Valid():
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "undeclared source",
			map[string]any{"command": cmd.String(), "source": src.String()})
	}
	return nil
}

func statusOf(err error) string {
	switch errors.CodeOf(err) {
	case errors.ErrCodeMalformedResponse:
		return "malformed_response"
	case errors.ErrCodeInvalidRequest:
		return "invalid_request"
	default:
		return "execution_error"
	}
}

// IsMalformedResponse reports whether err means vcgencmd produced unparsable output.
func IsMalformedResponse(err error) bool {
	return errors.IsCode(err, errors.ErrCodeMalformedResponse)
}

// IsExecutionError reports whether err means vcgencmd could not be run.
func IsExecutionError(err error) bool {
	return errors.IsCode(err, errors.ErrCodeExecution)
}
