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
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/vcgencmd/pkg/defaults"
	"github.com/NVIDIA/vcgencmd/pkg/errors"
)

const fakeScript = `#!/bin/sh
case "$1" in
measure_temp) echo "temp=42.8'C" ;;
measure_volts) echo "volt=1.2000V" ;;
fail) echo "VCHI initialization failed" >&2; exit 255 ;;
hang) sleep 5 ;;
orphan) sleep 5 & sleep 5 ;;
*) echo "args=$*" ;;
esac
`

// fakeVcgencmd writes a shell script standing in for vcgencmd.
func fakeVcgencmd(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "vcgencmd")
	require.NoError(t, os.WriteFile(path, []byte(fakeScript), 0o755))
	return path
}

func TestExecInvoker_Invoke(t *testing.T) {
	inv := NewExecInvoker(Config{Path: fakeVcgencmd(t)})

	out, err := inv.Invoke(context.Background(), "measure_temp")
	require.NoError(t, err)
	assert.Equal(t, "temp=42.8'C\n", out)

	out, err = inv.Invoke(context.Background(), "measure_clock", "arm")
	require.NoError(t, err)
	assert.Equal(t, "args=measure_clock arm\n", out)
}

func TestExecInvoker_NonZeroExit(t *testing.T) {
	inv := NewExecInvoker(Config{Path: fakeVcgencmd(t)})

	_, err := inv.Invoke(context.Background(), "fail")
	require.Error(t, err)

	var se *errors.StructuredError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, errors.ErrCodeExecution, se.Code)
	assert.Equal(t, "VCHI initialization failed", se.Context["stderr"])
	assert.Equal(t, []string{"fail"}, se.Context["args"])
	assert.NotContains(t, se.Context, "timeout")
}

func TestExecInvoker_Timeout(t *testing.T) {
	inv := NewExecInvoker(Config{Path: fakeVcgencmd(t), Timeout: 100 * time.Millisecond})

	// "orphan" leaves a background child holding stdout after the script is killed.
	for _, arg := range []string{"hang", "orphan"} {
		t.Run(arg, func(t *testing.T) {
			start := time.Now()
			_, err := inv.Invoke(context.Background(), arg)
			require.Error(t, err)
			assert.Less(t, time.Since(start), 100*time.Millisecond+defaults.CommandWaitDelay+time.Second)

			var se *errors.StructuredError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, errors.ErrCodeExecution, se.Code)
			assert.Equal(t, true, se.Context["timeout"])
		})
	}
}

func TestExecInvoker_CanceledContext(t *testing.T) {
	inv := NewExecInvoker(Config{Path: fakeVcgencmd(t)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := inv.Invoke(ctx, "measure_temp")
	assert.True(t, errors.IsCode(err, errors.ErrCodeExecution))
}

func TestExecInvoker_MissingBinary(t *testing.T) {
	inv := NewExecInvoker(Config{Path: filepath.Join(t.TempDir(), "does-not-exist")})

	_, err := inv.Invoke(context.Background(), "measure_temp")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeExecution))
	assert.Contains(t, err.Error(), "not found")
}

func TestExecInvoker_ThroughClient(t *testing.T) {
	c := NewClient(WithConfig(Config{Path: fakeVcgencmd(t)}))

	v, err := c.MeasureVolts(context.Background(), VoltCore)
	require.NoError(t, err)
	assert.InDelta(t, 1.2, v, 1e-9)

	_, err = c.MeasureClock(context.Background(), ClockArm)
	assert.True(t, IsMalformedResponse(err))
}

func TestNormalizeConfig(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want Config
	}{
		{
			name: "zero value",
			in:   Config{},
			want: Config{Path: DefaultPath, Timeout: defaults.CommandTimeout},
		},
		{
			name: "blank path",
			in:   Config{Path: "  ", Timeout: -time.Second},
			want: Config{Path: DefaultPath, Timeout: defaults.CommandTimeout},
		},
		{
			name: "explicit values kept",
			in:   Config{Path: "/usr/bin/vcgencmd", Sudo: true, Timeout: time.Second},
			want: Config{Path: "/usr/bin/vcgencmd", Sudo: true, Timeout: time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeConfig(tt.in))
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		t.Setenv(EnvPath, "")
		t.Setenv(EnvSudo, "")
		t.Setenv(EnvTimeout, "")

		assert.Equal(t, Config{Path: DefaultPath, Timeout: defaults.CommandTimeout}, ConfigFromEnv())
	})

	t.Run("set", func(t *testing.T) {
		t.Setenv(EnvPath, "/opt/vc/bin/vcgencmd")
		t.Setenv(EnvSudo, "true")
		t.Setenv(EnvTimeout, "2s")

		assert.Equal(t, Config{Path: "/opt/vc/bin/vcgencmd", Sudo: true, Timeout: 2 * time.Second}, ConfigFromEnv())
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		t.Setenv(EnvPath, "")
		t.Setenv(EnvSudo, "maybe")
		t.Setenv(EnvTimeout, "soon")

		assert.Equal(t, Config{Path: DefaultPath, Timeout: defaults.CommandTimeout}, ConfigFromEnv())
	})
}
