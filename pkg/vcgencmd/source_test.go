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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSourceTokens(t *testing.T) {
	tests := []struct {
		src  Source
		want string
	}{
		{ClockArm, "arm"},
		{ClockCore, "core"},
		{ClockDpi, "dpi"},
		{ClockEmmc, "emmc"},
		{ClockH264, "h264"},
		{ClockHdmi, "hdmi"},
		{ClockIsp, "isp"},
		{ClockPixel, "pixel"},
		{ClockPwm, "pwm"},
		{ClockUart, "uart"},
		{ClockV3d, "v3d"},
		{ClockVec, "vec"},
		{VoltCore, "core"},
		{VoltSdramC, "sdram_c"},
		{VoltSdramI, "sdram_i"},
		{VoltSdramP, "sdram_p"},
		{MemArm, "arm"},
		{MemGpu, "gpu"},
	}

	for _, tt := range tests {
		t.Run(tt.src.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.src.Token())
			assert.True(t, tt.src.Valid())
		})
	}

	assert.Len(t, AllSources(), len(tests), "every declared source must be covered")
}

func TestAllSources_TokensNonEmptyAndUnique(t *testing.T) {
	perCategory := make(map[Category]map[string]bool)
	qualified := make(map[string]bool)

	for _, s := range AllSources() {
		require.NotEmpty(t, s.Token(), "source %v has no token", s)

		if perCategory[s.Category()] == nil {
			perCategory[s.Category()] = make(map[string]bool)
		}
		assert.False(t, perCategory[s.Category()][s.Token()], "duplicate token %q in %s", s.Token(), s.Category())
		perCategory[s.Category()][s.Token()] = true

		assert.False(t, qualified[s.String()], "duplicate source %q", s.String())
		qualified[s.String()] = true
	}
}

func TestUndeclaredSources(t *testing.T) {
	for _, s := range []Source{ClockSource(-1), ClockSource(len(ClockSources)), VoltSource(42), MemSource(7)} {
		assert.False(t, s.Valid(), "%T(%v)", s, s)
		assert.Empty(t, s.Token())
		assert.Contains(t, s.String(), "<invalid>")
	}
}

func TestParseSource(t *testing.T) {
	src, err := ParseSource(CategoryVolt, "SDRAM_C")
	require.NoError(t, err)
	assert.Equal(t, VoltSdramC, src)

	src, err = ParseSource(CategoryMem, " gpu ")
	require.NoError(t, err)
	assert.Equal(t, MemGpu, src)

	_, err = ParseSource(CategoryMem, "core")
	assert.Error(t, err)

	// Every declared source round-trips through its token.
	for _, s := range AllSources() {
		got, err := ParseSource(s.Category(), s.Token())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"clock", CategoryClock, false},
		{"Clocks", CategoryClock, false},
		{"mem", CategoryMem, false},
		{"memory", CategoryMem, false},
		{"volt", CategoryVolt, false},
		{"volts", CategoryVolt, false},
		{"temp", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, c := range Categories {
		got, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestCommandCategory(t *testing.T) {
	tests := []struct {
		cmd          Command
		wantCategory Category
		wantSource   bool
	}{
		{CommandMeasureTemp, 0, false},
		{CommandGetThrottled, 0, false},
		{CommandMeasureVolts, CategoryVolt, true},
		{CommandMeasureClock, CategoryClock, true},
		{CommandGetMem, CategoryMem, true},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.String(), func(t *testing.T) {
			c, ok := tt.cmd.Category()
			assert.Equal(t, tt.wantSource, ok)
			assert.Equal(t, tt.wantCategory, c)
		})
	}
	assert.Len(t, Commands, len(tests))
}

func TestArgs(t *testing.T) {
	assert.Equal(t, []string{"measure_temp"}, Args(CommandMeasureTemp, nil))
	assert.Equal(t, []string{"measure_clock", "arm"}, Args(CommandMeasureClock, ClockArm))
	assert.Equal(t, []string{"measure_volts", "sdram_p"}, Args(CommandMeasureVolts, VoltSdramP))
	assert.Equal(t, []string{"get_mem", "gpu"}, Args(CommandGetMem, MemGpu))
}

func TestSourceTextEncoding(t *testing.T) {
	type selection struct {
		Volt  VoltSource  `json:"volt" yaml:"volt"`
		Clock ClockSource `json:"clock" yaml:"clock"`
		Mem   MemSource   `json:"mem" yaml:"mem"`
	}
	in := selection{Volt: VoltSdramI, Clock: ClockV3d, Mem: MemGpu}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"volt":"sdram_i","clock":"v3d","mem":"gpu"}`, string(b))

	var out selection
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)

	y, err := yaml.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(y), "volt: sdram_i")

	var fromYAML selection
	require.NoError(t, yaml.Unmarshal(y, &fromYAML))
	assert.Equal(t, in, fromYAML)
}

func TestSourceTextEncoding_Errors(t *testing.T) {
	_, err := json.Marshal(VoltSource(9))
	assert.Error(t, err)

	var s ClockSource
	assert.Error(t, json.Unmarshal([]byte(`"gpu"`), &s))
}
