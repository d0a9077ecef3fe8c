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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "temperature", input: "temp=42.8'C", want: 42.8},
		{name: "temperature trailing newline", input: "temp=42.8'C\n", want: 42.8},
		{name: "volts", input: "volt=1.2000V", want: 1.2},
		{name: "volts with prefix", input: "core:   volt=1.20V", want: 1.2},
		{name: "memory", input: "arm=448M", want: 448},
		{name: "gpu memory", input: "gpu=76M\n", want: 76},
		{name: "negative temperature", input: "temp=-5.0'C", want: -5},
		{name: "no unit", input: "temp=40", want: 40},
		{name: "spaces around value", input: "temp= 51.5 'C ", want: 51.5},
		{name: "leading noise line", input: "warning: something\ntemp=39.0'C\n", want: 39},
		{name: "garbage", input: "garbage", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: " \n\t", wantErr: true},
		{name: "missing value", input: "temp=", wantErr: true},
		{name: "unit only", input: "temp='C", wantErr: true},
		{name: "not a number", input: "temp=4x2'C", wantErr: true},
		{name: "infinity spelled out", input: "temp=Inf", wantErr: true},
		{name: "nan spelled out", input: "temp=NaN", wantErr: true},
		{name: "truncated", input: "tem", wantErr: true},
		{name: "double dot", input: "volt=1..2V", wantErr: true},
		{name: "huge exponent", input: "volt=1e999V", wantErr: true},
		{name: "exponent", input: "volt=12e-1V", want: 1.2},
		{name: "hex float", input: "temp=0x1p-2'C", wantErr: true},
		{name: "negative hex float", input: "temp=-0X1P+4'C", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNumeric(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsMalformedResponse(err), "expected malformed response, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "arm", input: "frequency(48)=1500398464\n", want: 1500398464},
		{name: "with block prefix", input: "arm:    frequency(45)=700000000", want: 700000000},
		{name: "zero", input: "frequency(29)=0", want: 0},
		{name: "fractional", input: "frequency(1)=1.5", wantErr: true},
		{name: "negative", input: "frequency(1)=-1", wantErr: true},
		{name: "missing delimiter", input: "frequency(1)", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFrequency(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsMalformedResponse(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBits(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    uint32
		wantErr bool
	}{
		{name: "throttled", input: "throttled=0x50005", want: 0x50005},
		{name: "since boot only", input: "throttled=0x50000\n", want: 0x50000},
		{name: "zero", input: "throttled=0x0", want: 0},
		{name: "upper case prefix", input: "throttled=0XE0008", want: 0xE0008},
		{name: "max", input: "throttled=0xffffffff", want: 0xffffffff},
		{name: "missing prefix", input: "throttled=50005", wantErr: true},
		{name: "prefix only", input: "throttled=0x", wantErr: true},
		{name: "truncated prefix", input: "throttled=0", wantErr: true},
		{name: "invalid hex", input: "throttled=0xZZ", wantErr: true},
		{name: "overflow", input: "throttled=0x100000000", wantErr: true},
		{name: "underscore", input: "throttled=0x5_0005", wantErr: true},
		{name: "missing delimiter", input: "throttled", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBits(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsMalformedResponse(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMalformedResponseContext(t *testing.T) {
	_, err := ParseNumeric("garbage")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MALFORMED_RESPONSE")
	assert.False(t, IsExecutionError(err))
}
