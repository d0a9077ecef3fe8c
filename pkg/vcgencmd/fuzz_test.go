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
	"math"
	"testing"
)

// FuzzParseNumeric checks the parser never panics and only returns finite values.
func FuzzParseNumeric(f *testing.F) {
	f.Add("temp=42.8'C")
	f.Add("volt=1.2000V")
	f.Add("arm=448M")
	f.Add("")
	f.Add("=")
	f.Add("==")
	f.Add("temp=")
	f.Add("temp='C")
	f.Add("garbage")
	f.Add("\n\n=\n")
	f.Add("temp=1e400")
	f.Add("temp=0x1p-2'C")

	f.Fuzz(func(t *testing.T, input string) {
		v, err := ParseNumeric(input)
		if err != nil {
			if !IsMalformedResponse(err) {
				t.Errorf("ParseNumeric(%q) returned unexpected error kind: %v", input, err)
			}
			return
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("ParseNumeric(%q) returned non-finite %v", input, v)
		}
	})
}

// FuzzParseBits checks the parser never panics and agrees with the decoder.
func FuzzParseBits(f *testing.F) {
	f.Add("throttled=0x50005")
	f.Add("throttled=0x0")
	f.Add("throttled=0x")
	f.Add("throttled=0")
	f.Add("throttled=0xffffffffff")
	f.Add("")

	f.Fuzz(func(t *testing.T, input string) {
		bits, err := ParseBits(input)
		if err != nil {
			if !IsMalformedResponse(err) {
				t.Errorf("ParseBits(%q) returned unexpected error kind: %v", input, err)
			}
			return
		}
		if DecodeThrottled(bits) != DecodeThrottled(bits) {
			t.Errorf("decoding %#x is not deterministic", bits)
		}
	})
}

// FuzzDecodeThrottled checks every named condition equals its bit.
func FuzzDecodeThrottled(f *testing.F) {
	f.Add(uint32(0))
	f.Add(uint32(0x50005))
	f.Add(uint32(0xF000F))
	f.Add(uint32(0xFFFFFFFF))

	f.Fuzz(func(t *testing.T, bits uint32) {
		s := DecodeThrottled(bits)
		for _, c := range Conditions {
			want := (bits>>c.Bit)&1 == 1
			if s.Get(c.Bit) != want {
				t.Errorf("DecodeThrottled(%#x).%s = %v, want %v", bits, c.Name, !want, want)
			}
		}
		if s.Bits() != bits&definedBits {
			t.Errorf("DecodeThrottled(%#x).Bits() = %#x, want %#x", bits, s.Bits(), bits&definedBits)
		}
	})
}
