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
	"strconv"
	"strings"

	"github.com/NVIDIA/vcgencmd/pkg/errors"
)

const hexPrefix = "0x"

// ParseNumeric parses a "key=value<unit>" response such as "temp=42.8'C" or
// "volt=1.2000V" into its numeric value. Trailing unit characters (letters
// and apostrophes) are stripped.
func ParseNumeric(raw string) (float64, error) {
	value, err := payload(raw)
	if err != nil {
		return 0, err
	}

	number := strings.TrimSpace(strings.TrimRightFunc(value, isUnitRune))
	if number == "" {
		return 0, malformed(raw, "missing numeric value", nil)
	}
	// ParseFloat also takes hex floats ("0x1p-2"); vcgencmd prints decimals only.
	if unsigned := strings.TrimLeft(number, "+-"); len(unsigned) >= len(hexPrefix) &&
		strings.EqualFold(unsigned[:len(hexPrefix)], hexPrefix) {
		return 0, malformed(raw, "hexadecimal numeric value", nil)
	}

	f, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, malformed(raw, "invalid numeric value", err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, malformed(raw, "non-finite numeric value", nil)
	}
	return f, nil
}

// ParseFrequency parses a measure_clock response such as
// "frequency(48)=1500398464" into hertz.
func ParseFrequency(raw string) (int64, error) {
	value, err := payload(raw)
	if err != nil {
		return 0, err
	}

	number := strings.TrimSpace(strings.TrimRightFunc(value, isUnitRune))
	hz, err := strconv.ParseInt(number, 10, 64)
	if err != nil {
		return 0, malformed(raw, "invalid frequency", err)
	}
	if hz < 0 {
		return 0, malformed(raw, "negative frequency", nil)
	}
	return hz, nil
}

// ParseBits parses a get_throttled response such as "throttled=0x50005".
func ParseBits(raw string) (uint32, error) {
	value, err := payload(raw)
	if err != nil {
		return 0, err
	}

	if len(value) < len(hexPrefix) || !strings.EqualFold(value[:len(hexPrefix)], hexPrefix) {
		return 0, malformed(raw, "missing 0x prefix", nil)
	}
	digits := value[len(hexPrefix):]
	if digits == "" {
		return 0, malformed(raw, "missing hex digits", nil)
	}
	bits, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, malformed(raw, "invalid hex bit pattern", err)
	}
	return uint32(bits), nil
}

// payload returns the trimmed text after the first '=' of the first line
// that has one.
func payload(raw string) (string, error) {
	for line := range strings.Lines(raw) {
		_, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			return "", malformed(raw, "empty value", nil)
		}
		return value, nil
	}
	if strings.TrimSpace(raw) == "" {
		return "", malformed(raw, "empty response", nil)
	}
	return "", malformed(raw, "missing '=' delimiter", nil)
}

func isUnitRune(r rune) bool {
	return r == '\'' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func malformed(raw, msg string, cause error) error {
	return errors.WrapWithContext(errors.ErrCodeMalformedResponse, msg, cause, map[string]any{
		"response": raw,
	})
}
