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
	"strconv"
	"strings"

	"github.com/NVIDIA/vcgencmd/pkg/errors"
)

// Throttle condition bit positions reported by get_throttled. The low half
// describes the current state, the high half what happened since boot.
const (
	BitUnderVoltage            = 0
	BitArmFrequencyCapped      = 1
	BitCurrentlyThrottled      = 2
	BitSoftTempLimitActive     = 3
	BitUnderVoltageOccurred    = 16
	BitArmFrequencyCapOccurred = 17
	BitThrottlingOccurred      = 18
	BitSoftTempLimitOccurred   = 19
)

// definedBits masks the bits that carry a named condition.
const definedBits uint32 = 1<<BitUnderVoltage | 1<<BitArmFrequencyCapped |
	1<<BitCurrentlyThrottled | 1<<BitSoftTempLimitActive |
	1<<BitUnderVoltageOccurred | 1<<BitArmFrequencyCapOccurred |
	1<<BitThrottlingOccurred | 1<<BitSoftTempLimitOccurred

// ThrottledStatus is the decoded get_throttled bit pattern.
type ThrottledStatus struct {
	UnderVoltage        bool `json:"underVoltage" yaml:"underVoltage"`
	ArmFrequencyCapped  bool `json:"armFrequencyCapped" yaml:"armFrequencyCapped"`
	CurrentlyThrottled  bool `json:"currentlyThrottled" yaml:"currentlyThrottled"`
	SoftTempLimitActive bool `json:"softTempLimitActive" yaml:"softTempLimitActive"`

	UnderVoltageOccurred    bool `json:"underVoltageOccurred" yaml:"underVoltageOccurred"`
	ArmFrequencyCapOccurred bool `json:"armFrequencyCapOccurred" yaml:"armFrequencyCapOccurred"`
	ThrottlingOccurred      bool `json:"throttlingOccurred" yaml:"throttlingOccurred"`
	SoftTempLimitOccurred   bool `json:"softTempLimitOccurred" yaml:"softTempLimitOccurred"`
}

// Condition names one bit of the throttle pattern.
type Condition struct {
	Name string
	Bit  uint
}

// Conditions lists the named bits in bit order.
var Conditions = []Condition{
	{"under_voltage", BitUnderVoltage},
	{"arm_frequency_capped", BitArmFrequencyCapped},
	{"currently_throttled", BitCurrentlyThrottled},
	{"soft_temp_limit_active", BitSoftTempLimitActive},
	{"under_voltage_occurred", BitUnderVoltageOccurred},
	{"arm_frequency_cap_occurred", BitArmFrequencyCapOccurred},
	{"throttling_occurred", BitThrottlingOccurred},
	{"soft_temp_limit_occurred", BitSoftTempLimitOccurred},
}

// DecodeThrottled decodes a get_throttled bit pattern. Undefined bits are ignored.
func DecodeThrottled(bits uint32) ThrottledStatus {
	return ThrottledStatus{
		UnderVoltage:            bitSet(bits, BitUnderVoltage),
		ArmFrequencyCapped:      bitSet(bits, BitArmFrequencyCapped),
		CurrentlyThrottled:      bitSet(bits, BitCurrentlyThrottled),
		SoftTempLimitActive:     bitSet(bits, BitSoftTempLimitActive),
		UnderVoltageOccurred:    bitSet(bits, BitUnderVoltageOccurred),
		ArmFrequencyCapOccurred: bitSet(bits, BitArmFrequencyCapOccurred),
		ThrottlingOccurred:      bitSet(bits, BitThrottlingOccurred),
		SoftTempLimitOccurred:   bitSet(bits, BitSoftTempLimitOccurred),
	}
}

// NewThrottledStatus is an alias of DecodeThrottled.
func NewThrottledStatus(bits uint32) ThrottledStatus {
	return DecodeThrottled(bits)
}

// Bits re-encodes the status into the get_throttled bit pattern.
func (s ThrottledStatus) Bits() uint32 {
	var bits uint32
	for _, c := range Conditions {
		if s.Get(c.Bit) {
			bits |= 1 << c.Bit
		}
	}
	return bits
}

// Get reports the condition at bit. Undefined bits report false.
func (s ThrottledStatus) Get(bit uint) bool {
	switch bit {
	case BitUnderVoltage:
		return s.UnderVoltage
	case BitArmFrequencyCapped:
		return s.ArmFrequencyCapped
	case BitCurrentlyThrottled:
		return s.CurrentlyThrottled
	case BitSoftTempLimitActive:
		return s.SoftTempLimitActive
	case BitUnderVoltageOccurred:
		return s.UnderVoltageOccurred
	case BitArmFrequencyCapOccurred:
		return s.ArmFrequencyCapOccurred
	case BitThrottlingOccurred:
		return s.ThrottlingOccurred
	case BitSoftTempLimitOccurred:
		return s.SoftTempLimitOccurred
	}
	return false
}

// Active reports whether any current-state condition is set.
func (s ThrottledStatus) Active() bool {
	return s.UnderVoltage || s.ArmFrequencyCapped || s.CurrentlyThrottled || s.SoftTempLimitActive
}

// Healthy reports whether no condition has been seen since boot.
func (s ThrottledStatus) Healthy() bool {
	return s.Bits() == 0
}

// Set returns the names of the conditions that are set, in bit order.
func (s ThrottledStatus) Set() []string {
	var names []string
	for _, c := range Conditions {
		if s.Get(c.Bit) {
			names = append(names, c.Name)
		}
	}
	return names
}

func bitSet(bits uint32, i uint) bool {
	return (bits>>i)&1 == 1
}

// ParsePattern parses a user-supplied bit pattern, in hex with a 0x prefix
// or in decimal. Unlike ParseBits it takes a bare value, not a vcgencmd
// response.
func ParsePattern(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New(errors.ErrCodeInvalidRequest, "bit pattern is required")
	}
	var (
		v   uint64
		err error
	)
	if hex, ok := strings.CutPrefix(strings.ToLower(s), hexPrefix); ok {
		v, err = strconv.ParseUint(hex, 16, 32)
	} else {
		v, err = strconv.ParseUint(s, 10, 32)
	}
	if err != nil {
		return 0, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			"want a 32-bit hex (0x...) or decimal bit pattern", err, map[string]any{"pattern": s})
	}
	return uint32(v), nil
}
