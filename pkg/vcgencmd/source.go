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
	"fmt"
	"strings"
)

// Command is a vcgencmd subcommand.
type Command string

const (
	// CommandMeasureTemp reads the SoC temperature.
	CommandMeasureTemp Command = "measure_temp"
	// CommandMeasureVolts reads a voltage rail. Takes a VoltSource.
	CommandMeasureVolts Command = "measure_volts"
	// CommandMeasureClock reads a clock frequency. Takes a ClockSource.
	CommandMeasureClock Command = "measure_clock"
	// CommandGetMem reads the ARM/GPU memory split. Takes a MemSource.
	CommandGetMem Command = "get_mem"
	// CommandGetThrottled reads the throttling bit pattern.
	CommandGetThrottled Command = "get_throttled"
)

// Commands lists every supported subcommand.
var Commands = []Command{
	CommandMeasureTemp,
	CommandMeasureVolts,
	CommandMeasureClock,
	CommandGetMem,
	CommandGetThrottled,
}

// String returns the subcommand token.
func (c Command) String() string {
	return string(c)
}

// Category returns the source category the command requires and whether it
// takes a source at all.
func (c Command) Category() (Category, bool) {
	switch c {
	case CommandMeasureVolts:
		return CategoryVolt, true
	case CommandMeasureClock:
		return CategoryClock, true
	case CommandGetMem:
		return CategoryMem, true
	case CommandMeasureTemp, CommandGetThrottled:
		return 0, false
	}
	return 0, false
}

// Category groups the sources a command accepts.
type Category int

const (
	CategoryClock Category = iota + 1
	CategoryMem
	CategoryVolt
)

// Categories lists every declared category.
var Categories = []Category{CategoryClock, CategoryMem, CategoryVolt}

// String returns the lowercase category name.
func (c Category) String() string {
	switch c {
	case CategoryClock:
		return "clock"
	case CategoryMem:
		return "mem"
	case CategoryVolt:
		return "volt"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// ParseCategory resolves a category name. "volts" and "clocks" are accepted
// as aliases.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clock", "clocks":
		return CategoryClock, nil
	case "mem", "memory":
		return CategoryMem, nil
	case "volt", "volts":
		return CategoryVolt, nil
	}
	return 0, fmt.Errorf("unknown source category %q", s)
}

// Source selects the hardware block a command measures.
// It is implemented by ClockSource, MemSource and VoltSource only.
type Source interface {
	Category() Category
	// Token is the argument vcgencmd expects, e.g. "sdram_c".
	Token() string
	// String is the category-qualified token, e.g. "volt:sdram_c".
	String() string
	Valid() bool

	isSource()
}

// ClockSource is a clock domain accepted by measure_clock.
type ClockSource int

const (
	ClockArm ClockSource = iota
	ClockCore
	ClockDpi
	ClockEmmc
	ClockH264
	ClockHdmi
	ClockIsp
	ClockPixel
	ClockPwm
	ClockUart
	ClockV3d
	ClockVec
)

// ClockSources lists every declared clock domain.
var ClockSources = []ClockSource{
	ClockArm, ClockCore, ClockDpi, ClockEmmc, ClockH264, ClockHdmi,
	ClockIsp, ClockPixel, ClockPwm, ClockUart, ClockV3d, ClockVec,
}

func (ClockSource) isSource() {}

// Category implements Source.
func (ClockSource) Category() Category { return CategoryClock }

// Token implements Source.
func (s ClockSource) Token() string {
	switch s {
	case ClockArm:
		return "arm"
	case ClockCore:
		return "core"
	case ClockDpi:
		return "dpi"
	case ClockEmmc:
		return "emmc"
	case ClockH264:
		return "h264"
	case ClockHdmi:
		return "hdmi"
	case ClockIsp:
		return "isp"
	case ClockPixel:
		return "pixel"
	case ClockPwm:
		return "pwm"
	case ClockUart:
		return "uart"
	case ClockV3d:
		return "v3d"
	case ClockVec:
		return "vec"
	}
	return ""
}

// Valid reports whether s is a declared clock domain.
func (s ClockSource) Valid() bool { return s.Token() != "" }

// String implements Source.
func (s ClockSource) String() string { return qualify(s) }

// MarshalText encodes the source as its token.
func (s ClockSource) MarshalText() ([]byte, error) { return marshalToken(s) }

// UnmarshalText decodes a clock token.
func (s *ClockSource) UnmarshalText(b []byte) error {
	src, err := ParseSource(CategoryClock, string(b))
	if err != nil {
		return err
	}
	*s = src.(ClockSource)
	return nil
}

// VoltSource is a voltage rail accepted by measure_volts.
type VoltSource int

const (
	VoltCore VoltSource = iota
	VoltSdramC
	VoltSdramI
	VoltSdramP
)

// VoltSources lists every declared voltage rail.
var VoltSources = []VoltSource{VoltCore, VoltSdramC, VoltSdramI, VoltSdramP}

func (VoltSource) isSource() {}

// Category implements Source.
func (VoltSource) Category() Category { return CategoryVolt }

// Token implements Source.
func (s VoltSource) Token() string {
	switch s {
	case VoltCore:
		return "core"
	case VoltSdramC:
		return "sdram_c"
	case VoltSdramI:
		return "sdram_i"
	case VoltSdramP:
		return "sdram_p"
	}
	return ""
}

// Valid reports whether s is a declared voltage rail.
func (s VoltSource) Valid() bool { return s.Token() != "" }

// String implements Source.
func (s VoltSource) String() string { return qualify(s) }

// MarshalText encodes the source as its token.
func (s VoltSource) MarshalText() ([]byte, error) { return marshalToken(s) }

// UnmarshalText decodes a voltage rail token.
func (s *VoltSource) UnmarshalText(b []byte) error {
	src, err := ParseSource(CategoryVolt, string(b))
	if err != nil {
		return err
	}
	*s = src.(VoltSource)
	return nil
}

// MemSource is a memory region accepted by get_mem.
type MemSource int

const (
	MemArm MemSource = iota
	MemGpu
)

// MemSources lists every declared memory region.
var MemSources = []MemSource{MemArm, MemGpu}

func (MemSource) isSource() {}

// Category implements Source.
func (MemSource) Category() Category { return CategoryMem }

// Token implements Source.
func (s MemSource) Token() string {
	switch s {
	case MemArm:
		return "arm"
	case MemGpu:
		return "gpu"
	}
	return ""
}

// Valid reports whether s is a declared memory region.
func (s MemSource) Valid() bool { return s.Token() != "" }

// String implements Source.
func (s MemSource) String() string { return qualify(s) }

// MarshalText encodes the source as its token.
func (s MemSource) MarshalText() ([]byte, error) { return marshalToken(s) }

// UnmarshalText decodes a memory region token.
func (s *MemSource) UnmarshalText(b []byte) error {
	src, err := ParseSource(CategoryMem, string(b))
	if err != nil {
		return err
	}
	*s = src.(MemSource)
	return nil
}

// AllSources returns every declared (category, sub-source) pair.
func AllSources() []Source {
	out := make([]Source, 0, len(ClockSources)+len(MemSources)+len(VoltSources))
	for _, s := range ClockSources {
		out = append(out, s)
	}
	for _, s := range MemSources {
		out = append(out, s)
	}
	for _, s := range VoltSources {
		out = append(out, s)
	}
	return out
}

// SourcesOf returns the declared sources of one category.
func SourcesOf(c Category) []Source {
	var out []Source
	for _, s := range AllSources() {
		if s.Category() == c {
			out = append(out, s)
		}
	}
	return out
}

// ParseSource resolves a token within a category, e.g. (CategoryVolt, "sdram_c").
func ParseSource(c Category, token string) (Source, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	for _, s := range SourcesOf(c) {
		if s.Token() == t {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown %s source %q", c, token)
}

// Args renders the vcgencmd argument list for cmd and src. src may be nil
// for commands that take no source.
func Args(cmd Command, src Source) []string {
	if src == nil {
		return []string{cmd.String()}
	}
	return []string{cmd.String(), src.Token()}
}

func qualify(s Source) string {
	if !s.Valid() {
		return s.Category().String() + ":<invalid>"
	}
	return s.Category().String() + ":" + s.Token()
}

func marshalToken(s Source) ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot marshal undeclared %s source", s.Category())
	}
	return []byte(s.Token()), nil
}
