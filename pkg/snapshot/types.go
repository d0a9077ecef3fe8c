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

package snapshot

import (
	"fmt"

	"github.com/NVIDIA/vcgencmd/pkg/header"
	"github.com/NVIDIA/vcgencmd/pkg/vcgencmd"
)

// Units reported alongside readings.
const (
	UnitCelsius   = "C"
	UnitVolts     = "V"
	UnitMegabytes = "MB"
	UnitHertz     = "Hz"
)

// Keys used in Snapshot.Errors for readings that take no source.
const (
	KeyTemperature = "temperature"
	KeyThrottled   = "throttled"
)

// Snapshot is every reading vcgencmd offers, taken together. Maps are keyed
// by source token. A reading that failed is absent from its map and its
// error is recorded in Errors under the qualified source, e.g. "volt:core".
type Snapshot struct {
	header.Header `json:",inline" yaml:",inline"`

	Temperature *float64           `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	Volts       map[string]float64 `json:"volts" yaml:"volts"`
	Mem         map[string]float64 `json:"mem" yaml:"mem"`
	Clocks      map[string]int64   `json:"clocks" yaml:"clocks"`
	Throttled   *Throttle          `json:"throttled,omitempty" yaml:"throttled,omitempty"`

	Errors map[string]string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// New returns an empty Snapshot with its header initialized.
func New(version string) *Snapshot {
	s := &Snapshot{
		Volts:  make(map[string]float64),
		Mem:    make(map[string]float64),
		Clocks: make(map[string]int64),
	}
	s.Init(header.KindSnapshot, version)
	return s
}

// Complete reports whether every reading succeeded.
func (s *Snapshot) Complete() bool {
	return len(s.Errors) == 0
}

// Readings returns the number of successful readings.
func (s *Snapshot) Readings() int {
	n := len(s.Volts) + len(s.Mem) + len(s.Clocks)
	if s.Temperature != nil {
		n++
	}
	if s.Throttled != nil {
		n++
	}
	return n
}

// Throttle is a get_throttled pattern with its decoding.
type Throttle struct {
	Bits   uint32                   `json:"bits" yaml:"bits"`
	Hex    string                   `json:"hex" yaml:"hex"`
	Status vcgencmd.ThrottledStatus `json:"status" yaml:"status"`
	// Conditions names the set bits in bit order.
	Conditions []string `json:"conditions" yaml:"conditions"`
	Active     bool     `json:"active" yaml:"active"`
	Healthy    bool     `json:"healthy" yaml:"healthy"`
}

// NewThrottle decodes bits.
func NewThrottle(bits uint32) Throttle {
	status := vcgencmd.DecodeThrottled(bits)
	conditions := status.Set()
	if conditions == nil {
		conditions = []string{}
	}
	return Throttle{
		Bits:       bits,
		Hex:        fmt.Sprintf("0x%x", bits),
		Status:     status,
		Conditions: conditions,
		Active:     status.Active(),
		Healthy:    status.Healthy(),
	}
}

// ThrottleReport is a standalone Throttle document.
type ThrottleReport struct {
	header.Header `json:",inline" yaml:",inline"`
	Throttle      `json:",inline" yaml:",inline"`
}

// NewThrottleReport decodes bits into a ThrottleReport.
func NewThrottleReport(bits uint32, version string) *ThrottleReport {
	r := &ThrottleReport{Throttle: NewThrottle(bits)}
	r.Init(header.KindThrottleReport, version)
	return r
}

// Reading is a single measurement document.
type Reading struct {
	header.Header `json:",inline" yaml:",inline"`

	Command vcgencmd.Command `json:"command" yaml:"command"`
	// Source is the qualified source, empty for measure_temp.
	Source string  `json:"source,omitempty" yaml:"source,omitempty"`
	Value  float64 `json:"value" yaml:"value"`
	Unit   string  `json:"unit" yaml:"unit"`
}

// NewReading builds a Reading for cmd and src, which may be nil.
func NewReading(cmd vcgencmd.Command, src vcgencmd.Source, value float64, version string) *Reading {
	r := &Reading{
		Command: cmd,
		Value:   value,
		Unit:    UnitOf(cmd),
	}
	if src != nil {
		r.Source = src.String()
	}
	r.Init(header.KindReading, version)
	return r
}

// UnitOf returns the unit of cmd's readings, or "" for get_throttled.
func UnitOf(cmd vcgencmd.Command) string {
	switch cmd {
	case vcgencmd.CommandMeasureTemp:
		return UnitCelsius
	case vcgencmd.CommandMeasureVolts:
		return UnitVolts
	case vcgencmd.CommandGetMem:
		return UnitMegabytes
	case vcgencmd.CommandMeasureClock:
		return UnitHertz
	case vcgencmd.CommandGetThrottled:
		return ""
	}
	return ""
}

// CommandFor returns the command that reads sources of category c.
func CommandFor(c vcgencmd.Category) vcgencmd.Command {
	switch c {
	case vcgencmd.CategoryClock:
		return vcgencmd.CommandMeasureClock
	case vcgencmd.CategoryMem:
		return vcgencmd.CommandGetMem
	case vcgencmd.CategoryVolt:
		return vcgencmd.CommandMeasureVolts
	}
	return ""
}
