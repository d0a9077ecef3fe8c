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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

type testReading struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

type testSnapshot struct {
	Temperature float64            `json:"temperature"`
	Volts       map[string]float64 `json:"volts"`
	Throttled   *testThrottled     `json:"throttled,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	Ignored     string             `json:"-"`
}

type testThrottled struct {
	UnderVoltage bool `json:"underVoltage"`
}

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	data := []testReading{
		{Name: "core", Value: 1.2},
		{Name: "sdram_c", Value: 1.1},
	}

	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result []testReading
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}
	if len(result) != 2 || result[0] != data[0] {
		t.Errorf("Unexpected data: %+v", result)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Errorf("expected indented JSON, got %q", buf.String())
	}
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatYAML, &buf)

	data := testReading{Name: "arm", Value: 948}
	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result testReading
	if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal YAML: %v", err)
	}
	if result != data {
		t.Errorf("expected %+v, got %+v", data, result)
	}
}

func TestWriter_SerializeTable(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	data := testSnapshot{
		Temperature: 42.8,
		Volts:       map[string]float64{"core": 1.2, "sdram_c": 1.1},
		Throttled:   &testThrottled{UnderVoltage: true},
		Timestamp:   ts,
		Ignored:     "hidden",
	}

	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"FIELD", "VALUE",
		"temperature", "42.8",
		"volts.core", "1.2",
		"volts.sdram_c", "1.1",
		"throttled.underVoltage", "true",
		"timestamp", ts.String(),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "hidden") || strings.Contains(out, "Ignored") {
		t.Errorf("json:\"-\" field must be skipped:\n%s", out)
	}

	// keys are sorted
	if strings.Index(out, "temperature") > strings.Index(out, "volts.core") {
		t.Errorf("expected sorted keys:\n%s", out)
	}
}

type Envelope struct {
	Kind string `json:"kind"`
}

type testDocument struct {
	Envelope `json:",inline"`
	Bits         uint32 `json:"bits"`
}

func TestWriter_SerializeTable_Embedded(t *testing.T) {
	var buf bytes.Buffer
	doc := testDocument{Envelope: Envelope{Kind: "ThrottleReport"}, Bits: 5}

	if err := NewWriter(FormatTable, &buf).Serialize(context.Background(), doc); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "kind") || !strings.Contains(out, "ThrottleReport") {
		t.Errorf("embedded fields missing:\n%s", out)
	}
	if strings.Contains(out, "Envelope") {
		t.Errorf("embedded struct name must not prefix keys:\n%s", out)
	}
}

func TestWriter_SerializeTable_Scalar(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(FormatTable, &buf).Serialize(context.Background(), 42.8); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(buf.String(), "value") || !strings.Contains(buf.String(), "42.8") {
		t.Errorf("unexpected scalar table: %q", buf.String())
	}
}

func TestWriter_SerializeTable_EmptyData(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(FormatTable, &buf).Serialize(context.Background(), struct{}{}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "<empty>" {
		t.Errorf("expected <empty>, got %q", buf.String())
	}
}

func TestWriter_SerializeTable_NilValues(t *testing.T) {
	var buf bytes.Buffer
	data := struct {
		Throttled *testThrottled `json:"throttled"`
	}{}
	if err := NewWriter(FormatTable, &buf).Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(buf.String(), "<nil>") {
		t.Errorf("expected nil pointer rendered, got %q", buf.String())
	}
}

func TestWriter_UnsupportedFormat(t *testing.T) {
	w := &Writer{format: Format("xml"), output: &bytes.Buffer{}}
	if err := w.Serialize(context.Background(), 1); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestNewWriter_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("xml"), &buf)
	if w.Format() != FormatJSON {
		t.Errorf("expected fallback to JSON, got %s", w.Format())
	}
}

func TestNewWriter_DefaultsToStdout(t *testing.T) {
	w := NewWriter(FormatJSON, nil)
	if w.output != os.Stdout {
		t.Error("expected stdout when output is nil")
	}
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		w := NewFileWriterOrStdout(FormatJSON, "  ")
		if w.output != os.Stdout {
			t.Error("expected stdout for empty path")
		}
		if err := w.Close(); err != nil {
			t.Errorf("Close on stdout writer: %v", err)
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "snapshot.yaml")
		w := NewFileWriterOrStdout(FormatYAML, path)
		if err := w.Serialize(context.Background(), testReading{Name: "gpu", Value: 76}); err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Errorf("second Close should be a no-op: %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if !strings.Contains(string(content), "name: gpu") {
			t.Errorf("unexpected file content: %s", content)
		}
	})

	t.Run("uncreatable path falls back to stdout", func(t *testing.T) {
		w := NewFileWriterOrStdout(FormatJSON, filepath.Join(t.TempDir(), "missing", "dir", "out.json"))
		if w.output != os.Stdout {
			t.Error("expected stdout fallback")
		}
	})
}

func TestFormat_IsUnknown(t *testing.T) {
	tests := []struct {
		format Format
		want   bool
	}{
		{FormatJSON, false},
		{FormatYAML, false},
		{FormatTable, false},
		{Format(""), true},
		{Format("JSON"), true},
		{Format("xml"), true},
	}
	for _, tt := range tests {
		if got := tt.format.IsUnknown(); got != tt.want {
			t.Errorf("Format(%q).IsUnknown() = %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestSupportedFormats(t *testing.T) {
	got := SupportedFormats()
	if len(got) != 3 {
		t.Fatalf("expected 3 formats, got %v", got)
	}
	for _, f := range got {
		if Format(f).IsUnknown() {
			t.Errorf("supported format %q reported unknown", f)
		}
	}
}
