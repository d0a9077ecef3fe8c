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
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"snapshot.json", FormatJSON},
		{"snapshot.JSON", FormatJSON},
		{"snapshot.yaml", FormatYAML},
		{"/var/lib/vcgend/snapshot.yml", FormatYAML},
		{"readings.table", FormatTable},
		{"readings.txt", FormatTable},
		{"snapshot", FormatJSON},
		{"", FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.want {
				t.Errorf("FormatFromPath(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewReader(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"table", FormatTable, true},
		{"unknown", Format("xml"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(tt.format, strings.NewReader("{}"))
			if (err != nil) != tt.wantErr {
				t.Errorf("NewReader() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReader_Deserialize(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		input   string
		want    testReading
		wantErr bool
	}{
		{"json", FormatJSON, `{"name":"core","value":1.2}`, testReading{"core", 1.2}, false},
		{"yaml", FormatYAML, "name: arm\nvalue: 948\n", testReading{"arm", 948}, false},
		{"bad json", FormatJSON, `{"name":`, testReading{}, true},
		{"bad yaml", FormatYAML, "name: [", testReading{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(tt.format, strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("NewReader: %v", err)
			}
			var got testReading
			err = r.Deserialize(&got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Deserialize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReader_NilChecks(t *testing.T) {
	var r *Reader
	if err := r.Deserialize(&testReading{}); err == nil {
		t.Error("expected error for nil reader")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil reader: %v", err)
	}

	r, err := NewReader(FormatJSON, nil)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if err := r.Deserialize(&testReading{}); err == nil {
		t.Error("expected error for nil input")
	}
}

func TestFromFile_Local(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "reading.json")
	yamlPath := filepath.Join(dir, "reading.yaml")
	if err := os.WriteFile(jsonPath, []byte(`{"name":"core","value":1.2}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(yamlPath, []byte("name: gpu\nvalue: 76\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := FromFile[testReading](context.Background(), jsonPath, nil)
	if err != nil {
		t.Fatalf("FromFile json: %v", err)
	}
	if got.Name != "core" {
		t.Errorf("unexpected %+v", got)
	}

	got, err = FromFile[testReading](context.Background(), yamlPath, nil)
	if err != nil {
		t.Fatalf("FromFile yaml: %v", err)
	}
	if got.Value != 76 {
		t.Errorf("unexpected %+v", got)
	}

	if _, err := FromFile[testReading](context.Background(), filepath.Join(dir, "missing.json"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFromFile_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".yaml") {
			w.Write([]byte("name: sdram_p\nvalue: 1.225\n"))
			return
		}
		w.Write([]byte(`{"name":"core","value":0.85}`))
	}))
	defer srv.Close()

	hr := NewHTTPReader(WithClient(srv.Client()))

	got, err := FromFile[testReading](context.Background(), srv.URL+"/v1/snapshot", hr)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if got.Value != 0.85 {
		t.Errorf("unexpected %+v", got)
	}

	got, err = FromFile[testReading](context.Background(), srv.URL+"/saved/reading.yaml", hr)
	if err != nil {
		t.Fatalf("FromFile yaml: %v", err)
	}
	if got.Name != "sdram_p" {
		t.Errorf("unexpected %+v", got)
	}
}
