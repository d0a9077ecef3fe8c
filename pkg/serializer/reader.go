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
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// FormatFromPath determines the serialization format based on file extension.
// Supported extensions:
//   - .json → FormatJSON
//   - .yaml, .yml → FormatYAML
//   - .table, .txt → FormatTable
//
// Returns FormatJSON as default for unknown extensions.
// Extension matching is case-insensitive.
func FormatFromPath(filePath string) Format {
	lowerPath := strings.ToLower(filePath)
	switch {
	case strings.HasSuffix(lowerPath, ".json"):
		return FormatJSON
	case strings.HasSuffix(lowerPath, ".yaml"), strings.HasSuffix(lowerPath, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lowerPath, ".table"), strings.HasSuffix(lowerPath, ".txt"):
		return FormatTable
	default:
		slog.Debug("unknown file extension, defaulting to JSON", "filePath", filePath)
		return FormatJSON
	}
}

// Reader decodes JSON or YAML from an io.Reader. Table output is write-only.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a Reader for input. If input implements io.Closer it is
// closed by Reader.Close.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}

	r := &Reader{
		format: format,
		input:  input,
	}
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}
	return r, nil
}

// NewFileReaderAuto opens a local file and picks the format from its extension.
func NewFileReaderAuto(filePath string) (*Reader, error) {
	format := FormatFromPath(filePath)
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	r, err := NewReader(format, file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

// Deserialize decodes the input into v, which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases the underlying input. Safe to call multiple times.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// FromFile reads and deserializes a local file or an http(s) URL into T.
//
// Local files are decoded by extension. URLs are fetched with an HTTPReader
// (pass one to override the client) and decoded as YAML when the URL path
// ends in .yaml or .yml, otherwise as JSON, which is what vcgend serves.
func FromFile[T any](ctx context.Context, location string, hr *HTTPReader) (*T, error) {
	var (
		r   *Reader
		err error
	)
	if isURL(location) {
		r, err = urlReader(ctx, location, hr)
	} else {
		r, err = NewFileReaderAuto(location)
	}
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var out T
	if err := r.Deserialize(&out); err != nil {
		return nil, fmt.Errorf("failed to deserialize %s: %w", location, err)
	}
	return &out, nil
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func urlReader(ctx context.Context, location string, hr *HTTPReader) (*Reader, error) {
	if hr == nil {
		hr = NewHTTPReader()
	}
	data, err := hr.Read(ctx, location)
	if err != nil {
		return nil, err
	}

	format := FormatJSON
	if u, perr := url.Parse(location); perr == nil {
		switch strings.ToLower(path.Ext(u.Path)) {
		case ".yaml", ".yml":
			format = FormatYAML
		}
	}
	return NewReader(format, bytes.NewReader(data))
}
