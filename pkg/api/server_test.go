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

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/vcgencmd/pkg/server"
	"github.com/NVIDIA/vcgencmd/pkg/vcgencmd"
)

func TestConstants(t *testing.T) {
	assert.Equal(t, "vcgend", name)
	assert.Equal(t, "dev", versionDefault)
	assert.NotEmpty(t, Version())
	assert.NotEmpty(t, commit)
	assert.NotEmpty(t, date)
}

func TestNewServer(t *testing.T) {
	p := &pi{}
	s := NewServer(vcgencmd.NewClient(vcgencmd.WithInvoker(p)))
	s.SetReady(true)
	h := s.Handler()

	t.Run("reading through middleware", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/clock?source=core", nil))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	})

	t.Run("ready runs vcgencmd", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "measure_temp", p.last())
	})

	t.Run("metrics include exporter", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.True(t, strings.Contains(body, "vcgencmd_up 1"), "missing vcgencmd_up")
		assert.True(t, strings.Contains(body, `vcgencmd_voltage_volts{source="sdram_c"}`), "missing voltage series")
	})
}

func TestNewServer_NotReadyWithoutVcgencmd(t *testing.T) {
	s := NewServer(vcgencmd.NewClient(vcgencmd.WithInvoker(&pi{fail: true})))
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNewServer_WithConfigKeepsRoutes(t *testing.T) {
	cfg := server.NewConfig()
	cfg.Port = 9100
	s := NewServer(vcgencmd.NewClient(vcgencmd.WithInvoker(&pi{})), server.WithConfig(cfg))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var idx server.IndexResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &idx))
	assert.Equal(t, name, idx.Name)
	assert.Contains(t, idx.Routes, "GET /v1/throttled")
}
