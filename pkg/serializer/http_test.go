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
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRespondJSON_Success(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, testReading{Name: "temp", Value: 42.8})

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var got testReading
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if got.Value != 42.8 {
		t.Errorf("unexpected body: %+v", got)
	}
}

func TestRespondJSON_StatusCodes(t *testing.T) {
	for _, code := range []int{http.StatusBadRequest, http.StatusBadGateway, http.StatusServiceUnavailable} {
		rec := httptest.NewRecorder()
		RespondJSON(rec, code, map[string]string{"code": "X"})
		if rec.Code != code {
			t.Errorf("expected %d, got %d", code, rec.Code)
		}
	}
}

func TestRespondJSON_EncodingError(t *testing.T) {
	rec := httptest.NewRecorder()
	// NaN cannot be encoded; nothing but the 500 may be written.
	RespondJSON(rec, http.StatusOK, math.NaN())

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "NaN") {
		t.Errorf("partial body leaked: %q", rec.Body.String())
	}
}

func TestNewHTTPReader_Defaults(t *testing.T) {
	r := NewHTTPReader()
	if r.UserAgent != HTTPReaderUserAgent {
		t.Errorf("unexpected user agent %q", r.UserAgent)
	}
	if r.Client == nil || r.Client.Timeout <= 0 {
		t.Fatal("expected client with timeout")
	}
	tr, ok := r.Client.Transport.(*http.Transport)
	if !ok {
		t.Fatal("expected *http.Transport")
	}
	if tr.TLSClientConfig.InsecureSkipVerify {
		t.Error("TLS verification must be on by default")
	}
}

func TestNewHTTPReader_Options(t *testing.T) {
	r := NewHTTPReader(
		WithUserAgent("vcgen-test/2"),
		WithTotalTimeout(3*time.Second),
		WithInsecureSkipVerify(true),
	)
	if r.UserAgent != "vcgen-test/2" {
		t.Errorf("unexpected user agent %q", r.UserAgent)
	}
	if r.Client.Timeout != 3*time.Second {
		t.Errorf("unexpected timeout %v", r.Client.Timeout)
	}
	tr := r.Client.Transport.(*http.Transport)
	if !tr.TLSClientConfig.InsecureSkipVerify {
		t.Error("expected InsecureSkipVerify")
	}

	custom := &http.Client{}
	if got := NewHTTPReader(WithClient(custom)).Client; got != custom {
		t.Error("expected custom client")
	}
}

func TestHTTPReader_Read(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/v1/snapshot":
			w.Write([]byte(`{"temperature":42.8}`))
		case "/v1/broken":
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"code":"MALFORMED_RESPONSE"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	r := NewHTTPReader(WithClient(srv.Client()))

	data, err := r.Read(context.Background(), srv.URL+"/v1/snapshot")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(data) != `{"temperature":42.8}` {
		t.Errorf("unexpected body %q", data)
	}
	if gotUA != HTTPReaderUserAgent {
		t.Errorf("unexpected user agent %q", gotUA)
	}

	_, err = r.Read(context.Background(), srv.URL+"/v1/broken")
	if err == nil || !strings.Contains(err.Error(), "MALFORMED_RESPONSE") {
		t.Errorf("expected status error carrying the body, got %v", err)
	}

	if _, err := r.Read(context.Background(), srv.URL+"/nope"); err == nil {
		t.Error("expected error for 404")
	}
	if _, err := r.Read(context.Background(), ""); err == nil {
		t.Error("expected error for empty url")
	}
	if _, err := r.Read(context.Background(), "://bad"); err == nil {
		t.Error("expected error for invalid url")
	}
}

func TestHTTPReader_Read_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewHTTPReader(WithClient(srv.Client())).Read(ctx, srv.URL); err == nil {
		t.Error("expected error for canceled context")
	}
}
