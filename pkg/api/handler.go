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
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/NVIDIA/vcgencmd/pkg/defaults"
	"github.com/NVIDIA/vcgencmd/pkg/errors"
	"github.com/NVIDIA/vcgencmd/pkg/serializer"
	"github.com/NVIDIA/vcgencmd/pkg/server"
	"github.com/NVIDIA/vcgencmd/pkg/snapshot"
	"github.com/NVIDIA/vcgencmd/pkg/vcgencmd"
)

// Handler serves vcgencmd readings over HTTP.
type Handler struct {
	client      *vcgencmd.Client
	snapshotter *snapshot.Snapshotter
	version     string
}

// NewHandler returns a Handler reading through client.
func NewHandler(client *vcgencmd.Client, version string) *Handler {
	return &Handler{
		client:  client,
		version: version,
		snapshotter: &snapshot.Snapshotter{
			Client:  client,
			Version: version,
		},
	}
}

// Routes returns the API handlers keyed by path.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/temperature":      h.HandleTemperature,
		"/v1/volts":            h.HandleVolts,
		"/v1/mem":              h.HandleMem,
		"/v1/clock":            h.HandleClock,
		"/v1/throttled":        h.HandleThrottled,
		"/v1/throttled/decode": h.HandleDecode,
		"/v1/snapshot":         h.HandleSnapshot,
		"/v1/sources":          h.HandleSources,
	}
}

// HandleTemperature returns the SoC temperature.
func (h *Handler) HandleTemperature(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.ReadingHandlerTimeout)
	defer cancel()

	v, err := h.client.MeasureTemp(ctx)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to measure temperature", nil)
		return
	}

	respond(w, snapshot.NewReading(vcgencmd.CommandMeasureTemp, nil, v, h.version))
}

// HandleVolts returns the voltage of the rail named by the source query
// parameter, core when omitted.
func (h *Handler) HandleVolts(w http.ResponseWriter, r *http.Request) {
	h.handleSourced(w, r, vcgencmd.CategoryVolt, vcgencmd.VoltCore)
}

// HandleMem returns the memory split named by the source query parameter,
// arm when omitted.
func (h *Handler) HandleMem(w http.ResponseWriter, r *http.Request) {
	h.handleSourced(w, r, vcgencmd.CategoryMem, vcgencmd.MemArm)
}

// HandleClock returns the frequency of the clock named by the source query
// parameter, arm when omitted.
func (h *Handler) HandleClock(w http.ResponseWriter, r *http.Request) {
	h.handleSourced(w, r, vcgencmd.CategoryClock, vcgencmd.ClockArm)
}

func (h *Handler) handleSourced(w http.ResponseWriter, r *http.Request, c vcgencmd.Category, def vcgencmd.Source) {
	src := def
	if token := r.URL.Query().Get("source"); token != "" {
		var err error
		if src, err = vcgencmd.ParseSource(c, token); err != nil {
			server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
				err.Error(), false, map[string]any{
					"source":  token,
					"allowed": tokens(c),
				})
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.ReadingHandlerTimeout)
	defer cancel()

	v, err := h.client.Measure(ctx, src)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to read "+src.String(), nil)
		return
	}

	respond(w, snapshot.NewReading(snapshot.CommandFor(c), src, v, h.version))
}

// HandleThrottled reads and decodes the throttling state.
func (h *Handler) HandleThrottled(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.ReadingHandlerTimeout)
	defer cancel()

	bits, err := h.client.GetThrottled(ctx)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to read throttling state", nil)
		return
	}

	respond(w, snapshot.NewThrottleReport(bits, h.version))
}

// HandleDecode decodes the bits query parameter, given in hex (0x50005) or
// decimal, without running vcgencmd.
func (h *Handler) HandleDecode(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("bits")
	bits, err := vcgencmd.ParsePattern(raw)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid bit pattern", map[string]any{"bits": raw})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, snapshot.NewThrottleReport(bits, h.version))
}

// HandleSnapshot takes every reading at once. The category query parameter
// may be repeated to limit the sourced readings.
func (h *Handler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	categories, err := parseCategories(r.URL.Query()["category"])
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			err.Error(), false, map[string]any{"allowed": categoryNames()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.SnapshotHandlerTimeout)
	defer cancel()

	s := *h.snapshotter
	s.Categories = categories

	snap, err := s.Collect(ctx)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			err = errors.Wrap(errors.ErrCodeTimeout, "snapshot timed out", err)
		} else if stderrors.Is(err, context.Canceled) {
			err = errors.Wrap(errors.ErrCodeUnavailable, "snapshot canceled", err)
		}
		server.WriteErrorFromErr(w, r, err, "Failed to collect snapshot", nil)
		return
	}

	slog.Debug("snapshot served",
		"readings", snap.Readings(),
		"errors", len(snap.Errors))

	respond(w, snap)
}

// SourcesResponse lists the declared source tokens per category.
type SourcesResponse struct {
	Commands []string            `json:"commands"`
	Sources  map[string][]string `json:"sources"`
}

// HandleSources lists what can be read.
func (h *Handler) HandleSources(w http.ResponseWriter, _ *http.Request) {
	resp := SourcesResponse{
		Sources: make(map[string][]string, len(vcgencmd.Categories)),
	}
	for _, cmd := range vcgencmd.Commands {
		resp.Commands = append(resp.Commands, cmd.String())
	}
	for _, c := range vcgencmd.Categories {
		resp.Sources[c.String()] = tokens(c)
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	serializer.RespondJSON(w, http.StatusOK, resp)
}

// respond writes a live reading. Readings are never cached.
func respond(w http.ResponseWriter, v any) {
	w.Header().Set("Cache-Control", "no-store")
	serializer.RespondJSON(w, http.StatusOK, v)
}

func tokens(c vcgencmd.Category) []string {
	var out []string
	for _, s := range vcgencmd.SourcesOf(c) {
		out = append(out, s.Token())
	}
	return out
}

func categoryNames() []string {
	out := make([]string, 0, len(vcgencmd.Categories))
	for _, c := range vcgencmd.Categories {
		out = append(out, c.String())
	}
	return out
}

func parseCategories(names []string) ([]vcgencmd.Category, error) {
	var out []vcgencmd.Category
	for _, name := range names {
		for part := range strings.SplitSeq(name, ",") {
			if part = strings.TrimSpace(part); part == "" {
				continue
			}
			c, err := vcgencmd.ParseCategory(part)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
	}
	return out, nil
}
