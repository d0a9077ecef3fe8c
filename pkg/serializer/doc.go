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

// Package serializer renders readings and snapshots as JSON, YAML or a
// flattened table, and reads them back.
//
// Writing:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, snap); err != nil {
//		return err
//	}
//
// Table output flattens nested values into dotted keys named after their
// json tags, e.g. "volts.core" or "throttled.underVoltage".
//
// Reading a saved snapshot, or one served by vcgend:
//
//	snap, err := serializer.FromFile[snapshot.Snapshot](ctx, "http://pi:8080/v1/snapshot", nil)
//
// For HTTP handlers:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
//
// RespondJSON encodes into a buffer before writing headers so an encoding
// failure never produces a partial 200 response.
package serializer
