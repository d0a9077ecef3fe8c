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

// Package snapshot collects every vcgencmd reading into one document.
//
// A Snapshotter fans the readings out over an errgroup bounded by
// Concurrency. The firmware serializes mailbox requests, so a small limit
// is enough; the default is defaults.SnapshotConcurrency.
//
//	s := &snapshot.Snapshotter{Client: client, Version: version}
//	snap, err := s.Collect(ctx)
//	if err != nil {
//	    return err // context done
//	}
//	if !snap.Complete() {
//	    for reading, msg := range snap.Errors { ... }
//	}
//
// The package also defines the other documents served by vcgend and printed
// by vcgen: Reading for a single measurement and ThrottleReport for a decoded
// get_throttled pattern.
package snapshot
