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

// Package header provides the envelope shared by every document vcgen and
// vcgend emit: a Kind, an APIVersion and free-form string metadata.
//
//	h := header.New(
//	    header.WithKind(header.KindSnapshot),
//	    header.WithAPIVersion(header.APIVersion),
//	    header.WithMetadata("hostname", host),
//	)
//
// Init resets a Header and stamps it with the current UTC time and the tool
// version under the "timestamp" and "version" metadata keys.
package header
