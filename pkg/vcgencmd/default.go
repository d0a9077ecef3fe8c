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

package vcgencmd

import (
	"context"
	"sync"
)

var (
	defaultOnce   sync.Once
	defaultClient *Client
)

// Default returns the package-level client, configured from the environment
// on first use.
func Default() *Client {
	defaultOnce.Do(func() {
		defaultClient = NewClient()
	})
	return defaultClient
}

// MeasureTemp returns the SoC temperature using the default client.
func MeasureTemp(ctx context.Context) (float64, error) {
	return Default().MeasureTemp(ctx)
}

// MeasureVolts returns the voltage of a rail using the default client.
func MeasureVolts(ctx context.Context, src VoltSource) (float64, error) {
	return Default().MeasureVolts(ctx, src)
}

// GetMem returns a memory split value using the default client.
func GetMem(ctx context.Context, src MemSource) (float64, error) {
	return Default().GetMem(ctx, src)
}

// MeasureClock returns a clock frequency using the default client.
func MeasureClock(ctx context.Context, src ClockSource) (int64, error) {
	return Default().MeasureClock(ctx, src)
}

// GetThrottled returns the raw throttling bit pattern using the default client.
func GetThrottled(ctx context.Context) (uint32, error) {
	return Default().GetThrottled(ctx)
}
