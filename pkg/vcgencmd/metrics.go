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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	invocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vcgencmd_invocations_total",
			Help: "Total number of vcgencmd invocations",
		},
		[]string{"command", "status"}, // success, execution_error, malformed_response, invalid_request
	)

	invocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vcgencmd_invocation_duration_seconds",
			Help:    "Time taken by a vcgencmd invocation including parsing",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
		},
		[]string{"command"},
	)
)
