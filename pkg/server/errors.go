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

package server

import (
	stderrors "errors"
	"maps"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/vcgencmd/pkg/errors"
	"github.com/NVIDIA/vcgencmd/pkg/serializer"
)

// ErrorResponse is the JSON body of every error the server returns.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code errors.ErrorCode, message string, retryable bool, details map[string]any) {
	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	recordError(code)
	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr maps err to a status code through its ErrorCode and
// writes it. Errors without a code are reported as internal errors.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, details map[string]any) {
	code := errors.CodeOf(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	message := fallbackMessage
	if err != nil {
		message = err.Error()
	}

	var ctx map[string]any
	if se := structured(err); se != nil {
		ctx = se.Context
	}

	// A vcgencmd run cut short by its deadline is reported as a gateway timeout.
	if errors.IsTimeout(err) {
		code = errors.ErrCodeTimeout
	}

	WriteError(w, r, HTTPStatusFromCode(code), code, message, retryableFromCode(code), mergeDetails(ctx, details))
}

func structured(err error) *errors.StructuredError {
	var se *errors.StructuredError
	if stderrors.As(err, &se) {
		return se
	}
	return nil
}

// HTTPStatusFromCode maps an ErrorCode to an HTTP status. A malformed
// vcgencmd response is the upstream's fault (502); a vcgencmd that could not
// run leaves the service unable to answer (503).
func HTTPStatusFromCode(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case errors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case errors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case errors.ErrCodeMalformedResponse:
		return http.StatusBadGateway
	case errors.ErrCodeExecution, errors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code errors.ErrorCode) bool {
	switch code {
	case errors.ErrCodeExecution, errors.ErrCodeTimeout, errors.ErrCodeUnavailable,
		errors.ErrCodeRateLimitExceeded, errors.ErrCodeInternal:
		return true
	case errors.ErrCodeInvalidRequest, errors.ErrCodeMethodNotAllowed, errors.ErrCodeMalformedResponse:
		return false
	default:
		return false
	}
}

func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	maps.Copy(out, a)
	maps.Copy(out, b)
	return out
}
