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

package errors

import (
	"context"
	stderrors "errors"
	"fmt"
)

// ErrorCode classifies a failure for callers and for HTTP status mapping.
type ErrorCode string

// Measurement failures. Every vcgencmd read fails with exactly one of these.
const (
	// ErrCodeExecution means vcgencmd could not be started, exited non-zero
	// or was killed at its deadline.
	ErrCodeExecution ErrorCode = "EXECUTION_FAILED"
	// ErrCodeMalformedResponse means vcgencmd ran but printed something
	// other than "key=value".
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
)

// Request and service failures.
const (
	ErrCodeTimeout           ErrorCode = "TIMEOUT"
	ErrCodeInternal          ErrorCode = "INTERNAL"
	ErrCodeInvalidRequest    ErrorCode = "INVALID_REQUEST"
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrCodeMethodNotAllowed  ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodeUnavailable       ErrorCode = "SERVICE_UNAVAILABLE"
)

// timeoutKey marks an execution failure caused by the invocation deadline.
const timeoutKey = "timeout"

// StructuredError carries a code, a message, the underlying cause and
// context such as the vcgencmd arguments, its stderr or the raw response.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// With sets a context entry and returns e.
func (e *StructuredError) With(key string, value any) *StructuredError {
	if e.Context == nil {
		e.Context = make(map[string]any, 1)
	}
	e.Context[key] = value
	return e
}

// New creates a StructuredError without a cause.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{Code: code, Message: message}
}

// NewWithContext creates a StructuredError without a cause but with context.
func NewWithContext(code ErrorCode, message string, ctx map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Context: ctx}
}

// Wrap classifies cause under code.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause}
}

// WrapWithContext classifies cause under code and attaches context. A cause
// that is a deadline is marked as a timeout.
func WrapWithContext(code ErrorCode, message string, cause error, ctx map[string]any) *StructuredError {
	e := &StructuredError{Code: code, Message: message, Cause: cause, Context: ctx}
	if isDeadline(cause) {
		e.With(timeoutKey, true)
	}
	return e
}

// CodeOf returns the code of the outermost StructuredError in err's chain,
// or an empty code when there is none.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// IsTimeout reports whether err is a timeout: a TIMEOUT code, an error
// marked as timed out, or a context deadline anywhere in the chain.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if isDeadline(err) {
		return true
	}
	var se *StructuredError
	if !stderrors.As(err, &se) {
		return false
	}
	timedOut, _ := se.Context[timeoutKey].(bool)
	return se.Code == ErrCodeTimeout || timedOut
}

func isDeadline(err error) bool {
	return err != nil && stderrors.Is(err, context.DeadlineExceeded)
}
