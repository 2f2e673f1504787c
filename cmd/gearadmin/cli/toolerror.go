// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/gearadmin/lib/adminclient"
)

// ErrorCategory classifies command errors so that scripts can tell bad
// input from an unreachable server without parsing message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// wrong argument count, unparseable values, a bad config file. The
	// caller should fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryRejected indicates the server understood the request and
	// refused it with an ERR reply.
	CategoryRejected ErrorCategory = "rejected"

	// CategoryTransient indicates a temporary failure: connection
	// refused, timeout, reset. The caller should back off and retry.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal indicates an unexpected error: bugs, I/O
	// failures writing output. The caller should report the error
	// rather than retry.
	CategoryInternal ErrorCategory = "internal"
)

// exitCodes maps categories to process exit codes.
var exitCodes = map[ErrorCategory]int{
	CategoryValidation: 2,
	CategoryRejected:   3,
	CategoryTransient:  4,
	CategoryInternal:   1,
}

// ToolError is a categorized error returned by CLI commands.
//
// ToolError wraps an inner error, preserving the full error chain for
// debugging while adding category metadata. Use the category-specific
// constructors (Validation, Transient, etc.) or [Classify] rather than
// constructing ToolError directly.
type ToolError struct {
	// Category classifies the error for programmatic handling.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error
}

// Error returns the underlying error message. The category is not
// included in the string.
func (e *ToolError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error, allowing errors.Is and
// errors.As to walk the full chain through the ToolError wrapper.
func (e *ToolError) Unwrap() error { return e.Err }

// Code returns the process exit code for the error's category.
func (e *ToolError) Code() int {
	if code, ok := exitCodes[e.Category]; ok {
		return code
	}
	return 1
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error: a temporary failure that may succeed on retry.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// Classify wraps err in a ToolError whose category follows from the
// admin client's error types. Errors that already carry a category are
// returned unchanged; nil stays nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var toolError *ToolError
	if errors.As(err, &toolError) {
		return err
	}

	var (
		connectivity *adminclient.ConnectivityError
		serverError  *adminclient.ServerError
	)
	switch {
	case errors.As(err, &connectivity):
		return &ToolError{Category: CategoryTransient, Err: err}
	case errors.As(err, &serverError):
		return &ToolError{Category: CategoryRejected, Err: err}
	case errors.Is(err, adminclient.ErrInvalidFunction), errors.Is(err, adminclient.ErrInvalidCommand):
		return &ToolError{Category: CategoryValidation, Err: err}
	}
	return &ToolError{Category: CategoryInternal, Err: err}
}
