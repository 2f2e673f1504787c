// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package adminproto

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors identifying which kind of line failed. Match them
// with errors.Is against a [*LineError] or a [Diagnostics.Err] result.
var (
	// ErrMalformedStatusLine marks a "status" line that has four
	// fields but an invalid function name or count.
	ErrMalformedStatusLine = errors.New("malformed status line")

	// ErrMalformedWorkerLine marks a "workers" line that has the
	// worker shape but a non-numeric file descriptor.
	ErrMalformedWorkerLine = errors.New("malformed worker line")

	// ErrUnrecognizedLine marks a line skipped because it does not
	// have the expected shape at all. Only reported in strict mode.
	ErrUnrecognizedLine = errors.New("unrecognized line")
)

// LineError describes one response line that was left out of a parse
// result. It never aborts the batch: the remaining lines are still
// parsed.
type LineError struct {
	// Command is the admin command whose response was being parsed
	// ("status" or "workers").
	Command string

	// Line is the zero-based index of the line in the input batch.
	Line int

	// Text is the offending line with its line ending removed.
	Text string

	// Field names the field that failed to parse, or is empty when
	// the line as a whole was rejected.
	Field string

	// Kind is one of the package sentinel errors.
	Kind error

	// Err is the underlying cause (for example a *strconv.NumError).
	// May be nil.
	Err error
}

func (e *LineError) Error() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%s response line %d", e.Command, e.Line)
	if e.Field != "" {
		fmt.Fprintf(&builder, " field %s", e.Field)
	}
	fmt.Fprintf(&builder, ": %v", e.Kind)
	if e.Err != nil {
		fmt.Fprintf(&builder, ": %v", e.Err)
	}
	fmt.Fprintf(&builder, " (%q)", e.Text)
	return builder.String()
}

// Unwrap exposes both the sentinel kind and the underlying cause so
// that errors.Is matches either.
func (e *LineError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Diagnostics collects the line errors produced by one parse, in input
// order. A nil Diagnostics means every line was either accepted or
// skipped silently.
type Diagnostics []*LineError

// Err joins the diagnostics into a single error, or returns nil when
// there are none.
func (d Diagnostics) Err() error {
	if len(d) == 0 {
		return nil
	}
	errs := make([]error, len(d))
	for i, lineError := range d {
		errs[i] = lineError
	}
	return errors.Join(errs...)
}

// Parser holds parse options. The zero value is the lenient parser.
type Parser struct {
	// Strict reports lines that were skipped for having the wrong
	// shape, wrapping [ErrUnrecognizedLine]. Blank lines are never
	// reported.
	Strict bool
}

// trimLineEnding removes a trailing "\n" or "\r\n". Other whitespace is
// significant: the workers format depends on its trailing space.
func trimLineEnding(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// parseCount parses a non-negative decimal count. Surrounding spaces
// are tolerated since some servers pad the columns.
func parseCount(field string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, fmt.Errorf("negative count %d", value)
	}
	return value, nil
}
