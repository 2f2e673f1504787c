// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package adminproto

import (
	"fmt"
	"strings"
)

// statusFieldCount is the number of tab-separated fields in a status
// line: function, total, running, available.
const statusFieldCount = 4

// FunctionStatus is one function's queue depth as reported by the
// "status" command.
type FunctionStatus struct {
	// Name is the registered function name.
	Name string `json:"function"`

	// Total is the number of queued jobs, running or waiting.
	Total int `json:"total"`

	// Running is the number of jobs currently being worked on.
	Running int `json:"running"`

	// Available is the number of idle workers able to run this
	// function.
	Available int `json:"available"`
}

// StatusSnapshot is the parsed result of one "status" command. It is
// immutable after construction.
type StatusSnapshot struct {
	// order holds function names in first-seen order.
	order     []string
	functions map[string]FunctionStatus

	diagnostics Diagnostics
}

// ParseStatus parses "status" response lines with the lenient parser.
func ParseStatus(lines []string) (*StatusSnapshot, Diagnostics) {
	return Parser{}.Status(lines)
}

// Status parses "status" response lines. Each line is split on tabs and
// accepted when it has exactly four fields. A later line for the same
// function replaces the earlier one without moving it in the
// enumeration order.
func (p Parser) Status(lines []string) (*StatusSnapshot, Diagnostics) {
	snapshot := &StatusSnapshot{functions: make(map[string]FunctionStatus)}

	for index, raw := range lines {
		line := trimLineEnding(raw)
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != statusFieldCount {
			if p.Strict {
				snapshot.diagnostics = append(snapshot.diagnostics, &LineError{
					Command: "status",
					Line:    index,
					Text:    line,
					Kind:    ErrUnrecognizedLine,
					Err:     fmt.Errorf("got %d tab-separated fields, want %d", len(fields), statusFieldCount),
				})
			}
			continue
		}

		status, lineError := parseStatusFields(fields)
		if lineError != nil {
			lineError.Line = index
			lineError.Text = line
			snapshot.diagnostics = append(snapshot.diagnostics, lineError)
			continue
		}

		if _, seen := snapshot.functions[status.Name]; !seen {
			snapshot.order = append(snapshot.order, status.Name)
		}
		snapshot.functions[status.Name] = status
	}

	return snapshot, snapshot.diagnostics
}

// parseStatusFields converts the four fields of a well-formed status
// line. The returned LineError has Line and Text unset.
func parseStatusFields(fields []string) (FunctionStatus, *LineError) {
	status := FunctionStatus{Name: fields[0]}
	if status.Name == "" {
		return FunctionStatus{}, &LineError{
			Command: "status",
			Field:   "function",
			Kind:    ErrMalformedStatusLine,
		}
	}

	counts := []struct {
		name   string
		target *int
	}{
		{"total", &status.Total},
		{"running", &status.Running},
		{"available", &status.Available},
	}
	for i, count := range counts {
		value, err := parseCount(fields[i+1])
		if err != nil {
			return FunctionStatus{}, &LineError{
				Command: "status",
				Field:   count.name,
				Kind:    ErrMalformedStatusLine,
				Err:     err,
			}
		}
		*count.target = value
	}
	return status, nil
}

// FunctionNames returns the known function names in first-seen order.
func (s *StatusSnapshot) FunctionNames() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Functions returns every entry in the same order as FunctionNames.
func (s *StatusSnapshot) Functions() []FunctionStatus {
	functions := make([]FunctionStatus, len(s.order))
	for i, name := range s.order {
		functions[i] = s.functions[name]
	}
	return functions
}

// Len returns the number of distinct functions.
func (s *StatusSnapshot) Len() int { return len(s.order) }

// Has reports whether the snapshot contains name.
func (s *StatusSnapshot) Has(name string) bool {
	_, ok := s.functions[name]
	return ok
}

// Info returns the entry for name. Unknown names yield a zero-count
// entry carrying the requested name.
func (s *StatusSnapshot) Info(name string) FunctionStatus {
	if status, ok := s.functions[name]; ok {
		return status
	}
	return FunctionStatus{Name: name}
}

// Total returns the queued job count for name, or 0 if unknown.
func (s *StatusSnapshot) Total(name string) int { return s.functions[name].Total }

// Running returns the running job count for name, or 0 if unknown.
func (s *StatusSnapshot) Running(name string) int { return s.functions[name].Running }

// Available returns the idle worker count for name, or 0 if unknown.
func (s *StatusSnapshot) Available(name string) int { return s.functions[name].Available }

// Select returns a snapshot holding only the named functions, in the
// order given. Names the server did not report appear with zero
// counts; duplicates collapse to their first position. The result
// carries no diagnostics.
func (s *StatusSnapshot) Select(names ...string) *StatusSnapshot {
	selected := &StatusSnapshot{functions: make(map[string]FunctionStatus, len(names))}
	for _, name := range names {
		if _, seen := selected.functions[name]; seen {
			continue
		}
		selected.order = append(selected.order, name)
		selected.functions[name] = s.Info(name)
	}
	return selected
}

// Diagnostics returns the line errors collected while parsing.
func (s *StatusSnapshot) Diagnostics() Diagnostics {
	return append(Diagnostics(nil), s.diagnostics...)
}

// String renders the snapshot as a fixed-width table, one row per
// function in enumeration order.
func (s *StatusSnapshot) String() string {
	var builder strings.Builder
	builder.WriteString("Function:    | Total: | Running: | Available:\n")
	builder.WriteString(strings.Repeat("-", 46) + "\n")
	for _, status := range s.Functions() {
		fmt.Fprintf(&builder, "%-12s | %6d | %8d | %10d\n",
			status.Name, status.Total, status.Running, status.Available)
	}
	return builder.String()
}
