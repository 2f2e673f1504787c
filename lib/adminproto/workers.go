// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package adminproto

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// workerLinePattern matches "<fd> <address> <client-id> :<functions>".
// The function list is validated separately: it must be empty or start
// with a space.
var workerLinePattern = regexp.MustCompile(`^(?P<fd>\S+)\s(?P<address>\S+)\s(?P<client>\S+)\s:(?P<functions>.*)$`)

var (
	workerFDIndex        = workerLinePattern.SubexpIndex("fd")
	workerAddressIndex   = workerLinePattern.SubexpIndex("address")
	workerClientIndex    = workerLinePattern.SubexpIndex("client")
	workerFunctionsIndex = workerLinePattern.SubexpIndex("functions")
)

// UnsetClientID is the placeholder gearmand reports for a worker that
// never sent SET_CLIENT_ID.
const UnsetClientID = "-"

// WorkerRecord is one connection listed by the "workers" command.
type WorkerRecord struct {
	// FileDescriptor is the server-side socket descriptor. It is not
	// guaranteed unique across records.
	FileDescriptor int `json:"fd"`

	// Address is the peer address as reported by the server.
	Address string `json:"address"`

	// ClientID is the worker-supplied identifier, or [UnsetClientID].
	ClientID string `json:"client_id"`

	// Functions lists the registered function names. Empty for
	// connections that registered nothing (including plain clients).
	Functions []string `json:"functions"`
}

// HasClientID reports whether the worker set a client identifier.
func (w WorkerRecord) HasClientID() bool {
	return w.ClientID != "" && w.ClientID != UnsetClientID
}

// CanDo reports whether the worker registered function.
func (w WorkerRecord) CanDo(function string) bool {
	return slices.Contains(w.Functions, function)
}

// WorkerRegistry is the parsed result of one "workers" command, in
// server response order. It is immutable after construction.
type WorkerRegistry struct {
	workers     []WorkerRecord
	diagnostics Diagnostics
}

// ParseWorkers parses "workers" response lines with the lenient parser.
func ParseWorkers(lines []string) (*WorkerRegistry, Diagnostics) {
	return Parser{}.Workers(lines)
}

// Workers parses "workers" response lines. Every matching line yields
// one record; duplicates are kept.
func (p Parser) Workers(lines []string) (*WorkerRegistry, Diagnostics) {
	registry := &WorkerRegistry{}

	for index, raw := range lines {
		line := trimLineEnding(raw)
		if strings.TrimSpace(line) == "" {
			continue
		}

		record, lineError := parseWorkerLine(line)
		if lineError != nil {
			if lineError.Kind == ErrUnrecognizedLine && !p.Strict {
				continue
			}
			lineError.Line = index
			lineError.Text = line
			registry.diagnostics = append(registry.diagnostics, lineError)
			continue
		}
		registry.workers = append(registry.workers, record)
	}

	return registry, registry.diagnostics
}

func parseWorkerLine(line string) (WorkerRecord, *LineError) {
	matches := workerLinePattern.FindStringSubmatch(line)
	if matches == nil {
		return WorkerRecord{}, &LineError{
			Command: "workers",
			Kind:    ErrUnrecognizedLine,
		}
	}

	remainder := matches[workerFunctionsIndex]
	if remainder != "" && remainder[0] != ' ' {
		return WorkerRecord{}, &LineError{
			Command: "workers",
			Field:   "functions",
			Kind:    ErrUnrecognizedLine,
			Err:     fmt.Errorf("no space after colon"),
		}
	}

	fd, err := strconv.Atoi(matches[workerFDIndex])
	if err != nil {
		return WorkerRecord{}, &LineError{
			Command: "workers",
			Field:   "fd",
			Kind:    ErrMalformedWorkerLine,
			Err:     err,
		}
	}

	return WorkerRecord{
		FileDescriptor: fd,
		Address:        matches[workerAddressIndex],
		ClientID:       matches[workerClientIndex],
		Functions:      splitFunctions(remainder),
	}, nil
}

// splitFunctions splits the space-separated function list. The list is
// framed by a leading separator and a trailing space, so an empty list
// arrives as " " and must produce no entries rather than [""].
func splitFunctions(list string) []string {
	var functions []string
	for _, name := range strings.Split(list, " ") {
		if name != "" {
			functions = append(functions, name)
		}
	}
	if functions == nil {
		return []string{}
	}
	return functions
}

// Workers returns all records in server order.
func (r *WorkerRegistry) Workers() []WorkerRecord {
	workers := make([]WorkerRecord, len(r.workers))
	for i, worker := range r.workers {
		worker.Functions = slices.Clone(worker.Functions)
		workers[i] = worker
	}
	return workers
}

// Len returns the number of records.
func (r *WorkerRegistry) Len() int { return len(r.workers) }

// WithFunction returns the records that registered function, in server
// order.
func (r *WorkerRegistry) WithFunction(function string) []WorkerRecord {
	var matching []WorkerRecord
	for _, worker := range r.Workers() {
		if worker.CanDo(function) {
			matching = append(matching, worker)
		}
	}
	return matching
}

// Filter returns a registry holding only the records that registered
// function. The result carries no diagnostics.
func (r *WorkerRegistry) Filter(function string) *WorkerRegistry {
	return &WorkerRegistry{workers: r.WithFunction(function)}
}

// Diagnostics returns the line errors collected while parsing.
func (r *WorkerRegistry) Diagnostics() Diagnostics {
	return append(Diagnostics(nil), r.diagnostics...)
}

// String renders the registry as a fixed-width table, one row per
// record in server order.
func (r *WorkerRegistry) String() string {
	var builder strings.Builder
	builder.WriteString("File descriptor: | IP address:     | Client id: | Functions:\n")
	builder.WriteString(strings.Repeat("-", 61) + "\n")
	for _, worker := range r.workers {
		fmt.Fprintf(&builder, "%16d | %15s | %-10s | %s\n",
			worker.FileDescriptor, worker.Address, worker.ClientID,
			strings.Join(worker.Functions, " "))
	}
	return builder.String()
}
