// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package adminproto

import (
	"errors"
	"slices"
	"testing"
)

func TestParseWorkersSingleFunction(t *testing.T) {
	registry, diagnostics := ParseWorkers([]string{"23 10.0.0.1 - : reverse \n"})
	if len(diagnostics) != 0 {
		t.Fatalf("diagnostics = %v", diagnostics)
	}

	workers := registry.Workers()
	if len(workers) != 1 {
		t.Fatalf("got %d workers, want 1", len(workers))
	}
	worker := workers[0]
	if worker.FileDescriptor != 23 {
		t.Errorf("FileDescriptor = %d, want 23", worker.FileDescriptor)
	}
	if worker.Address != "10.0.0.1" {
		t.Errorf("Address = %q, want 10.0.0.1", worker.Address)
	}
	if worker.ClientID != "-" {
		t.Errorf("ClientID = %q, want -", worker.ClientID)
	}
	if !slices.Equal(worker.Functions, []string{"reverse"}) {
		t.Errorf("Functions = %q, want [reverse]", worker.Functions)
	}
	if worker.HasClientID() {
		t.Error("HasClientID() should be false for the placeholder")
	}
}

func TestParseWorkersEmptyFunctionList(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"trailing space", "31 10.0.0.2 client-a : \n"},
		{"no trailing space", "31 10.0.0.2 client-a :\n"},
		{"crlf", "31 10.0.0.2 client-a : \r\n"},
		{"unset client id, bare colon", "23 10.0.0.1 - :\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			registry, diagnostics := ParseWorkers([]string{test.line})
			if len(diagnostics) != 0 {
				t.Fatalf("diagnostics = %v", diagnostics)
			}
			workers := registry.Workers()
			if len(workers) != 1 {
				t.Fatalf("got %d workers, want 1", len(workers))
			}
			if workers[0].Functions == nil || len(workers[0].Functions) != 0 {
				t.Errorf("Functions = %#v, want empty non-nil slice", workers[0].Functions)
			}
		})
	}
}

func TestParseWorkersWithoutTrailingSpace(t *testing.T) {
	for _, parser := range []Parser{{}, {Strict: true}} {
		registry, diagnostics := parser.Workers([]string{"23 10.0.0.1 - : reverse resize\n"})
		if len(diagnostics) != 0 {
			t.Fatalf("strict=%v: diagnostics = %v", parser.Strict, diagnostics)
		}
		workers := registry.Workers()
		if len(workers) != 1 {
			t.Fatalf("strict=%v: got %d workers, want 1", parser.Strict, len(workers))
		}
		if !slices.Equal(workers[0].Functions, []string{"reverse", "resize"}) {
			t.Errorf("strict=%v: Functions = %q", parser.Strict, workers[0].Functions)
		}
	}
}

func TestParseWorkersMultipleFunctionsAndOrder(t *testing.T) {
	registry, _ := ParseWorkers([]string{
		"5 ::1 alpha : resize thumbnail \n",
		"not a worker line\n",
		"5 ::1 alpha : resize thumbnail \n",
		"7 192.168.1.4 beta : email \n",
	})

	workers := registry.Workers()
	if len(workers) != 3 {
		t.Fatalf("got %d workers, want 3 (duplicates preserved)", len(workers))
	}
	if !slices.Equal(workers[0].Functions, []string{"resize", "thumbnail"}) {
		t.Errorf("workers[0].Functions = %q", workers[0].Functions)
	}
	if workers[0].Address != "::1" || !workers[0].HasClientID() {
		t.Errorf("workers[0] = %+v", workers[0])
	}
	if workers[2].FileDescriptor != 7 || workers[2].ClientID != "beta" {
		t.Errorf("workers[2] = %+v", workers[2])
	}
	if got := registry.WithFunction("thumbnail"); len(got) != 2 {
		t.Errorf("WithFunction(thumbnail) returned %d records, want 2", len(got))
	}
	if got := registry.WithFunction("missing"); len(got) != 0 {
		t.Errorf("WithFunction(missing) = %v, want none", got)
	}
}

func TestParseWorkersSkipsUnrecognizedLines(t *testing.T) {
	lines := []string{
		"\n",
		"23 10.0.0.1 -\n",
		"23 10.0.0.1 - reverse\n",
		"23 10.0.0.1 - :reverse\n",
		"OK\n",
	}
	registry, diagnostics := ParseWorkers(lines)
	if registry.Len() != 0 {
		t.Errorf("Len() = %d, want 0", registry.Len())
	}
	if len(diagnostics) != 0 {
		t.Errorf("lenient parse reported %v", diagnostics)
	}

	_, strict := Parser{Strict: true}.Workers(lines)
	if len(strict) != 4 {
		t.Fatalf("strict parse reported %d diagnostics, want 4: %v", len(strict), strict)
	}
	for _, diagnostic := range strict {
		if !errors.Is(diagnostic, ErrUnrecognizedLine) {
			t.Errorf("diagnostic %v should match ErrUnrecognizedLine", diagnostic)
		}
	}
}

func TestParseWorkersNonNumericDescriptor(t *testing.T) {
	registry, diagnostics := ParseWorkers([]string{
		"fd 10.0.0.1 - : reverse \n",
		"9 10.0.0.1 - : reverse \n",
	})
	if registry.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", registry.Len())
	}
	if len(diagnostics) != 1 {
		t.Fatalf("diagnostics = %v, want one", diagnostics)
	}
	diagnostic := diagnostics[0]
	if !errors.Is(diagnostic, ErrMalformedWorkerLine) {
		t.Errorf("diagnostic %v should match ErrMalformedWorkerLine", diagnostic)
	}
	if diagnostic.Line != 0 || diagnostic.Field != "fd" {
		t.Errorf("diagnostic = %+v", diagnostic)
	}
}

func TestWorkerRegistryEmpty(t *testing.T) {
	registry, _ := ParseWorkers(nil)
	workers := registry.Workers()
	if workers == nil || len(workers) != 0 {
		t.Errorf("Workers() = %#v, want empty slice", workers)
	}
}

func TestWorkerRegistryAccessorsReturnCopies(t *testing.T) {
	registry, _ := ParseWorkers([]string{"1 h - : a b \n"})
	workers := registry.Workers()
	workers[0].Functions[0] = "mutated"
	if registry.Workers()[0].Functions[0] != "a" {
		t.Error("Workers() must not expose internal slices")
	}
}

func TestWorkerRegistryString(t *testing.T) {
	registry, _ := ParseWorkers([]string{
		"23 10.0.0.1 - : reverse resize \n",
		"4 127.0.0.1 mailer : \n",
	})

	want := "File descriptor: | IP address:     | Client id: | Functions:\n" +
		"-------------------------------------------------------------\n" +
		"              23 |        10.0.0.1 | -          | reverse resize\n" +
		"               4 |       127.0.0.1 | mailer     | \n"
	if got := registry.String(); got != want {
		t.Errorf("String() =\n%q\nwant\n%q", got, want)
	}
}

func TestWorkerRegistryFilter(t *testing.T) {
	registry, _ := ParseWorkers([]string{
		"33 10.0.0.5 a : resize thumbnail \n",
		"34 10.0.0.6 b : email \n",
		"35 10.0.0.7 c : resize \n",
	})

	filtered := registry.Filter("resize")
	if filtered.Len() != 2 {
		t.Fatalf("Filter(resize).Len() = %d, want 2", filtered.Len())
	}
	workers := filtered.Workers()
	if workers[0].ClientID != "a" || workers[1].ClientID != "c" {
		t.Errorf("Filter(resize) = %+v", workers)
	}
	if registry.Filter("unknown").Len() != 0 {
		t.Error("Filter(unknown) is not empty")
	}
}
