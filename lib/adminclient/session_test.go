// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package adminclient

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/bureau-foundation/gearadmin/lib/testutil"
)

func dialTest(t *testing.T, server *testutil.AdminServer) *Session {
	t.Helper()
	session, err := Dial(context.Background(), server.Address(), time.Second)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func TestCommandReadsUntilTerminator(t *testing.T) {
	server := testutil.StartAdminServer(t, func(string) testutil.Reply {
		return testutil.Reply{Lines: []string{"first", "second"}, Terminate: true}
	})
	session := dialTest(t, server)

	for round := range 2 {
		lines, err := session.Command(context.Background(), "status")
		if err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
		if !slices.Equal(lines, []string{"first\n", "second\n"}) {
			t.Errorf("round %d: lines = %q", round, lines)
		}
	}
}

func TestCommandEndsAtEOF(t *testing.T) {
	server := testutil.StartAdminServer(t, func(string) testutil.Reply {
		return testutil.Reply{Lines: []string{"only"}, Close: true}
	})
	session := dialTest(t, server)

	lines, err := session.Command(context.Background(), "workers")
	if err != nil {
		t.Fatalf("Command: %v", err)
	}
	if !slices.Equal(lines, []string{"only\n"}) {
		t.Errorf("lines = %q", lines)
	}
}

func TestCommandServerError(t *testing.T) {
	server := testutil.StartAdminServer(t, testutil.Gearmand(testutil.GearmandState{}))
	session := dialTest(t, server)

	_, err := session.Command(context.Background(), "bogus")
	var serverError *ServerError
	if !errors.As(err, &serverError) {
		t.Fatalf("error = %v, want *ServerError", err)
	}
	if serverError.Command != "bogus" || serverError.Code != "UNKNOWN_COMMAND" || serverError.Message != "Unknown server command" {
		t.Errorf("ServerError = %+v", serverError)
	}

	// The session stays usable after a rejected command.
	if _, err := session.Status(context.Background()); err != nil {
		t.Fatalf("Status after ERR: %v", err)
	}
}

func TestEmptyVersionReply(t *testing.T) {
	server := testutil.StartAdminServer(t, testutil.Gearmand(testutil.GearmandState{}))
	session := dialTest(t, server)

	version, known, err := session.Version(context.Background())
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if known || version != "" {
		t.Errorf("Version() = %q, %v; want unknown", version, known)
	}
}

func TestMultiLineVersionReply(t *testing.T) {
	server := testutil.StartAdminServer(t, func(command string) testutil.Reply {
		if command == "version" {
			return testutil.Reply{Lines: []string{"a", "b"}, Terminate: true}
		}
		return testutil.Reply{Lines: []string{"f1\t1\t2\t3"}, Terminate: true}
	})
	session := dialTest(t, server)

	version, known, err := session.Version(context.Background())
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if known || version != "" {
		t.Errorf("Version() = %q, %v; want unknown for a two-line reply", version, known)
	}

	// The extra lines must not leak into the next reply.
	snapshot, err := session.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if names := snapshot.FunctionNames(); !slices.Equal(names, []string{"f1"}) {
		t.Errorf("FunctionNames() = %q, want [f1]", names)
	}
	if snapshot.Total("f1") != 1 || snapshot.Running("f1") != 2 || snapshot.Available("f1") != 3 {
		t.Errorf("Info(f1) = %+v", snapshot.Info("f1"))
	}
}

func TestSingleLineVersionReply(t *testing.T) {
	server := testutil.StartAdminServer(t, testutil.Gearmand(testutil.GearmandState{
		Version: "1.1.21",
		Status:  []string{"reverse\t0\t0\t1"},
	}))
	session := dialTest(t, server)

	version, known, err := session.Version(context.Background())
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if !known || version != "1.1.21" {
		t.Errorf("Version() = %q, %v; want 1.1.21", version, known)
	}
	snapshot, err := session.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !snapshot.Has("reverse") {
		t.Errorf("status after version lost its rows: %q", snapshot.FunctionNames())
	}
}

func TestCommandRejectsLineBreaks(t *testing.T) {
	server := testutil.StartAdminServer(t, testutil.Gearmand(testutil.GearmandState{}))
	session := dialTest(t, server)

	for _, command := range []string{"", "status\nshutdown", "status\r"} {
		if _, err := session.Command(context.Background(), command); !errors.Is(err, ErrInvalidCommand) {
			t.Errorf("Command(%q) error = %v, want ErrInvalidCommand", command, err)
		}
	}
}

func TestSessionClose(t *testing.T) {
	server := testutil.StartAdminServer(t, testutil.Gearmand(testutil.GearmandState{}))
	session := dialTest(t, server)

	if err := session.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := session.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := session.Command(context.Background(), "status"); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Command after Close error = %v, want ErrSessionClosed", err)
	}
}

func TestParseServerError(t *testing.T) {
	tests := []struct {
		line string
		want *ServerError
	}{
		{"ERR UNKNOWN_COMMAND Unknown+server+command\n", &ServerError{Command: "x", Code: "UNKNOWN_COMMAND", Message: "Unknown server command"}},
		{"ERR NO_FUNCTION\r\n", &ServerError{Command: "x", Code: "NO_FUNCTION"}},
		{"ERR", &ServerError{Command: "x"}},
		{"ERRATIC\t1\t2\t3\n", nil},
		{"OK\n", nil},
	}
	for _, test := range tests {
		got := parseServerError("x", test.line)
		if (got == nil) != (test.want == nil) || (got != nil && *got != *test.want) {
			t.Errorf("parseServerError(%q) = %+v, want %+v", test.line, got, test.want)
		}
	}
}
