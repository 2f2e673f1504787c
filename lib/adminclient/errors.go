// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package adminclient

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/gearadmin/lib/netutil"
)

var (
	// ErrInvalidCommand is returned for command text that cannot be
	// sent as a single protocol line.
	ErrInvalidCommand = errors.New("invalid admin command")

	// ErrInvalidFunction is returned by MaxQueue for function names
	// that are empty or contain whitespace.
	ErrInvalidFunction = errors.New("invalid function name")

	// ErrSessionClosed is returned when a closed Session is used.
	ErrSessionClosed = errors.New("session closed")
)

// ConnectivityError reports a transport failure while dialing,
// writing a command or reading its reply. It is fatal to the operation
// and always propagated.
type ConnectivityError struct {
	// Op is "dial", "write" or "read".
	Op string

	// Address is the host:port being talked to.
	Address string

	// Command is the admin command in flight, empty for dial.
	Command string

	// Err is the underlying error.
	Err error
}

func (e *ConnectivityError) Error() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "gearman admin %s %s", e.Op, e.Address)
	if e.Command != "" {
		fmt.Fprintf(&builder, " (%s)", e.Command)
	}
	if errno, ok := e.Errno(); ok {
		fmt.Fprintf(&builder, ": errno %d", int(errno))
	}
	fmt.Fprintf(&builder, ": %v", e.Err)
	return builder.String()
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// Errno returns the system error number behind the failure, if any.
func (e *ConnectivityError) Errno() (unix.Errno, bool) {
	return netutil.Errno(e.Err)
}

// Timeout reports whether the failure was a deadline expiring.
func (e *ConnectivityError) Timeout() bool {
	return netutil.IsTimeout(e.Err)
}

// Refused reports whether nothing accepted the connection.
func (e *ConnectivityError) Refused() bool {
	return netutil.IsRefused(e.Err)
}

// ServerError is an "ERR <code> <message>" reply.
type ServerError struct {
	// Command is the admin command that was rejected.
	Command string

	// Code is the gearmand error code, e.g. UNKNOWN_COMMAND.
	Code string

	// Message is the human-readable text, with gearmand's URL-style
	// encoding undone.
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gearman server rejected %q: %s", e.Command, e.Code)
	}
	return fmt.Sprintf("gearman server rejected %q: %s: %s", e.Command, e.Code, e.Message)
}

// parseServerError recognizes an ERR reply line. Returns nil for any
// other line.
func parseServerError(command, line string) *ServerError {
	line = strings.TrimRight(line, "\r\n")
	if line != "ERR" && !strings.HasPrefix(line, "ERR ") {
		return nil
	}
	code, message, _ := strings.Cut(strings.TrimPrefix(strings.TrimPrefix(line, "ERR"), " "), " ")
	if decoded, err := url.QueryUnescape(message); err == nil {
		message = decoded
	}
	return &ServerError{Command: command, Code: code, Message: message}
}
