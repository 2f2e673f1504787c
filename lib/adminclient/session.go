// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package adminclient

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/bureau-foundation/gearadmin/lib/adminproto"
	"github.com/bureau-foundation/gearadmin/lib/netutil"
)

const (
	// DefaultAddress is where gearmand listens unless told otherwise.
	DefaultAddress = "127.0.0.1:4730"

	// DefaultTimeout bounds each command's round trip.
	DefaultTimeout = 500 * time.Millisecond
)

// endOfResponse terminates multi-line replies.
const endOfResponse = "."

// framing describes how a command's reply ends.
type framing int

const (
	// multiLine replies end at a lone "." line or when the server
	// closes the connection.
	multiLine framing = iota

	// singleLine replies are normally one unterminated line. Complete
	// lines the server already sent after it are read as part of the
	// same reply, up to a "." line.
	singleLine
)

// Session is one open connection to the admin port.
type Session struct {
	// Parser controls how status and workers replies are parsed.
	Parser adminproto.Parser

	address string
	timeout time.Duration
	conn    net.Conn
	reader  *bufio.Reader
	closed  bool
}

// Dial connects to address. A zero timeout means [DefaultTimeout]. The
// timeout bounds the dial and, afterwards, each command individually.
func Dial(ctx context.Context, address string, timeout time.Duration) (*Session, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, &ConnectivityError{Op: "dial", Address: address, Err: err}
	}
	return &Session{
		address: address,
		timeout: timeout,
		conn:    conn,
		reader:  bufio.NewReader(conn),
	}, nil
}

// Address returns the remote host:port.
func (s *Session) Address() string { return s.address }

// Close closes the connection. Safe to call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

// Command sends an arbitrary command and returns its reply lines, read
// as a multi-line response. The terminator is not included; line
// endings are.
func (s *Session) Command(ctx context.Context, command string) ([]string, error) {
	return s.exchange(ctx, command, multiLine)
}

// Status runs "status" and parses the reply.
func (s *Session) Status(ctx context.Context) (*adminproto.StatusSnapshot, error) {
	lines, err := s.exchange(ctx, "status", multiLine)
	if err != nil {
		return nil, err
	}
	snapshot, _ := s.Parser.Status(lines)
	return snapshot, nil
}

// Workers runs "workers" and parses the reply.
func (s *Session) Workers(ctx context.Context) (*adminproto.WorkerRegistry, error) {
	lines, err := s.exchange(ctx, "workers", multiLine)
	if err != nil {
		return nil, err
	}
	registry, _ := s.Parser.Workers(lines)
	return registry, nil
}

// Version runs "version". The boolean is false when the server's
// answer did not identify a version.
func (s *Session) Version(ctx context.Context) (string, bool, error) {
	lines, err := s.exchange(ctx, "version", singleLine)
	if err != nil {
		return "", false, err
	}
	version, ok := adminproto.ParseVersion(lines)
	return version, ok, nil
}

// Shutdown asks the server to stop, letting running jobs finish when
// graceful is set. The server hanging up before it answers counts as
// success.
func (s *Session) Shutdown(ctx context.Context, graceful bool) error {
	command := "shutdown"
	if graceful {
		command = "shutdown graceful"
	}
	lines, err := s.exchange(ctx, command, singleLine)
	if err != nil {
		var connectivity *ConnectivityError
		if errors.As(err, &connectivity) && connectivity.Op == "read" && netutil.IsExpectedCloseError(connectivity.Err) {
			return nil
		}
		return err
	}
	return expectOK(command, lines)
}

// MaxQueue sets the queue limit for function. Function names may not
// be empty or contain whitespace.
func (s *Session) MaxQueue(ctx context.Context, function string, size QueueSize) error {
	if err := validateFunction(function); err != nil {
		return err
	}
	command := "maxqueue " + function
	if size.set {
		command += fmt.Sprintf(" %d", size.limit)
	}
	lines, err := s.exchange(ctx, command, singleLine)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return &ConnectivityError{Op: "read", Address: s.address, Command: command, Err: io.ErrUnexpectedEOF}
	}
	return expectOK(command, lines)
}

// exchange writes command and reads its reply under one deadline.
func (s *Session) exchange(ctx context.Context, command string, frame framing) ([]string, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if command == "" || strings.ContainsAny(command, "\r\n") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCommand, command)
	}

	deadline := time.Now().Add(s.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := s.conn.SetDeadline(deadline); err != nil {
		return nil, &ConnectivityError{Op: "write", Address: s.address, Command: command, Err: err}
	}
	// Cancelling ctx forces the pending read or write to fail now.
	stop := context.AfterFunc(ctx, func() {
		s.conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	if _, err := io.WriteString(s.conn, command+"\n"); err != nil {
		return nil, s.transportError(ctx, "write", command, err)
	}

	var lines []string
	for {
		line, err := s.reader.ReadString('\n')
		if line != "" {
			if len(lines) == 0 {
				if serverError := parseServerError(command, line); serverError != nil {
					return nil, serverError
				}
			}
			if strings.TrimRight(line, "\r\n") == endOfResponse {
				return lines, nil
			}
			lines = append(lines, line)
			if frame == singleLine {
				return s.readBuffered(lines), nil
			}
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, s.transportError(ctx, "read", command, err)
		}
	}
}

// readBuffered appends the complete lines already waiting in the
// reader, stopping at a "." line. It never blocks on the connection.
func (s *Session) readBuffered(lines []string) []string {
	for s.reader.Buffered() > 0 {
		waiting, _ := s.reader.Peek(s.reader.Buffered())
		if bytes.IndexByte(waiting, '\n') < 0 {
			return lines
		}
		line, err := s.reader.ReadString('\n')
		if err != nil || strings.TrimRight(line, "\r\n") == endOfResponse {
			return lines
		}
		lines = append(lines, line)
	}
	return lines
}

// transportError wraps err, preferring the context's reason when the
// failure came from cancellation.
func (s *Session) transportError(ctx context.Context, op, command string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = fmt.Errorf("%w (%w)", ctxErr, err)
	}
	return &ConnectivityError{Op: op, Address: s.address, Command: command, Err: err}
}

func expectOK(command string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	reply := strings.TrimSpace(lines[0])
	if reply == "OK" || strings.HasPrefix(reply, "OK ") {
		return nil
	}
	return fmt.Errorf("unexpected reply to %q: %q", command, reply)
}

func validateFunction(function string) error {
	if function == "" {
		return fmt.Errorf("%w: empty", ErrInvalidFunction)
	}
	if strings.IndexFunc(function, isSpace) >= 0 {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidFunction, function)
	}
	return nil
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
