// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"errors"
	"io"
	"net"

	"golang.org/x/sys/unix"
)

// IsExpectedCloseError reports whether err is a normal connection
// termination: EOF, closed connection, broken pipe, or connection
// reset.
func IsExpectedCloseError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	errno, ok := Errno(err)
	return ok && (errno == unix.EPIPE || errno == unix.ECONNRESET)
}

// Errno extracts the system error number wrapped inside err, if any.
func Errno(err error) (unix.Errno, bool) {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return errno, true
	}
	return 0, false
}

// IsTimeout reports whether err is a deadline or timeout failure.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, unix.ETIMEDOUT) {
		return true
	}
	var netError net.Error
	return errors.As(err, &netError) && netError.Timeout()
}

// IsRefused reports whether err is a refused connection, which for
// gearmand almost always means nothing is listening on the port.
func IsRefused(err error) bool {
	errno, ok := Errno(err)
	return ok && errno == unix.ECONNREFUSED
}
