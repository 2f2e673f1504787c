// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ExitCoder is implemented by errors that carry a status and whose
// message the command has already shown (or deliberately suppressed).
type ExitCoder interface {
	ExitCode() int
}

// Coder is implemented by errors that carry a status but still need
// their message printed.
type Coder interface {
	Code() int
}

// Status reports err on stderr as "error: <err>" and returns the exit
// status for it.
func Status(stderr io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var exitCoder ExitCoder
	if errors.As(err, &exitCoder) {
		return exitCoder.ExitCode()
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	var coder Coder
	if errors.As(err, &coder) {
		if code := coder.Code(); code != 0 {
			return code
		}
	}
	return 1
}

// Exit terminates the process with the status [Status] chooses for err.
// A nil err exits 0.
func Exit(err error) {
	os.Exit(Status(os.Stderr, err))
}
