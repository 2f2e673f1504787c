// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil classifies network errors.
//
// [IsExpectedCloseError] recognizes the errors a peer produces by
// hanging up: EOF, a closed connection, a broken pipe or a reset.
// gearmand closes the socket after "shutdown", so a client waiting for
// the reply sees one of these and should treat it as success.
//
// [Errno] and [IsTimeout] pull the system-level cause out of a wrapped
// dial, read or write error so that connectivity failures can be
// reported with the errno that caused them.
package netutil
