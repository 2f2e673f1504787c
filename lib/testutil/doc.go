// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for gearadmin packages.
//
// [StartAdminServer] runs an in-process TCP server on 127.0.0.1 that
// speaks the gearmand admin text protocol through a caller-supplied
// [Handler]. [Gearmand] builds a handler that answers like a real
// gearmand from canned status, workers and version data, including the
// framing quirks: multi-line replies end with ".", single-line replies
// do not, and unknown commands get an ERR line.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with time.After fallback) so that individual tests do not
// need direct time.After calls.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
