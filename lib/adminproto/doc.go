// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package adminproto parses responses from the gearmand administrative
// text protocol into typed records.
//
// The protocol is line oriented. A client writes a single command line
// ("status", "workers", "version") and the server answers with zero or
// more lines followed by a line holding a lone ".". This package never
// sees the socket: callers hand it the response lines with the
// terminator already removed, and it returns immutable values:
//
//   - [StatusSnapshot] from "status": per-function queued, running and
//     available-worker counts, keyed by function name in first-seen
//     order.
//   - [WorkerRegistry] from "workers": one [WorkerRecord] per connected
//     worker, in server order.
//   - a version string from "version", or unknown.
//
// Parsing is lenient by default. Lines that do not have the expected
// shape are skipped, because gearmand and its forks occasionally emit
// blank or informational lines. Lines that have the right shape but
// carry an unparseable number are not coerced to zero: they are left
// out of the result and reported as a [*LineError] in the returned
// [Diagnostics]. A [Parser] with Strict set reports skipped lines too.
//
// Everything here is pure and synchronous, so a single [Parser] value
// may be shared between goroutines.
package adminproto
