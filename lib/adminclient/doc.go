// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package adminclient talks to gearmand's administrative text port.
//
// A [Session] owns one TCP connection and runs one command at a time:
// it writes the command line, reads the reply framed the way gearmand
// frames it, and hands the lines to [adminproto] for parsing.
// "status" and "workers" replies end with a lone "." line (or the
// server hanging up); "version", "shutdown" and "maxqueue" answer with
// a single line. A reply starting with "ERR " is returned as a
// [*ServerError].
//
// A [Client] is the long-lived handle most callers want. Each call
// dials a fresh session and closes it before returning, except
// [Client.Refresh], which reads status, workers and version over one
// connection. The client remembers the last successful results in an
// explicit [State] (see [Client.Last]) stamped with refresh times;
// the cache is guarded by a mutex, so a Client is safe for concurrent
// use. I/O never happens under the lock.
//
// Every network failure (refused connection, timeout, reset) is a
// [*ConnectivityError] carrying the address and errno. They always
// propagate, and they never update the cache: a batch refresh commits
// all three results or none.
//
// Sessions are not safe for concurrent use: the protocol has no request
// identifiers, so only one command may be outstanding per connection.
package adminclient
