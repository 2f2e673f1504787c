// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process holds the binary entrypoint helper that turns the
// error returned by run() into an exit status. It is one of the few
// places allowed to write to stderr without the structured logger,
// since the logger may never have been created.
package process
