// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports gearadmin's own build information.
//
// Three variables are injected at build time via -ldflags -X:
//
//	go build -ldflags "-X github.com/bureau-foundation/gearadmin/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// They default to "unknown" / "0.1.0-dev" in development builds and
// test runs. This is the client's version; the server's version comes
// from the "version" admin command.
package version
