// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// gearadmin queries and controls a Gearman job server through its
// administrative text protocol.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/gearadmin/cmd/gearadmin/commands"
	"github.com/bureau-foundation/gearadmin/lib/process"
)

func main() {
	// Commands that print their own output (like "version" against a
	// server that does not report one) return an error carrying the
	// exit code, and no "error:" line is printed for those.
	if err := run(); err != nil {
		process.Exit(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return commands.Root().Execute(ctx, os.Args[1:])
}
