// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the gearadmin command tree.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/gearadmin/cmd/gearadmin/cli"
	"github.com/bureau-foundation/gearadmin/lib/version"
)

// Root returns the command tree writing to os.Stdout.
func Root() *cli.Command {
	return NewRoot(os.Stdout)
}

// NewRoot returns the command tree with command output sent to stdout.
// Help and logs always go to stderr.
func NewRoot(stdout io.Writer) *cli.Command {
	var showVersion bool
	root := &cli.Command{
		Name: "gearadmin",
		Description: `gearadmin: query and control a Gearman job server's admin port.

Settings come from flags, then the file named by --config or
$GEARADMIN_CONFIG, then the defaults (127.0.0.1:4730, 500ms timeout).`,
		Subcommands: []*cli.Command{
			statusCommand(stdout),
			workersCommand(stdout),
			versionCommand(stdout),
			infoCommand(stdout),
			shutdownCommand(stdout),
			maxqueueCommand(stdout),
			watchCommand(),
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("gearadmin", pflag.ContinueOnError)
			flagSet.BoolVar(&showVersion, "version", false, "print gearadmin's own version and exit")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Everything at once, as in the classic admin report",
				Command:     "gearadmin info",
			},
			{
				Description: "Queue depths on another server, as JSON",
				Command:     "gearadmin status --host jobs.internal --json",
			},
			{
				Description: "Drain and stop the server",
				Command:     "gearadmin shutdown",
			},
			{
				Description: "Watch queues live",
				Command:     "gearadmin watch --interval 1s",
			},
		},
	}
	root.Run = func(_ context.Context, args []string, _ *slog.Logger) error {
		if showVersion {
			version.Print(stdout, "gearadmin")
			return nil
		}
		root.PrintHelp(os.Stderr)
		if len(args) > 0 {
			return cli.Validation("unexpected arguments %q", args)
		}
		return cli.Validation("command required")
	}
	return root
}
