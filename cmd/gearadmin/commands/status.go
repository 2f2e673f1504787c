// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/gearadmin/cmd/gearadmin/cli"
)

type statusParams struct {
	Server ServerFlags
	OutputFlags
	Functions []string `flag:"function,f" desc:"only show FUNCTION (repeatable; unknown names show zero counts)"`
}

func statusCommand(stdout io.Writer) *cli.Command {
	var params statusParams
	return &cli.Command{
		Name:    "status",
		Summary: "Show queued and running jobs per function",
		Description: `Show the job queue of every registered function.

Total counts queued jobs including running ones; Running counts jobs a
worker has picked up; Available counts idle workers for the function.
Functions are listed in the order the server reported them.`,
		Usage: "gearadmin status [flags]",
		Examples: []cli.Example{
			{Description: "Queue depths on the local server", Command: "gearadmin status"},
			{Description: "Two functions as JSON", Command: "gearadmin status -f resize -f thumbnail --json"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("status", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("status takes no arguments, got %q", args)
			}
			client, cfg, err := params.Server.Client(logger)
			if err != nil {
				return err
			}
			if err := params.configure(cfg); err != nil {
				return err
			}

			snapshot, err := client.Status(ctx)
			if err != nil {
				return cli.Classify(err)
			}
			shown := snapshot
			if len(params.Functions) > 0 {
				shown = snapshot.Select(params.Functions...)
			}

			if done, err := params.emit(stdout, shown.Functions()); done {
				if err != nil {
					return err
				}
				return strictFailure(cfg, snapshot.Diagnostics())
			}
			if _, err := fmt.Fprint(stdout, shown.String()); err != nil {
				return cli.Internal("writing output: %w", err)
			}
			return strictFailure(cfg, snapshot.Diagnostics())
		},
	}
}
