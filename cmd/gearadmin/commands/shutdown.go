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

type shutdownParams struct {
	Server ServerFlags
	Force  bool `flag:"force" desc:"stop immediately instead of letting running jobs finish"`
}

func shutdownCommand(stdout io.Writer) *cli.Command {
	var params shutdownParams
	return &cli.Command{
		Name:    "shutdown",
		Summary: "Stop the server",
		Description: `Ask gearmand to shut down. By default the shutdown is graceful: the
server stops accepting work and exits once running jobs finish. --force
stops it immediately.`,
		Usage: "gearadmin shutdown [--force] [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("shutdown", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("shutdown takes no arguments, got %q", args)
			}
			client, _, err := params.Server.Client(logger)
			if err != nil {
				return err
			}
			graceful := !params.Force
			if err := client.Shutdown(ctx, graceful); err != nil {
				return cli.Classify(err)
			}
			mode := "graceful"
			if !graceful {
				mode = "immediate"
			}
			fmt.Fprintf(stdout, "%s: %s shutdown requested\n", client.Address(), mode)
			return nil
		},
	}
}
