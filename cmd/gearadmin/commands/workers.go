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

type workersParams struct {
	Server ServerFlags
	OutputFlags
	Function string `flag:"function,f" desc:"only workers registered for FUNCTION"`
}

func workersCommand(stdout io.Writer) *cli.Command {
	var params workersParams
	return &cli.Command{
		Name:    "workers",
		Summary: "List connected workers and their functions",
		Description: `List every connection the server knows about: its file descriptor,
peer address, client id ("-" when unset) and registered functions.
Plain clients appear with an empty function list.`,
		Usage: "gearadmin workers [flags]",
		Examples: []cli.Example{
			{Description: "Who can run resize jobs", Command: "gearadmin workers --function resize"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("workers", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("workers takes no arguments, got %q", args)
			}
			client, cfg, err := params.Server.Client(logger)
			if err != nil {
				return err
			}
			if err := params.configure(cfg); err != nil {
				return err
			}

			registry, err := client.Workers(ctx)
			if err != nil {
				return cli.Classify(err)
			}
			shown := registry
			if params.Function != "" {
				shown = registry.Filter(params.Function)
			}

			if done, err := params.emit(stdout, shown.Workers()); done {
				if err != nil {
					return err
				}
				return strictFailure(cfg, registry.Diagnostics())
			}
			if _, err := fmt.Fprint(stdout, shown.String()); err != nil {
				return cli.Internal("writing output: %w", err)
			}
			return strictFailure(cfg, registry.Diagnostics())
		},
	}
}
