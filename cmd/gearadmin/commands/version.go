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

type versionParams struct {
	Server ServerFlags
	OutputFlags
}

type versionResult struct {
	Address string `json:"address"`
	Version string `json:"version"`
	Known   bool   `json:"known"`
}

func versionCommand(stdout io.Writer) *cli.Command {
	var params versionParams
	return &cli.Command{
		Name:    "version",
		Summary: "Print the server's version",
		Description: `Ask the server for its version string. Exits 1 when the server
answers without identifying a version. Use "gearadmin --version" for the
version of this tool.`,
		Usage: "gearadmin version [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("version takes no arguments, got %q", args)
			}
			client, cfg, err := params.Server.Client(logger)
			if err != nil {
				return err
			}
			if err := params.configure(cfg); err != nil {
				return err
			}

			version, known, err := client.Version(ctx)
			if err != nil {
				return cli.Classify(err)
			}
			result := versionResult{Address: client.Address(), Version: version, Known: known}
			if done, err := params.emit(stdout, result); done {
				if err != nil || known {
					return err
				}
				return &cli.ExitError{Code: 1}
			}

			if !known {
				fmt.Fprintf(stdout, "%s: version unknown\n", client.Address())
				return &cli.ExitError{Code: 1}
			}
			if _, err := fmt.Fprintln(stdout, version); err != nil {
				return cli.Internal("writing output: %w", err)
			}
			return nil
		},
	}
}
