// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/gearadmin/cmd/gearadmin/cli"
	"github.com/bureau-foundation/gearadmin/lib/adminproto"
)

type infoParams struct {
	Server ServerFlags
	OutputFlags
}

type infoResult struct {
	Address      string                      `json:"address"`
	Version      string                      `json:"version"`
	VersionKnown bool                        `json:"version_known"`
	RefreshedAt  time.Time                   `json:"refreshed_at"`
	Functions    []adminproto.FunctionStatus `json:"functions"`
	Workers      []adminproto.WorkerRecord   `json:"workers"`
}

func infoCommand(stdout io.Writer) *cli.Command {
	var params infoParams
	return &cli.Command{
		Name:    "info",
		Summary: "Version, status and workers in one report",
		Description: `Fetch the server version, the function status table and the worker
list over a single connection and print them together.`,
		Usage: "gearadmin info [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("info", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("info takes no arguments, got %q", args)
			}
			client, cfg, err := params.Server.Client(logger)
			if err != nil {
				return err
			}
			if err := params.configure(cfg); err != nil {
				return err
			}

			state, err := client.Refresh(ctx)
			if err != nil {
				return cli.Classify(err)
			}
			result := infoResult{
				Address:      client.Address(),
				Version:      state.Version,
				VersionKnown: state.VersionKnown,
				RefreshedAt:  state.StatusAt,
				Functions:    state.Status.Functions(),
				Workers:      state.Workers.Workers(),
			}
			if done, err := params.emit(stdout, result); done {
				if err != nil {
					return err
				}
				return strictFailure(cfg, state.Status.Diagnostics(), state.Workers.Diagnostics())
			}

			version := state.Version
			if !state.VersionKnown {
				version = "unknown"
			}
			var report strings.Builder
			fmt.Fprintf(&report, "Server: %s\n", client.Address())
			fmt.Fprintf(&report, "Version: %s\n\n", version)
			report.WriteString(state.Status.String())
			report.WriteString("\n")
			report.WriteString(state.Workers.String())
			if _, err := io.WriteString(stdout, report.String()); err != nil {
				return cli.Internal("writing output: %w", err)
			}
			return strictFailure(cfg, state.Status.Diagnostics(), state.Workers.Diagnostics())
		},
	}
}
