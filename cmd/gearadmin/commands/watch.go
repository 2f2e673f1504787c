// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/gearadmin/cmd/gearadmin/cli"
	"github.com/bureau-foundation/gearadmin/lib/adminui"
	"github.com/bureau-foundation/gearadmin/lib/config"
)

type watchParams struct {
	Server   ServerFlags
	Interval time.Duration `flag:"interval,i" desc:"time between refreshes (default from config, 2s)"`
	NoColor  bool          `flag:"no-color" desc:"render without colors"`
}

func watchCommand() *cli.Command {
	var params watchParams
	return &cli.Command{
		Name:    "watch",
		Summary: "Live dashboard of queues and workers",
		Description: `Open a full-screen dashboard that refreshes the status table, the
worker list and the server version on an interval, all over one
connection per refresh. A failed refresh keeps the last data on screen.

Keys: r refreshes now, tab switches tables, j/k scroll, q quits.`,
		Usage: "gearadmin watch [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("watch", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("watch takes no arguments, got %q", args)
			}
			// The dashboard owns the terminal; keep warnings out of it.
			clientLogger := slog.New(slog.DiscardHandler)
			if params.Server.Verbose {
				clientLogger = logger
			}
			client, cfg, err := params.Server.Client(clientLogger)
			if err != nil {
				return err
			}

			interval := params.Interval
			if interval <= 0 {
				interval, err = cfg.WatchInterval()
				if err != nil {
					return cli.Validation("%w", err)
				}
			}
			if params.NoColor || cfg.Output.Color == config.ColorNever {
				lipgloss.SetColorProfile(termenv.Ascii)
			}

			err = adminui.Run(ctx, client, adminui.Options{
				Address:  client.Address(),
				Interval: interval,
			})
			if err != nil {
				return cli.Internal("dashboard: %w", err)
			}
			return nil
		},
	}
}
