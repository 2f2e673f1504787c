// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/gearadmin/cmd/gearadmin/cli"
	"github.com/bureau-foundation/gearadmin/lib/adminclient"
)

type maxqueueParams struct {
	Server ServerFlags
}

func maxqueueCommand(stdout io.Writer) *cli.Command {
	var params maxqueueParams
	return &cli.Command{
		Name:    "maxqueue",
		Summary: "Limit how many jobs may queue for a function",
		Description: `Set the maximum queue length for FUNCTION. Without SIZE the server's
default applies; "unlimited" removes the limit. Submissions beyond the
limit are rejected by the server.`,
		Usage: "gearadmin maxqueue FUNCTION [SIZE|unlimited] [flags]",
		Examples: []cli.Example{
			{Description: "Allow at most 100 queued resize jobs", Command: "gearadmin maxqueue resize 100"},
			{Description: "Remove the limit again", Command: "gearadmin maxqueue resize unlimited"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("maxqueue", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) < 1 || len(args) > 2 {
				return cli.Validation("usage: gearadmin maxqueue FUNCTION [SIZE|unlimited]")
			}
			function := args[0]
			size := adminclient.DefaultQueueSize
			if len(args) == 2 {
				parsed, err := parseQueueSize(args[1])
				if err != nil {
					return err
				}
				size = parsed
			}

			client, _, err := params.Server.Client(logger)
			if err != nil {
				return err
			}
			if err := client.MaxQueue(ctx, function, size); err != nil {
				return cli.Classify(err)
			}
			fmt.Fprintf(stdout, "%s: queue limit for %s set to %s\n", client.Address(), function, size)
			return nil
		},
	}
}

func parseQueueSize(text string) (adminclient.QueueSize, error) {
	if text == "unlimited" {
		return adminclient.UnlimitedQueueSize, nil
	}
	limit, err := strconv.Atoi(text)
	if err != nil {
		return adminclient.QueueSize{}, cli.Validation("queue size %q is not a number or \"unlimited\"", text)
	}
	if limit < 0 {
		return adminclient.QueueSize{}, cli.Validation("queue size %d is negative (use \"unlimited\")", limit)
	}
	return adminclient.QueueLimit(limit), nil
}
