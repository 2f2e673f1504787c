// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"io"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/gearadmin/cmd/gearadmin/cli"
	"github.com/bureau-foundation/gearadmin/lib/adminclient"
	"github.com/bureau-foundation/gearadmin/lib/adminproto"
	"github.com/bureau-foundation/gearadmin/lib/config"
)

// ServerFlags are the connection flags shared by every command that
// talks to gearmand. Zero values defer to the config file, then to the
// built-in defaults.
type ServerFlags struct {
	ConfigPath string
	Host       string
	Port       int
	Timeout    time.Duration
	Strict     bool
	Verbose    bool
}

// AddFlags implements cli.FlagBinder.
func (f *ServerFlags) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.ConfigPath, "config", "", "configuration file (default $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&f.Host, "host", "", "gearmand host (default 127.0.0.1)")
	flagSet.IntVarP(&f.Port, "port", "p", 0, "gearmand admin port (default 4730)")
	flagSet.DurationVar(&f.Timeout, "timeout", 0, "per-command timeout (default 500ms)")
	flagSet.BoolVar(&f.Strict, "strict", false, "report malformed reply lines and exit non-zero when any are found")
	flagSet.BoolVarP(&f.Verbose, "verbose", "v", false, "log connection details")
}

// Resolve loads the configuration and applies the flags on top of it.
func (f *ServerFlags) Resolve() (*config.Config, error) {
	cfg, _, err := config.Resolve(f.ConfigPath)
	if err != nil {
		return nil, cli.Validation("%w", err)
	}

	if f.Host != "" {
		cfg.Server.Host = f.Host
	}
	if f.Port != 0 {
		cfg.Server.Port = f.Port
	}
	if f.Timeout != 0 {
		cfg.Server.Timeout = f.Timeout.String()
	}
	if f.Strict {
		cfg.Parse.Strict = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid settings: %w", err)
	}
	return cfg, nil
}

// Client resolves the settings and builds an admin client from them.
func (f *ServerFlags) Client(logger *slog.Logger) (*adminclient.Client, *config.Config, error) {
	cfg, err := f.Resolve()
	if err != nil {
		return nil, nil, err
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, nil, cli.Validation("%w", err)
	}
	client := adminclient.New(adminclient.Options{
		Address: cfg.Address(),
		Timeout: timeout,
		Parser:  adminproto.Parser{Strict: cfg.Parse.Strict},
		Logger:  logger,
	})
	logger.Debug("resolved server settings",
		"address", client.Address(),
		"timeout", timeout,
		"strict", cfg.Parse.Strict,
		"environment", cfg.Environment,
	)
	return client, cfg, nil
}

// OutputFlags selects machine-readable output. Without either flag the
// configured output.format applies.
type OutputFlags struct {
	cli.JSONOutput
	cli.CBOROutput
}

// configure fills unset output choices from cfg.
func (o *OutputFlags) configure(cfg *config.Config) error {
	if o.OutputJSON && o.OutputCBOR {
		return cli.Validation("--json and --cbor are mutually exclusive")
	}
	if !o.OutputJSON && !o.OutputCBOR {
		switch cfg.Output.Format {
		case config.FormatJSON:
			o.OutputJSON = true
		case config.FormatCBOR:
			o.OutputCBOR = true
		}
	}
	o.Color = cfg.Output.Color
	return nil
}

// emit writes result in the selected machine format. It reports false
// when the caller should print its table instead.
func (o *OutputFlags) emit(w io.Writer, result any) (bool, error) {
	if done, err := o.EmitCBOR(w, result); done {
		return true, err
	}
	return o.EmitJSON(w, result)
}

// strictFailure turns diagnostics found in strict mode into a non-zero
// exit. The diagnostics themselves were already logged by the client.
func strictFailure(cfg *config.Config, diagnostics ...adminproto.Diagnostics) error {
	if !cfg.Parse.Strict {
		return nil
	}
	for _, set := range diagnostics {
		if len(set) > 0 {
			return &cli.ExitError{Code: 5}
		}
	}
	return nil
}
