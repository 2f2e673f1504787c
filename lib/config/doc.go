// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for gearadmin.
//
// Configuration comes from a single file named by the --config flag or
// the GEARADMIN_CONFIG environment variable (via [Resolve]). There is
// no ~/.config discovery and no search path. Without either, [Default]
// applies: 127.0.0.1:4730 with a 500ms timeout.
//
// The file is YAML. Files ending in .json or .jsonc are accepted too;
// comments and trailing commas are stripped before decoding. Unknown
// keys are rejected so that typos surface instead of silently falling
// back to defaults.
//
// The file may contain environment-specific sections (development,
// staging, production) that override base values when
// [Config].Environment matches. Production without its own section
// turns on strict response parsing.
//
// ${VAR} and ${VAR:-default} are expanded in server.host after
// loading. No other environment variables override config values;
// command-line flags do, and that precedence is applied by the caller.
//
// This package depends on no other gearadmin packages.
package config
