// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework behind gearadmin: a
// [Command] tree dispatched by name with pflag flag sets, typo
// suggestions, structured help, struct-tag flag binding
// ([FlagsFromParams]), categorized errors ([ToolError]), and the
// machine-readable output modes ([JSONOutput], [CBOROutput]).
package cli
