// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package adminproto

import "strings"

// ParseVersion interprets the "version" response. Exactly one non-blank
// line is a version; anything else means the version is unknown,
// reported as ("", false) rather than an error so that callers clear
// any cached value until the next successful read.
func ParseVersion(lines []string) (string, bool) {
	if len(lines) != 1 {
		return "", false
	}
	version := strings.TrimSpace(lines[0])
	if version == "" {
		return "", false
	}
	return version, true
}
