// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding used for gearadmin's
// machine-readable binary output.
//
// JSON (--json) is the default machine format; CBOR (--cbor) is for
// callers that feed status and worker listings into other tools on a
// pipe and want compact, self-delimiting records. The encoder uses
// Core Deterministic Encoding (RFC 8949 §4.2), so the same snapshot
// always produces identical bytes.
//
// Types carry `json` struct tags only. fxamacker/cbor falls back to
// `json` tags when `cbor` tags are absent, so one tag set names fields
// in both formats.
//
//	encoder := codec.NewEncoder(os.Stdout)
//	err := encoder.Encode(snapshot.Functions())
package codec
