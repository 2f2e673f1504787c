// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Code that stamps results with the current time takes a [Clock]
// instead of calling time.Now directly. Production code passes
// [Real]; tests pass [Fake] and move time explicitly with Advance or
// Set, so timestamps in assertions are exact.
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	client := adminclient.New(adminclient.Options{Clock: c})
//	c.Advance(5 * time.Second)
package clock
