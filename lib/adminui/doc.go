// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package adminui is the live dashboard behind "gearadmin watch": a
// bubbletea program that polls a gearmand admin port on an interval and
// renders the function queues and connected workers as two scrollable
// tables.
//
// The model only depends on a [Refresher], normally an
// *adminclient.Client, so tests drive it with canned states. A failed
// refresh keeps the last good data on screen and shows the error under
// the tables until the next successful refresh.
package adminui
