// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package adminclient

import "strconv"

// QueueSize is the optional size argument of "maxqueue". The zero
// value sends no size, which leaves the limit to the server default.
type QueueSize struct {
	set   bool
	limit int
}

var (
	// DefaultQueueSize omits the size argument.
	DefaultQueueSize = QueueSize{}

	// UnlimitedQueueSize removes the limit. gearmand treats any
	// negative size as unlimited; -1 is what gets sent.
	UnlimitedQueueSize = QueueSize{set: true, limit: -1}
)

// QueueLimit is an explicit limit of n jobs.
func QueueLimit(n int) QueueSize {
	return QueueSize{set: true, limit: n}
}

// IsSet reports whether a size argument will be sent.
func (q QueueSize) IsSet() bool { return q.set }

// Limit returns the size that will be sent. Only meaningful when
// [QueueSize.IsSet] is true.
func (q QueueSize) Limit() int { return q.limit }

func (q QueueSize) String() string {
	switch {
	case !q.set:
		return "default"
	case q.limit < 0:
		return "unlimited"
	}
	return strconv.Itoa(q.limit)
}
