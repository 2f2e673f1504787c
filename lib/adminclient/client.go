// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package adminclient

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bureau-foundation/gearadmin/lib/adminproto"
	"github.com/bureau-foundation/gearadmin/lib/clock"
)

// Options configures a [Client]. Zero fields take defaults.
type Options struct {
	// Address is the admin port, host:port. Default [DefaultAddress].
	Address string

	// Timeout bounds each command. Default [DefaultTimeout].
	Timeout time.Duration

	// Parser controls reply parsing (strict diagnostics).
	Parser adminproto.Parser

	// Logger receives connection lifecycle at debug level and skipped
	// reply lines at warn level. Default discards.
	Logger *slog.Logger

	// Clock stamps refresh times. Default [clock.Real].
	Clock clock.Clock
}

// State is what a [Client] last fetched. A nil Status or Workers, or
// a false VersionKnown, means nothing usable has been fetched yet (or,
// for the version, that the server's last answer was unrecognized).
type State struct {
	Status   *adminproto.StatusSnapshot
	StatusAt time.Time

	Workers   *adminproto.WorkerRegistry
	WorkersAt time.Time

	Version      string
	VersionKnown bool
	VersionAt    time.Time
}

// Client queries one gearmand admin port and caches what it learns.
type Client struct {
	address string
	timeout time.Duration
	parser  adminproto.Parser
	logger  *slog.Logger
	clock   clock.Clock

	mu    sync.Mutex
	state State
}

// New returns a Client. No connection is made until the first call.
func New(options Options) *Client {
	if options.Address == "" {
		options.Address = DefaultAddress
	}
	if options.Timeout <= 0 {
		options.Timeout = DefaultTimeout
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	return &Client{
		address: options.Address,
		timeout: options.Timeout,
		parser:  options.Parser,
		logger:  options.Logger,
		clock:   options.Clock,
	}
}

// Address returns the configured admin port.
func (c *Client) Address() string { return c.address }

// Timeout returns the per-command timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Last returns the cached state without any I/O.
func (c *Client) Last() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Status returns the cached status snapshot, fetching one if none has
// been fetched yet.
func (c *Client) Status(ctx context.Context) (*adminproto.StatusSnapshot, error) {
	if cached := c.Last().Status; cached != nil {
		return cached, nil
	}
	return c.RefreshStatus(ctx)
}

// RefreshStatus fetches a new status snapshot and caches it.
func (c *Client) RefreshStatus(ctx context.Context) (*adminproto.StatusSnapshot, error) {
	var snapshot *adminproto.StatusSnapshot
	err := c.withSession(ctx, func(session *Session) error {
		var err error
		snapshot, err = session.Status(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	c.reportDiagnostics(snapshot.Diagnostics())

	c.mu.Lock()
	c.state.Status = snapshot
	c.state.StatusAt = c.clock.Now()
	c.mu.Unlock()
	return snapshot, nil
}

// Workers returns the cached worker registry, fetching one if none has
// been fetched yet.
func (c *Client) Workers(ctx context.Context) (*adminproto.WorkerRegistry, error) {
	if cached := c.Last().Workers; cached != nil {
		return cached, nil
	}
	return c.RefreshWorkers(ctx)
}

// RefreshWorkers fetches a new worker registry and caches it.
func (c *Client) RefreshWorkers(ctx context.Context) (*adminproto.WorkerRegistry, error) {
	var registry *adminproto.WorkerRegistry
	err := c.withSession(ctx, func(session *Session) error {
		var err error
		registry, err = session.Workers(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	c.reportDiagnostics(registry.Diagnostics())

	c.mu.Lock()
	c.state.Workers = registry
	c.state.WorkersAt = c.clock.Now()
	c.mu.Unlock()
	return registry, nil
}

// Version returns the cached server version, fetching it while it is
// unknown.
func (c *Client) Version(ctx context.Context) (string, bool, error) {
	if state := c.Last(); state.VersionKnown {
		return state.Version, true, nil
	}
	return c.RefreshVersion(ctx)
}

// RefreshVersion asks the server for its version. An unrecognized
// answer clears the cached version.
func (c *Client) RefreshVersion(ctx context.Context) (string, bool, error) {
	var (
		version string
		known   bool
	)
	err := c.withSession(ctx, func(session *Session) error {
		var err error
		version, known, err = session.Version(ctx)
		return err
	})
	if err != nil {
		return "", false, err
	}
	if !known {
		c.logger.Warn("server version reply not recognized", "address", c.address)
	}

	c.mu.Lock()
	c.state.Version = version
	c.state.VersionKnown = known
	c.state.VersionAt = c.clock.Now()
	c.mu.Unlock()
	return version, known, nil
}

// Refresh fetches status, workers and version over a single connection
// and replaces the whole cached state. On any error the cache is left
// as it was.
func (c *Client) Refresh(ctx context.Context) (State, error) {
	var next State
	err := c.withSession(ctx, func(session *Session) error {
		var err error
		if next.Status, err = session.Status(ctx); err != nil {
			return err
		}
		if next.Workers, err = session.Workers(ctx); err != nil {
			return err
		}
		next.Version, next.VersionKnown, err = session.Version(ctx)
		return err
	})
	if err != nil {
		return State{}, err
	}
	c.reportDiagnostics(next.Status.Diagnostics())
	c.reportDiagnostics(next.Workers.Diagnostics())

	now := c.clock.Now()
	next.StatusAt, next.WorkersAt, next.VersionAt = now, now, now

	c.mu.Lock()
	c.state = next
	c.mu.Unlock()
	return next, nil
}

// Shutdown stops the server. graceful lets running jobs finish first.
func (c *Client) Shutdown(ctx context.Context, graceful bool) error {
	c.logger.Info("requesting server shutdown", "address", c.address, "graceful", graceful)
	return c.withSession(ctx, func(session *Session) error {
		return session.Shutdown(ctx, graceful)
	})
}

// MaxQueue sets the queue limit for function. The function name is
// checked before any connection is made.
func (c *Client) MaxQueue(ctx context.Context, function string, size QueueSize) error {
	if err := validateFunction(function); err != nil {
		return err
	}
	c.logger.Info("setting queue limit", "address", c.address, "function", function, "size", size.String())
	return c.withSession(ctx, func(session *Session) error {
		return session.MaxQueue(ctx, function, size)
	})
}

// withSession dials, runs fn and closes the connection on every path.
func (c *Client) withSession(ctx context.Context, fn func(*Session) error) error {
	c.logger.Debug("connecting to admin port", "address", c.address, "timeout", c.timeout)
	session, err := Dial(ctx, c.address, c.timeout)
	if err != nil {
		return err
	}
	defer func() {
		session.Close()
		c.logger.Debug("closed admin connection", "address", c.address)
	}()
	session.Parser = c.parser
	return fn(session)
}

func (c *Client) reportDiagnostics(diagnostics adminproto.Diagnostics) {
	for _, diagnostic := range diagnostics {
		c.logger.Warn("skipped reply line",
			"address", c.address,
			"command", diagnostic.Command,
			"line", diagnostic.Line,
			"error", diagnostic.Error(),
		)
	}
}
