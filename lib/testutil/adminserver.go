// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// Reply is what an [AdminServer] writes back for one command.
type Reply struct {
	// Lines are written verbatim, each followed by "\n".
	Lines []string

	// Terminate appends the "." end-of-response line.
	Terminate bool

	// Close hangs up after writing the reply.
	Close bool

	// Delay is slept before anything is written. Use it to exercise
	// client timeouts.
	Delay time.Duration

	// Silent writes nothing at all (the connection stays open unless
	// Close is set).
	Silent bool
}

// Handler answers one command line (without its line ending).
type Handler func(command string) Reply

// AdminServer is an in-process fake admin endpoint.
type AdminServer struct {
	listener net.Listener
	handler  Handler
	commands chan string

	accepted atomic.Int64

	mu      sync.Mutex
	conns   map[net.Conn]struct{}
	closed  bool
	waiting sync.WaitGroup
}

// StartAdminServer listens on an ephemeral 127.0.0.1 port and serves
// handler until the test ends.
func StartAdminServer(t *testing.T, handler Handler) *AdminServer {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening for fake admin server: %v", err)
	}
	server := &AdminServer{
		listener: listener,
		handler:  handler,
		commands: make(chan string, 256),
		conns:    make(map[net.Conn]struct{}),
	}
	server.waiting.Add(1)
	go server.acceptLoop()
	t.Cleanup(server.Close)
	return server
}

// Address returns the host:port the server listens on.
func (s *AdminServer) Address() string { return s.listener.Addr().String() }

// Commands delivers every command line received, in arrival order.
func (s *AdminServer) Commands() <-chan string { return s.commands }

// Accepted returns the number of connections accepted so far.
func (s *AdminServer) Accepted() int { return int(s.accepted.Load()) }

// Close stops the listener, drops open connections and waits for the
// connection goroutines to exit. Safe to call more than once.
func (s *AdminServer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.listener.Close()
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()
	s.waiting.Wait()
}

func (s *AdminServer) acceptLoop() {
	defer s.waiting.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conns[conn] = struct{}{}
		s.waiting.Add(1)
		s.mu.Unlock()

		s.accepted.Add(1)
		go s.serve(conn)
	}
}

func (s *AdminServer) serve(conn net.Conn) {
	defer s.waiting.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		command := strings.TrimRight(line, "\r\n")
		select {
		case s.commands <- command:
		default:
		}

		reply := s.handler(command)
		if reply.Delay > 0 {
			time.Sleep(reply.Delay)
		}
		if !reply.Silent {
			var builder strings.Builder
			for _, replyLine := range reply.Lines {
				builder.WriteString(replyLine)
				builder.WriteString("\n")
			}
			if reply.Terminate {
				builder.WriteString(".\n")
			}
			if _, err := conn.Write([]byte(builder.String())); err != nil {
				return
			}
		}
		if reply.Close {
			return
		}
	}
}

// GearmandState is the canned data a [Gearmand] handler serves.
// Status lines are tab-separated; worker lines follow the workers
// format (including the trailing space). An empty Version makes the
// server answer "version" with a bare "." line.
type GearmandState struct {
	Status  []string
	Workers []string
	Version string
}

// Gearmand returns a handler that answers like gearmand: "status" and
// "workers" as terminated multi-line replies, "version" as the single
// Version line, "shutdown" with OK then a hang-up, "maxqueue"
// with OK, anything else with ERR UNKNOWN_COMMAND.
func Gearmand(state GearmandState) Handler {
	return func(command string) Reply {
		fields := strings.Fields(command)
		if len(fields) == 0 {
			return Reply{Lines: []string{"ERR UNKNOWN_COMMAND Unknown+server+command"}}
		}
		switch fields[0] {
		case "status":
			return Reply{Lines: state.Status, Terminate: true}
		case "workers":
			return Reply{Lines: state.Workers, Terminate: true}
		case "version":
			if state.Version == "" {
				return Reply{Terminate: true}
			}
			return Reply{Lines: []string{state.Version}}
		case "shutdown":
			return Reply{Lines: []string{"OK"}, Close: true}
		case "maxqueue":
			if len(fields) < 2 {
				return Reply{Lines: []string{"ERR INCOMPLETE_ARGS An+incomplete+set+of+arguments+was+sent+to+this+command"}}
			}
			return Reply{Lines: []string{"OK"}}
		}
		return Reply{Lines: []string{"ERR UNKNOWN_COMMAND Unknown+server+command"}}
	}
}
