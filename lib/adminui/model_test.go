// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package adminui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/gearadmin/lib/adminclient"
	"github.com/bureau-foundation/gearadmin/lib/adminproto"
)

// scriptedRefresher returns its queued results in order, repeating the
// last one.
type scriptedRefresher struct {
	mu      sync.Mutex
	results []refreshMsg
	calls   int
}

func (r *scriptedRefresher) Refresh(context.Context) (adminclient.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	index := min(r.calls, len(r.results)-1)
	r.calls++
	return r.results[index].state, r.results[index].err
}

func testState() adminclient.State {
	status, _ := adminproto.ParseStatus([]string{
		"resize\t5\t2\t3\n",
		"thumbnail\t0\t0\t1\n",
	})
	workers, _ := adminproto.ParseWorkers([]string{
		"33 10.0.0.5 worker-a : resize thumbnail \n",
		"34 10.0.0.6 - : \n",
	})
	at := time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC)
	return adminclient.State{
		Status: status, StatusAt: at,
		Workers: workers, WorkersAt: at,
		Version: "1.1.21", VersionKnown: true, VersionAt: at,
	}
}

// runCommand executes cmd and feeds its message back into the model.
func runCommand(t *testing.T, model Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	updated, _ := model.Update(cmd())
	return updated.(Model)
}

func TestInitialRefreshPopulatesTables(t *testing.T) {
	refresher := &scriptedRefresher{results: []refreshMsg{{state: testState()}}}
	model := NewModel(refresher, Options{Address: "127.0.0.1:4730"})

	model = runCommand(t, model, model.Init())
	view := ansi.Strip(model.View())

	for _, want := range []string{
		"gearmand 127.0.0.1:4730",
		"version 1.1.21",
		"3 queued, 2 running, 2 connections, updated 12:30:45",
		"resize",
		"thumbnail",
		"worker-a",
		"10.0.0.6",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if len(model.status.Rows()) != 2 || len(model.workers.Rows()) != 2 {
		t.Errorf("rows = %d status, %d workers; want 2, 2", len(model.status.Rows()), len(model.workers.Rows()))
	}
}

func TestFailedRefreshKeepsPreviousData(t *testing.T) {
	refresher := &scriptedRefresher{results: []refreshMsg{
		{state: testState()},
		{err: errors.New("gearman admin dial 127.0.0.1:4730: connection refused")},
	}}
	model := NewModel(refresher, Options{Address: "127.0.0.1:4730"})
	model = runCommand(t, model, model.Init())

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	model = runCommand(t, updated.(Model), cmd)

	view := ansi.Strip(model.View())
	if !strings.Contains(view, "refresh failed: gearman admin dial") {
		t.Errorf("view does not show the error:\n%s", view)
	}
	if !strings.Contains(view, "resize") || len(model.status.Rows()) != 2 {
		t.Errorf("previous data was dropped:\n%s", view)
	}
}

func TestErrorClearsAfterSuccess(t *testing.T) {
	refresher := &scriptedRefresher{results: []refreshMsg{
		{err: errors.New("timeout")},
		{state: testState()},
	}}
	model := NewModel(refresher, Options{})
	model = runCommand(t, model, model.Init())
	if !strings.Contains(ansi.Strip(model.View()), "no data yet") {
		t.Errorf("first failure view:\n%s", ansi.Strip(model.View()))
	}

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	model = runCommand(t, updated.(Model), cmd)
	if model.lastError != nil {
		t.Errorf("lastError = %v after successful refresh", model.lastError)
	}
}

func TestStaleTickIgnored(t *testing.T) {
	refresher := &scriptedRefresher{results: []refreshMsg{{state: testState()}}}
	model := NewModel(refresher, Options{Interval: time.Hour})
	model = runCommand(t, model, model.Init())

	if _, cmd := model.Update(tickMsg{generation: model.generation - 1}); cmd != nil {
		t.Error("stale tick started a refresh")
	}
	updated, cmd := model.Update(tickMsg{generation: model.generation})
	if cmd == nil || !updated.(Model).loading {
		t.Error("current tick did not start a refresh")
	}
}

func TestRefreshKeyIgnoredWhileLoading(t *testing.T) {
	refresher := &scriptedRefresher{results: []refreshMsg{{state: testState()}}}
	model := NewModel(refresher, Options{})
	model.loading = true

	if _, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}); cmd != nil {
		t.Error("refresh key started a second refresh while one is in flight")
	}
}

func TestFocusToggleAndQuit(t *testing.T) {
	refresher := &scriptedRefresher{results: []refreshMsg{{state: testState()}}}
	model := NewModel(refresher, Options{})
	model = runCommand(t, model, model.Init())

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model = updated.(Model)
	if model.focus != workersPane || !model.workers.Focused() || model.status.Focused() {
		t.Fatalf("tab did not move focus to workers")
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	model = updated.(Model)
	if model.workers.Cursor() != 1 || model.status.Cursor() != 0 {
		t.Errorf("cursor = workers %d, status %d; want 1, 0", model.workers.Cursor(), model.status.Cursor())
	}

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestWindowResizeTruncatesFunctionList(t *testing.T) {
	state := testState()
	long := "77 10.0.0.9 busy : " + strings.Repeat("function_with_a_long_name ", 10) + "\n"
	state.Workers, _ = adminproto.ParseWorkers([]string{long})
	refresher := &scriptedRefresher{results: []refreshMsg{{state: state}}}

	model := NewModel(refresher, Options{})
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	model = runCommand(t, updated.(Model), updated.(Model).Init())

	rows := model.workers.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	columns := model.workers.Columns()
	if width := ansi.StringWidth(rows[0][3]); width > columns[3].Width {
		t.Errorf("function cell width %d exceeds column width %d", width, columns[3].Width)
	}
	if !strings.HasSuffix(rows[0][3], "…") {
		t.Errorf("function cell %q not truncated with ellipsis", rows[0][3])
	}
}
