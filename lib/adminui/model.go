// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package adminui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/gearadmin/lib/adminclient"
)

// DefaultInterval is the polling interval when Options.Interval is zero.
const DefaultInterval = 2 * time.Second

// Refresher fetches a complete snapshot of the server.
// *adminclient.Client satisfies it.
type Refresher interface {
	Refresh(ctx context.Context) (adminclient.State, error)
}

// Options configures a [Model]. Zero fields take defaults.
type Options struct {
	// Address is shown in the header.
	Address string

	// Interval between automatic refreshes. Default [DefaultInterval].
	Interval time.Duration

	Theme *Theme
	Keys  *KeyMap
}

type pane int

const (
	statusPane pane = iota
	workersPane
)

// refreshMsg carries the result of one Refresh call.
type refreshMsg struct {
	state adminclient.State
	err   error
}

// tickMsg schedules the next automatic refresh. Ticks from an older
// generation are dropped so that a manual refresh never doubles the
// polling rate.
type tickMsg struct {
	generation int
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	refresher Refresher
	address   string
	interval  time.Duration
	theme     Theme
	keys      KeyMap

	state      adminclient.State
	hasState   bool
	lastError  error
	loading    bool
	generation int

	focus   pane
	status  table.Model
	workers table.Model
	help    help.Model

	width  int
	height int
}

// NewModel creates a dashboard polling refresher.
func NewModel(refresher Refresher, options Options) Model {
	if options.Interval <= 0 {
		options.Interval = DefaultInterval
	}
	theme := DefaultTheme
	if options.Theme != nil {
		theme = *options.Theme
	}
	keys := DefaultKeyMap
	if options.Keys != nil {
		keys = *options.Keys
	}

	model := Model{
		refresher: refresher,
		address:   options.Address,
		interval:  options.Interval,
		theme:     theme,
		keys:      keys,
		status:    table.New(table.WithFocused(true)),
		workers:   table.New(),
		help:      help.New(),
		width:     100,
		height:    30,
	}
	model.help.Styles.ShortKey = model.help.Styles.ShortKey.Foreground(theme.HelpText)
	model.help.Styles.ShortDesc = model.help.Styles.ShortDesc.Foreground(theme.HelpText)
	model.layout()
	return model
}

// Init implements tea.Model. Starts the first refresh immediately.
func (model Model) Init() tea.Cmd {
	return model.fetch()
}

func (model Model) fetch() tea.Cmd {
	refresher := model.refresher
	return func() tea.Msg {
		state, err := refresher.Refresh(context.Background())
		return refreshMsg{state: state, err: err}
	}
}

func (model Model) scheduleTick() tea.Cmd {
	generation := model.generation
	return tea.Tick(model.interval, func(time.Time) tea.Msg {
		return tickMsg{generation: generation}
	})
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.layout()
		return model, nil

	case refreshMsg:
		model.loading = false
		if message.err != nil {
			model.lastError = message.err
		} else {
			model.state = message.state
			model.hasState = true
			model.lastError = nil
			model.rebuildRows()
		}
		model.generation++
		return model, model.scheduleTick()

	case tickMsg:
		if message.generation != model.generation || model.loading {
			return model, nil
		}
		model.loading = true
		return model, model.fetch()
	}
	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Refresh):
		if model.loading {
			return model, nil
		}
		model.loading = true
		return model, model.fetch()

	case key.Matches(message, model.keys.FocusToggle):
		if model.focus == statusPane {
			model.focus = workersPane
			model.status.Blur()
			model.workers.Focus()
		} else {
			model.focus = statusPane
			model.workers.Blur()
			model.status.Focus()
		}
		model.applyStyles()
		return model, nil
	}

	var command tea.Cmd
	if model.focus == statusPane {
		model.status, command = model.status.Update(message)
	} else {
		model.workers, command = model.workers.Update(message)
	}
	return model, command
}

// layout sizes both tables for the current window.
func (model *Model) layout() {
	// Header (2), two titles, an error line, help, and spacing.
	available := max(model.height-8, 4)
	statusHeight := available / 2
	workersHeight := available - statusHeight

	numberWidth := 9
	functionWidth := max(model.width-3*numberWidth-8, 12)
	model.status.SetColumns([]table.Column{
		{Title: "Function", Width: functionWidth},
		{Title: "Total", Width: numberWidth},
		{Title: "Running", Width: numberWidth},
		{Title: "Available", Width: numberWidth},
	})
	model.status.SetHeight(statusHeight)
	model.status.SetWidth(model.width)

	listWidth := max(model.width-6-22-16-8, 12)
	model.workers.SetColumns([]table.Column{
		{Title: "FD", Width: 6},
		{Title: "Address", Width: 22},
		{Title: "Client ID", Width: 16},
		{Title: "Functions", Width: listWidth},
	})
	model.workers.SetHeight(workersHeight)
	model.workers.SetWidth(model.width)

	model.applyStyles()
	model.rebuildRows()
}

func (model *Model) applyStyles() {
	model.status.SetStyles(model.theme.tableStyles(model.focus == statusPane))
	model.workers.SetStyles(model.theme.tableStyles(model.focus == workersPane))
}

func (model *Model) rebuildRows() {
	var statusRows []table.Row
	if model.state.Status != nil {
		for _, function := range model.state.Status.Functions() {
			statusRows = append(statusRows, table.Row{
				function.Name,
				strconv.Itoa(function.Total),
				strconv.Itoa(function.Running),
				strconv.Itoa(function.Available),
			})
		}
	}
	model.status.SetRows(statusRows)

	columns := model.workers.Columns()
	listWidth := columns[len(columns)-1].Width
	var workerRows []table.Row
	if model.state.Workers != nil {
		for _, worker := range model.state.Workers.Workers() {
			workerRows = append(workerRows, table.Row{
				strconv.Itoa(worker.FileDescriptor),
				worker.Address,
				worker.ClientID,
				ansi.Truncate(strings.Join(worker.Functions, " "), listWidth, "…"),
			})
		}
	}
	model.workers.SetRows(workerRows)
}

// View implements tea.Model.
func (model Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	var builder strings.Builder
	builder.WriteString(titleStyle.Render("gearmand " + model.address))
	if model.state.VersionKnown {
		builder.WriteString(faint.Render("  version " + model.state.Version))
	}
	builder.WriteString("\n")
	builder.WriteString(model.summaryLine())
	builder.WriteString("\n\n")

	builder.WriteString(model.paneTitle("Functions", statusPane))
	builder.WriteString("\n")
	builder.WriteString(model.status.View())
	builder.WriteString("\n\n")
	builder.WriteString(model.paneTitle("Workers", workersPane))
	builder.WriteString("\n")
	builder.WriteString(model.workers.View())
	builder.WriteString("\n")

	if model.lastError != nil {
		errorStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorForeground)
		builder.WriteString(errorStyle.Render(ansi.Truncate("refresh failed: "+model.lastError.Error(), model.width, "…")))
	}
	builder.WriteString("\n")
	builder.WriteString(model.help.View(model.keys))
	return builder.String()
}

func (model Model) summaryLine() string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	if !model.hasState {
		if model.lastError != nil {
			return faint.Render("no data yet")
		}
		return faint.Render("connecting…")
	}

	queued, running := 0, 0
	if model.state.Status != nil {
		for _, function := range model.state.Status.Functions() {
			queued += function.Total - function.Running
			running += function.Running
		}
	}
	queuedText := fmt.Sprintf("%d queued", queued)
	if queued > 0 {
		queuedText = lipgloss.NewStyle().Foreground(model.theme.Backlog).Render(queuedText)
	} else {
		queuedText = faint.Render(queuedText)
	}

	workerCount := 0
	if model.state.Workers != nil {
		workerCount = model.state.Workers.Len()
	}
	rest := fmt.Sprintf(", %d running, %d connections, updated %s",
		running, workerCount, model.state.StatusAt.Format("15:04:05"))
	if model.loading {
		rest += " (refreshing)"
	}
	return queuedText + faint.Render(rest)
}

func (model Model) paneTitle(title string, which pane) string {
	style := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	if model.focus == which {
		style = lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	}
	return style.Render(title)
}

// Run starts the dashboard in the alternate screen and blocks until the
// user quits or ctx is cancelled.
func Run(ctx context.Context, refresher Refresher, options Options) error {
	program := tea.NewProgram(NewModel(refresher, options), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
