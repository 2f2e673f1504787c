// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package adminui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the dashboard palette. All colors use lipgloss ANSI
// 256-color codes for broad terminal compatibility.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Backlog colors the queued-job count when jobs are waiting.
	Backlog lipgloss.Color

	// ErrorForeground colors the last refresh error.
	ErrorForeground lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	Backlog:         lipgloss.Color("220"), // amber
	ErrorForeground: lipgloss.Color("196"), // red
}

// tableStyles returns bubbles table styles in the theme's colors. The
// selected row is only highlighted when the table has focus.
func (theme Theme) tableStyles(focused bool) table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(theme.HeaderForeground).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.BorderColor).
		BorderBottom(true).
		Bold(true)
	styles.Cell = styles.Cell.Foreground(theme.NormalText)
	if focused {
		styles.Selected = lipgloss.NewStyle().
			Foreground(theme.SelectedForeground).
			Background(theme.SelectedBackground)
	} else {
		styles.Selected = lipgloss.NewStyle().Foreground(theme.NormalText)
	}
	return styles
}
