// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the hydra TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Provider accent colors, keyed by provider identifier. Unknown providers
// fall back to the assistant color.
var providerColors = map[string]lipgloss.Color{
	"OpenAI":      lipgloss.Color("77"),  // green
	"Gemini":      lipgloss.Color("69"),  // blue
	"Anthropic":   lipgloss.Color("173"), // clay
	"Grok":        lipgloss.Color("141"), // purple
	"HuggingFace": lipgloss.Color("220"), // yellow
}

// Theme holds the styled components for the application, adjusted to the
// terminal's color capability.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	// Chrome
	Header    lipgloss.Style
	StatusBar lipgloss.Style
	Help      lipgloss.Style

	// Transcript
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	TurnBody       lipgloss.Style
	ErrorText      lipgloss.Style

	// Input area
	InputPrompt lipgloss.Style
	Spinner     lipgloss.Style

	// Picker
	PickerItem     lipgloss.Style
	PickerSelected lipgloss.Style
}

// New builds the default theme for the current terminal.
func New() *Theme {
	output := termenv.DefaultOutput()

	t := &Theme{
		IsDark:       output.HasDarkBackground(),
		ColorProfile: output.Profile,
	}

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("231")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Background(lipgloss.Color("236")).
		Padding(0, 1)

	t.Help = lipgloss.NewStyle().
		Foreground(lipgloss.Color("243"))

	t.UserLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	t.AssistantLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("213"))

	t.TurnBody = lipgloss.NewStyle()

	t.ErrorText = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	t.InputPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	t.Spinner = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205"))

	t.PickerItem = lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))

	t.PickerSelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("231")).
		Background(lipgloss.Color("57"))

	return t
}

// ProviderLabel returns a bold label style in the provider's accent color.
func (t *Theme) ProviderLabel(providerID string) lipgloss.Style {
	if c, ok := providerColors[providerID]; ok {
		return lipgloss.NewStyle().Bold(true).Foreground(c)
	}
	return t.AssistantLabel
}
