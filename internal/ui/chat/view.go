// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// view.go - Rendering for the chat view.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jeranaias/hydra-tui/internal/model"
	"github.com/jeranaias/hydra-tui/internal/util"
)

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "starting..."
	}

	if m.state == statePicker {
		return m.pickerView()
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.inputView())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

// headerView renders the title bar.
func (m *Model) headerView() string {
	title := m.theme.Header.Render(" hydra ")
	scope := m.theme.Help.Render(" " + m.fanOutLabel())
	return lipgloss.JoinHorizontal(lipgloss.Top, title, scope)
}

// fanOutLabel names the current provider selection.
func (m *Model) fanOutLabel() string {
	providers := m.selectedProviders()
	if len(providers) > 1 {
		return "all providers"
	}
	return providers[0]
}

// inputView renders the prompt line, replaced by the spinner while a
// fan-out is running.
func (m *Model) inputView() string {
	if m.state == stateWaiting {
		return m.spinner.View() + " waiting for replies..."
	}
	return m.input.View()
}

// statusView renders the status bar: provider list and catalog note.
func (m *Model) statusView() string {
	left := strings.Join(m.selectedProviders(), " | ")
	if m.statusNote != "" {
		left += "  -  " + m.statusNote
	}
	return m.theme.StatusBar.Render(util.TruncateWidth(left, maxInt(m.width-2, 1)))
}

// helpView renders the one-line (or expanded) key help.
func (m *Model) helpView() string {
	if m.showHelp {
		var rows []string
		for _, group := range m.keys.FullHelp() {
			var parts []string
			for _, binding := range group {
				parts = append(parts, fmt.Sprintf("%s %s", binding.Help().Key, binding.Help().Desc))
			}
			rows = append(rows, strings.Join(parts, "   "))
		}
		return m.theme.Help.Render(strings.Join(rows, "\n"))
	}

	var parts []string
	for _, binding := range m.keys.ShortHelp() {
		parts = append(parts, fmt.Sprintf("%s %s", binding.Help().Key, binding.Help().Desc))
	}
	return m.theme.Help.Render(strings.Join(parts, "   "))
}

// pickerView renders the Hugging Face (sub-provider, model) picker.
func (m *Model) pickerView() string {
	var b strings.Builder
	b.WriteString(m.theme.Header.Render(" HuggingFace model picker "))
	b.WriteString("\n\n")

	if len(m.pairs) == 0 {
		b.WriteString(m.theme.Help.Render("  no pairs yet; the catalog may still be sweeping\n"))
	}

	visible := m.height - 5
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.pairCursor >= visible {
		start = m.pairCursor - visible + 1
	}

	for i := start; i < len(m.pairs) && i < start+visible; i++ {
		line := "  " + m.pairs[i].String()
		if i == m.pairCursor {
			line = m.theme.PickerSelected.Render("> " + m.pairs[i].String())
		} else {
			line = m.theme.PickerItem.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render("Enter select   Esc close   j/k move"))
	return b.String()
}

// renderTranscript rebuilds the viewport content from the conversation.
func (m *Model) renderTranscript() {
	if !m.ready {
		return
	}

	width := m.viewport.Width
	if width < 10 {
		width = 10
	}

	var b strings.Builder
	for _, turn := range m.session.Conversation.Turns() {
		b.WriteString(m.renderTurn(turn, width))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}

// renderTurn renders one transcript turn with its role label.
func (m *Model) renderTurn(turn model.Turn, width int) string {
	var label string
	if turn.Role == model.RoleUser {
		label = m.theme.UserLabel.Render("You")
	} else {
		label = m.theme.ProviderLabel(turn.Provider).Render(turn.Provider)
	}

	body := wordwrap.String(turn.Content, width)
	return label + "\n" + m.theme.TurnBody.Render(body) + "\n"
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
