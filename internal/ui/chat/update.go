// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// update.go - Message handling for the chat view.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/hydra-tui/internal/model"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state != stateWaiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case repliesMsg:
		for _, turn := range msg.replies {
			m.session.Conversation.Append(turn)
		}
		m.state = stateReady
		m.statusNote = ""
		m.renderTranscript()
		m.viewport.GotoBottom()
		return m, nil

	case sweepDoneMsg:
		if msg.err != nil {
			m.statusNote = "catalog refresh failed: " + msg.err.Error()
			return m, nil
		}
		m.statusNote = "catalog refreshed"
		return m, m.loadPairsCmd()

	case pairsMsg:
		m.pairs = msg.pairs
		if m.pairCursor >= len(m.pairs) {
			m.pairCursor = 0
		}
		return m, nil

	case SettingsReloadedMsg:
		if msg.Settings != nil {
			m.session.Settings = msg.Settings
			m.statusNote = "settings reloaded"
		}
		return m, nil
	}

	return m, m.updateComponents(msg)
}

// handleKey routes key presses by interaction state.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.state == statePicker {
		return m.handlePickerKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.CycleProvider):
		m.cycleProvider()
		return m, nil

	case key.Matches(msg, m.keys.Picker):
		m.state = statePicker
		return m, m.loadPairsCmd()

	case key.Matches(msg, m.keys.RefreshCache):
		m.statusNote = "refreshing catalog..."
		return m, m.refreshCatalogCmd()

	case key.Matches(msg, m.keys.Clear):
		m.session.Conversation = model.NewConversation()
		m.renderTranscript()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down),
		key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, m.updateComponents(msg)
}

// handlePickerKey drives the Hugging Face pair picker.
func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+o":
		m.state = stateReady
		return m, nil

	case "up", "k":
		if m.pairCursor > 0 {
			m.pairCursor--
		}
		return m, nil

	case "down", "j":
		if m.pairCursor < len(m.pairs)-1 {
			m.pairCursor++
		}
		return m, nil

	case "enter":
		if len(m.pairs) > 0 {
			m.applyPairSelection(m.pairs[m.pairCursor])
		}
		m.state = stateReady
		return m, nil
	}
	return m, nil
}

// submit starts one fan-out for the typed prompt.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	if m.state == stateWaiting {
		// One fan-out at a time; keep typing, resend when it lands.
		return m, nil
	}

	prompt := strings.TrimSpace(m.input.Value())
	if prompt == "" {
		return m, nil
	}

	m.input.Reset()
	m.state = stateWaiting

	// Append the user turn here so it shows immediately; the assistant
	// turns arrive with the replies message.
	m.session.Conversation.AppendUser(prompt)
	m.renderTranscript()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		m.spinner.Tick,
		m.submitCmd(prompt, m.selectedProviders()),
	)
}

// updateComponents forwards a message to the focused sub-components.
func (m *Model) updateComponents(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return tea.Batch(cmds...)
}

// layout sizes the viewport for the current terminal dimensions.
func (m *Model) layout() {
	chrome := 4 // header, input, status, one-line help
	if m.showHelp {
		chrome += 3
	}
	h := m.height - chrome
	if h < 1 {
		h = 1
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, h)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = h
	}
	m.input.Width = m.width - 4
	m.renderTranscript()
}
