// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// model.go - Bubble Tea model for the chat view.
package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/hydra-tui/internal/catalog"
	"github.com/jeranaias/hydra-tui/internal/config"
	"github.com/jeranaias/hydra-tui/internal/provider"
	"github.com/jeranaias/hydra-tui/internal/session"
	"github.com/jeranaias/hydra-tui/internal/ui/styles"
)

// state is the interaction state of the chat view.
type state int

const (
	// stateReady accepts input and submits prompts.
	stateReady state = iota
	// stateWaiting means a fan-out is running; input is buffered but a
	// second submit is refused until the replies land.
	stateWaiting
	// statePicker shows the Hugging Face (sub-provider, model) picker.
	statePicker
)

// Model is the Bubble Tea model for the chat view.
type Model struct {
	session *session.Session
	theme   *styles.Theme
	keys    KeyMap

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	state    state
	width    int
	height   int
	showHelp bool
	ready    bool // first WindowSizeMsg received

	// Provider fan-out: index -1 selects every provider, otherwise the
	// single provider at that index of the registry order.
	providerIdx int

	// Picker state.
	pairs      []catalog.Pair
	pairCursor int
	statusNote string
}

// New creates the chat view around an existing session.
func New(sess *session.Session, theme *styles.Theme) *Model {
	input := textinput.New()
	input.Placeholder = "Ask every provider at once..."
	input.Prompt = theme.InputPrompt.Render("> ")
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return &Model{
		session:     sess,
		theme:       theme,
		keys:        DefaultKeyMap(),
		input:       input,
		spinner:     sp,
		providerIdx: -1,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadPairsCmd())
}

// selectedProviders returns the provider identifiers of the current
// fan-out selection, in registry order.
func (m *Model) selectedProviders() []string {
	ids := provider.IDs()
	if m.providerIdx < 0 || m.providerIdx >= len(ids) {
		return ids
	}
	return []string{ids[m.providerIdx]}
}

// cycleProvider advances the fan-out selection: all, then each provider
// in turn, then back to all.
func (m *Model) cycleProvider() {
	m.providerIdx++
	if m.providerIdx >= len(provider.IDs()) {
		m.providerIdx = -1
	}
}

// =============================================================================
// COMMANDS
// =============================================================================

// submitCmd runs one fan-out on a command goroutine. The command never
// touches the conversation itself: the update loop owns the transcript,
// and appends the returned turns when the message lands.
func (m *Model) submitCmd(prompt string, providers []string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		return repliesMsg{replies: sess.Replies(context.Background(), prompt, providers)}
	}
}

// refreshCatalogCmd forces a synchronous sweep on a command goroutine.
func (m *Model) refreshCatalogCmd() tea.Cmd {
	svc := m.session.Catalog
	return func() tea.Msg {
		if svc == nil {
			return sweepDoneMsg{}
		}
		return sweepDoneMsg{err: svc.Refresh(context.Background())}
	}
}

// loadPairsCmd fetches the picker pairs. Goes through the session so a
// cache miss falls back to the static pair instead of an empty picker.
func (m *Model) loadPairsCmd() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		return pairsMsg{pairs: sess.CatalogPairs()}
	}
}

// applyPairSelection persists the picked pair as the Hugging Face
// selection.
func (m *Model) applyPairSelection(p catalog.Pair) {
	m.session.Settings.SetHFSubProvider(p.Provider)
	m.session.Settings.SetModelFor(provider.HuggingFace, p.Model)
	if err := config.Save(m.session.Settings); err != nil {
		m.statusNote = "selection not saved: " + err.Error()
		return
	}
	m.statusNote = "HuggingFace: " + p.String()
}
