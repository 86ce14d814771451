// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/hydra-tui/internal/catalog"
	"github.com/jeranaias/hydra-tui/internal/config"
	"github.com/jeranaias/hydra-tui/internal/llm"
	"github.com/jeranaias/hydra-tui/internal/model"
	"github.com/jeranaias/hydra-tui/internal/provider"
	"github.com/jeranaias/hydra-tui/internal/session"
	"github.com/jeranaias/hydra-tui/internal/ui/styles"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	sess := &session.Session{
		Conversation: model.NewConversation(),
		Settings:     config.Default(),
		Client:       llm.New(),
	}
	m := New(sess, styles.New())
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func TestCycleProvider_WrapsThroughAll(t *testing.T) {
	m := testModel(t)

	if got := m.selectedProviders(); len(got) != len(provider.IDs()) {
		t.Fatalf("initial selection = %v, want every provider", got)
	}

	// One step per provider, then back to all.
	for i, want := range provider.IDs() {
		m.cycleProvider()
		got := m.selectedProviders()
		if len(got) != 1 || got[0] != want {
			t.Errorf("step %d selection = %v, want [%s]", i, got, want)
		}
	}
	m.cycleProvider()
	if got := m.selectedProviders(); len(got) != len(provider.IDs()) {
		t.Errorf("after full cycle selection = %v, want every provider", got)
	}
}

func TestSubmit_RefusedWhileWaiting(t *testing.T) {
	m := testModel(t)
	m.state = stateWaiting
	m.input.SetValue("second prompt")

	_, cmd := m.submit()
	if cmd != nil {
		t.Error("submit while waiting should not start another fan-out")
	}
	if m.input.Value() != "second prompt" {
		t.Error("buffered input must survive a refused submit")
	}
}

func TestSubmit_EmptyPromptIgnored(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("   ")

	_, cmd := m.submit()
	if cmd != nil {
		t.Error("whitespace-only prompt should not submit")
	}
	if m.state != stateReady {
		t.Error("state should stay ready")
	}
}

func TestPicker_SelectionPersists(t *testing.T) {
	m := testModel(t)
	m.pairs = []catalog.Pair{
		{Provider: "together", Model: "meta-llama/Llama-3.1-8B-Instruct"},
		{Provider: "fireworks-ai", Model: "qwen/Qwen2.5-7B"},
	}
	m.state = statePicker
	m.pairCursor = 1

	m.handlePickerKey(tea.KeyMsg{Type: tea.KeyEnter})

	if m.state != stateReady {
		t.Error("picker should close on enter")
	}
	if got := m.session.Settings.HFSubProvider(); got != "fireworks-ai" {
		t.Errorf("sub-provider = %q, want fireworks-ai", got)
	}
	if got := m.session.Settings.ModelFor(provider.HuggingFace); got != "qwen/Qwen2.5-7B" {
		t.Errorf("model = %q, want the picked model", got)
	}
}

func TestPicker_CursorBounds(t *testing.T) {
	m := testModel(t)
	m.pairs = []catalog.Pair{{Provider: "a", Model: "m"}}
	m.state = statePicker

	m.handlePickerKey(tea.KeyMsg{Type: tea.KeyUp})
	if m.pairCursor != 0 {
		t.Errorf("cursor = %d after up at top, want 0", m.pairCursor)
	}
	m.handlePickerKey(tea.KeyMsg{Type: tea.KeyDown})
	if m.pairCursor != 0 {
		t.Errorf("cursor = %d after down at bottom, want 0", m.pairCursor)
	}
}

func TestRepliesMsg_ReturnsToReady(t *testing.T) {
	m := testModel(t)
	m.state = stateWaiting

	m.Update(repliesMsg{})
	if m.state != stateReady {
		t.Error("replies should return the view to ready state")
	}
}

func TestSubmit_AppendsUserTurnImmediately(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("hello")

	_, cmd := m.submit()
	if cmd == nil {
		t.Fatal("submit should start a fan-out")
	}
	turns := m.session.Conversation.Turns()
	if len(turns) != 1 || turns[0].Role != model.RoleUser {
		t.Fatalf("transcript = %v, want just the user turn before replies land", turns)
	}
}

func TestFanOut_TranscriptMutatedOnlyByUpdateLoop(t *testing.T) {
	m := testModel(t)

	// The command goroutine must not write to the conversation; a missing
	// credential keeps the fan-out offline while still producing a reply.
	t.Setenv("OPENAI_API_KEY", "")
	msg := m.submitCmd("hello", []string{provider.OpenAI})()

	if m.session.Conversation.Len() != 0 {
		t.Fatalf("transcript has %d turns after the command ran, want 0",
			m.session.Conversation.Len())
	}

	replies, ok := msg.(repliesMsg)
	if !ok || len(replies.replies) != 1 {
		t.Fatalf("command returned %T with %d replies, want repliesMsg with 1",
			msg, len(replies.replies))
	}

	m.Update(msg)
	turns := m.session.Conversation.Turns()
	if len(turns) != 1 || turns[0].Provider != provider.OpenAI {
		t.Fatalf("transcript = %v, want the reply appended by the update loop", turns)
	}
}

func TestFanOutLabel(t *testing.T) {
	m := testModel(t)
	if got := m.fanOutLabel(); got != "all providers" {
		t.Errorf("fanOutLabel() = %q, want all providers", got)
	}
	m.cycleProvider()
	if got := m.fanOutLabel(); got != provider.IDs()[0] {
		t.Errorf("fanOutLabel() = %q, want first provider", got)
	}
}
