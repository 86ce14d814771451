// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session wires the transcript, settings, adapters, and catalog
// into one explicit application-state object.
//
// Every handler (TUI, ask, REPL) receives a *Session instead of reaching
// into ambient globals; the state is created once per interactive run and
// threaded through all read/write sites.
package session

import (
	"context"

	"github.com/jeranaias/hydra-tui/internal/catalog"
	"github.com/jeranaias/hydra-tui/internal/config"
	"github.com/jeranaias/hydra-tui/internal/llm"
	"github.com/jeranaias/hydra-tui/internal/model"
	"github.com/jeranaias/hydra-tui/internal/provider"
)

// FallbackPair is the static Hugging Face (sub-provider, model) pair used
// when both the discovery cache and a sweep are unavailable.
var FallbackPair = catalog.Pair{
	Provider: "together",
	Model:    "meta-llama/Llama-3.1-8B-Instruct",
}

// Session is the per-run application state.
type Session struct {
	Conversation *model.Conversation
	Settings     *config.Settings
	Client       *llm.Client
	Catalog      *catalog.Service
}

// New creates a session around freshly loaded settings and the default
// catalog service. A catalog setup failure is not fatal: the session runs
// with the static fallback pair instead.
func New() *Session {
	settings, err := config.Load()
	if err != nil {
		settings = config.Default()
	}

	s := &Session{
		Conversation: model.NewConversation(),
		Settings:     settings,
		Client:       llm.New(),
	}
	if svc, err := catalog.DefaultService(); err == nil {
		s.Catalog = svc
	}
	return s
}

// Submit records the prompt as a user turn, then invokes each selected
// provider sequentially in selection order, recording every reply (or
// error text) as a provider-tagged assistant turn. The returned slice
// holds the assistant turns in the same order.
//
// A provider whose credential is absent gets a turn carrying the literal
// missing-variable message; no HTTP request is made for it.
func (s *Session) Submit(ctx context.Context, prompt string, providerIDs []string) []model.Turn {
	s.Conversation.AppendUser(prompt)

	replies := s.Replies(ctx, prompt, providerIDs)
	for _, turn := range replies {
		s.Conversation.Append(turn)
	}
	return replies
}

// Replies runs the provider fan-out and returns the assistant turns in
// selection order WITHOUT touching the transcript. The TUI calls this
// from a command goroutine and appends the turns on its update loop, so
// the conversation is only ever mutated on one goroutine.
func (s *Session) Replies(ctx context.Context, prompt string, providerIDs []string) []model.Turn {
	replies := make([]model.Turn, 0, len(providerIDs))
	for _, id := range providerIDs {
		replies = append(replies, s.reply(ctx, id, prompt))
	}
	return replies
}

// reply runs one adapter and builds its provider-tagged turn.
func (s *Session) reply(ctx context.Context, providerID, prompt string) model.Turn {
	entry, ok := provider.Lookup(providerID)
	if !ok {
		return model.NewAssistantTurn(providerID, "Provider not supported.")
	}

	key, err := entry.Credential()
	if err != nil {
		// Missing credential: user-visible message, no call attempted.
		return model.NewAssistantTurn(entry.ID, entry.MissingCredentialMessage())
	}

	modelID := s.Settings.ModelFor(entry.ID)
	sub := ""
	if entry.ID == provider.HuggingFace {
		modelID, sub = s.huggingFaceSelection()
	}

	return model.NewAssistantTurn(entry.ID, s.Client.Complete(ctx, entry.ID, key, modelID, sub, prompt))
}

// huggingFaceSelection resolves the router (sub-provider, model) pair:
// the persisted selection when present, otherwise the static fallback.
// It also nudges the catalog to refresh itself for later lookups.
func (s *Session) huggingFaceSelection() (modelID, sub string) {
	if s.Catalog != nil {
		// Non-blocking: may kick off a background sweep.
		s.Catalog.EnsureFresh()
	}

	modelID = s.Settings.ModelFor(provider.HuggingFace)
	sub = s.Settings.HFSubProvider()
	if sub == "" {
		return FallbackPair.Model, FallbackPair.Provider
	}
	return modelID, sub
}

// CatalogPairs returns the pairs offered in the model picker: the cached
// discovery result when fresh, otherwise the static fallback while a
// background sweep (if any) lands.
func (s *Session) CatalogPairs() []catalog.Pair {
	if s.Catalog != nil {
		if pairs := s.Catalog.EnsureFresh(); pairs != nil {
			return pairs
		}
	}
	return []catalog.Pair{FallbackPair}
}
