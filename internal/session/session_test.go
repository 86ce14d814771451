// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/jeranaias/hydra-tui/internal/catalog"
	"github.com/jeranaias/hydra-tui/internal/config"
	"github.com/jeranaias/hydra-tui/internal/llm"
	"github.com/jeranaias/hydra-tui/internal/model"
	"github.com/jeranaias/hydra-tui/internal/provider"
)

func testSession(client *llm.Client) *Session {
	return &Session{
		Conversation: model.NewConversation(),
		Settings:     config.Default(),
		Client:       client,
	}
}

func TestSubmit_MissingCredentialNoRequest(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{"choices":[{"message":{"content":"hi"}}]}`))
	}))
	defer srv.Close()

	t.Setenv("OPENAI_API_KEY", "")

	s := testSession(llm.New().WithOpenAIURL(srv.URL))
	replies := s.Submit(context.Background(), "hello", []string{provider.OpenAI})

	if len(replies) != 1 {
		t.Fatalf("got %d replies, want 1", len(replies))
	}
	want := "API key for OpenAI not found. Please set the OPENAI_API_KEY environment variable."
	if replies[0].Content != want {
		t.Errorf("reply = %q, want literal missing-variable message", replies[0].Content)
	}
	if requests.Load() != 0 {
		t.Errorf("%d HTTP requests issued, want 0", requests.Load())
	}
}

func TestSubmit_RecordsTurnsInSelectionOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"reply"}}]}`))
	}))
	defer srv.Close()

	t.Setenv("OPENAI_API_KEY", "k1")
	t.Setenv("XAI_API_KEY", "k2")

	s := testSession(llm.New().WithOpenAIURL(srv.URL).WithGrokURL(srv.URL))
	s.Submit(context.Background(), "hello", []string{provider.Grok, provider.OpenAI})

	turns := s.Conversation.Turns()
	if len(turns) != 3 {
		t.Fatalf("transcript has %d turns, want 3", len(turns))
	}
	if turns[0].Role != model.RoleUser {
		t.Errorf("turn 0 role = %q, want user", turns[0].Role)
	}
	// Assistant turns follow provider-selection order, not completion order.
	if turns[1].Provider != provider.Grok || turns[2].Provider != provider.OpenAI {
		t.Errorf("assistant order = %q, %q; want Grok then OpenAI",
			turns[1].Provider, turns[2].Provider)
	}
}

func TestReplies_DoesNotTouchTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"reply"}}]}`))
	}))
	defer srv.Close()

	t.Setenv("OPENAI_API_KEY", "k")

	s := testSession(llm.New().WithOpenAIURL(srv.URL))
	replies := s.Replies(context.Background(), "hello", []string{provider.OpenAI})

	if len(replies) != 1 || replies[0].Content != "reply" {
		t.Fatalf("replies = %v, want one reply turn", replies)
	}
	// The caller owns the transcript; Replies must not write to it.
	if !s.Conversation.IsEmpty() {
		t.Errorf("transcript has %d turns after Replies, want 0", s.Conversation.Len())
	}
}

func TestSubmit_AdapterErrorRecordedAsTurn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	t.Setenv("OPENAI_API_KEY", "k")

	s := testSession(llm.New().WithOpenAIURL(srv.URL))
	replies := s.Submit(context.Background(), "hello", []string{provider.OpenAI})

	if got := replies[0].Content; len(got) == 0 || got[:13] != "OpenAI Error:" {
		t.Errorf("reply = %q, want OpenAI Error prefix recorded as a normal turn", got)
	}
}

func TestHuggingFaceSelection_FallbackWithoutSubProvider(t *testing.T) {
	s := testSession(llm.New())
	s.Settings.SetHFSubProvider("")

	modelID, sub := s.huggingFaceSelection()
	if sub != FallbackPair.Provider || modelID != FallbackPair.Model {
		t.Errorf("selection = (%q, %q), want static fallback pair", sub, modelID)
	}
}

func TestCatalogPairs_FallbackOnMiss(t *testing.T) {
	// Catalog service over an empty store and an unreachable hub: the
	// picker still offers the static fallback pair.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := catalog.NewStore(filepath.Join(t.TempDir(), "hf_catalog.json"))
	s := testSession(llm.New())
	s.Catalog = catalog.NewService(store, catalog.NewSweeper().WithBaseURL(srv.URL))

	pairs := s.CatalogPairs()
	if len(pairs) != 1 || pairs[0] != FallbackPair {
		t.Errorf("CatalogPairs() = %v, want the static fallback", pairs)
	}
}
