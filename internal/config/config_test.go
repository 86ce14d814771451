// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jeranaias/hydra-tui/internal/provider"
)

func TestDefault_CoversAllProviders(t *testing.T) {
	s := Default()
	for _, e := range provider.All() {
		if s.SelectedModels[e.ID] != e.DefaultModel {
			t.Errorf("Default() model for %s = %q, want %q",
				e.ID, s.SelectedModels[e.ID], e.DefaultModel)
		}
	}
}

func TestSaveLoad_RoundTripTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	s := Default()
	s.SetModelFor(provider.OpenAI, "gpt-4.1-mini")
	s.SetHFSubProvider("together")

	if err := SaveToPath(s, path); err != nil {
		t.Fatalf("SaveToPath() error = %v", err)
	}

	got, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if got.ModelFor(provider.OpenAI) != "gpt-4.1-mini" {
		t.Errorf("ModelFor(OpenAI) = %q", got.ModelFor(provider.OpenAI))
	}
	if got.HFSubProvider() != "together" {
		t.Errorf("HFSubProvider() = %q, want %q", got.HFSubProvider(), "together")
	}
}

func TestSaveLoad_RoundTripJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	s := Default()
	s.SetModelFor(provider.Grok, "grok-3-latest")

	if err := SaveToPath(s, path); err != nil {
		t.Fatalf("SaveToPath() error = %v", err)
	}

	got, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if got.ModelFor(provider.Grok) != "grok-3-latest" {
		t.Errorf("ModelFor(Grok) = %q", got.ModelFor(provider.Grok))
	}
}

func TestLoadFromPath_MissingKeysFallBack(t *testing.T) {
	// A legacy document mentioning only one provider is accepted as-is;
	// every other provider reads its registry default.
	path := filepath.Join(t.TempDir(), "config.json")
	legacy := `{"selected_models":{"OpenAI":"gpt-4o"}}`
	if err := os.WriteFile(path, []byte(legacy), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if s.ModelFor(provider.OpenAI) != "gpt-4o" {
		t.Errorf("ModelFor(OpenAI) = %q, want %q", s.ModelFor(provider.OpenAI), "gpt-4o")
	}
	if s.ModelFor(provider.Gemini) != "gemini-2.0-flash" {
		t.Errorf("ModelFor(Gemini) = %q, want default", s.ModelFor(provider.Gemini))
	}
}

func TestModelFor_NilMap(t *testing.T) {
	s := &Settings{}
	if got := s.ModelFor(provider.Anthropic); got != "claude-3-7-sonnet-20250219" {
		t.Errorf("ModelFor() on empty settings = %q, want registry default", got)
	}
}

func TestSettings_Clone(t *testing.T) {
	s := Default()
	c := s.Clone()
	c.SetModelFor(provider.OpenAI, "changed")
	if s.ModelFor(provider.OpenAI) == "changed" {
		t.Error("Clone() shares the underlying map")
	}
}

// TestGlobal_ConcurrentAccess verifies Global/SetGlobal/ReloadGlobal are
// safe under concurrency. Run with: go test -race ./internal/config/
func TestGlobal_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
	ResetGlobalForTesting()
}
