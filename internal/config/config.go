// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides the persisted settings document for hydra.
//
// Supports both TOML and JSON formats with built-in defaults.
//
// Settings file locations (in order of precedence):
//   - ~/.hydra/config.toml
//   - ~/.hydra/config.json
//   - Built-in defaults
//
// The document is always written wholesale: Save replaces the entire file
// atomically, there are no partial updates and no schema migration. A
// document from an older shape is accepted as-is; keys it lacks fall back
// to in-memory defaults where read.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/hydra-tui/internal/provider"
	"github.com/jeranaias/hydra-tui/internal/util"
)

// hfProviderKey is the selected_models key holding the Hugging Face
// sub-provider selection (the router routes a model through a specific
// serving infrastructure).
const hfProviderKey = "HuggingFaceProvider"

// =============================================================================
// SETTINGS DOCUMENT
// =============================================================================

// Settings is the persisted settings document.
type Settings struct {
	// SelectedModels maps a provider identifier to its chosen model, plus
	// the "HuggingFaceProvider" entry naming the router sub-provider.
	SelectedModels map[string]string `toml:"selected_models" json:"selected_models"`
}

// Default returns a settings document covering every registered provider.
func Default() *Settings {
	s := &Settings{SelectedModels: make(map[string]string)}
	for _, e := range provider.All() {
		s.SelectedModels[e.ID] = e.DefaultModel
	}
	return s
}

// ModelFor returns the selected model for a provider, falling back to the
// registry default when the document has no entry.
func (s *Settings) ModelFor(providerID string) string {
	if s.SelectedModels != nil {
		if m, ok := s.SelectedModels[providerID]; ok && m != "" {
			return m
		}
	}
	if e, ok := provider.Lookup(providerID); ok {
		return e.DefaultModel
	}
	return ""
}

// SetModelFor records the model selection for a provider in memory.
// The change is not persisted until Save is called.
func (s *Settings) SetModelFor(providerID, model string) {
	if s.SelectedModels == nil {
		s.SelectedModels = make(map[string]string)
	}
	s.SelectedModels[providerID] = model
}

// HFSubProvider returns the selected Hugging Face router sub-provider,
// or the empty string when none has been chosen yet.
func (s *Settings) HFSubProvider() string {
	if s.SelectedModels == nil {
		return ""
	}
	return s.SelectedModels[hfProviderKey]
}

// SetHFSubProvider records the router sub-provider selection in memory.
func (s *Settings) SetHFSubProvider(sub string) {
	if s.SelectedModels == nil {
		s.SelectedModels = make(map[string]string)
	}
	s.SelectedModels[hfProviderKey] = sub
}

// Clone returns a deep copy of the settings document.
func (s *Settings) Clone() *Settings {
	c := &Settings{SelectedModels: make(map[string]string, len(s.SelectedModels))}
	for k, v := range s.SelectedModels {
		c.SelectedModels[k] = v
	}
	return c
}

// =============================================================================
// FILE LOCATIONS
// =============================================================================

// ConfigDir returns the hydra configuration directory (~/.hydra).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".hydra"), nil
}

// PathTOML returns the path of the TOML settings document.
func PathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// PathJSON returns the path of the JSON settings document.
func PathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the persisted settings document, trying TOML first and JSON
// as a fallback. When neither file exists the built-in defaults are
// returned with a nil error.
func Load() (*Settings, error) {
	if path, err := PathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}
	if path, err := PathJSON(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}
	return Default(), nil
}

// LoadFromPath reads a settings document from an explicit path. The format
// is chosen by file extension: ".json" decodes JSON, anything else TOML.
func LoadFromPath(path string) (*Settings, error) {
	s := &Settings{}

	if filepath.Ext(path) == ".json" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
		if err := json.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("failed to decode JSON settings: %w", err)
		}
	} else {
		if _, err := toml.DecodeFile(path, s); err != nil {
			return nil, fmt.Errorf("failed to decode TOML settings: %w", err)
		}
	}

	fillDefaults(s)
	return s, nil
}

// fillDefaults supplies registry defaults for providers the persisted
// document does not mention. Unknown keys are kept untouched.
func fillDefaults(s *Settings) {
	if s.SelectedModels == nil {
		s.SelectedModels = make(map[string]string)
	}
	for _, e := range provider.All() {
		if s.SelectedModels[e.ID] == "" {
			s.SelectedModels[e.ID] = e.DefaultModel
		}
	}
}

// Save persists the whole document to the default TOML path, replacing any
// previous file atomically.
func Save(s *Settings) error {
	path, err := PathTOML()
	if err != nil {
		return err
	}
	return SaveToPath(s, path)
}

// SaveToPath persists the whole document to an explicit path. The format
// is chosen by file extension, matching LoadFromPath.
func SaveToPath(s *Settings, path string) error {
	var data []byte
	var err error

	if filepath.Ext(path) == ".json" {
		data, err = json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON settings: %w", err)
		}
	} else {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return fmt.Errorf("failed to encode TOML settings: %w", err)
		}
		data = buf.Bytes()
	}

	// Settings may name private model deployments; keep the file user-only.
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// =============================================================================
// GLOBAL ACCESSOR
// =============================================================================

var (
	globalMu       sync.RWMutex
	globalSettings *Settings
)

// Global returns the process-wide settings, loading them on first use.
// The TUI threads its own *Settings through the model; Global exists for
// the one-shot CLI paths.
func Global() *Settings {
	globalMu.RLock()
	if globalSettings != nil {
		defer globalMu.RUnlock()
		return globalSettings
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalSettings == nil {
		s, err := Load()
		if err != nil {
			s = Default()
		}
		globalSettings = s
	}
	return globalSettings
}

// SetGlobal replaces the process-wide settings.
func SetGlobal(s *Settings) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalSettings = s
}

// ReloadGlobal re-reads the settings document from disk.
func ReloadGlobal() error {
	s, err := Load()
	if err != nil {
		return err
	}
	SetGlobal(s)
	return nil
}

// ResetGlobalForTesting clears the cached global settings.
func ResetGlobalForTesting() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalSettings = nil
}
