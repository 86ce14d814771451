// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package provider defines the static registry of chat completion backends.
//
// Each entry maps a provider identifier to the environment variable holding
// its credential and to its API endpoint. Entries are immutable and defined
// at process start; the Hugging Face router additionally routes through a
// sub-provider discovered at runtime (see internal/catalog).
package provider

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Provider identifiers. These are the keys used in the settings document
// and the tags recorded on assistant turns.
const (
	OpenAI      = "OpenAI"
	Gemini      = "Gemini"
	Anthropic   = "Anthropic"
	Grok        = "Grok"
	HuggingFace = "HuggingFace"
)

// ErrMissingCredential indicates the provider's environment variable is
// not set. Detected before any network call is attempted.
var ErrMissingCredential = errors.New("missing credential")

// Entry describes one backend.
type Entry struct {
	// ID is the canonical provider identifier.
	ID string

	// EnvVar is the environment variable holding the API credential.
	EnvVar string

	// Endpoint is the API URL. For Gemini and the Hugging Face router it
	// is a template with a %s placeholder (model name, sub-provider).
	Endpoint string

	// DefaultModel is used when the settings document has no selection.
	DefaultModel string
}

// registry holds every supported backend in stable display order.
var registry = []Entry{
	{
		ID:           OpenAI,
		EnvVar:       "OPENAI_API_KEY",
		Endpoint:     "https://api.openai.com/v1/chat/completions",
		DefaultModel: "gpt-4.1-mini",
	},
	{
		ID:           Gemini,
		EnvVar:       "GEMINI_API_KEY",
		Endpoint:     "https://generativelanguage.googleapis.com/v1/models/%s:generateContent",
		DefaultModel: "gemini-2.0-flash",
	},
	{
		ID:           Anthropic,
		EnvVar:       "ANTHROPIC_API_KEY",
		Endpoint:     "https://api.anthropic.com/v1/messages",
		DefaultModel: "claude-3-7-sonnet-20250219",
	},
	{
		ID:           Grok,
		EnvVar:       "XAI_API_KEY",
		Endpoint:     "https://api.x.ai/v1/chat/completions",
		DefaultModel: "grok-3-latest",
	},
	{
		ID:           HuggingFace,
		EnvVar:       "HF_TOKEN",
		Endpoint:     "https://router.huggingface.co/%s/v1/chat/completions",
		DefaultModel: "meta-llama/Llama-3.1-8B-Instruct",
	},
}

// All returns every registered provider in stable order.
func All() []Entry {
	out := make([]Entry, len(registry))
	copy(out, registry)
	return out
}

// IDs returns the identifiers of every registered provider in stable order.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, e := range registry {
		ids[i] = e.ID
	}
	return ids
}

// Lookup returns the entry for the given identifier.
// The match is case-insensitive so CLI arguments like "openai" work.
func Lookup(id string) (Entry, bool) {
	for _, e := range registry {
		if strings.EqualFold(e.ID, id) {
			return e, true
		}
	}
	return Entry{}, false
}

// Credential resolves the provider's API key from the process environment
// at call time. The value is never cached, logged, or persisted.
//
// A missing or empty variable yields an error wrapping ErrMissingCredential
// that names the variable; callers surface it as a user-visible message.
func (e Entry) Credential() (string, error) {
	key := strings.TrimSpace(os.Getenv(e.EnvVar))
	if key == "" {
		return "", fmt.Errorf("%w: API key for %s not found, please set the %s environment variable",
			ErrMissingCredential, e.ID, e.EnvVar)
	}
	return key, nil
}

// MissingCredentialMessage is the user-facing text shown when a provider's
// environment variable is absent.
func (e Entry) MissingCredentialMessage() string {
	return fmt.Sprintf("API key for %s not found. Please set the %s environment variable.", e.ID, e.EnvVar)
}
