// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// models_cmd.go - Model listing command for the hydra CLI.
//
// Handles "hydra models": for Gemini and Anthropic the list comes from
// the provider's live model API when a credential is present; for the
// Hugging Face router it comes from the discovery cache; OpenAI and Grok
// show the configured selection (neither exposes a stable list endpoint
// worth the extra credential round-trip on every invocation).
package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/hydra-tui/internal/provider"
	"github.com/jeranaias/hydra-tui/internal/session"
)

// HandleModels handles the "models" command.
func HandleModels(args Args) {
	providers, err := resolveProviders(args.Providers)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	sess := session.New()
	ctx := context.Background()

	for _, id := range providers {
		entry, _ := provider.Lookup(id)
		fmt.Printf("\n%s (selected: %s)\n", entry.ID, sess.Settings.ModelFor(entry.ID))

		key, err := entry.Credential()
		if err != nil {
			fmt.Printf("  %s\n", entry.MissingCredentialMessage())
			continue
		}

		switch entry.ID {
		case provider.Gemini:
			printModelList(sess.Client.ListGeminiModels(ctx, key))

		case provider.Anthropic:
			printModelList(sess.Client.ListAnthropicModels(ctx, key))

		case provider.HuggingFace:
			pairs := sess.CatalogPairs()
			for _, p := range pairs {
				fmt.Printf("  %s\n", p)
			}
			if sess.Catalog != nil && sess.Catalog.Stale() {
				fmt.Println("  (catalog stale; a background sweep may be running - retry shortly)")
			}

		default:
			// OpenAI and Grok: configured selection only.
			fmt.Printf("  %s\n", sess.Settings.ModelFor(entry.ID))
		}
	}
	fmt.Println()
}

// printModelList prints a live model list or the fetch error.
func printModelList(models []string, err error) {
	if err != nil {
		fmt.Printf("  failed to list models: %v\n", err)
		return
	}
	for _, m := range models {
		fmt.Printf("  %s\n", m)
	}
}
