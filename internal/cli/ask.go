// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single query command handler for the hydra CLI.
//
// Handles the "hydra ask" command which sends one prompt to the selected
// providers and prints every reply, labelled by provider, in selection
// order.
//
// Command: ask [question]
//
// Examples:
//   hydra ask "What is the capital of France?"
//   hydra ask --providers openai,grok "Compare yourselves"
//   hydra ask --model gpt-4.1 "Use a specific model"
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/hydra-tui/internal/session"
)

// HandleAskCommand executes a single ask query and prints the results.
func HandleAskCommand(args Args) error {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return fmt.Errorf("no question provided (usage: hydra ask \"your question\")")
	}

	providers, err := resolveProviders(args.Providers)
	if err != nil {
		return err
	}

	sess := session.New()
	if args.Model != "" {
		for _, id := range providers {
			sess.Settings.SetModelFor(id, args.Model)
		}
	}

	if args.Verbose {
		fmt.Fprintf(os.Stderr, "asking %s\n", strings.Join(providers, ", "))
	}

	replies := sess.Submit(context.Background(), query, providers)
	for _, turn := range replies {
		if !args.Quiet {
			fmt.Printf("\n=== %s ===\n", turn.Provider)
		}
		displayResponse(turn.Content)
	}
	return nil
}
