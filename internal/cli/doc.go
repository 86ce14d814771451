// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-TUI command
// handlers for hydra.
//
// The default invocation starts the TUI; everything else is a one-shot
// subcommand:
//
//	hydra                  Start the chat TUI
//	hydra ask "question"   One-shot question, fan-out across providers
//	hydra chat             Line-oriented REPL (no TUI)
//	hydra models           List selectable models per provider
//	hydra config           Show or change persisted settings
//	hydra cache            Inspect or refresh the model discovery cache
package cli
