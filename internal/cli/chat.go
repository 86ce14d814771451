// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-oriented interactive chat for the hydra CLI.
//
// Handles the "hydra chat" command: a readline REPL with persistent
// history for terminals where the full TUI is unwanted (ssh sessions,
// scripts driving a pty, screen readers).
//
// REPL commands:
//   /providers a,b,c   Switch the provider fan-out
//   /history           Print the transcript so far
//   /export [md|json]  Write the transcript to a file
//   /clear             Forget the transcript
//   /help              Show REPL commands
//   /quit, /exit       Leave the REPL
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/hydra-tui/internal/config"
	"github.com/jeranaias/hydra-tui/internal/export"
	"github.com/jeranaias/hydra-tui/internal/model"
	"github.com/jeranaias/hydra-tui/internal/session"
)

// historyFileName is kept under the hydra config directory.
const historyFileName = "chat_history"

// HandleChatCommand runs the line-oriented REPL.
func HandleChatCommand(args Args) error {
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

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := loadHistory(line)
	defer saveHistory(line, historyPath)

	if !args.Quiet {
		fmt.Printf("hydra chat - providers: %s\n", strings.Join(providers, ", "))
		fmt.Println("Type /help for commands, /quit to leave.")
	}

	for {
		input, err := line.Prompt("you> ")
		if err != nil {
			// liner.ErrPromptAborted on Ctrl-C, io.EOF on Ctrl-D.
			fmt.Println()
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			quit, err := handleREPLCommand(sess, &providers, input)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}

		replies := sess.Submit(context.Background(), input, providers)
		for _, turn := range replies {
			fmt.Printf("\n[%s]\n", turn.Provider)
			displayResponse(turn.Content)
		}
		fmt.Println()
	}
}

// handleREPLCommand processes a /command line. The bool result reports
// whether the REPL should exit.
func handleREPLCommand(sess *session.Session, providers *[]string, input string) (bool, error) {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case "/quit", "/exit", "/q":
		return true, nil

	case "/help":
		fmt.Println("  /providers a,b,c   switch the provider fan-out")
		fmt.Println("  /history           print the transcript so far")
		fmt.Println("  /export [md|json]  write the transcript to a file")
		fmt.Println("  /clear             forget the transcript")
		fmt.Println("  /quit              leave the REPL")
		return false, nil

	case "/providers":
		if len(fields) < 2 {
			fmt.Printf("providers: %s\n", strings.Join(*providers, ", "))
			return false, nil
		}
		resolved, err := resolveProviders(splitProviderList(fields[1]))
		if err != nil {
			return false, err
		}
		*providers = resolved
		fmt.Printf("providers: %s\n", strings.Join(resolved, ", "))
		return false, nil

	case "/history":
		for _, turn := range sess.Conversation.Turns() {
			fmt.Println(formatTranscriptLine(turn))
		}
		return false, nil

	case "/export":
		format := ""
		if len(fields) > 1 {
			format = fields[1]
		}
		exporter, err := export.ForFormat(format)
		if err != nil {
			return false, err
		}
		path, err := export.ToFile(sess.Conversation, exporter, ".")
		if err != nil {
			return false, err
		}
		fmt.Printf("exported to %s\n", path)
		return false, nil

	case "/clear":
		sess.Conversation = model.NewConversation()
		fmt.Println("transcript cleared")
		return false, nil

	default:
		return false, fmt.Errorf("unknown command %s (try /help)", cmd)
	}
}

// formatTranscriptLine renders one turn for the /history listing.
func formatTranscriptLine(turn model.Turn) string {
	label := "you"
	if turn.Role == model.RoleAssistant {
		label = turn.Provider
	}
	return fmt.Sprintf("[%s] %s", label, turn.Content)
}

// loadHistory primes the liner with persisted history and returns the
// history path (empty when the config directory is unavailable).
func loadHistory(line *liner.State) string {
	dir, err := config.ConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, historyFileName)
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		line.ReadHistory(f)
	}
	return path
}

// saveHistory writes the liner history back out. Best effort.
func saveHistory(line *liner.State, path string) {
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
