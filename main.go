// hydra TUI - one prompt, every chat provider, side by side.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/jeranaias/hydra-tui/internal/cli"
	"github.com/jeranaias/hydra-tui/internal/config"
	"github.com/jeranaias/hydra-tui/internal/session"
	"github.com/jeranaias/hydra-tui/internal/ui/chat"
	"github.com/jeranaias/hydra-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	// Credentials come from the environment; a .env in the working
	// directory is a convenience, its absence is not an error.
	_ = godotenv.Load()

	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdChat:
		cli.HandleChat(args)
	case cli.CmdModels:
		cli.HandleModels(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdCache:
		cli.HandleCache(args)
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		cli.PrintUsage()
		os.Exit(1)
	}
}

// runTUI starts the interactive chat interface.
func runTUI(args cli.Args) {
	sess := session.New()
	if args.Model != "" {
		for key := range sess.Settings.SelectedModels {
			sess.Settings.SetModelFor(key, args.Model)
		}
	}

	view := chat.New(sess, styles.New())
	program := tea.NewProgram(view, tea.WithAltScreen())

	// Settings edited by `hydra config set` in another terminal are
	// picked up live; a watcher setup failure just disables that.
	watcher, err := config.NewWatcher(func(s *config.Settings) {
		program.Send(chat.SettingsReloadedMsg{Settings: s})
	})
	if err == nil {
		defer watcher.Close()
	}

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
