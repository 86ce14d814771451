// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for hydra.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdModels
	CmdConfig
	CmdCache
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet     bool
	Verbose   bool
	Providers []string // --providers openai,grok (empty = all with credentials)
	Model     string   // --model override for every selected provider

	// Command-specific
	Query      string
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	Refresh    bool // cache --refresh

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `hydra - multi-provider LLM chat for the terminal

Hydra sends one prompt to several chat providers at once and shows every
reply side by side.

Providers: OpenAI, Gemini, Anthropic, Grok, HuggingFace (router)

Usage:
  hydra                        Start the chat TUI (default)
  hydra ask "question"         Ask once, print every provider's reply
  hydra chat                   Line-oriented interactive chat
  hydra models                 List selectable models per provider
  hydra config [show|get|set]  Configuration
  hydra cache [status]         Model discovery cache management

Ask Command:
  hydra ask "What is Go?"                    Fan out to all configured providers
  hydra ask --providers openai "What is Go?" Single provider
  hydra ask --providers grok,gemini "..."    Comma-separated subset
  hydra ask --model gpt-4.1 "..."            Override the selected model

Chat Command:
  hydra chat                          REPL with line editing and history
  hydra chat --providers anthropic    Chat against one provider
    /providers a,b,c                  Switch providers mid-session
    /quit                             Leave the REPL

Models Command:
  hydra models                        All providers (live lists where possible)
  hydra models --providers gemini     One provider's models

Config Commands:
  hydra config show                   Show the full settings document
  hydra config get <provider>         Show one provider's selected model
  hydra config set <provider> <model> Select a model and persist it
  hydra config path                   Print the settings file location

Cache Commands:
  hydra cache status                  Cache age, freshness, pair count
  hydra cache refresh                 Force a synchronous discovery sweep
  hydra cache clear                   Delete the cached catalog

Credentials (environment variables, never stored):
  OPENAI_API_KEY, GEMINI_API_KEY, ANTHROPIC_API_KEY, XAI_API_KEY, HF_TOKEN

Global Flags:
  -q, --quiet        Minimal output
  -v, --verbose      Debug output
  --providers LIST   Comma-separated provider subset
  --model NAME       Override the selected model

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("hydra version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
	fmt.Printf("  Go version: %s\n", runtime.Version())
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses an explicit argument slice. Split out of Parse so the
// dispatch can be tested without touching os.Args.
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	// No remaining args: start the TUI.
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "ask":
		parsedArgs.Query = strings.Join(positionalOnly(remaining), " ")
		return CmdAsk, parsedArgs

	case "chat":
		return CmdChat, parsedArgs

	case "models", "model":
		if len(remaining) > 0 {
			parsedArgs.Subcommand = remaining[0]
		}
		return CmdModels, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "cache", "catalog":
		parseCacheArgs(&parsedArgs, remaining)
		return CmdCache, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown first word: treat the whole line as an ask query. This
		// makes `hydra "what is a goroutine"` do the obvious thing.
		parsedArgs.Query = strings.Join(append([]string{cmd}, positionalOnly(remaining)...), " ")
		return CmdAsk, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--providers", "-p":
			if i+1 < len(args) {
				i++
				parsedArgs.Providers = splitProviderList(args[i])
			}
		case "--model", "-m":
			if i+1 < len(args) {
				i++
				parsedArgs.Model = args[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--providers="):
				parsedArgs.Providers = splitProviderList(strings.TrimPrefix(arg, "--providers="))
			case strings.HasPrefix(arg, "--model="):
				parsedArgs.Model = strings.TrimPrefix(arg, "--model=")
			default:
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// splitProviderList splits a comma-separated provider list, trimming
// whitespace and dropping empty segments.
func splitProviderList(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// positionalOnly returns the arguments that are not flags. Flag values
// already consumed by parseGlobalFlags never reach here.
func positionalOnly(args []string) []string {
	var out []string
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			out = append(out, arg)
		}
	}
	return out
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = remaining[2]
		}
	}
}

// parseCacheArgs parses cache command specific arguments.
func parseCacheArgs(args *Args, remaining []string) {
	for _, arg := range remaining {
		switch arg {
		case "--refresh":
			args.Refresh = true
		default:
			if args.Subcommand == "" && !strings.HasPrefix(arg, "-") {
				args.Subcommand = arg
			}
		}
	}
	if args.Subcommand == "refresh" {
		args.Refresh = true
	}
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// HandleAsk handles the "ask" command.
// This delegates to the full implementation in ask.go.
func HandleAsk(args Args) {
	if err := HandleAskCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// HandleChat handles the "chat" command.
// This delegates to the full implementation in chat.go.
func HandleChat(args Args) {
	if err := HandleChatCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// HandleVersion handles the "version" command.
func HandleVersion() {
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
