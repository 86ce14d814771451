// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/hydra-tui/internal/provider"
)

func TestParseArgs_Dispatch(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Command
	}{
		{"no args starts TUI", nil, CmdTUI},
		{"explicit tui", []string{"tui"}, CmdTUI},
		{"ask", []string{"ask", "what", "is", "go"}, CmdAsk},
		{"chat", []string{"chat"}, CmdChat},
		{"models", []string{"models"}, CmdModels},
		{"config", []string{"config", "show"}, CmdConfig},
		{"cache", []string{"cache", "status"}, CmdCache},
		{"version", []string{"version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"bare question falls through to ask", []string{"what", "is", "a", "goroutine"}, CmdAsk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := ParseArgs(tt.argv)
			if cmd != tt.want {
				t.Errorf("ParseArgs(%v) = %v, want %v", tt.argv, cmd, tt.want)
			}
		})
	}
}

func TestParseArgs_AskQuery(t *testing.T) {
	_, args := ParseArgs([]string{"ask", "what", "is", "go"})
	if args.Query != "what is go" {
		t.Errorf("Query = %q, want joined words", args.Query)
	}

	// A bare question keeps its first word.
	_, args = ParseArgs([]string{"what", "is", "a", "goroutine"})
	if args.Query != "what is a goroutine" {
		t.Errorf("Query = %q, want full question", args.Query)
	}
}

func TestParseArgs_GlobalFlags(t *testing.T) {
	cmd, args := ParseArgs([]string{"--providers", "openai,grok", "-q", "ask", "hi"})
	if cmd != CmdAsk {
		t.Fatalf("cmd = %v, want CmdAsk", cmd)
	}
	if !args.Quiet {
		t.Error("Quiet not set")
	}
	if len(args.Providers) != 2 || args.Providers[0] != "openai" || args.Providers[1] != "grok" {
		t.Errorf("Providers = %v", args.Providers)
	}

	_, args = ParseArgs([]string{"ask", "--model=gpt-4.1", "hello"})
	if args.Model != "gpt-4.1" {
		t.Errorf("Model = %q, want gpt-4.1", args.Model)
	}
}

func TestParseArgs_ConfigSet(t *testing.T) {
	_, args := ParseArgs([]string{"config", "set", "openai", "gpt-4.1"})
	if args.Subcommand != "set" || args.ConfigKey != "openai" || args.ConfigVal != "gpt-4.1" {
		t.Errorf("config set parsed as (%q, %q, %q)", args.Subcommand, args.ConfigKey, args.ConfigVal)
	}
}

func TestParseArgs_CacheRefresh(t *testing.T) {
	_, args := ParseArgs([]string{"cache", "refresh"})
	if !args.Refresh {
		t.Error("cache refresh should set Refresh")
	}

	_, args = ParseArgs([]string{"cache", "status", "--refresh"})
	if args.Subcommand != "status" || !args.Refresh {
		t.Errorf("cache status --refresh parsed as (%q, %v)", args.Subcommand, args.Refresh)
	}
}

func TestSplitProviderList(t *testing.T) {
	got := splitProviderList(" openai, grok ,,gemini ")
	want := []string{"openai", "grok", "gemini"}
	if len(got) != len(want) {
		t.Fatalf("splitProviderList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResolveProviders(t *testing.T) {
	// Empty request selects the whole registry.
	ids, err := resolveProviders(nil)
	if err != nil {
		t.Fatalf("resolveProviders(nil) error = %v", err)
	}
	if len(ids) != len(provider.IDs()) {
		t.Errorf("resolveProviders(nil) = %v, want all providers", ids)
	}

	// Case-insensitive names resolve to canonical identifiers.
	ids, err = resolveProviders([]string{"openai", "GROK"})
	if err != nil {
		t.Fatalf("resolveProviders() error = %v", err)
	}
	if ids[0] != provider.OpenAI || ids[1] != provider.Grok {
		t.Errorf("resolveProviders() = %v", ids)
	}

	// A typo is an error, not a silent drop.
	if _, err := resolveProviders([]string{"openaai"}); err == nil {
		t.Error("resolveProviders() with unknown name should fail")
	} else if !strings.Contains(err.Error(), "openaai") {
		t.Errorf("error %q should name the bad provider", err)
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{5 * time.Minute, "5m"},
		{90 * time.Minute, "1h30m"},
		{26 * time.Hour, "1d"},
	}

	for _, tt := range tests {
		if got := formatAge(tt.d); got != tt.want {
			t.Errorf("formatAge(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
