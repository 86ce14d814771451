// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli shared helpers: markdown output, provider resolution, and
// small formatting utilities used across command handlers.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/jeranaias/hydra-tui/internal/provider"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the glamour renderer for one-shot command output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fall back to plain text if renderer initialization fails.
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails or renderer is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayResponse prints a reply, markdown-rendered only when stdout is a
// TTY so piped output stays raw.
func displayResponse(response string) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(renderMarkdown(response))
		return
	}
	fmt.Println(response)
}

// =============================================================================
// PROVIDER RESOLUTION
// =============================================================================

// resolveProviders maps the --providers flag to registry identifiers.
// An empty flag selects every registered provider. Unknown names are an
// error so a typo never silently drops a provider from the fan-out.
func resolveProviders(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return provider.IDs(), nil
	}

	ids := make([]string, 0, len(requested))
	for _, name := range requested {
		e, ok := provider.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown provider %q (choose from: %s)",
				name, strings.Join(provider.IDs(), ", "))
		}
		ids = append(ids, e.ID)
	}
	return ids, nil
}

// =============================================================================
// FORMATTING
// =============================================================================

// formatAge formats a time.Duration for cache-age display.
func formatAge(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
	return fmt.Sprintf("%dd", int(d.Hours()/24))
}
