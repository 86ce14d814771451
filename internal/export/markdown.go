// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/hydra-tui/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter renders the transcript as a Markdown document, one
// heading per turn so provider replies to the same prompt sit side by
// side under it.
type MarkdownExporter struct{}

// Export converts a transcript to Markdown.
func (e *MarkdownExporter) Export(conv *model.Conversation) ([]byte, error) {
	if conv == nil || conv.IsEmpty() {
		return nil, fmt.Errorf("transcript is empty")
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("turns: %d\n", conv.Len()))
	sb.WriteString(fmt.Sprintf("exported: %s\n", time.Now().Format(time.RFC3339)))
	sb.WriteString("generator: hydra-tui\n")
	sb.WriteString("---\n")

	for _, turn := range conv.Turns() {
		if turn.Role == model.RoleUser {
			sb.WriteString("\n## You\n\n")
		} else {
			sb.WriteString(fmt.Sprintf("\n### %s\n\n", turn.Provider))
		}
		sb.WriteString(turn.Content)
		sb.WriteString("\n")
	}

	return []byte(sb.String()), nil
}

// FileExtension implements Exporter.
func (e *MarkdownExporter) FileExtension() string { return ".md" }
