// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/hydra-tui/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter renders the transcript as a JSON document for scripted
// post-processing.
type JSONExporter struct{}

// jsonDocument is the exported file shape.
type jsonDocument struct {
	ExportedAt time.Time  `json:"exported_at"`
	Turns      []jsonTurn `json:"turns"`
}

type jsonTurn struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Provider  string    `json:"provider,omitempty"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Export converts a transcript to indented JSON.
func (e *JSONExporter) Export(conv *model.Conversation) ([]byte, error) {
	if conv == nil || conv.IsEmpty() {
		return nil, fmt.Errorf("transcript is empty")
	}

	doc := jsonDocument{ExportedAt: time.Now().UTC()}
	for _, turn := range conv.Turns() {
		doc.Turns = append(doc.Turns, jsonTurn{
			ID:        turn.ID,
			Role:      string(turn.Role),
			Provider:  turn.Provider,
			Content:   turn.Content,
			Timestamp: turn.Timestamp,
		})
	}

	return json.MarshalIndent(doc, "", "  ")
}

// FileExtension implements Exporter.
func (e *JSONExporter) FileExtension() string { return ".json" }
