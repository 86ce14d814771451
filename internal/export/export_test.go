// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/jeranaias/hydra-tui/internal/model"
)

func sampleConversation() *model.Conversation {
	conv := model.NewConversation()
	conv.AppendUser("compare yourselves")
	conv.AppendAssistant("OpenAI", "I am concise.")
	conv.AppendAssistant("Grok", "I am witty.")
	return conv
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantExt string
		wantErr bool
	}{
		{"", ".md", false},
		{"md", ".md", false},
		{"markdown", ".md", false},
		{"JSON", ".json", false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		e, err := ForFormat(tt.format)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ForFormat(%q) should fail", tt.format)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ForFormat(%q) error = %v", tt.format, err)
		}
		if e.FileExtension() != tt.wantExt {
			t.Errorf("ForFormat(%q) extension = %q, want %q", tt.format, e.FileExtension(), tt.wantExt)
		}
	}
}

func TestMarkdownExport(t *testing.T) {
	content, err := (&MarkdownExporter{}).Export(sampleConversation())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	doc := string(content)
	for _, want := range []string{"## You", "### OpenAI", "### Grok", "I am witty."} {
		if !strings.Contains(doc, want) {
			t.Errorf("markdown missing %q:\n%s", want, doc)
		}
	}

	// Replies appear in transcript order.
	if strings.Index(doc, "OpenAI") > strings.Index(doc, "Grok") {
		t.Error("providers out of transcript order")
	}
}

func TestMarkdownExport_EmptyTranscript(t *testing.T) {
	if _, err := (&MarkdownExporter{}).Export(model.NewConversation()); err == nil {
		t.Error("empty transcript should not export")
	}
}

func TestJSONExport_RoundTrips(t *testing.T) {
	content, err := (&JSONExporter{}).Export(sampleConversation())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var doc jsonDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}
	if len(doc.Turns) != 3 {
		t.Fatalf("exported %d turns, want 3", len(doc.Turns))
	}
	if doc.Turns[0].Role != "user" || doc.Turns[1].Provider != "OpenAI" {
		t.Errorf("unexpected turn layout: %+v", doc.Turns)
	}
}

func TestToFile(t *testing.T) {
	dir := t.TempDir()
	path, err := ToFile(sampleConversation(), &MarkdownExporter{}, dir)
	if err != nil {
		t.Fatalf("ToFile() error = %v", err)
	}
	if !strings.HasSuffix(path, ".md") {
		t.Errorf("path = %q, want .md suffix", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}
