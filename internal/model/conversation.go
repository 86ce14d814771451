// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the append-only transcript for one interactive run.
//
// Turns are never removed or reordered; the log grows for the lifetime of
// the process and is not persisted across restarts.
type Conversation struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	turns []Turn
}

// NewConversation creates an empty conversation with a generated ID.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Append adds a turn to the end of the transcript.
func (c *Conversation) Append(t Turn) {
	c.turns = append(c.turns, t)
	c.UpdatedAt = time.Now()
}

// AppendUser records a user turn and returns it.
func (c *Conversation) AppendUser(content string) Turn {
	t := NewUserTurn(content)
	c.Append(t)
	return t
}

// AppendAssistant records a provider-tagged assistant turn and returns it.
func (c *Conversation) AppendAssistant(provider, content string) Turn {
	t := NewAssistantTurn(provider, content)
	c.Append(t)
	return t
}

// Turns returns the transcript in insertion order.
// The returned slice is shared; callers must not mutate it.
func (c *Conversation) Turns() []Turn {
	return c.turns
}

// Len returns the number of turns recorded so far.
func (c *Conversation) Len() int {
	return len(c.turns)
}

// IsEmpty reports whether the transcript has no turns.
func (c *Conversation) IsEmpty() bool {
	return len(c.turns) == 0
}

// LastTurn returns the most recent turn, or a zero Turn if empty.
func (c *Conversation) LastTurn() (Turn, bool) {
	if len(c.turns) == 0 {
		return Turn{}, false
	}
	return c.turns[len(c.turns)-1], true
}
