// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jeranaias/hydra-tui/internal/provider"
)

// CallOpenAI sends one prompt to the OpenAI chat-completions endpoint and
// returns the reply text, or an error-prefixed string on any failure.
func (c *Client) CallOpenAI(ctx context.Context, key, model, prompt string) string {
	body := openAIRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}
	headers := map[string]string{"Authorization": "Bearer " + key}

	status, respBody, err := c.postJSON(ctx, c.openAIURL, headers, body)
	if err != nil {
		return exceptionReply(provider.OpenAI, err)
	}
	if status != http.StatusOK {
		return errorReply(provider.OpenAI, status, respBody)
	}
	return extractOpenAIStyle(provider.OpenAI, respBody)
}

// CallGrok sends one prompt to the Grok chat-completions endpoint. The
// request carries a system message and a pinned temperature on top of the
// OpenAI shape.
func (c *Client) CallGrok(ctx context.Context, key, model, prompt string) string {
	body := grokRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a helpful assistant."},
			{Role: "user", Content: prompt},
		},
		Stream:      false,
		Temperature: 0,
	}
	headers := map[string]string{"Authorization": "Bearer " + key}

	status, respBody, err := c.postJSON(ctx, c.grokURL, headers, body)
	if err != nil {
		return exceptionReply(provider.Grok, err)
	}
	if status != http.StatusOK {
		return errorReply(provider.Grok, status, respBody)
	}
	return extractOpenAIStyle(provider.Grok, respBody)
}

// extractOpenAIStyle pulls choices[0].message.content out of an
// OpenAI-style response body.
func extractOpenAIStyle(providerName string, body []byte) string {
	var resp openAIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return exceptionReply(providerName, fmt.Errorf("failed to parse response: %w", err))
	}
	if len(resp.Choices) == 0 {
		return exceptionReply(providerName, fmt.Errorf("response contained no choices: %s", body))
	}
	return resp.Choices[0].Message.Content
}
