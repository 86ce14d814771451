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

// anthropicMaxTokens is the completion budget sent with every request;
// the messages endpoint rejects requests without one.
const anthropicMaxTokens = 1024

// CallAnthropic sends one prompt to the Anthropic messages endpoint and
// returns the reply text, or an error-prefixed string on any failure.
func (c *Client) CallAnthropic(ctx context.Context, key, model, prompt string) string {
	body := anthropicRequest{
		Model:     model,
		MaxTokens: anthropicMaxTokens,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
	}
	headers := map[string]string{
		"x-api-key":         key,
		"anthropic-version": anthropicVersion,
	}

	status, respBody, err := c.postJSON(ctx, c.anthropicURL, headers, body)
	if err != nil {
		return exceptionReply(provider.Anthropic, err)
	}
	if status != http.StatusOK {
		return errorReply(provider.Anthropic, status, respBody)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return exceptionReply(provider.Anthropic, fmt.Errorf("failed to parse response: %w", err))
	}
	if len(resp.Content) == 0 {
		return exceptionReply(provider.Anthropic, fmt.Errorf("response contained no content: %s", respBody))
	}
	return resp.Content[0].Text
}

// ListAnthropicModels returns the identifiers of the models the Anthropic
// API currently offers.
func (c *Client) ListAnthropicModels(ctx context.Context, key string) ([]string, error) {
	headers := map[string]string{
		"x-api-key":         key,
		"anthropic-version": anthropicVersion,
	}

	var list anthropicModelList
	if err := c.getJSON(ctx, c.anthropicListURL, headers, &list); err != nil {
		return nil, fmt.Errorf("failed to list Anthropic models: %w", err)
	}

	models := make([]string, 0, len(list.Data))
	for _, m := range list.Data {
		models = append(models, m.ID)
	}
	return models, nil
}
