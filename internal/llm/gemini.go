// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jeranaias/hydra-tui/internal/provider"
)

// CallGemini sends one prompt to the Gemini generateContent endpoint.
// Gemini authenticates with the API key as a query parameter rather than
// a header; the model name is part of the path.
func (c *Client) CallGemini(ctx context.Context, key, model, prompt string) string {
	endpoint := fmt.Sprintf(c.geminiURL, model) + "?key=" + url.QueryEscape(key)

	body := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
	}

	status, respBody, err := c.postJSON(ctx, endpoint, nil, body)
	if err != nil {
		return exceptionReply(provider.Gemini, err)
	}
	if status != http.StatusOK {
		return errorReply(provider.Gemini, status, respBody)
	}

	var resp geminiResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return exceptionReply(provider.Gemini, fmt.Errorf("failed to parse response: %w", err))
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return exceptionReply(provider.Gemini, fmt.Errorf("response contained no candidates: %s", respBody))
	}
	return resp.Candidates[0].Content.Parts[0].Text
}

// ListGeminiModels returns the identifiers of the models the Gemini API
// currently offers, with the "models/" path prefix stripped.
func (c *Client) ListGeminiModels(ctx context.Context, key string) ([]string, error) {
	endpoint := c.geminiListURL + "?key=" + url.QueryEscape(key)

	var list geminiModelList
	if err := c.getJSON(ctx, endpoint, nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list Gemini models: %w", err)
	}

	models := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		name := m.Name
		if len(name) > len("models/") && name[:len("models/")] == "models/" {
			name = name[len("models/"):]
		}
		models = append(models, name)
	}
	return models, nil
}
