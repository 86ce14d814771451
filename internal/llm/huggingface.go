// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jeranaias/hydra-tui/internal/provider"
)

// CallHuggingFace sends one prompt through the Hugging Face router. The
// sub-provider selects which serving infrastructure hosts the model; the
// body and response are OpenAI-style.
func (c *Client) CallHuggingFace(ctx context.Context, key, subProvider, model, prompt string) string {
	if subProvider == "" {
		return fmt.Sprintf("%s Error: no sub-provider selected; pick one from the model picker or set it with `hydra config set`.", provider.HuggingFace)
	}

	endpoint := fmt.Sprintf(c.routerURL, subProvider)
	body := openAIRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}
	headers := map[string]string{"Authorization": "Bearer " + key}

	status, respBody, err := c.postJSON(ctx, endpoint, headers, body)
	if err != nil {
		return exceptionReply(provider.HuggingFace, err)
	}
	if status != http.StatusOK {
		return errorReply(provider.HuggingFace, status, respBody)
	}
	return extractOpenAIStyle(provider.HuggingFace, respBody)
}
