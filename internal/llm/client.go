// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package llm implements the completion adapters for every supported
// backend.
//
// Each adapter translates a (credential, model, prompt) tuple into the
// vendor's request shape, issues one synchronous HTTP call, and extracts
// the reply text. Failures on the completion path never surface as Go
// errors: they come back as a human-readable string with a
// "<Provider> Error:" or "<Provider> Exception:" prefix that the
// transcript records like any other reply.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jeranaias/hydra-tui/internal/provider"
)

const (
	// defaultTimeout bounds one completion request.
	defaultTimeout = 120 * time.Second

	// maxResponseSize caps response bodies read into memory.
	maxResponseSize = 10 * 1024 * 1024
)

// sharedHTTPClient pools connections across all adapters.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: defaultTimeout,
}

// Client dispatches completion calls to the configured vendor endpoints.
// Endpoint fields exist so tests can point an adapter at a stub server;
// production code uses New and the registry defaults.
type Client struct {
	httpClient *http.Client

	openAIURL    string
	geminiURL    string // template with %s model placeholder
	anthropicURL string
	grokURL      string
	routerURL    string // template with %s sub-provider placeholder

	geminiListURL    string
	anthropicListURL string
}

// New creates a client wired to the registry endpoints.
func New() *Client {
	c := &Client{
		httpClient:       sharedHTTPClient,
		geminiListURL:    "https://generativelanguage.googleapis.com/v1/models",
		anthropicListURL: "https://api.anthropic.com/v1/models",
	}
	for _, e := range provider.All() {
		switch e.ID {
		case provider.OpenAI:
			c.openAIURL = e.Endpoint
		case provider.Gemini:
			c.geminiURL = e.Endpoint
		case provider.Anthropic:
			c.anthropicURL = e.Endpoint
		case provider.Grok:
			c.grokURL = e.Endpoint
		case provider.HuggingFace:
			c.routerURL = e.Endpoint
		}
	}
	return c
}

// WithHTTPClient overrides the HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithOpenAIURL overrides the OpenAI chat-completions endpoint.
func (c *Client) WithOpenAIURL(u string) *Client { c.openAIURL = u; return c }

// WithGeminiURL overrides the Gemini generateContent endpoint template.
func (c *Client) WithGeminiURL(u string) *Client { c.geminiURL = u; return c }

// WithAnthropicURL overrides the Anthropic messages endpoint.
func (c *Client) WithAnthropicURL(u string) *Client { c.anthropicURL = u; return c }

// WithGrokURL overrides the Grok chat-completions endpoint.
func (c *Client) WithGrokURL(u string) *Client { c.grokURL = u; return c }

// WithRouterURL overrides the Hugging Face router endpoint template.
func (c *Client) WithRouterURL(u string) *Client { c.routerURL = u; return c }

// WithGeminiListURL overrides the Gemini model listing endpoint.
func (c *Client) WithGeminiListURL(u string) *Client { c.geminiListURL = u; return c }

// WithAnthropicListURL overrides the Anthropic model listing endpoint.
func (c *Client) WithAnthropicListURL(u string) *Client { c.anthropicListURL = u; return c }

// Complete dispatches to the adapter for the given provider. sub is only
// consulted for the Hugging Face router.
func (c *Client) Complete(ctx context.Context, providerID, key, model, sub, prompt string) string {
	switch providerID {
	case provider.OpenAI:
		return c.CallOpenAI(ctx, key, model, prompt)
	case provider.Gemini:
		return c.CallGemini(ctx, key, model, prompt)
	case provider.Anthropic:
		return c.CallAnthropic(ctx, key, model, prompt)
	case provider.Grok:
		return c.CallGrok(ctx, key, model, prompt)
	case provider.HuggingFace:
		return c.CallHuggingFace(ctx, key, sub, model, prompt)
	default:
		return fmt.Sprintf("Error: provider %q not supported.", providerID)
	}
}

// =============================================================================
// TRANSPORT HELPERS
// =============================================================================

// postJSON marshals body, issues one POST, and returns the status code
// plus the (size-limited) response body. Transport-level failures come
// back as an error; HTTP error statuses do not.
func (c *Client) postJSON(ctx context.Context, endpoint string, headers map[string]string, body any) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := readResponse(resp)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, respBody, nil
}

// getJSON issues one GET and decodes a 200 response into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// readResponse reads a response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == maxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", maxResponseSize)
	}
	return body, nil
}

// errorReply formats a non-success HTTP status as a transcript reply.
func errorReply(providerName string, status int, body []byte) string {
	return fmt.Sprintf("%s Error: %d %s\nResponse: %s",
		providerName, status, http.StatusText(status), string(body))
}

// exceptionReply formats a transport or parse failure as a transcript reply.
func exceptionReply(providerName string, err error) string {
	return fmt.Sprintf("%s Exception: %v", providerName, err)
}
