// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Sweep configuration constants.
const (
	// DefaultHubURL is the base URL of the Hugging Face Hub API.
	DefaultHubURL = "https://huggingface.co"

	// pageLimit is the number of candidate models requested from the
	// listing endpoint.
	pageLimit = 50

	// pipelineTag filters candidates to the chat-capable catalog slice.
	pipelineTag = "text-generation"

	// DefaultPace is the fixed delay between per-model metadata requests,
	// respecting the Hub's implicit rate limits.
	DefaultPace = 500 * time.Millisecond

	// maxResponseSize caps catalog response bodies.
	maxResponseSize = 10 * 1024 * 1024
)

// Sweeper performs one complete discovery pass: list candidate models,
// resolve each model's serving sub-providers, and return every
// (sub-provider, model) combination in first-seen order.
type Sweeper struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSweeper creates a sweeper against the public Hub API.
func NewSweeper() *Sweeper {
	return &Sweeper{
		baseURL:    DefaultHubURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(DefaultPace), 1),
	}
}

// WithBaseURL points the sweeper at a different Hub endpoint.
func (sw *Sweeper) WithBaseURL(base string) *Sweeper {
	sw.baseURL = base
	return sw
}

// WithPace overrides the inter-request delay for metadata lookups.
func (sw *Sweeper) WithPace(pace time.Duration) *Sweeper {
	sw.limiter = rate.NewLimiter(rate.Every(pace), 1)
	return sw
}

// WithHTTPClient overrides the HTTP client.
func (sw *Sweeper) WithHTTPClient(c *http.Client) *Sweeper {
	sw.httpClient = c
	return sw
}

// listedModel is one entry of the catalog listing response.
type listedModel struct {
	ID string `json:"id"`
}

// Sweep runs one full discovery pass. Any network or decode failure
// aborts the sweep with an error and no partial result; the caller only
// persists on success.
func (sw *Sweeper) Sweep(ctx context.Context) ([]Pair, error) {
	models, err := sw.listModels(ctx)
	if err != nil {
		return nil, err
	}

	// Non-nil even when nothing is discovered: an empty catalog is a
	// valid sweep result, distinct from "no sweep has landed".
	pairs := make([]Pair, 0, len(models))
	for _, m := range models {
		// Fixed pacing between metadata requests.
		if err := sw.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		providers, err := sw.modelProviders(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range providers {
			pairs = append(pairs, Pair{Provider: p, Model: m.ID})
		}
	}
	return pairs, nil
}

// listModels requests one page of candidate model identifiers filtered to
// the target capability tag.
func (sw *Sweeper) listModels(ctx context.Context) ([]listedModel, error) {
	q := url.Values{}
	q.Set("inference_provider", "all")
	q.Set("pipeline_tag", pipelineTag)
	q.Set("limit", fmt.Sprintf("%d", pageLimit))

	body, err := sw.get(ctx, sw.baseURL+"/api/models?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("catalog listing failed: %w", err)
	}

	var models []listedModel
	if err := json.Unmarshal(body, &models); err != nil {
		return nil, fmt.Errorf("failed to decode catalog listing: %w", err)
	}
	return models, nil
}

// modelProviders fetches one model's metadata and extracts the serving
// sub-providers from its inference provider mapping, preserving the
// document order of the response.
func (sw *Sweeper) modelProviders(ctx context.Context, modelID string) ([]string, error) {
	endpoint := sw.baseURL + "/api/models/" + modelID + "?expand=inferenceProviderMapping"
	body, err := sw.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("metadata for %s failed: %w", modelID, err)
	}

	var meta struct {
		InferenceProviderMapping json.RawMessage `json:"inferenceProviderMapping"`
	}
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode metadata for %s: %w", modelID, err)
	}
	if len(meta.InferenceProviderMapping) == 0 {
		return nil, nil
	}
	return mappingProviders(meta.InferenceProviderMapping)
}

// mappingProviders extracts sub-provider names from the mapping field in
// document order. The Hub has served the mapping both as an object keyed
// by provider and as an array of {provider: ...} entries; both shapes are
// normalized to an ordered name list. encoding/json map decoding would
// destroy the order, so the object form walks the token stream instead.
func mappingProviders(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to decode provider mapping: %w", err)
	}

	switch delim := tok.(type) {
	case json.Delim:
		switch delim {
		case '{':
			return objectKeys(dec)
		case '[':
			return arrayProviders(dec)
		}
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("unexpected provider mapping shape")
}

// objectKeys walks {"provider": {...}, ...} and returns keys in order.
func objectKeys(dec *json.Decoder) ([]string, error) {
	var providers []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to decode provider mapping: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected provider mapping key %v", tok)
		}
		providers = append(providers, key)

		// Skip the per-provider detail value.
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, fmt.Errorf("failed to decode provider mapping: %w", err)
		}
	}
	return providers, nil
}

// arrayProviders walks [{"provider": "..."}, ...] in order.
func arrayProviders(dec *json.Decoder) ([]string, error) {
	var providers []string
	for dec.More() {
		var entry struct {
			Provider string `json:"provider"`
		}
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("failed to decode provider mapping entry: %w", err)
		}
		if entry.Provider != "" {
			providers = append(providers, entry.Provider)
		}
	}
	return providers, nil
}

// get issues one GET request and returns the body of a 200 response.
func (sw *Sweeper) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "hydra/0.1")

	resp, err := sw.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
