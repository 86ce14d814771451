// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

// Wire shapes per vendor. Only the fields the adapters touch are modeled;
// everything else in the vendor responses is ignored on decode.

// =============================================================================
// OPENAI-STYLE (OpenAI, Grok, Hugging Face router)
// =============================================================================

// chatMessage is one message in an OpenAI-style conversation body.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openAIRequest is the chat-completions request body.
type openAIRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// grokRequest extends the OpenAI shape with the fields Grok expects.
type grokRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	Temperature float64       `json:"temperature"`
}

// openAIResponse carries the reply at choices[0].message.content.
type openAIResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// =============================================================================
// GEMINI
// =============================================================================

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

// geminiRequest is the generateContent request body.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

// geminiResponse carries the reply at candidates[0].content.parts[0].text.
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// geminiModelList is the model listing response.
type geminiModelList struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// =============================================================================
// ANTHROPIC
// =============================================================================

// anthropicVersion is the required API version header value.
const anthropicVersion = "2023-06-01"

// anthropicRequest is the messages request body.
type anthropicRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

// anthropicResponse carries the reply at content[0].text.
type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// anthropicModelList is the model listing response.
type anthropicModelList struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}
