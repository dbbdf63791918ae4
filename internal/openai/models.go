package openai

import (
	"fmt"
)

// Message represents a chat message
type Message struct {
	Role    string `json:"role"` // system, user, or assistant
	Content string `json:"content"`
}

// ChatRequest represents a chat completion request to the OpenAI API
type ChatRequest struct {
	Model       string    `json:"model"`                 // Model to use (e.g., "gpt-4o")
	Messages    []Message `json:"messages"`              // Chat history messages
	MaxTokens   int       `json:"max_tokens,omitempty"`  // Maximum tokens to generate
	Temperature *float64  `json:"temperature,omitempty"` // Controls randomness
	TopP        *float64  `json:"top_p,omitempty"`       // Nucleus sampling parameter
	Stream      bool      `json:"stream,omitempty"`      // Whether to stream the response
	Stop        []string  `json:"stop,omitempty"`        // Sequences that cause generation to stop
}

// Choice represents a single completion choice in a response
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// ChatResponse represents a response from the chat completions endpoint
type ChatResponse struct {
	ID      string     `json:"id,omitempty"`      // Response ID
	Object  string     `json:"object,omitempty"`  // Object type
	Created int64      `json:"created,omitempty"` // Creation timestamp
	Model   string     `json:"model,omitempty"`   // Model used
	Choices []Choice   `json:"choices,omitempty"` // Completion choices
	Usage   *UsageInfo `json:"usage,omitempty"`   // Token usage information
}

// UsageInfo contains token usage information for a request
type UsageInfo struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// APIError represents an error response from the OpenAI API
type APIError struct {
	ErrorDetails struct {
		Message string `json:"message"` // Error message
		Type    string `json:"type"`    // Error type
		Code    string `json:"code"`    // Error code
	} `json:"error"`
}

// Error implements the error interface for APIError
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorDetails.Type, e.ErrorDetails.Message)
}
