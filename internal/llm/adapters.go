package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/tildaslashalef/revjudge/internal/claude"
	"github.com/tildaslashalef/revjudge/internal/config"
	"github.com/tildaslashalef/revjudge/internal/openai"
)

// openaiClientAdapter adapts the OpenAI client to the LLM Client interface
type openaiClientAdapter struct {
	client  *openai.Client
	config  *config.Config
	limiter *rate.Limiter
}

// newOpenAIClientAdapter creates a new OpenAI client adapter
func newOpenAIClientAdapter(client *openai.Client, cfg *config.Config, limiter *rate.Limiter) *openaiClientAdapter {
	return &openaiClientAdapter{
		client:  client,
		config:  cfg,
		limiter: limiter,
	}
}

// GenerateChat implements the Client interface for OpenAI
func (a *openaiClientAdapter) GenerateChat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	// Wait for rate limiter
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	openaiReq := openai.ChatRequest{
		Model:    req.Model,
		Messages: convertMessagesToOpenAI(req.Messages),
	}

	if req.MaxTokens > 0 {
		openaiReq.MaxTokens = req.MaxTokens
	}
	if req.Temperature > 0 {
		temp := req.Temperature
		openaiReq.Temperature = &temp
	}

	resp, err := a.client.GenerateChat(ctx, openaiReq)
	if err != nil {
		return nil, fmt.Errorf("openai chat generation failed: %w", err)
	}

	return &ChatResponse{
		Content:   resp.Text(),
		Model:     resp.Model,
		Completed: true,
	}, nil
}

// convertMessagesToOpenAI converts generic messages to OpenAI format
func convertMessagesToOpenAI(messages []Message) []openai.Message {
	result := make([]openai.Message, len(messages))
	for i, msg := range messages {
		result[i] = openai.Message{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}
	return result
}

// claudeClientAdapter adapts the Claude client to the LLM Client interface
type claudeClientAdapter struct {
	client  *claude.Client
	config  *config.Config
	limiter *rate.Limiter
}

// newClaudeClientAdapter creates a new Claude client adapter
func newClaudeClientAdapter(client *claude.Client, cfg *config.Config, limiter *rate.Limiter) *claudeClientAdapter {
	return &claudeClientAdapter{
		client:  client,
		config:  cfg,
		limiter: limiter,
	}
}

// GenerateChat implements the Client interface for Claude
func (a *claudeClientAdapter) GenerateChat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	// Wait for rate limiter
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	// Claude takes system instructions outside the messages array
	var claudeMessages []claude.Message
	var systemMessage string

	for _, msg := range req.Messages {
		if msg.Role == "system" {
			systemMessage = msg.Content
		} else {
			claudeMessages = append(claudeMessages, claude.Message{
				Role:    msg.Role,
				Content: msg.Content,
			})
		}
	}

	claudeReq := claude.ChatRequest{
		Model:    req.Model,
		Messages: claudeMessages,
		System:   systemMessage,
	}

	if req.MaxTokens > 0 {
		claudeReq.MaxTokens = req.MaxTokens
	}
	if req.Temperature > 0 {
		temp := req.Temperature
		claudeReq.Temperature = &temp
	}

	resp, err := a.client.GenerateChat(ctx, claudeReq)
	if err != nil {
		return nil, fmt.Errorf("claude chat generation failed: %w", err)
	}

	return &ChatResponse{
		Content:   resp.Text(),
		Model:     resp.Model,
		Completed: true,
		Error:     resp.ErrorMsg,
	}, nil
}
