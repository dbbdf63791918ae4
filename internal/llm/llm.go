// Package llm provides a provider-agnostic interface to LLM chat APIs
package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/tildaslashalef/revjudge/internal/claude"
	"github.com/tildaslashalef/revjudge/internal/config"
	"github.com/tildaslashalef/revjudge/internal/loggy"
	"github.com/tildaslashalef/revjudge/internal/openai"
)

// ChatRequest represents a generic chat request to any LLM
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// Message represents a chat message with role and content
type Message struct {
	Role    string `json:"role"` // user, assistant, or system
	Content string `json:"content"`
}

// ChatResponse represents a response from a chat request
type ChatResponse struct {
	Content   string `json:"content"`
	Model     string `json:"model"`
	Completed bool   `json:"completed"`
	Error     string `json:"error,omitempty"`
}

// Client defines the interface for LLM clients
type Client interface {
	// GenerateChat sends a non-streaming chat request
	GenerateChat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ClientType defines the type of LLM client
type ClientType string

const (
	// OpenAI client type
	OpenAI ClientType = "openai"

	// Claude client type
	Claude ClientType = "claude"
)

// Factory creates and returns LLM clients
type Factory struct {
	config *config.Config
	openai *openai.Client
	claude *claude.Client
	logger *loggy.Logger

	openaiLimiter *rate.Limiter
	claudeLimiter *rate.Limiter
}

// newLimiter creates a rate limiter from RPM and burst
func newLimiter(rpm, burst int) *rate.Limiter {
	if rpm <= 0 {
		// If RPM is zero or negative, allow infinite rate (no limiting)
		return rate.NewLimiter(rate.Inf, burst)
	}
	r := rate.Limit(float64(rpm) / 60.0)
	b := burst
	if b <= 0 {
		b = 1
	}
	return rate.NewLimiter(r, b)
}

// NewFactory creates a new LLM client factory
func NewFactory(cfg *config.Config, logger *loggy.Logger) *Factory {
	f := &Factory{
		config: cfg,
		logger: logger,
	}

	if cfg.OpenAI.APIKey != "" {
		f.openai = openai.NewClient(cfg.OpenAI)
		f.openaiLimiter = newLimiter(cfg.OpenAI.RequestsPerMinute, cfg.OpenAI.BurstLimit)
		loggy.Info("initialized OpenAI client", "base_url", cfg.OpenAI.BaseURL, "model", cfg.OpenAI.Model, "rpm", cfg.OpenAI.RequestsPerMinute, "burst", cfg.OpenAI.BurstLimit)
	}

	if cfg.Claude.APIKey != "" {
		f.claude = claude.NewClient(cfg.Claude)
		f.claudeLimiter = newLimiter(cfg.Claude.RequestsPerMinute, cfg.Claude.BurstLimit)
		loggy.Info("initialized Claude client", "base_url", cfg.Claude.BaseURL, "model", cfg.Claude.Model, "rpm", cfg.Claude.RequestsPerMinute, "burst", cfg.Claude.BurstLimit)
	}

	return f
}

// GetClient returns an LLM client of the specified type
func (f *Factory) GetClient(clientType ClientType) (Client, error) {
	switch clientType {
	case OpenAI:
		if f.openai == nil {
			return nil, fmt.Errorf("OpenAI client not initialized - check configuration")
		}
		return newOpenAIClientAdapter(f.openai, f.config, f.openaiLimiter), nil

	case Claude:
		if f.claude == nil {
			return nil, fmt.Errorf("Claude client not initialized - check configuration")
		}
		return newClaudeClientAdapter(f.claude, f.config, f.claudeLimiter), nil

	default:
		return nil, fmt.Errorf("unknown client type: %s", clientType)
	}
}

// GetDefaultClient returns the default client based on configuration
func (f *Factory) GetDefaultClient() (Client, ClientType, error) {
	defaultType := f.config.DefaultLLMProvider

	client, err := f.GetClient(ClientType(defaultType))
	if err == nil {
		return client, ClientType(defaultType), nil
	}

	// Fallback to first available client
	f.logger.Warn("Default LLM provider not available, falling back", "default", defaultType, "error", err)

	if f.openai != nil {
		return newOpenAIClientAdapter(f.openai, f.config, f.openaiLimiter), OpenAI, nil
	}
	if f.claude != nil {
		return newClaudeClientAdapter(f.claude, f.config, f.claudeLimiter), Claude, nil
	}

	return nil, "", fmt.Errorf("no LLM clients initialized - check configuration")
}

// DefaultModel returns the configured model for the given provider
func (f *Factory) DefaultModel(clientType ClientType) string {
	switch clientType {
	case OpenAI:
		return f.config.OpenAI.Model
	case Claude:
		return f.config.Claude.Model
	default:
		return ""
	}
}

// GenerateChat generates a chat response from the default LLM provider
func (f *Factory) GenerateChat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	f.logger.Debug("Generating chat using default provider")

	client, clientType, err := f.GetDefaultClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get default LLM client: %w", err)
	}

	if req.Model == "" {
		req.Model = f.DefaultModel(clientType)
	}

	return client.GenerateChat(ctx, req)
}
