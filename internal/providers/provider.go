package providers

import (
	"context"
	"time"
)

// VisionClient sends a chat completion request that may carry images.
type VisionClient interface {
	// Chat sends a chat completion request and returns the model's text.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error)

	// HealthCheck verifies the service is reachable with the configured credentials.
	HealthCheck(ctx context.Context) error

	// Name returns the client identifier (e.g., "openai").
	Name() string
}

// Message represents a chat message.
type Message struct {
	Role      string   `json:"role"` // "system", "user", "assistant"
	Content   string   `json:"content"`
	ImageURLs []string `json:"-"` // data: or https: URLs, user messages only
}

// ChatRequest is a request to a vision model.
type ChatRequest struct {
	Messages []Message `json:"messages"`

	// Model selection (uses client default if empty)
	Model string `json:"model,omitempty"`

	// Temperature is always sent, so the zero value requests deterministic sampling.
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens,omitempty"`

	RequestID string `json:"-"`
}

// ChatResult is the complete response from a model call.
type ChatResult struct {
	Content string `json:"content"`

	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`

	ExecutionTime time.Duration `json:"execution_time"`

	Provider     string `json:"provider"`
	ModelUsed    string `json:"model_used"`
	RequestID    string `json:"request_id"`
	FinishReason string `json:"finish_reason,omitempty"`
}
