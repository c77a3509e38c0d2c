package providers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const MockClientName = "mock"

// MockResponse is a canned business card answer used by NewMockClient.
const MockResponse = "```json\n" + `{
  "First Name": "Ada",
  "Last Name": "Lovelace",
  "Designation": "Analyst",
  "Company Name": "Analytical Engines Ltd",
  "Email": "ada@example.com",
  "Contact Number": "+44 20 7946 0000",
  "Fax Number": "",
  "Website": "example.com",
  "Address": "12 St James's Square, London",
  "Social Media Handle": "@ada"
}` + "\n```"

// ErrMockFailure is returned when a MockClient is configured to fail.
var ErrMockFailure = errors.New("mock client configured to fail")

// MockClient is a VisionClient for tests and offline runs.
type MockClient struct {
	// Configurable behavior
	Latency      time.Duration
	ShouldFail   bool
	Err          error // returned instead of ErrMockFailure when set
	ResponseText string
	Unhealthy    bool

	// State
	requestCount atomic.Int64
	mu           sync.Mutex
	lastRequest  *ChatRequest
}

// NewMockClient creates a new mock client answering with MockResponse.
func NewMockClient() *MockClient {
	return &MockClient{
		ResponseText: MockResponse,
	}
}

// Name returns the client identifier.
func (c *MockClient) Name() string {
	return MockClientName
}

// HealthCheck fails only when Unhealthy is set.
func (c *MockClient) HealthCheck(_ context.Context) error {
	if c.Unhealthy {
		return fmt.Errorf("mock client unhealthy")
	}
	return nil
}

// Chat records the request and returns the configured response.
func (c *MockClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	start := time.Now()
	count := c.requestCount.Add(1)

	c.mu.Lock()
	c.lastRequest = req
	c.mu.Unlock()

	if c.ShouldFail {
		if c.Err != nil {
			return nil, c.Err
		}
		return nil, ErrMockFailure
	}

	if c.Latency > 0 {
		select {
		case <-time.After(c.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	promptTokens := 0
	for _, m := range req.Messages {
		promptTokens += len(m.Content) / 4 // Rough estimate
	}
	completionTokens := len(c.ResponseText) / 4

	return &ChatResult{
		Content:          c.ResponseText,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
		ExecutionTime:    time.Since(start),
		Provider:         MockClientName,
		ModelUsed:        req.Model,
		RequestID:        fmt.Sprintf("mock-%d", count),
		FinishReason:     "stop",
	}, nil
}

// RequestCount returns the number of Chat calls made.
func (c *MockClient) RequestCount() int64 {
	return c.requestCount.Load()
}

// LastRequest returns the most recent request passed to Chat.
func (c *MockClient) LastRequest() *ChatRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRequest
}

var _ VisionClient = (*MockClient)(nil)
