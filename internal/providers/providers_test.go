package providers

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMockClient(t *testing.T) {
	t.Run("chat", func(t *testing.T) {
		c := NewMockClient()
		c.ResponseText = "hello world"

		result, err := c.Chat(context.Background(), &ChatRequest{
			Model: "test-model",
			Messages: []Message{
				{Role: "user", Content: "test"},
			},
		})
		if err != nil {
			t.Fatalf("Chat() error = %v", err)
		}
		if result.Content != "hello world" {
			t.Errorf("Content = %q, want %q", result.Content, "hello world")
		}
		if result.ModelUsed != "test-model" {
			t.Errorf("ModelUsed = %q, want test-model", result.ModelUsed)
		}
		if c.RequestCount() != 1 {
			t.Errorf("RequestCount = %d, want 1", c.RequestCount())
		}
		if c.LastRequest() == nil || c.LastRequest().Messages[0].Content != "test" {
			t.Error("LastRequest not recorded")
		}
	})

	t.Run("default response is a card", func(t *testing.T) {
		c := NewMockClient()
		result, err := c.Chat(context.Background(), &ChatRequest{Messages: []Message{{Role: "user"}}})
		if err != nil {
			t.Fatalf("Chat() error = %v", err)
		}
		if result.Content != MockResponse {
			t.Errorf("unexpected default content: %q", result.Content)
		}
	})

	t.Run("configured failure", func(t *testing.T) {
		c := NewMockClient()
		c.ShouldFail = true

		_, err := c.Chat(context.Background(), &ChatRequest{})
		if !errors.Is(err, ErrMockFailure) {
			t.Fatalf("expected ErrMockFailure, got %v", err)
		}
	})

	t.Run("custom error", func(t *testing.T) {
		c := NewMockClient()
		c.ShouldFail = true
		c.Err = &RateLimitError{Message: "slow down", StatusCode: 429}

		_, err := c.Chat(context.Background(), &ChatRequest{})
		if _, ok := IsRateLimitError(err); !ok {
			t.Fatalf("expected RateLimitError, got %v", err)
		}
	})

	t.Run("context cancellation", func(t *testing.T) {
		c := NewMockClient()
		c.Latency = time.Second

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.Chat(ctx, &ChatRequest{Messages: []Message{{Role: "user"}}})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("health", func(t *testing.T) {
		c := NewMockClient()
		if err := c.HealthCheck(context.Background()); err != nil {
			t.Fatalf("HealthCheck() error = %v", err)
		}
		c.Unhealthy = true
		if err := c.HealthCheck(context.Background()); err == nil {
			t.Fatal("expected unhealthy error")
		}
	})
}
