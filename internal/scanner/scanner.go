// Package scanner runs one business card scan: encode the image, call the
// vision model, and recover a card record from its answer.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/cardscan/internal/card"
	"github.com/jackzampolin/cardscan/internal/imaging"
	"github.com/jackzampolin/cardscan/internal/providers"
)

// Config holds scanner dependencies.
type Config struct {
	// Client performs the inference call. Required.
	Client providers.VisionClient
	// Model overrides the client's default model when set.
	Model string
	// Strategy selects the JSON span search (default: greedy).
	Strategy card.Strategy
	// Logger is the structured logger to use.
	Logger *slog.Logger
}

// Service scans business card images. It holds no per-scan state and is safe
// for concurrent use.
type Service struct {
	client   providers.VisionClient
	model    string
	strategy card.Strategy
	logger   *slog.Logger
}

// Usage reports token counts for the inference call.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens" yaml:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens" yaml:"completion_tokens"`
	TotalTokens      int `json:"total_tokens" yaml:"total_tokens"`
}

// Result is the outcome of a single scan.
type Result struct {
	ID string `json:"id" yaml:"id"`
	// Fields has exactly the ten canonical keys, missing ones as "".
	Fields card.Record `json:"fields" yaml:"fields"`
	// Extracted is the extractor output unchanged: possibly partial, possibly with extra keys.
	Extracted card.Record `json:"extracted" yaml:"extracted"`
	Missing   []string    `json:"missing,omitempty" yaml:"missing,omitempty"`
	Warnings  []string    `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	Model    string        `json:"model" yaml:"model"`
	Usage    Usage         `json:"usage" yaml:"usage"`
	Duration time.Duration `json:"duration_ns" yaml:"duration_ns"`

	// RawText is the unmodified model output.
	RawText string `json:"raw_text,omitempty" yaml:"raw_text,omitempty"`
}

// New creates a scanner service.
func New(cfg Config) (*Service, error) {
	if cfg.Client == nil {
		return nil, errors.New("scanner: vision client is required")
	}
	if cfg.Strategy == "" {
		cfg.Strategy = card.StrategyGreedy
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Service{
		client:   cfg.Client,
		model:    cfg.Model,
		strategy: cfg.Strategy,
		logger:   cfg.Logger,
	}, nil
}

// Client returns the underlying vision client.
func (s *Service) Client() providers.VisionClient {
	return s.client
}

// Strategy returns the configured extraction strategy.
func (s *Service) Strategy() card.Strategy {
	return s.strategy
}

// Extract runs only the response extractor on raw model output.
func (s *Service) Extract(raw string) card.Record {
	return s.strategy.Extract(raw)
}

// ScanReader decodes an uploaded image and scans it.
func (s *Service) ScanReader(ctx context.Context, r io.Reader) (*Result, error) {
	img, format, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	s.logger.Debug("decoded upload", "format", format, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return s.Scan(ctx, img)
}

// Scan runs encode, inference, and extraction for img.
//
// Errors are *imaging.EncodingError, *ServiceError, or ErrNoFields. With
// ErrNoFields the partially filled Result (raw model text, usage) is returned
// alongside the error for diagnostics.
func (s *Service) Scan(ctx context.Context, img image.Image) (*Result, error) {
	start := time.Now()
	scanID := uuid.New().String()
	logger := s.logger.With("scan_id", scanID)

	encoded, err := imaging.Encode(img)
	if err != nil {
		logger.Error("image encoding failed", "error", err)
		return nil, err
	}

	req := &providers.ChatRequest{
		Model:       s.model,
		Temperature: 0,
		RequestID:   scanID,
		Messages: []providers.Message{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: UserPrompt, ImageURLs: []string{imaging.DataURL(encoded)}},
		},
	}

	logger.Info("calling vision model", "provider", s.client.Name(), "image_b64_bytes", len(encoded))
	resp, err := s.client.Chat(ctx, req)
	if err != nil {
		logger.Error("inference call failed", "provider", s.client.Name(), "error", err)
		return nil, &ServiceError{Provider: s.client.Name(), Err: err}
	}
	logger.Debug("model response", "content", resp.Content)

	extracted, drift := s.strategy.Analyze(resp.Content)

	result := &Result{
		ID:        scanID,
		Extracted: extracted,
		Fields:    card.Display(extracted),
		Missing:   card.Missing(extracted),
		Model:     resp.ModelUsed,
		Usage: Usage{
			PromptTokens:     resp.PromptTokens,
			CompletionTokens: resp.CompletionTokens,
			TotalTokens:      resp.TotalTokens,
		},
		RawText:  resp.Content,
		Duration: time.Since(start),
	}

	if extracted.Empty() {
		logger.Warn("no fields extracted", "strategy", s.strategy, "response_chars", len(resp.Content))
		return result, ErrNoFields
	}

	if len(drift) > 0 {
		result.Warnings = drift
		logger.Warn("model output deviates from card schema", "warnings", drift, "extra_fields", card.Extra(extracted))
	}

	logger.Info("scan complete",
		"fields", len(extracted),
		"missing", len(result.Missing),
		"model", result.Model,
		"total_tokens", result.Usage.TotalTokens,
		"duration", result.Duration,
	)
	return result, nil
}
