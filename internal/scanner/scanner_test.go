package scanner

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/jackzampolin/cardscan/internal/card"
	"github.com/jackzampolin/cardscan/internal/imaging"
	"github.com/jackzampolin/cardscan/internal/providers"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for i := 0; i < 8; i++ {
		img.Set(i, i%4, color.NRGBA{R: 200, G: uint8(i * 20), B: 10, A: 255})
	}
	return img
}

func newTestService(t *testing.T, client providers.VisionClient, strategy card.Strategy) *Service {
	t.Helper()
	svc, err := New(Config{Client: client, Strategy: strategy, Logger: testLogger()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return svc
}

func TestNew(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error without client")
	}

	svc, err := New(Config{Client: providers.NewMockClient()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if svc.Strategy() != card.StrategyGreedy {
		t.Errorf("default strategy = %q, want greedy", svc.Strategy())
	}
}

func TestScan_Success(t *testing.T) {
	client := providers.NewMockClient()
	svc := newTestService(t, client, "")

	img := testImage()
	result, err := svc.Scan(context.Background(), img)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if result.ID == "" {
		t.Error("expected scan ID")
	}
	if result.Fields[card.FirstName] != "Ada" || result.Fields[card.LastName] != "Lovelace" {
		t.Errorf("unexpected fields: %v", result.Fields)
	}
	if len(result.Fields) != len(card.Fields) {
		t.Errorf("display record has %d keys, want %d", len(result.Fields), len(card.Fields))
	}
	if len(result.Missing) != 0 {
		t.Errorf("expected no missing fields, got %v", result.Missing)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
	if result.RawText != providers.MockResponse {
		t.Error("raw model text not preserved")
	}

	req := client.LastRequest()
	if req == nil {
		t.Fatal("client was not called")
	}
	if req.Temperature != 0 {
		t.Errorf("temperature = %v, want 0", req.Temperature)
	}
	if len(req.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(req.Messages))
	}
	if req.Messages[0].Role != "system" || req.Messages[0].Content != SystemPrompt {
		t.Error("first message must be the fixed system prompt")
	}
	user := req.Messages[1]
	if user.Role != "user" || user.Content != UserPrompt {
		t.Errorf("unexpected user message: %+v", user)
	}
	if len(user.ImageURLs) != 1 {
		t.Fatalf("expected one image, got %d", len(user.ImageURLs))
	}

	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(user.ImageURLs[0], prefix) {
		t.Fatalf("image is not a png data URL: %.40s", user.ImageURLs[0])
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(user.ImageURLs[0], prefix))
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("invalid png: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}
}

func TestScan_PartialAndExtraFields(t *testing.T) {
	client := providers.NewMockClient()
	client.ResponseText = `Sure! {"Email": "a@b.com", "Contact Number": 5551234, "Nickname": "Ace"}`
	svc := newTestService(t, client, "")

	result, err := svc.Scan(context.Background(), testImage())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if result.Extracted["Nickname"] != "Ace" {
		t.Error("extractor output must keep unexpected keys")
	}
	if _, ok := result.Fields["Nickname"]; ok {
		t.Error("display record must not carry unexpected keys")
	}
	if result.Fields[card.ContactNumber] != "5551234" {
		t.Errorf("Contact Number = %q", result.Fields[card.ContactNumber])
	}
	if result.Fields[card.FirstName] != "" {
		t.Errorf("First Name = %q, want empty", result.Fields[card.FirstName])
	}
	if len(result.Missing) != 8 {
		t.Errorf("expected 8 missing fields, got %d: %v", len(result.Missing), result.Missing)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected schema drift warning for unknown key")
	}
}

func TestScan_NonStringValuesWarn(t *testing.T) {
	client := providers.NewMockClient()
	client.ResponseText = `{"First Name": "Ada", "Contact Number": 971501234567}`
	svc := newTestService(t, client, "")

	result, err := svc.Scan(context.Background(), testImage())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if result.Fields[card.ContactNumber] != "971501234567" {
		t.Errorf("Contact Number = %q", result.Fields[card.ContactNumber])
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], card.ContactNumber) {
		t.Errorf("expected one warning for Contact Number, got %v", result.Warnings)
	}
}

func TestScan_ServiceError(t *testing.T) {
	client := providers.NewMockClient()
	client.ShouldFail = true
	svc := newTestService(t, client, "")

	result, err := svc.Scan(context.Background(), testImage())
	if result != nil {
		t.Error("expected nil result on service error")
	}

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %T: %v", err, err)
	}
	if svcErr.Provider != providers.MockClientName {
		t.Errorf("Provider = %q", svcErr.Provider)
	}
	if !errors.Is(err, providers.ErrMockFailure) {
		t.Error("ServiceError should wrap the client error")
	}
	if KindOf(err) != KindService {
		t.Errorf("KindOf() = %q, want %q", KindOf(err), KindService)
	}
	if UserMessage(err) != FailureMessage {
		t.Errorf("UserMessage() = %q", UserMessage(err))
	}
	if client.RequestCount() != 1 {
		t.Errorf("expected exactly one call, got %d", client.RequestCount())
	}
}

func TestScan_NoFields(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"prose only", "I'm sorry, the image is too blurry to read."},
		{"malformed json", `{"Email": "a@b.com",}`},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := providers.NewMockClient()
			client.ResponseText = tt.response
			svc := newTestService(t, client, "")

			result, err := svc.Scan(context.Background(), testImage())
			if !errors.Is(err, ErrNoFields) {
				t.Fatalf("expected ErrNoFields, got %v", err)
			}
			if KindOf(err) != KindParse {
				t.Errorf("KindOf() = %q, want %q", KindOf(err), KindParse)
			}
			if UserMessage(err) != FailureMessage {
				t.Errorf("UserMessage() = %q", UserMessage(err))
			}
			if result == nil || result.RawText != tt.response {
				t.Error("expected diagnostic result with raw text")
			}
		})
	}
}

func TestScan_EncodingError(t *testing.T) {
	client := providers.NewMockClient()
	svc := newTestService(t, client, "")

	_, err := svc.Scan(context.Background(), image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	var encErr *imaging.EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected EncodingError, got %T: %v", err, err)
	}
	if KindOf(err) != KindEncoding {
		t.Errorf("KindOf() = %q", KindOf(err))
	}
	if UserMessage(err) != FailureMessage {
		t.Errorf("UserMessage() = %q", UserMessage(err))
	}
	if client.RequestCount() != 0 {
		t.Error("inference must not be called when encoding fails")
	}
}

func TestScan_BalancedStrategy(t *testing.T) {
	client := providers.NewMockClient()
	client.ResponseText = `{"Email": "a@b.com"} (fields not found: {none})`

	greedy := newTestService(t, client, card.StrategyGreedy)
	if _, err := greedy.Scan(context.Background(), testImage()); !errors.Is(err, ErrNoFields) {
		t.Fatalf("greedy: expected ErrNoFields, got %v", err)
	}

	balanced := newTestService(t, client, card.StrategyBalanced)
	result, err := balanced.Scan(context.Background(), testImage())
	if err != nil {
		t.Fatalf("balanced: Scan() error = %v", err)
	}
	if result.Fields[card.Email] != "a@b.com" {
		t.Errorf("Email = %q", result.Fields[card.Email])
	}
}

func TestScanReader(t *testing.T) {
	svc := newTestService(t, providers.NewMockClient(), "")

	t.Run("png upload", func(t *testing.T) {
		var buf bytes.Buffer
		if err := png.Encode(&buf, testImage()); err != nil {
			t.Fatalf("png.Encode: %v", err)
		}
		if _, err := svc.ScanReader(context.Background(), &buf); err != nil {
			t.Fatalf("ScanReader() error = %v", err)
		}
	})

	t.Run("not an image", func(t *testing.T) {
		_, err := svc.ScanReader(context.Background(), strings.NewReader("hello"))
		if !errors.Is(err, ErrInvalidImage) {
			t.Fatalf("expected ErrInvalidImage, got %v", err)
		}
		if UserMessage(err) == FailureMessage {
			t.Error("invalid upload should have its own message")
		}
	})
}

func TestSystemPrompt(t *testing.T) {
	for _, f := range card.Fields {
		if !strings.Contains(SystemPrompt, `"`+f+`": ""`) {
			t.Errorf("system prompt missing field %q", f)
		}
	}
	if !strings.Contains(SystemPrompt, "English, Arabic, or both") {
		t.Error("system prompt must mention the card languages")
	}
	if !strings.Contains(SystemPrompt, "Return ONLY valid JSON") {
		t.Error("system prompt must demand JSON only")
	}
}

func TestExtract(t *testing.T) {
	svc := newTestService(t, providers.NewMockClient(), "")
	got := svc.Extract("```json\n{\"Website\": \"example.com\"}\n```")
	if got[card.Website] != "example.com" || len(got) != 1 {
		t.Errorf("Extract() = %v", got)
	}
}
