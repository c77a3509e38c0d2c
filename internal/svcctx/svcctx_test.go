package svcctx

import (
	"context"
	"testing"

	"github.com/jackzampolin/cardscan/internal/card"
	"github.com/jackzampolin/cardscan/internal/config"
	"github.com/jackzampolin/cardscan/internal/providers"
	"github.com/jackzampolin/cardscan/internal/scanner"
)

func TestExtractors_Empty(t *testing.T) {
	ctx := context.Background()

	if ServicesFrom(ctx) != nil {
		t.Error("expected nil services")
	}
	if ScannerFrom(ctx) != nil {
		t.Error("expected nil scanner")
	}
	if ConfigFrom(ctx) != nil {
		t.Error("expected nil config")
	}
	if LoggerFrom(ctx) == nil {
		t.Error("expected default logger")
	}
	if StrategyFrom(ctx) != card.StrategyGreedy {
		t.Error("expected greedy fallback")
	}
}

func TestStrategyFrom(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Extractor.Strategy = "balanced"

	t.Run("from config without scanner", func(t *testing.T) {
		ctx := WithServices(context.Background(), &Services{Config: cfg})
		if got := StrategyFrom(ctx); got != card.StrategyBalanced {
			t.Errorf("StrategyFrom() = %q, want balanced", got)
		}
	})

	t.Run("scanner wins", func(t *testing.T) {
		sc, err := scanner.New(scanner.Config{Client: providers.NewMockClient(), Strategy: card.StrategyGreedy})
		if err != nil {
			t.Fatal(err)
		}
		ctx := WithServices(context.Background(), &Services{Config: cfg, Scanner: sc})
		if got := StrategyFrom(ctx); got != card.StrategyGreedy {
			t.Errorf("StrategyFrom() = %q, want greedy", got)
		}
		if ScannerFrom(ctx) != sc {
			t.Error("ScannerFrom returned a different scanner")
		}
	})
}
