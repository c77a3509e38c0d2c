// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/jackzampolin/cardscan/internal/card"
	"github.com/jackzampolin/cardscan/internal/config"
	"github.com/jackzampolin/cardscan/internal/scanner"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	// Scanner is nil when no vision client could be configured.
	Scanner *scanner.Service
	Config  *config.Config
	Logger  *slog.Logger
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// ScannerFrom extracts the scanner service from context.
func ScannerFrom(ctx context.Context) *scanner.Service {
	if s := ServicesFrom(ctx); s != nil {
		return s.Scanner
	}
	return nil
}

// ConfigFrom extracts the loaded configuration from context.
func ConfigFrom(ctx context.Context) *config.Config {
	if s := ServicesFrom(ctx); s != nil {
		return s.Config
	}
	return nil
}

// LoggerFrom extracts the logger from context, falling back to slog.Default.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil && s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// StrategyFrom returns the extraction strategy in effect for this request.
// The scanner's strategy wins; without a scanner the configured one is used.
func StrategyFrom(ctx context.Context) card.Strategy {
	if sc := ScannerFrom(ctx); sc != nil {
		return sc.Strategy()
	}
	if cfg := ConfigFrom(ctx); cfg != nil {
		if s, err := cfg.Strategy(); err == nil {
			return s
		}
	}
	return card.StrategyGreedy
}
