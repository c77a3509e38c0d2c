package endpoints

import (
	"github.com/jackzampolin/cardscan/internal/api"
)

// DefaultMaxUploadBytes is used when Config.MaxUploadBytes is unset.
const DefaultMaxUploadBytes = 10 << 20

// Config holds dependencies needed by some endpoints.
type Config struct {
	// MaxUploadBytes caps the request body of image uploads.
	MaxUploadBytes int64
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},

		// Card endpoints
		&FieldsEndpoint{},
		&ScanEndpoint{MaxUploadBytes: cfg.MaxUploadBytes},
		&ExtractEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{},
		&SwaggerUIEndpoint{},

		// Browser pages
		&PageEndpoint{},
		&PageScanEndpoint{MaxUploadBytes: cfg.MaxUploadBytes},
		&StaticEndpoint{},
	}
}
