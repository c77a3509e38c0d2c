package scanner

import (
	"errors"
	"fmt"

	"github.com/jackzampolin/cardscan/internal/imaging"
)

// FailureMessage is the single user-visible outcome for every scan failure.
const FailureMessage = "Extraction failed."

// ErrNoFields is returned when the model output yields an empty record, either
// because no JSON object was found or because it did not parse. It is
// indistinguishable from a model that legitimately found nothing.
var ErrNoFields = errors.New("no fields extracted from model output")

// ErrInvalidImage is returned when an upload cannot be decoded as an image.
var ErrInvalidImage = errors.New("invalid image")

// ServiceError reports that the inference call failed. Extraction is never
// attempted after a ServiceError.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("inference call to %s failed: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Kind classifies a scan error for logging and status codes.
type Kind string

const (
	KindNone     Kind = ""
	KindImage    Kind = "invalid_image"
	KindEncoding Kind = "encoding"
	KindService  Kind = "service"
	KindParse    Kind = "parse"
	KindUnknown  Kind = "unknown"
)

// KindOf classifies err.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var encErr *imaging.EncodingError
	var svcErr *ServiceError
	switch {
	case errors.Is(err, ErrInvalidImage):
		return KindImage
	case errors.As(err, &encErr):
		return KindEncoding
	case errors.As(err, &svcErr):
		return KindService
	case errors.Is(err, ErrNoFields):
		return KindParse
	default:
		return KindUnknown
	}
}

// UserMessage maps err to what the interface shows. Every failure during the
// scan itself collapses to FailureMessage; only an unreadable upload differs.
func UserMessage(err error) string {
	if KindOf(err) == KindImage {
		return "Could not read the uploaded image."
	}
	return FailureMessage
}
