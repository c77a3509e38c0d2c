// Package imaging converts uploaded card images into the transport form sent
// to the inference service.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MIMEType is the media type of encoded images.
const MIMEType = "image/png"

// AllowedExtensions lists the upload file suffixes accepted by Decode.
var AllowedExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tif", ".tiff"}

// ErrUnsupportedFormat is returned by Decode for inputs no registered decoder accepts.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// EncodingError reports that an image could not be serialized to PNG.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode image as png: %v", e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Encode returns the standard base64 encoding of img's PNG byte stream.
func Encode(img image.Image) (string, error) {
	if img == nil {
		return "", &EncodingError{Err: errors.New("nil image")}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", &EncodingError{Err: err}
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DataURL wraps base64 PNG data in a data URL.
func DataURL(encoded string) string {
	return "data:" + MIMEType + ";base64," + encoded
}

// Decode reads an uploaded image. It returns the decoded image and the
// format name reported by the matching decoder (e.g. "jpeg").
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", ErrUnsupportedFormat
		}
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// AllowedFile reports whether filename has an accepted image suffix.
func AllowedFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
