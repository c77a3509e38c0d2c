package endpoints

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jackzampolin/cardscan/internal/imaging"
)

// UploadField is the multipart form field carrying the card image.
const UploadField = "file"

// upload is an image file read fully into memory.
type upload struct {
	Name string
	Data []byte
}

// uploadError carries the HTTP status for a rejected upload.
type uploadError struct {
	Status int
	Msg    string
}

func (e *uploadError) Error() string { return e.Msg }

// readUpload reads the image from the multipart request, bounded by maxBytes.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (*upload, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &uploadError{
				Status: http.StatusRequestEntityTooLarge,
				Msg:    fmt.Sprintf("upload exceeds %d MB limit", maxBytes>>20),
			}
		}
		return nil, &uploadError{Status: http.StatusBadRequest, Msg: fmt.Sprintf("failed to parse form: %v", err)}
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(UploadField)
	if err != nil {
		return nil, &uploadError{Status: http.StatusBadRequest, Msg: "no file uploaded"}
	}
	defer file.Close()

	if !imaging.AllowedFile(header.Filename) {
		return nil, &uploadError{
			Status: http.StatusBadRequest,
			Msg:    fmt.Sprintf("file %s is not a supported image type", header.Filename),
		}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &uploadError{Status: http.StatusBadRequest, Msg: fmt.Sprintf("failed to read upload: %v", err)}
	}
	if len(data) == 0 {
		return nil, &uploadError{Status: http.StatusBadRequest, Msg: "uploaded file is empty"}
	}

	return &upload{Name: header.Filename, Data: data}, nil
}

// uploadStatus returns the HTTP status and message for a readUpload error.
func uploadStatus(err error) (int, string) {
	var ue *uploadError
	if errors.As(err, &ue) {
		return ue.Status, ue.Msg
	}
	return http.StatusBadRequest, err.Error()
}
