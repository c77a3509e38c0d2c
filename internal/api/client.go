// Package api holds the HTTP client and command plumbing shared by the
// server endpoints and the "cardscan api" CLI.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTimeout bounds a CLI request. A scan waits on the vision model.
const DefaultTimeout = 5 * time.Minute

// Client calls a running cardscan server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Get fetches path and decodes the JSON body into result.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.send(ctx, http.MethodGet, path, "", nil, result)
}

// Post sends body as JSON and decodes the JSON reply into result.
func (c *Client) Post(ctx context.Context, path string, body any, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	return c.send(ctx, http.MethodPost, path, "application/json", bytes.NewReader(payload), result)
}

// PostFile uploads the file at filePath as the multipart field named field.
func (c *Client) PostFile(ctx context.Context, path, field, filePath string, result any) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	part, err := mw.CreateFormFile(field, filepath.Base(filePath))
	if err != nil {
		return fmt.Errorf("build upload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("build upload: %w", err)
	}
	return c.send(ctx, http.MethodPost, path, mw.FormDataContentType(), &form, result)
}

func (c *Client) send(ctx context.Context, method, path, contentType string, body io.Reader, result any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return newStatusError(resp.StatusCode, raw)
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ErrorResponse is the server's JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// StatusError is returned for 4xx/5xx responses.
type StatusError struct {
	Code    int
	Message string
	// Kind is the scan failure class reported by the server, if any.
	Kind string
}

func newStatusError(code int, body []byte) *StatusError {
	var er ErrorResponse
	if json.Unmarshal(body, &er) == nil && er.Error != "" {
		return &StatusError{Code: code, Message: er.Error, Kind: er.Kind}
	}
	return &StatusError{Code: code, Message: strings.TrimSpace(string(body))}
}

func (e *StatusError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("server error (%d, %s): %s", e.Code, e.Kind, e.Message)
	}
	return fmt.Sprintf("server error (%d): %s", e.Code, e.Message)
}
