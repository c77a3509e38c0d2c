package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/health" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	var out map[string]string
	if err := NewClient(srv.URL).Get(context.Background(), "/health", &out); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if out["status"] != "ok" {
		t.Errorf("expected status ok, got %v", out)
	}
}

func TestClient_Post(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]string{"echo": body["text"]})
	}))
	defer srv.Close()

	var out map[string]string
	err := NewClient(srv.URL).Post(context.Background(), "/api/extract", map[string]string{"text": "hi"}, &out)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if out["echo"] != "hi" {
		t.Errorf("expected echo hi, got %v", out)
	}
}

func TestClient_PostFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.png")
	if err := os.WriteFile(path, []byte("fake image bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		json.NewEncoder(w).Encode(map[string]any{"name": header.Filename, "size": len(data)})
	}))
	defer srv.Close()

	var out struct {
		Name string `json:"name"`
		Size int    `json:"size"`
	}
	if err := NewClient(srv.URL).PostFile(context.Background(), "/api/scan", "file", path, &out); err != nil {
		t.Fatalf("PostFile() error = %v", err)
	}
	if out.Name != "card.png" || out.Size != len("fake image bytes") {
		t.Errorf("unexpected upload echo: %+v", out)
	}

	t.Run("missing file", func(t *testing.T) {
		err := NewClient(srv.URL).PostFile(context.Background(), "/api/scan", "file", filepath.Join(t.TempDir(), "nope.png"), nil)
		if err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestClient_ErrorResponse(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantMsg  string
		wantKind string
	}{
		{"json error", `{"error":"Extraction failed."}`, "Extraction failed.", ""},
		{"json error with kind", `{"error":"Extraction failed.","kind":"service"}`, "Extraction failed.", "service"},
		{"plain text", "bad gateway\n", "bad gateway", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewClient(srv.URL).Get(context.Background(), "/", nil)
			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected StatusError, got %T: %v", err, err)
			}
			if statusErr.Code != http.StatusBadGateway || statusErr.Message != tt.wantMsg || statusErr.Kind != tt.wantKind {
				t.Errorf("unexpected error: %+v", statusErr)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"yaml", FormatYAML, false},
		{"JSON", FormatJSON, false},
		{"", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestEncode(t *testing.T) {
	data := map[string]string{"Email": "a@b.com", "Website": "<x>"}

	var buf bytes.Buffer
	if err := Encode(&buf, FormatJSON, data); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"Website": "<x>"`) {
		t.Errorf("unexpected JSON output: %s", buf.String())
	}

	buf.Reset()
	if err := Encode(&buf, FormatYAML, data); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Email: a@b.com") {
		t.Errorf("unexpected YAML output: %s", buf.String())
	}

	if err := Encode(&buf, "toml", data); err == nil {
		t.Error("expected error for unknown format")
	}
}

type fakeEndpoint struct {
	path    string
	init    bool
	withCmd bool
	handled *bool
}

func (e *fakeEndpoint) Route() (string, string, http.HandlerFunc) {
	return http.MethodGet, e.path, func(w http.ResponseWriter, r *http.Request) {
		*e.handled = true
		w.WriteHeader(http.StatusNoContent)
	}
}

func (e *fakeEndpoint) RequiresInit() bool { return e.init }

func (e *fakeEndpoint) Command(func() string) *cobra.Command {
	if !e.withCmd {
		return nil
	}
	return &cobra.Command{Use: strings.TrimPrefix(e.path, "/")}
}

func TestRegistry(t *testing.T) {
	var openHit, gatedHit bool
	reg := NewRegistry(
		&fakeEndpoint{path: "/open", withCmd: true, handled: &openHit},
		&fakeEndpoint{path: "/gated", init: true, handled: &gatedHit},
	)

	if got := strings.Join(reg.Patterns(), ","); got != "GET /open,GET /gated" {
		t.Errorf("Patterns() = %s", got)
	}

	mux := http.NewServeMux()
	reg.Mount(mux, func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/open", nil))
	if rec.Code != http.StatusNoContent || !openHit {
		t.Errorf("open endpoint: code=%d hit=%v", rec.Code, openHit)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gated", nil))
	if rec.Code != http.StatusServiceUnavailable || gatedHit {
		t.Errorf("gated endpoint should be wrapped: code=%d hit=%v", rec.Code, gatedHit)
	}

	cmd := reg.Command(func() string { return "http://localhost" })
	if len(cmd.Commands()) != 1 || cmd.Commands()[0].Name() != "open" {
		t.Errorf("expected only the open command, got %d", len(cmd.Commands()))
	}
}
