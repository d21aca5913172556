package embedding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/encoding/json"
)

// newTestServer answers embedding requests with dims copies of the prompt
// length and lists models as installed. The prompt "fail" gets a 500 and
// any model named "gone" a 404.
func newTestServer(t *testing.T, dims int, models ...string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case embeddingsPath:
			var req embedRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			switch {
			case req.Model == "gone":
				http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
				return
			case req.Prompt == "fail":
				http.Error(w, "model exploded", http.StatusInternalServerError)
				return
			}
			vec := make([]float32, dims)
			for i := range vec {
				vec[i] = float32(len(req.Prompt))
			}
			json.NewEncoder(w).Encode(embedResponse{Embedding: vec})
		case tagsPath:
			var resp tagsResponse
			for _, m := range models {
				resp.Models = append(resp.Models, tagModel{Name: m})
			}
			json.NewEncoder(w).Encode(resp)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewOllama_Options(t *testing.T) {
	tests := []struct {
		name     string
		opts     []Option
		wantURL  string
		wantDims int
	}{
		{"defaults", nil, DefaultURL, DefaultDimensions},
		{"trailing slash", []Option{WithURL("http://gpu:8080/")}, "http://gpu:8080", DefaultDimensions},
		{"other model accepts any length", []Option{WithModel("nomic-embed-text")}, DefaultURL, 0},
		{"default model keeps length", []Option{WithModel(DefaultModel)}, DefaultURL, DefaultDimensions},
		{"explicit length after model", []Option{WithModel("nomic-embed-text"), WithDimensions(768)}, DefaultURL, 768},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOllama(tt.opts...)
			if o.url != tt.wantURL {
				t.Errorf("url = %s, want %s", o.url, tt.wantURL)
			}
			if o.Dimensions() != tt.wantDims {
				t.Errorf("Dimensions() = %d, want %d", o.Dimensions(), tt.wantDims)
			}
		})
	}

	if o := NewOllama(WithTimeout(time.Minute)); o.http.Timeout != time.Minute {
		t.Errorf("timeout = %v, want 1m", o.http.Timeout)
	}
}

func TestOllama_Embed(t *testing.T) {
	srv := newTestServer(t, 4)

	tests := []struct {
		name    string
		opts    []Option
		prompt  string
		wantErr string
	}{
		{"matching dimensions", []Option{WithDimensions(4)}, "abc", ""},
		{"any dimensions", []Option{WithDimensions(0)}, "abc", ""},
		{"wrong dimensions", []Option{WithDimensions(8)}, "abc", "returned 4 dimensions, want 8"},
		{"server error", []Option{WithDimensions(4)}, "fail", "status 500: model exploded"},
		{"blank text", nil, "  ", "nothing to embed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithURL(srv.URL), WithRate(0)}, tt.opts...)
			vec, err := NewOllama(opts...).Embed(context.Background(), tt.prompt)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Embed() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Embed() error = %v", err)
			}
			if len(vec) != 4 || vec[0] != 3 {
				t.Errorf("Embed() = %v, want 4 values of 3", vec)
			}
		})
	}
}

func TestOllama_EmbedUnknownModel(t *testing.T) {
	srv := newTestServer(t, 4)
	_, err := NewOllama(WithURL(srv.URL), WithModel("gone"), WithRate(0)).Embed(context.Background(), "abc")

	var se *ServiceError
	if !errors.As(err, &se) || se.Status != http.StatusNotFound {
		t.Fatalf("Embed() error = %v, want ServiceError 404", err)
	}
	if !IsModelMissing(err) {
		t.Errorf("IsModelMissing(%v) = false, want true", err)
	}
}

func TestOllama_Check(t *testing.T) {
	srv := newTestServer(t, 4, "nomic-embed-text:latest", DefaultModel)

	tests := []struct {
		name  string
		url   string
		model string
		want  error
	}{
		{"exact tag", srv.URL, DefaultModel, nil},
		{"untagged means latest", srv.URL, "nomic-embed-text", nil},
		{"other tag", srv.URL, "nomic-embed-text:v1.5", ErrModelMissing},
		{"not installed", srv.URL, "mxbai-embed-large", ErrModelMissing},
		{"unreachable", "http://127.0.0.1:1", DefaultModel, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewOllama(WithURL(tt.url), WithModel(tt.model), WithTimeout(time.Second)).Check(context.Background())
			if tt.want == nil {
				if err != nil {
					t.Errorf("Check() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Check() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestOllama_Models(t *testing.T) {
	srv := newTestServer(t, 4, "a", "b")
	got, err := NewOllama(WithURL(srv.URL)).Models(context.Background())
	if err != nil {
		t.Fatalf("Models() error = %v", err)
	}
	if strings.Join(got, ",") != "a,b" {
		t.Errorf("Models() = %v, want [a b]", got)
	}
}

func TestOllama_RateLimitHonorsContext(t *testing.T) {
	srv := newTestServer(t, 4)
	o := NewOllama(WithURL(srv.URL), WithDimensions(4), WithRate(0.001))

	if _, err := o.Embed(context.Background(), "first"); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := o.Embed(ctx, "second")
	if err == nil || !strings.Contains(err.Error(), "rate limit") {
		t.Errorf("Embed() error = %v, want rate limit error", err)
	}
}

func TestServiceError(t *testing.T) {
	tests := []struct {
		err  *ServiceError
		want string
	}{
		{&ServiceError{Status: 502}, "embedding service returned status 502"},
		{&ServiceError{Status: 500, Body: "oops"}, "embedding service returned status 500: oops"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

var _ Embedder = (*Ollama)(nil)
