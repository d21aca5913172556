package embedding

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	DefaultURL        = "http://localhost:11434"
	DefaultModel      = "all-minilm:l6-v2"
	DefaultDimensions = 384 // all-minilm output length
	DefaultTimeout    = 30 * time.Second
	DefaultRate       = 10.0 // requests per second

	tagsPath       = "/api/tags"
	embeddingsPath = "/api/embeddings"

	// maxErrorBody caps how much of a failed response ends up in an error.
	maxErrorBody = 512
)

// Ollama talks to an Ollama-compatible /api/embeddings service.
type Ollama struct {
	url     string
	model   string
	dims    int // 0 accepts any length
	http    *http.Client
	limiter *rate.Limiter
}

// Option configures an Ollama client.
type Option func(*Ollama)

// WithURL sets the service base URL. A trailing slash is dropped.
func WithURL(url string) Option {
	return func(o *Ollama) { o.url = strings.TrimRight(url, "/") }
}

// WithModel selects the model. Unless WithDimensions follows, a model other
// than DefaultModel accepts vectors of any length.
func WithModel(model string) Option {
	return func(o *Ollama) {
		o.model = model
		if model != DefaultModel {
			o.dims = 0
		}
	}
}

// WithDimensions requires every vector to have n values.
func WithDimensions(n int) Option {
	return func(o *Ollama) { o.dims = n }
}

// WithRate throttles requests to perSecond; zero or less disables it.
func WithRate(perSecond float64) Option {
	return func(o *Ollama) {
		limit := rate.Inf
		if perSecond > 0 {
			limit = rate.Limit(perSecond)
		}
		o.limiter = rate.NewLimiter(limit, 1)
	}
}

// WithTimeout bounds each HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(o *Ollama) { o.http.Timeout = d }
}

// NewOllama returns a client for DefaultModel at DefaultURL, adjusted by
// opts in order.
func NewOllama(opts ...Option) *Ollama {
	o := &Ollama{
		url:     DefaultURL,
		model:   DefaultModel,
		dims:    DefaultDimensions,
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(DefaultRate), 1),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Ollama) Model() string { return o.model }

// Dimensions is the required vector length, 0 when any length is accepted.
func (o *Ollama) Dimensions() int { return o.dims }

// Embed returns the vector for text.
func (o *Ollama) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if err := o.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limit: %w", err)
	}

	body, err := json.Marshal(embedRequest{Model: o.model, Prompt: text})
	if err != nil {
		return nil, err
	}

	var out embedResponse
	if err := o.call(ctx, http.MethodPost, embeddingsPath, bytes.NewReader(body), &out); err != nil {
		return nil, err
	}
	if len(out.Embedding) == 0 {
		return nil, fmt.Errorf("embedding service returned an empty vector for model %s", o.model)
	}
	if o.dims > 0 && len(out.Embedding) != o.dims {
		return nil, fmt.Errorf("model %s returned %d dimensions, want %d", o.model, len(out.Embedding), o.dims)
	}
	return out.Embedding, nil
}

// Models lists the installed model names.
func (o *Ollama) Models(ctx context.Context) ([]string, error) {
	var out tagsResponse
	if err := o.call(ctx, http.MethodGet, tagsPath, nil, &out); err != nil {
		return nil, err
	}
	names := make([]string, len(out.Models))
	for i, m := range out.Models {
		names[i] = m.Name
	}
	return names, nil
}

// Check confirms the service answers and serves the configured model. The
// error wraps ErrUnavailable or ErrModelMissing.
func (o *Ollama) Check(ctx context.Context) error {
	names, err := o.Models(ctx)
	if err != nil {
		return fmt.Errorf("%w at %s: %v", ErrUnavailable, o.url, err)
	}
	for _, name := range names {
		if sameModel(name, o.model) {
			return nil
		}
	}
	log.WithField("installed", names).Debug("embedding model not found")
	return fmt.Errorf("%w: %s", ErrModelMissing, o.model)
}

// sameModel compares names the way Ollama resolves them: an untagged name
// means ":latest".
func sameModel(installed, want string) bool {
	if installed == want {
		return true
	}
	if !strings.Contains(want, ":") {
		return installed == want+":latest"
	}
	return false
}

// call sends one request and decodes a 200 answer into out.
func (o *Ollama) call(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, o.url+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := o.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &ServiceError{Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

type tagsResponse struct {
	Models []tagModel `json:"models"`
}

type tagModel struct {
	Name string `json:"name"`
}
