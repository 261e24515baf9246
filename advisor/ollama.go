package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// generateRequest is the ollama /api/generate request body. Streaming is
// always disabled; the agents want one complete reply per round.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse is the subset of the ollama /api/generate reply the
// agents care about.
type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Ollama calls a local ollama server over HTTP.
type Ollama struct {
	model   string
	baseURL string
	client  *http.Client
}

// NewOllama creates an HTTP provider against the given ollama base URL.
func NewOllama(model, baseURL string, client *http.Client) *Ollama {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeoutSeconds * time.Second}
	}
	return &Ollama{model: model, baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func newOllama(cfg *Config) (Provider, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model is required", ErrUnavailable)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return NewOllama(cfg.Model, baseURL, &http.Client{Timeout: cfg.Timeout()}), nil
}

func (o *Ollama) Name() string { return KindOllama }

// Advise sends the prompt to /api/generate and returns the trimmed reply.
func (o *Ollama) Advise(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}

	reply := strings.TrimSpace(out.Response)
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}
