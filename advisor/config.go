package advisor

import "time"

// Provider kinds with built-in factories.
const (
	KindOllama     = "ollama"      // HTTP calls against a local ollama server
	KindOllamaExec = "ollama-exec" // subprocess: ollama run MODEL, prompt on stdin
	KindScripted   = "scripted"    // canned replies, for tests and offline demos
)

const (
	defaultModel          = "llama3.1:8b"
	defaultBaseURL        = "http://localhost:11434"
	defaultCommand        = "ollama"
	defaultTimeoutSeconds = 30
)

// Config selects and parameterizes an advisory provider.
type Config struct {
	Kind           string   `json:"kind,omitempty"`
	Model          string   `json:"model,omitempty"`
	BaseURL        string   `json:"base_url,omitempty"`
	Command        string   `json:"command,omitempty"`
	TimeoutSeconds int      `json:"timeout_seconds,omitempty"`
	Replies        []string `json:"replies,omitempty"` // scripted kind only
}

// DefaultConfig returns the local-ollama defaults.
func DefaultConfig() Config {
	return Config{
		Kind:           KindOllama,
		Model:          defaultModel,
		BaseURL:        defaultBaseURL,
		Command:        defaultCommand,
		TimeoutSeconds: defaultTimeoutSeconds,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Kind != "" {
		c.Kind = source.Kind
	}
	if source.Model != "" {
		c.Model = source.Model
	}
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
	if source.Command != "" {
		c.Command = source.Command
	}
	if source.TimeoutSeconds > 0 {
		c.TimeoutSeconds = source.TimeoutSeconds
	}
	if len(source.Replies) > 0 {
		c.Replies = source.Replies
	}
}

// Timeout returns the configured advisory deadline as a duration.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
