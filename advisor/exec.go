package advisor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Exec shells out to a local text-generation binary, passing the prompt on
// stdin and reading the reply from stdout. The default invocation is
// "ollama run MODEL".
type Exec struct {
	command string
	model   string
	timeout time.Duration
}

// NewExec creates a subprocess provider for the given command and model.
func NewExec(command, model string, timeout time.Duration) *Exec {
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds * time.Second
	}
	return &Exec{command: command, model: model, timeout: timeout}
}

func newExec(cfg *Config) (Provider, error) {
	command := cfg.Command
	if command == "" {
		command = defaultCommand
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model is required", ErrUnavailable)
	}
	return NewExec(command, cfg.Model, cfg.Timeout()), nil
}

func (e *Exec) Name() string { return KindOllamaExec }

// Advise runs the subprocess with the prompt on stdin. A missing binary,
// non-zero exit, timeout, or empty stdout all surface as errors for the
// caller's fallback path.
func (e *Exec) Advise(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.command, "run", e.model)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s run failed: %w: %s", e.command, err, msg)
		}
		return "", fmt.Errorf("%s run failed: %w", e.command, err)
	}

	reply := strings.TrimSpace(stdout.String())
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}
