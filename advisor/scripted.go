package advisor

import (
	"context"
	"strings"
	"sync"
)

// Scripted replays canned replies in order, repeating the final reply once
// the script runs out. A Scripted with no replies, or a reply that trims to
// nothing, errors with ErrEmptyReply so callers exercise their fallback
// path deterministically.
type Scripted struct {
	mu      sync.Mutex
	replies []string
	next    int
}

// NewScripted creates a provider that replays the given replies.
func NewScripted(replies ...string) *Scripted {
	return &Scripted{replies: replies}
}

func newScripted(cfg *Config) (Provider, error) {
	return NewScripted(cfg.Replies...), nil
}

func (s *Scripted) Name() string { return KindScripted }

func (s *Scripted) Advise(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.replies) == 0 {
		return "", ErrEmptyReply
	}

	reply := strings.TrimSpace(s.replies[s.next])
	if s.next < len(s.replies)-1 {
		s.next++
	}

	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}
