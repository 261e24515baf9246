// Package advisor supplies the advisory text port the negotiation agents
// consult each round. A provider receives one structured prompt and returns
// free text; the agents only ever recover the leading numeric token from
// the reply, so providers are free to fail or ramble. Any error or empty
// reply is treated by callers as a signal to fall back to a deterministic
// message, never as a fatal condition.
package advisor

import "context"

// Provider generates a short persuasive reply for a negotiation prompt.
// Implementations must be safe for sequential reuse across rounds; the
// engine never calls a provider concurrently within one session.
type Provider interface {
	// Name identifies the provider kind, e.g. "ollama".
	Name() string

	// Advise returns free text for the given prompt. Implementations
	// should honor ctx cancellation and return an error rather than block
	// past their configured timeout.
	Advise(ctx context.Context, prompt string) (string, error)
}
