// Package agent implements the negotiation policies: the buyer and seller
// decision engines that turn a counterpart's offer into an acceptance or a
// counteroffer. Advisory text comes from an advisor.Provider and is strictly
// cosmetic; every price that leaves a policy has passed its party's
// guardrails, and a failed or empty advisory degrades to a deterministic
// fallback message instead of stopping the negotiation.
package agent

import (
	"context"
	"strings"

	"github.com/bazaar-agents/haggle/advisor"
	"github.com/bazaar-agents/haggle/core/trade"
	"github.com/bazaar-agents/haggle/observability"
	"github.com/bazaar-agents/haggle/session"
)

// DefaultMaxRounds is the round budget a negotiator assumes when none is
// configured. The concession round is always the one before the budget and
// the closing round the budget itself.
const DefaultMaxRounds = 10

// Decision is the outcome of a single negotiation turn.
type Decision struct {
	Status  trade.DealStatus `json:"status"`
	Price   int              `json:"price"`
	Message string           `json:"message"`
}

// Negotiator is one side of a price negotiation. Respond receives the
// session state as it stood before the turn, the 1-based round number, and
// the counterpart's extracted price and verbatim message; it never returns
// an error because policy decisions always succeed, advisory or not.
type Negotiator interface {
	Name() string
	Party() trade.Party
	Profile() Profile
	Respond(ctx context.Context, snap session.Snapshot, round, counterpartPrice int, counterpartMessage string) Decision
}

// Opener is implemented by negotiators that pitch an unsolicited opening
// offer before the first round. Sellers open; buyers wait.
type Opener interface {
	Opening(product trade.Product) (price int, message string)
}

// settings holds the tunable state shared by the concrete negotiators.
type settings struct {
	name      string
	profile   Profile
	maxRounds int
	observer  observability.Observer
}

func newSettings(party trade.Party) settings {
	return settings{
		name:      string(party),
		profile:   DefaultProfile(party),
		maxRounds: DefaultMaxRounds,
		observer:  observability.NoOpObserver{},
	}
}

// Option adjusts a negotiator at construction time.
type Option func(*settings)

// WithName sets the negotiator's display name.
func WithName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.name = name
		}
	}
}

// WithProfile replaces the party's default persona.
func WithProfile(profile Profile) Option {
	return func(s *settings) { s.profile = profile }
}

// WithMaxRounds sets the round budget that positions the concession and
// closing rounds. Values below 2 are ignored.
func WithMaxRounds(n int) Option {
	return func(s *settings) {
		if n >= 2 {
			s.maxRounds = n
		}
	}
}

// WithObserver sets the observer notified of advisory fallbacks.
func WithObserver(observer observability.Observer) Option {
	return func(s *settings) {
		if observer != nil {
			s.observer = observer
		}
	}
}

// consult runs one advisory round trip. A nil provider, a provider error,
// or an empty reply all degrade to the deterministic fallback message.
func consult(ctx context.Context, provider advisor.Provider, observer observability.Observer, source, prompt, fallback string) string {
	if provider == nil {
		return fallback
	}
	reply, err := provider.Advise(ctx, prompt)
	if err != nil {
		observer.OnEvent(ctx, observability.NewEvent(EventAdvisoryFallback, observability.LevelWarning, source,
			map[string]any{"provider": provider.Name(), "error": err.Error()}))
		return fallback
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		observer.OnEvent(ctx, observability.NewEvent(EventAdvisoryFallback, observability.LevelWarning, source,
			map[string]any{"provider": provider.Name(), "error": "empty reply"}))
		return fallback
	}
	return reply
}
