package agent

import (
	"fmt"

	"github.com/bazaar-agents/haggle/advisor"
	"github.com/bazaar-agents/haggle/core/trade"
)

// Config describes a negotiator declaratively: which side it plays, its
// persona, its round budget, and the advisory provider behind its prose.
type Config struct {
	Party     trade.Party    `json:"party"`
	Name      string         `json:"name,omitempty"`
	Persona   string         `json:"persona,omitempty"`
	MaxRounds int            `json:"max_rounds,omitempty"`
	Advisor   advisor.Config `json:"advisor"`
}

// DefaultConfig returns a buyer negotiator config with stock persona and
// local-ollama advisory defaults.
func DefaultConfig() Config {
	return Config{
		Party:     trade.PartyBuyer,
		MaxRounds: DefaultMaxRounds,
		Advisor:   advisor.DefaultConfig(),
	}
}

// Merge applies non-zero values from source into c, delegating the advisor
// section to its own Merge.
func (c *Config) Merge(source *Config) {
	if source.Party != "" {
		c.Party = source.Party
	}
	if source.Name != "" {
		c.Name = source.Name
	}
	if source.Persona != "" {
		c.Persona = source.Persona
	}
	if source.MaxRounds > 0 {
		c.MaxRounds = source.MaxRounds
	}
	c.Advisor.Merge(&source.Advisor)
}

// New builds a negotiator from configuration: the advisory provider from the
// advisor section and the profile by persona name, falling back to the
// party's stock persona when none is named. Extra options are applied after
// the config-derived ones, so callers can layer observers or overrides on a
// configured negotiator.
func New(cfg *Config, opts ...Option) (Negotiator, error) {
	if !cfg.Party.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidParty, cfg.Party)
	}

	provider, err := advisor.New(&cfg.Advisor)
	if err != nil {
		return nil, fmt.Errorf("failed to create advisory provider: %w", err)
	}

	profile := DefaultProfile(cfg.Party)
	if cfg.Persona != "" {
		named, ok := ProfileNamed(cfg.Persona)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPersona, cfg.Persona)
		}
		profile = named
	}

	options := []Option{WithProfile(profile)}
	if cfg.Name != "" {
		options = append(options, WithName(cfg.Name))
	}
	if cfg.MaxRounds > 0 {
		options = append(options, WithMaxRounds(cfg.MaxRounds))
	}
	options = append(options, opts...)

	if cfg.Party == trade.PartySeller {
		return NewSeller(provider, options...), nil
	}
	return NewBuyer(provider, options...), nil
}
