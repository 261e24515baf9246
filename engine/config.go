package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bazaar-agents/haggle/advisor"
	"github.com/bazaar-agents/haggle/agent"
	"github.com/bazaar-agents/haggle/archive"
	"github.com/bazaar-agents/haggle/core/trade"
)

// Config holds initialization parameters for a negotiation: the product and
// side being played, the acting party's limit, the advisory provider, and
// optional named agent configs for the registry. Observer names an observer
// registered with the observability package; empty selects the default
// logger.
type Config struct {
	Product   trade.Product           `json:"product"`
	Party     trade.Party             `json:"party"`
	Limit     int                     `json:"limit"`
	MaxRounds int                     `json:"max_rounds,omitempty"`
	Persona   string                  `json:"persona,omitempty"`
	Observer  string                  `json:"observer,omitempty"`
	Advisor   advisor.Config          `json:"advisor"`
	Archive   archive.Config          `json:"archive"`
	Agents    map[string]agent.Config `json:"agents,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
// The product and limit have no defaults and must be supplied.
func DefaultConfig() Config {
	return Config{
		Party:     trade.PartyBuyer,
		MaxRounds: agent.DefaultMaxRounds,
		Advisor:   advisor.DefaultConfig(),
		Archive:   archive.DefaultConfig(),
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Advisor.Merge(&source.Advisor)
	c.Archive.Merge(&source.Archive)

	if source.Product.Name != "" {
		c.Product = source.Product
	}
	if source.Party != "" {
		c.Party = source.Party
	}
	if source.Limit > 0 {
		c.Limit = source.Limit
	}
	if source.MaxRounds > 0 {
		c.MaxRounds = source.MaxRounds
	}
	if source.Persona != "" {
		c.Persona = source.Persona
	}
	if source.Observer != "" {
		c.Observer = source.Observer
	}

	if len(source.Agents) > 0 {
		c.Agents = source.Agents
	}
}

// Validate checks the fields a negotiation cannot start without. MaxRounds
// needs at least 2 so the concession round precedes the closing round.
func (c *Config) Validate() error {
	if !c.Party.Valid() {
		return fmt.Errorf("%w: party %q", ErrInvalidConfig, c.Party)
	}
	if err := c.Product.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Limit <= 0 {
		return fmt.Errorf("%w: limit %d must be positive", ErrInvalidConfig, c.Limit)
	}
	if c.MaxRounds < 2 {
		return fmt.Errorf("%w: max rounds %d, need at least 2", ErrInvalidConfig, c.MaxRounds)
	}
	return nil
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
