package agent

import (
	"slices"

	"github.com/bazaar-agents/haggle/core/trade"
)

// Profile is a negotiator's persona: the trait sheet that shapes advisory
// prompts and is surfaced in agent listings. Profiles influence tone only;
// the price guardrails are enforced by the policies regardless of persona.
type Profile struct {
	Type         string   `json:"type"`
	Traits       []string `json:"traits,omitempty"`
	Catchphrases []string `json:"catchphrases,omitempty"`
	Persona      string   `json:"persona"`
}

// Built-in persona names accepted by configuration.
const (
	PersonaValueProtector  = "assertive-value-protector"
	PersonaFirmButFriendly = "firm-but-friendly"
)

var profiles = map[string]Profile{
	PersonaValueProtector: {
		Type:   "assertive_value_protector",
		Traits: []string{"confident", "persuasive", "value-conscious", "strategic"},
		Catchphrases: []string{
			"Given the quality here, my offer is already fair.",
			"This price reflects both market reality and product value.",
		},
		Persona: "You are a confident, firm, value-protecting buyer. Persuasive but concise.",
	},
	PersonaFirmButFriendly: {
		Type:   "firm but friendly",
		Traits: []string{"persuasive", "confident", "value-focused", "profit-minded"},
		Catchphrases: []string{
			"These are top-quality goods.",
			"I think you'll find the price fair for what you get.",
		},
		Persona: "You are a persuasive seller who always sells above market price.",
	},
}

// ProfileNamed returns the built-in profile registered under name.
func ProfileNamed(name string) (Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// DefaultProfile returns the stock persona for a party: the value-protecting
// buyer or the firm-but-friendly seller.
func DefaultProfile(party trade.Party) Profile {
	if party == trade.PartySeller {
		return profiles[PersonaFirmButFriendly]
	}
	return profiles[PersonaValueProtector]
}

// Personas lists the built-in persona names in sorted order.
func Personas() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
