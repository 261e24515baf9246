package agent

import "github.com/bazaar-agents/haggle/observability"

// Observability event types emitted by negotiators.
const (
	// EventAdvisoryFallback fires when an advisory consult fails or returns
	// nothing usable and the policy substitutes its deterministic message.
	EventAdvisoryFallback observability.EventType = "agent.advisory.fallback"
)
