package engine

import "github.com/bazaar-agents/haggle/observability"

// Engine event types emitted during the negotiation loop.
const (
	EventRunStart      observability.EventType = "engine.run.start"
	EventOpening       observability.EventType = "engine.opening"
	EventRoundStart    observability.EventType = "engine.round.start"
	EventRoundComplete observability.EventType = "engine.round.complete"
	EventAccepted      observability.EventType = "engine.accepted"
	EventExit          observability.EventType = "engine.exit"
	EventNoDeal        observability.EventType = "engine.nodeal"
)
