package api

import "github.com/bazaar-agents/haggle/observability"

// Service event types.
const (
	EventSessionStart  observability.EventType = "api.session.start"
	EventExchange      observability.EventType = "api.session.exchange"
	EventArchiveFailed observability.EventType = "api.archive.failed"
)
