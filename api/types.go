package api

import (
	"github.com/bazaar-agents/haggle/advisor"
	"github.com/bazaar-agents/haggle/core/trade"
	"github.com/bazaar-agents/haggle/engine"
	"github.com/bazaar-agents/haggle/report"
	"github.com/bazaar-agents/haggle/session"
)

// Procedure paths for the negotiation service.
const (
	ProcedureStartNegotiation = "/haggle.v1.NegotiationService/StartNegotiation"
	ProcedureExchange         = "/haggle.v1.NegotiationService/Exchange"
	ProcedureGetTranscript    = "/haggle.v1.NegotiationService/GetTranscript"
)

// StartNegotiationRequest opens a negotiation session. The product comes
// either inline or by catalog name; Agent selects a registered negotiator by
// name, otherwise Party, Persona, and Advisor overlay the service's base
// configuration.
type StartNegotiationRequest struct {
	Product     *trade.Product  `json:"product,omitempty"`
	ProductName string          `json:"product_name,omitempty"`
	Party       trade.Party     `json:"party,omitempty"`
	Limit       int             `json:"limit,omitempty"`
	MaxRounds   int             `json:"max_rounds,omitempty"`
	Persona     string          `json:"persona,omitempty"`
	Agent       string          `json:"agent,omitempty"`
	Advisor     *advisor.Config `json:"advisor,omitempty"`
}

// StartNegotiationResponse carries the new session's ID and, when the
// negotiator pitches unsolicited (a seller), its opening turn.
type StartNegotiationResponse struct {
	SessionID string       `json:"session_id"`
	Opening   *engine.Turn `json:"opening,omitempty"`
}

// ExchangeRequest advances a session by one counterpart line.
type ExchangeRequest struct {
	SessionID string `json:"session_id"`
	Input     string `json:"input"`
}

// ExchangeResponse carries the completed round and the session's status
// afterwards. An abandonment line yields no turn and a rejected status.
type ExchangeResponse struct {
	Turn   *engine.Turn     `json:"turn,omitempty"`
	Status trade.DealStatus `json:"status"`
}

// GetTranscriptRequest fetches the state of a session by ID.
type GetTranscriptRequest struct {
	SessionID string `json:"session_id"`
}

// GetTranscriptResponse is the session's full state. Summary is present only
// once the negotiation has reached a terminal status.
type GetTranscriptResponse struct {
	Snapshot   session.Snapshot `json:"snapshot"`
	Status     trade.DealStatus `json:"status"`
	FinalPrice int              `json:"final_price"`
	Rounds     int              `json:"rounds"`
	Summary    *report.Summary  `json:"summary,omitempty"`
}
