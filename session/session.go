// Package session holds one negotiation's mutable state: the product under
// discussion, the acting party's limit, and the per-round offer and message
// history. A session is created once and mutated only by the round
// controller, exactly once per completed round.
package session

import (
	"github.com/bazaar-agents/haggle/core/trade"
)

// Session is the negotiation context for one acting party. Implementations
// must be safe for concurrent use.
type Session interface {
	// ID returns the unique session identifier.
	ID() string
	// Party returns the acting party this context belongs to.
	Party() trade.Party
	// Product returns the immutable product under negotiation.
	Product() trade.Product
	// Limit returns the acting party's bound: budget for a buyer,
	// minimum acceptable price for a seller.
	Limit() int
	// Rounds returns the number of completed rounds.
	Rounds() int
	// RecordOpening appends an unsolicited own offer made before the
	// first round (a seller opening pitch). The round counter does not
	// advance.
	RecordOpening(price int, text string)
	// RecordRound appends one completed round atomically: the
	// counterpart's offer and message together with the acting party's
	// reply, advancing the round counter by one.
	RecordRound(counterpartPrice int, counterpartText string, ownPrice int, ownText string)
	// Snapshot returns a defensive copy of the current state.
	Snapshot() Snapshot
}

// Snapshot is a point-in-time copy of session state. Mutating a snapshot
// never affects the session it came from.
type Snapshot struct {
	SessionID         string          `json:"session_id"`
	Party             trade.Party     `json:"party"`
	Product           trade.Product   `json:"product"`
	Limit             int             `json:"limit"`
	Rounds            int             `json:"rounds"`
	CounterpartOffers []int           `json:"counterpart_offers"`
	OwnOffers         []int           `json:"own_offers"`
	Transcript        []trade.Message `json:"transcript"`
}

// LastOwnOffer returns the most recent own offer, or false if the acting
// party has not offered yet.
func (s Snapshot) LastOwnOffer() (int, bool) {
	if len(s.OwnOffers) == 0 {
		return 0, false
	}
	return s.OwnOffers[len(s.OwnOffers)-1], true
}

// LastCounterpartOffer returns the most recent counterpart offer, or false
// if the counterpart has not offered yet.
func (s Snapshot) LastCounterpartOffer() (int, bool) {
	if len(s.CounterpartOffers) == 0 {
		return 0, false
	}
	return s.CounterpartOffers[len(s.CounterpartOffers)-1], true
}
