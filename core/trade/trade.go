package trade

import (
	"time"

	"github.com/google/uuid"
)

// Party identifies which side of the negotiation produced an offer or message.
type Party string

const (
	PartyBuyer  Party = "buyer"
	PartySeller Party = "seller"
)

// Valid reports whether p is one of the two negotiation parties.
func (p Party) Valid() bool {
	return p == PartyBuyer || p == PartySeller
}

// Counterpart returns the opposing party.
func (p Party) Counterpart() Party {
	if p == PartyBuyer {
		return PartySeller
	}
	return PartyBuyer
}

// DealStatus is the tri-state outcome of a negotiation turn.
// Rejected is reserved for abandonment (the counterpart walking away);
// a negotiation that merely runs out of rounds is not Rejected.
type DealStatus string

const (
	StatusOngoing  DealStatus = "ongoing"
	StatusAccepted DealStatus = "accepted"
	StatusRejected DealStatus = "rejected"
)

// Valid reports whether s is a recognized deal status.
func (s DealStatus) Valid() bool {
	switch s {
	case StatusOngoing, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s ends the negotiation.
func (s DealStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Message is a single transcript entry: who said it and what was said.
// Offers are tracked separately as integer sequences; the message text is
// opaque persuasion as far as the engine is concerned.
type Message struct {
	ID   string    `json:"id"`
	From Party     `json:"from"`
	Text string    `json:"text"`
	Time time.Time `json:"time"`
}

// NewMessage creates a transcript message with a time-ordered unique ID.
func NewMessage(from Party, text string) Message {
	return Message{
		ID:   generateID(),
		From: from,
		Text: text,
		Time: time.Now().UTC(),
	}
}

// generateID returns a UUIDv7 (time-ordered), falling back to v4 if the
// system clock or entropy source misbehaves.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
