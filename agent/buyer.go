package agent

import (
	"context"
	"fmt"

	"github.com/bazaar-agents/haggle/advisor"
	"github.com/bazaar-agents/haggle/core/trade"
	"github.com/bazaar-agents/haggle/pricing"
	"github.com/bazaar-agents/haggle/session"
)

// Buyer negotiates a purchase. Its counteroffers never exceed the session
// budget or drop below 60% of the fair price, it accepts any seller price
// within budget and within 2% of fair, and near the round budget it first
// demands a 10% reduction and then closes at whatever the seller last asked.
type Buyer struct {
	settings
	provider advisor.Provider
}

// NewBuyer builds a buyer around an advisory provider. A nil provider is
// allowed and yields fully deterministic fallback messages.
func NewBuyer(provider advisor.Provider, opts ...Option) *Buyer {
	s := newSettings(trade.PartyBuyer)
	for _, opt := range opts {
		opt(&s)
	}
	return &Buyer{settings: s, provider: provider}
}

// Name returns the buyer's display name.
func (b *Buyer) Name() string { return b.name }

// Party returns trade.PartyBuyer.
func (b *Buyer) Party() trade.Party { return trade.PartyBuyer }

// Profile returns the buyer's persona.
func (b *Buyer) Profile() Profile { return b.profile }

// Respond decides the buyer's move for one round.
func (b *Buyer) Respond(ctx context.Context, snap session.Snapshot, round, sellerPrice int, sellerMessage string) Decision {
	product := snap.Product
	fair := pricing.BuyerFair(product)
	maxWilling := snap.Limit
	minWilling := max(1, int(float64(fair)*0.6))

	// Concession round: meet the seller 10% below their ask, inside bounds.
	if round == b.maxRounds-1 {
		target := pricing.Clamp(int(float64(sellerPrice)*0.9), minWilling, maxWilling)
		return Decision{
			Status:  trade.StatusOngoing,
			Price:   target,
			Message: fmt.Sprintf("If you can reduce by 10%% to ₹%d, we have a deal.", target),
		}
	}

	// Closing round: take the seller's price rather than walk away empty.
	if round >= b.maxRounds {
		return Decision{
			Status:  trade.StatusAccepted,
			Price:   sellerPrice,
			Message: fmt.Sprintf("Alright, I accept ₹%d.", sellerPrice),
		}
	}

	// A seller price inside budget and within 2% of fair is taken on the
	// spot; no advisory text can improve on it.
	if sellerPrice <= maxWilling && sellerPrice <= fair+int(float64(fair)*0.02) {
		return Decision{
			Status:  trade.StatusAccepted,
			Price:   sellerPrice,
			Message: fmt.Sprintf("Alright, I accept ₹%d.", sellerPrice),
		}
	}

	lastOffer := int(float64(fair) * 0.75)
	if prev, ok := snap.LastOwnOffer(); ok {
		lastOffer = prev
	}

	prompt := buyerPrompt(b.profile.Persona, product, fair, snap.Limit, sellerPrice, sellerMessage, lastOffer, maxWilling, minWilling)
	reply := consult(ctx, b.provider, b.observer, "agent.buyer", prompt, fmt.Sprintf("I can offer ₹%d.", lastOffer))

	counter := pricing.Extract(reply)
	switch {
	case counter > maxWilling:
		counter = maxWilling
		reply = fmt.Sprintf("Considering my budget and the value, I can only go up to ₹%d.", counter)
	case counter < minWilling:
		counter = minWilling
		reply = fmt.Sprintf("This is my best and final offer given the market reality — ₹%d.", counter)
	}

	return Decision{Status: trade.StatusOngoing, Price: counter, Message: reply}
}
