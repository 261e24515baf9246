package agent

import (
	"context"
	"fmt"

	"github.com/bazaar-agents/haggle/advisor"
	"github.com/bazaar-agents/haggle/core/trade"
	"github.com/bazaar-agents/haggle/pricing"
	"github.com/bazaar-agents/haggle/session"
)

// Seller negotiates a sale. It opens 15% above market, never counters at or
// below the market price, accepts a buyer offer that covers both the market
// price and its own last ask, and near the round budget it first demands a
// 10% raise and then closes at whatever the buyer last offered.
type Seller struct {
	settings
	provider advisor.Provider
}

// NewSeller builds a seller around an advisory provider. A nil provider is
// allowed and yields fully deterministic fallback messages.
func NewSeller(provider advisor.Provider, opts ...Option) *Seller {
	s := newSettings(trade.PartySeller)
	for _, opt := range opts {
		opt(&s)
	}
	return &Seller{settings: s, provider: provider}
}

// Name returns the seller's display name.
func (s *Seller) Name() string { return s.name }

// Party returns trade.PartySeller.
func (s *Seller) Party() trade.Party { return trade.PartySeller }

// Profile returns the seller's persona.
func (s *Seller) Profile() Profile { return s.profile }

// Opening pitches the unsolicited opening offer at 15% above market.
func (s *Seller) Opening(product trade.Product) (int, string) {
	price := int(float64(product.BaseMarketPrice) * 1.15)
	return price, fmt.Sprintf("These are premium %s. I can offer them for ₹%d.", product.Name, price)
}

// Respond decides the seller's move for one round.
func (s *Seller) Respond(ctx context.Context, snap session.Snapshot, round, buyerPrice int, buyerMessage string) Decision {
	product := snap.Product

	// Concession round: ask the buyer to come up 10% from their offer.
	if round == s.maxRounds-1 {
		counter := int(float64(buyerPrice) * 1.10)
		return Decision{
			Status:  trade.StatusOngoing,
			Price:   counter,
			Message: fmt.Sprintf("If you can raise it by 10%% to ₹%d, we have a deal.", counter),
		}
	}

	// Closing round: take the buyer's price rather than lose the sale.
	if round >= s.maxRounds {
		return Decision{
			Status:  trade.StatusAccepted,
			Price:   buyerPrice,
			Message: fmt.Sprintf("Alright, deal at ₹%d!", buyerPrice),
		}
	}

	fair := pricing.SellerFair(product)
	lastOffer := fair + 50
	if prev, ok := snap.LastOwnOffer(); ok {
		lastOffer = prev
	}

	if buyerPrice >= product.BaseMarketPrice && buyerPrice >= lastOffer {
		return Decision{
			Status:  trade.StatusAccepted,
			Price:   buyerPrice,
			Message: fmt.Sprintf("Deal at ₹%d! You're getting unmatched value.", buyerPrice),
		}
	}

	prompt := sellerPrompt(s.profile.Persona, product, fair, snap.Limit, buyerPrice, buyerMessage, lastOffer)
	reply := consult(ctx, s.provider, s.observer, "agent.seller", prompt, fmt.Sprintf("I can do ₹%d.", lastOffer))

	counter := pricing.Extract(reply)
	if counter <= product.BaseMarketPrice {
		counter = product.BaseMarketPrice + 1
		reply = fmt.Sprintf("Considering the quality of these %s, the best I can do is ₹%d.", product.Name, counter)
	}

	return Decision{Status: trade.StatusOngoing, Price: counter, Message: reply}
}
