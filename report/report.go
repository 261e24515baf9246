// Package report computes and renders end-of-negotiation summaries: the
// settled price against the acting party's limit, the fair price, and the
// market baseline, plus the full conversation transcript.
package report

import (
	"fmt"
	"strings"

	"github.com/bazaar-agents/haggle/core/trade"
	"github.com/bazaar-agents/haggle/pricing"
	"github.com/bazaar-agents/haggle/session"
)

// Verdicts comparing the settled price to the acting party's fair price.
const (
	VerdictBuyerWon  = "Buyer won — got a price below fair value!"
	VerdictSellerWon = "Seller won — sold above fair value!"
	VerdictBalanced  = "Balanced deal — price near fair value."
)

// Summary is the statistical digest of one finished negotiation. LimitDelta
// is the buyer's savings against its budget, or the seller's premium over
// its minimum; MarketDelta is how far below (buyer) or above (seller) the
// base market price the deal landed. Both can go negative.
type Summary struct {
	Party       trade.Party      `json:"party"`
	Product     trade.Product    `json:"product"`
	Limit       int              `json:"limit"`
	FairPrice   int              `json:"fair_price"`
	FinalPrice  int              `json:"final_price"`
	Rounds      int              `json:"rounds"`
	Status      trade.DealStatus `json:"status"`
	LimitDelta  int              `json:"limit_delta"`
	MarketDelta int              `json:"market_delta"`
	Verdict     string           `json:"verdict"`
	Transcript  []trade.Message  `json:"transcript,omitempty"`
}

// Build computes the summary for a negotiation snapshot. The fair price and
// both deltas take the acting party's viewpoint, so a positive delta is
// always the good direction for that side.
func Build(snap session.Snapshot, status trade.DealStatus, finalPrice int) Summary {
	fair := pricing.BuyerFair(snap.Product)
	limitDelta := snap.Limit - finalPrice
	marketDelta := snap.Product.BaseMarketPrice - finalPrice
	if snap.Party == trade.PartySeller {
		fair = pricing.SellerFair(snap.Product)
		limitDelta = finalPrice - snap.Limit
		marketDelta = finalPrice - snap.Product.BaseMarketPrice
	}

	var verdict string
	switch {
	case finalPrice < fair:
		verdict = VerdictBuyerWon
	case finalPrice > fair:
		verdict = VerdictSellerWon
	default:
		verdict = VerdictBalanced
	}

	return Summary{
		Party:       snap.Party,
		Product:     snap.Product,
		Limit:       snap.Limit,
		FairPrice:   fair,
		FinalPrice:  finalPrice,
		Rounds:      snap.Rounds,
		Status:      status,
		LimitDelta:  limitDelta,
		MarketDelta: marketDelta,
		Verdict:     verdict,
		Transcript:  snap.Transcript,
	}
}

// Render formats the summary for terminal output, transcript included.
func (s Summary) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== NEGOTIATION SUMMARY ===\n")
	fmt.Fprintf(&b, "Product: %d x %s (quality: %s)\n", s.Product.Quantity, s.Product.Name, s.Product.QualityGrade)
	if s.Party == trade.PartySeller {
		fmt.Fprintf(&b, "Seller Minimum: ₹%d\n", s.Limit)
	} else {
		fmt.Fprintf(&b, "Buyer Budget: ₹%d\n", s.Limit)
	}
	fmt.Fprintf(&b, "Calculated Fair Price: ₹%d\n", s.FairPrice)
	fmt.Fprintf(&b, "Final Price Agreed: ₹%d\n", s.FinalPrice)
	fmt.Fprintf(&b, "Total Rounds: %d\n\n", s.Rounds)

	if s.Party == trade.PartySeller {
		fmt.Fprintf(&b, "Seller Premium: ₹%d (%.1f%%)\n", s.LimitDelta, percent(s.LimitDelta, s.Limit))
		fmt.Fprintf(&b, "Above Market Price: ₹%d (%.1f%%)\n", s.MarketDelta, percent(s.MarketDelta, s.Product.BaseMarketPrice))
	} else {
		fmt.Fprintf(&b, "Buyer Savings: ₹%d (%.1f%%)\n", s.LimitDelta, percent(s.LimitDelta, s.Limit))
		fmt.Fprintf(&b, "Below Market Price: ₹%d (%.1f%%)\n", s.MarketDelta, percent(s.MarketDelta, s.Product.BaseMarketPrice))
	}
	fmt.Fprintf(&b, "Result: %s\n", s.Verdict)

	if len(s.Transcript) > 0 {
		fmt.Fprintf(&b, "\n=== Full Conversation ===\n")
		for _, msg := range s.Transcript {
			fmt.Fprintf(&b, "%s: %s\n", roleLabel(msg.From), msg.Text)
		}
	}

	return b.String()
}

func roleLabel(p trade.Party) string {
	if p == trade.PartySeller {
		return "Seller"
	}
	return "Buyer"
}

func percent(delta, base int) float64 {
	if base == 0 {
		return 0
	}
	return float64(delta) / float64(base) * 100
}
