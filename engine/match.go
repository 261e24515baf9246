package engine

import (
	"context"
	"fmt"

	"github.com/bazaar-agents/haggle/core/trade"
)

// MatchResult is the outcome of an automated buyer-versus-seller match.
type MatchResult struct {
	Status     trade.DealStatus `json:"status"`
	AcceptedBy trade.Party      `json:"accepted_by,omitempty"`
	FinalPrice int              `json:"final_price"`
	Rounds     int              `json:"rounds"`
}

// RunMatch plays two engines against each other. Each side's decision is fed
// to the other as a line of the form "₹{price} — {message}", price first, so
// offer extraction always recovers the decided amount regardless of numbers
// inside the prose. The seller pitches its opening first; the match ends on
// either side's acceptance or with ErrNoDeal when a round budget exhausts.
func RunMatch(ctx context.Context, buyer, seller *Engine) (*MatchResult, error) {
	if buyer.session.Party() != trade.PartyBuyer || seller.session.Party() != trade.PartySeller {
		return nil, fmt.Errorf("%w: RunMatch needs a buyer engine and a seller engine", ErrInvalidConfig)
	}

	var sellerLine string
	if turn, ok := seller.Open(ctx); ok {
		sellerLine = formatLine(turn.OwnPrice, turn.OwnText)
	}

	for {
		if err := ctx.Err(); err != nil {
			return unsettled(buyer), err
		}

		buyerTurn, err := buyer.Step(ctx, sellerLine)
		if err != nil {
			return unsettled(buyer), err
		}
		if buyerTurn.Status == trade.StatusAccepted {
			return &MatchResult{
				Status:     trade.StatusAccepted,
				AcceptedBy: trade.PartyBuyer,
				FinalPrice: buyerTurn.OwnPrice,
				Rounds:     buyerTurn.Round,
			}, nil
		}

		sellerTurn, err := seller.Step(ctx, formatLine(buyerTurn.OwnPrice, buyerTurn.OwnText))
		if err != nil {
			return unsettled(seller), err
		}
		if sellerTurn.Status == trade.StatusAccepted {
			return &MatchResult{
				Status:     trade.StatusAccepted,
				AcceptedBy: trade.PartySeller,
				FinalPrice: sellerTurn.OwnPrice,
				Rounds:     sellerTurn.Round,
			}, nil
		}

		sellerLine = formatLine(sellerTurn.OwnPrice, sellerTurn.OwnText)
	}
}

// formatLine renders a decision as a counterpart line with the price ahead
// of the prose, keeping extraction unambiguous.
func formatLine(price int, message string) string {
	return fmt.Sprintf("₹%d — %s", price, message)
}

// unsettled reports the state of an engine whose match ended without an
// acceptance, such as an exhausted round budget.
func unsettled(e *Engine) *MatchResult {
	res := e.Result()
	return &MatchResult{
		Status:     res.Status,
		FinalPrice: res.FinalPrice,
		Rounds:     res.Rounds,
	}
}
