package agent

import (
	"fmt"
	"strings"

	"github.com/bazaar-agents/haggle/core/trade"
)

// buyerPrompt builds the advisory prompt for a buyer turn. The guardrails
// appear in the prompt as instructions, but nothing depends on the advisory
// honoring them; the policy clamps whatever number comes back.
func buyerPrompt(persona string, product trade.Product, fair, budget, sellerPrice int, sellerMessage string, lastOffer, maxWilling, minWilling int) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "You are negotiating for %d x %s (quality: %s).\n", product.Quantity, product.Name, product.QualityGrade)
	fmt.Fprintf(&b, "Market price: ₹%d, Fair price: ₹%d, Buyer budget: ₹%d.\n", product.BaseMarketPrice, fair, budget)
	fmt.Fprintf(&b, "Seller offer: ₹%d — %q.\n", sellerPrice, sellerMessage)
	fmt.Fprintf(&b, "Your last offer: ₹%d.\n", lastOffer)
	fmt.Fprintf(&b, "Your goal: protect your budget and get the best deal without going above ₹%d.\n", maxWilling)
	fmt.Fprintf(&b, "Respond firmly with either 'ACCEPT' or a confident counteroffer (must not exceed ₹%d, and not go below ₹%d).\n", maxWilling, minWilling)
	b.WriteString("Keep messages 1-2 sentences, persuasive, matching your final numeric offer exactly.")
	return b.String()
}

// sellerPrompt builds the advisory prompt for a seller turn.
func sellerPrompt(persona string, product trade.Product, fair, minimum, buyerPrice int, buyerMessage string, lastOffer int) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "You are negotiating the sale of %d x %s (quality: %s).\n", product.Quantity, product.Name, product.QualityGrade)
	fmt.Fprintf(&b, "Market price: ₹%d, Fair price: ₹%d, Minimum acceptable price: ₹%d.\n", product.BaseMarketPrice, fair, minimum)
	fmt.Fprintf(&b, "Buyer offer: ₹%d — %q.\n", buyerPrice, buyerMessage)
	fmt.Fprintf(&b, "Your last offer: ₹%d.\n\n", lastOffer)
	b.WriteString("Rules:\n")
	b.WriteString("- Never counter at or below the market price; always protect your margin.\n")
	b.WriteString("- Never increase your price after lowering it.\n")
	b.WriteString("- Replies should be persuasive but short (max 2 sentences), matching your numeric counteroffer exactly.")
	return b.String()
}
