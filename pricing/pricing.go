// Package pricing computes the reference prices that anchor a negotiation
// and recovers numeric offers from free advisory text. Everything here is
// pure: identical inputs always produce identical outputs.
package pricing

import "github.com/bazaar-agents/haggle/core/trade"

// Grade multipliers applied to the base market price. Unknown grades
// contribute nothing (multiplier 1.0).
const (
	gradeAMultiplier      = 1.05
	gradeBMultiplier      = 0.95
	gradeExportMultiplier = 1.10

	exportGradeBonus = 0.02
)

// Multiplier derives the quality multiplier for a product from its grade
// label and the export-grade attribute flag.
func Multiplier(p trade.Product) float64 {
	m := 1.0
	switch p.QualityGrade {
	case "A":
		m = gradeAMultiplier
	case "B":
		m = gradeBMultiplier
	case "Export":
		m = gradeExportMultiplier
	}
	if p.ExportGrade() {
		m += exportGradeBonus
	}
	return m
}

// BuyerFair is the buyer's reference price: the multiplied market price,
// clamped into [70%, 120%] of market so extreme grades cannot push the
// anchor outside a plausible band.
func BuyerFair(p trade.Product) int {
	base := float64(p.BaseMarketPrice)
	fair := int(base * Multiplier(p))
	return Clamp(fair, int(base*0.7), int(base*1.2))
}

// SellerFair is the seller's reference price: the multiplied market price,
// floored at one above market. A seller never values its own goods at or
// below the market price.
func SellerFair(p trade.Product) int {
	fair := int(float64(p.BaseMarketPrice) * Multiplier(p))
	if floor := p.BaseMarketPrice + 1; fair < floor {
		return floor
	}
	return fair
}

// Clamp bounds v into [lo, hi] inclusive.
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
