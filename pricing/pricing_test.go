package pricing_test

import (
	"testing"

	"github.com/bazaar-agents/haggle/core/trade"
	"github.com/bazaar-agents/haggle/pricing"
)

func product(grade string, base int, export bool) trade.Product {
	p := trade.Product{
		Name:            "Alphonso Mangoes",
		Category:        "Fruit",
		Quantity:        10,
		QualityGrade:    grade,
		Origin:          "India",
		BaseMarketPrice: base,
	}
	if export {
		p.Attributes = map[string]any{"export_grade": true}
	}
	return p
}

func TestBuyerFair(t *testing.T) {
	tests := []struct {
		name   string
		grade  string
		base   int
		export bool
		want   int
	}{
		{"grade A with export flag", "A", 500, true, 535},
		{"grade A plain", "A", 500, false, 525},
		{"grade B discounts", "B", 1000, false, 950},
		{"export grade label", "Export", 500, false, 550},
		{"export label and flag", "Export", 500, true, 560},
		{"unknown grade is neutral", "C", 500, false, 500},
		{"empty grade is neutral", "", 730, false, 730},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.BuyerFair(product(tt.grade, tt.base, tt.export))
			if got != tt.want {
				t.Errorf("BuyerFair() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuyerFair_Deterministic(t *testing.T) {
	p := product("A", 500, true)
	first := pricing.BuyerFair(p)
	for i := 0; i < 100; i++ {
		if got := pricing.BuyerFair(p); got != first {
			t.Fatalf("BuyerFair() varied across calls: %d then %d", first, got)
		}
	}
}

func TestSellerFair(t *testing.T) {
	tests := []struct {
		name   string
		grade  string
		base   int
		export bool
		want   int
	}{
		{"grade A with export flag", "A", 600, true, 642},
		{"grade A plain", "A", 600, false, 630},
		{"grade B floors above market", "B", 600, false, 601},
		{"unknown grade floors above market", "C", 600, false, 601},
		{"export label", "Export", 600, false, 660},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.SellerFair(product(tt.grade, tt.base, tt.export))
			if got != tt.want {
				t.Errorf("SellerFair() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSellerFair_AlwaysAboveMarket(t *testing.T) {
	grades := []string{"A", "B", "Export", "C", ""}
	bases := []int{1, 2, 10, 500, 600, 99999}

	for _, grade := range grades {
		for _, base := range bases {
			for _, export := range []bool{false, true} {
				got := pricing.SellerFair(product(grade, base, export))
				if got <= base {
					t.Errorf("SellerFair(grade=%q, base=%d, export=%v) = %d, not above market",
						grade, base, export, got)
				}
			}
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		v    int
		lo   int
		hi   int
		want int
	}{
		{"below range", 100, 321, 450, 321},
		{"above range", 700, 321, 450, 450},
		{"inside range", 400, 321, 450, 400},
		{"at lower bound", 321, 321, 450, 321},
		{"at upper bound", 450, 321, 450, 450},
		{"zero clamps up", 0, 321, 450, 321},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pricing.Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"bare integer", "450", 450},
		{"rupee symbol", "₹450", 450},
		{"thousands separator", "₹1,234", 1234},
		{"millions", "$1,000,000 only", 1000000},
		{"decimal truncates", "I suggest 449.99 for this lot", 449},
		{"embedded in sentence", "I can offer ₹450.", 450},
		{"leftmost number wins", "reduce by 10% to ₹432", 10},
		{"euro symbol", "€99 final", 99},
		{"pound symbol", "£75", 75},
		{"rupee abbreviation", "Rs 450 and no more", 450},
		{"no number", "no numbers here", 0},
		{"empty string", "", 0},
		{"words only with punctuation", "deal? no deal!", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pricing.Extract(tt.text); got != tt.want {
				t.Errorf("Extract(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtract_FormattedRoundTrip(t *testing.T) {
	// A price formatted with separators and a currency symbol must come
	// back out as the same integer.
	cases := map[string]int{
		"₹1":             1,
		"₹42":            42,
		"₹999":           999,
		"₹1,000":         1000,
		"₹54,321":        54321,
		"₹7,654,321":     7654321,
		"₹1,234,567,890": 1234567890,
	}

	for text, want := range cases {
		if got := pricing.Extract(text); got != want {
			t.Errorf("Extract(%q) = %d, want %d", text, got, want)
		}
	}
}
