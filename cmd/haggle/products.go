package main

import (
	"context"
	"fmt"

	"github.com/bazaar-agents/haggle/archive"
	"github.com/bazaar-agents/haggle/core/trade"
)

// demoLot pairs a catalog product with the side limits its demo assumes.
// Lots without a pinned limit fall back to a fraction of the market price.
type demoLot struct {
	product trade.Product
	budget  int // buyer-side default limit
	minimum int // seller-side default limit
}

func (l demoLot) buyerBudget() int {
	if l.budget > 0 {
		return l.budget
	}
	return l.product.BaseMarketPrice * 9 / 10
}

func (l demoLot) sellerMinimum() int {
	if l.minimum > 0 {
		return l.minimum
	}
	return l.product.BaseMarketPrice * 77 / 100
}

var demoLots = map[string]demoLot{
	"alphonso-mangoes": {
		product: trade.Product{
			Name:            "Alphonso Mangoes",
			Category:        "Fruit",
			Quantity:        10,
			QualityGrade:    "A",
			Origin:          "India",
			BaseMarketPrice: 500,
			Attributes:      map[string]any{"export_grade": true},
		},
		budget: 450,
	},
	"alphonso-mangoes-premium": {
		product: trade.Product{
			Name:            "Alphonso Mangoes",
			Category:        "Fruit",
			Quantity:        10,
			QualityGrade:    "A",
			Origin:          "India",
			BaseMarketPrice: 600,
			Attributes:      map[string]any{"export_grade": true},
		},
		minimum: 460,
	},
	"kesar-mangoes": {
		product: trade.Product{
			Name:            "Kesar Mangoes",
			Category:        "Fruit",
			Quantity:        15,
			QualityGrade:    "B",
			Origin:          "Gujarat",
			BaseMarketPrice: 350,
		},
	},
}

// defaultLotName picks the lot each mode opens with: buyers haggle over the
// standard lot, the selling demo pitches the premium one.
func defaultLotName(mode string) string {
	if mode == "sell" {
		return "alphonso-mangoes-premium"
	}
	return "alphonso-mangoes"
}

// resolveLot finds a product by name, demo catalog first, then the archive
// when one is configured. Demo lots are written through to the archive so
// the daemon can later serve them by name.
func resolveLot(ctx context.Context, name string, store archive.Store) (demoLot, error) {
	if lot, ok := demoLots[name]; ok {
		if store != nil {
			if err := archive.SaveProduct(ctx, store, name, lot.product); err != nil {
				return demoLot{}, fmt.Errorf("failed to archive product: %w", err)
			}
		}
		return lot, nil
	}

	if store == nil {
		return demoLot{}, fmt.Errorf("unknown product %q and no archive configured", name)
	}
	product, err := archive.LoadProduct(ctx, store, name)
	if err != nil {
		return demoLot{}, err
	}
	return demoLot{product: product}, nil
}
