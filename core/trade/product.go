package trade

import (
	"encoding/json"
	"fmt"
)

// Product is the immutable descriptor of the goods under negotiation.
// Created once per session and never mutated; both sides read the same
// fields but value them differently.
//
// Attributes is an open mapping for modifiers the grade label does not
// capture, such as the export-grade flag.
type Product struct {
	Name            string         `json:"name"`
	Category        string         `json:"category"`
	Quantity        int            `json:"quantity"`
	QualityGrade    string         `json:"quality_grade"`
	Origin          string         `json:"origin"`
	BaseMarketPrice int            `json:"base_market_price"`
	Attributes      map[string]any `json:"attributes,omitempty"`
}

// Validate checks the fields a negotiation cannot proceed without.
func (p Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidProduct)
	}
	if p.Quantity <= 0 {
		return fmt.Errorf("%w: quantity %d must be positive", ErrInvalidProduct, p.Quantity)
	}
	if p.BaseMarketPrice <= 0 {
		return fmt.Errorf("%w: base market price %d must be positive", ErrInvalidProduct, p.BaseMarketPrice)
	}
	return nil
}

// ExportGrade reports whether the attribute mapping flags the product as
// export grade. Only a boolean true counts; any other value is ignored.
func (p Product) ExportGrade() bool {
	v, ok := p.Attributes["export_grade"]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// ParseProduct decodes and validates a JSON product descriptor.
func ParseProduct(data []byte) (Product, error) {
	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		return Product{}, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}
