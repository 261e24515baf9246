package trade

import "errors"

var (
	// ErrInvalidProduct indicates a product descriptor that cannot anchor
	// a negotiation (missing name, non-positive quantity or market price).
	ErrInvalidProduct = errors.New("invalid product")
)
