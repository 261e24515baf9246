package api

import "errors"

var (
	// ErrSessionNotFound indicates an unknown session ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrProductNotFound indicates a catalog name with no stored product.
	ErrProductNotFound = errors.New("product not found")

	// ErrAgentNotConfigured indicates a request naming an agent when the
	// service has no registry, or naming one the registry does not hold.
	ErrAgentNotConfigured = errors.New("agent not configured")
)
