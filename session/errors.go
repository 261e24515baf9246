package session

import "errors"

var (
	// ErrInvalidParty indicates a session created for an unknown party.
	ErrInvalidParty = errors.New("invalid party")

	// ErrInvalidLimit indicates a non-positive budget or minimum price.
	ErrInvalidLimit = errors.New("invalid limit")
)
