package engine

import "errors"

var (
	// ErrNoDeal is returned when the round budget is exhausted without
	// either side accepting. The session remains readable for reporting.
	ErrNoDeal = errors.New("no deal reached")

	// ErrExit signals that the counterpart abandoned the negotiation.
	ErrExit = errors.New("counterpart exited")

	// ErrSettled is returned by Step once the negotiation has reached a
	// terminal state; the session can no longer be advanced.
	ErrSettled = errors.New("negotiation already settled")

	// ErrInvalidConfig indicates an engine configuration that cannot start
	// a negotiation.
	ErrInvalidConfig = errors.New("invalid engine config")
)
