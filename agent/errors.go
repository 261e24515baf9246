package agent

import "errors"

var (
	// ErrInvalidParty indicates a negotiator config naming an unknown party.
	ErrInvalidParty = errors.New("invalid negotiating party")

	// ErrUnknownPersona indicates a persona name with no registered profile.
	ErrUnknownPersona = errors.New("unknown persona")

	// ErrAgentNotFound indicates a registry lookup for an unregistered name.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrAgentExists indicates an attempt to register a duplicate agent name.
	ErrAgentExists = errors.New("agent already registered")

	// ErrEmptyAgentName indicates a registration with an empty name.
	ErrEmptyAgentName = errors.New("agent name is empty")
)
