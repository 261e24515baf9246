package advisor

import "errors"

var (
	// ErrUnknownKind indicates a config kind with no registered factory.
	ErrUnknownKind = errors.New("unknown advisor kind")

	// ErrKindExists indicates an attempt to register a duplicate kind.
	ErrKindExists = errors.New("advisor kind already registered")

	// ErrEmptyKind indicates a registration with an empty kind name.
	ErrEmptyKind = errors.New("advisor kind is empty")

	// ErrEmptyReply indicates the provider returned no usable text.
	ErrEmptyReply = errors.New("empty advisory reply")

	// ErrUnavailable indicates the provider endpoint could not serve the
	// request (bad status, unreachable, misconfigured).
	ErrUnavailable = errors.New("advisory provider unavailable")
)
