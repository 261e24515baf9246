package observability

import "errors"

// ErrUnknownObserver is returned when a config names an observer that was
// never registered.
var ErrUnknownObserver = errors.New("unknown observer")
