package observability

import "context"

// NoOpObserver discards all events. Useful as a default when callers do
// not care about instrumentation.
type NoOpObserver struct{}

func (NoOpObserver) OnEvent(ctx context.Context, event Event) {}
