// Package api exposes negotiations over connect RPC: starting sessions,
// exchanging counterpart lines round by round, and fetching transcripts.
// Message types are plain structs carried by a JSON codec, so no generated
// protobuf bindings are involved.
package api

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"connectrpc.com/connect"

	"github.com/bazaar-agents/haggle/agent"
	"github.com/bazaar-agents/haggle/archive"
	"github.com/bazaar-agents/haggle/core/trade"
	"github.com/bazaar-agents/haggle/engine"
	"github.com/bazaar-agents/haggle/observability"
	"github.com/bazaar-agents/haggle/report"
)

// Service implements the negotiation RPC surface. Each StartNegotiation call
// derives a session config from the service's base configuration plus the
// request's overrides and runs it in its own engine; exchanges on a session
// serialize on a per-session lock because engines are not concurrency-safe.
type Service struct {
	base     engine.Config
	registry *agent.Registry
	products *archive.Catalog
	store    archive.Store
	observer observability.Observer

	mu       sync.RWMutex
	sessions map[string]*liveSession
}

type liveSession struct {
	mu  sync.Mutex
	eng *engine.Engine
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithRegistry supplies named agent configurations for requests that select
// a negotiator by name.
func WithRegistry(r *agent.Registry) ServiceOption {
	return func(s *Service) { s.registry = r }
}

// WithProductCatalog supplies the catalog for requests that name a product
// instead of embedding one.
func WithProductCatalog(c *archive.Catalog) ServiceOption {
	return func(s *Service) { s.products = c }
}

// WithArchive supplies a store for write-through transcript archiving when a
// session reaches a terminal status.
func WithArchive(store archive.Store) ServiceOption {
	return func(s *Service) { s.store = store }
}

// WithObserver overrides the default no-op observer.
func WithObserver(o observability.Observer) ServiceOption {
	return func(s *Service) { s.observer = o }
}

// NewService creates a Service around a base engine configuration. The base
// supplies defaults (product, party, limit, advisor) that individual
// StartNegotiation requests override per session.
func NewService(base *engine.Config, opts ...ServiceOption) *Service {
	s := &Service{
		base:     *base,
		registry: agent.NewRegistry(),
		observer: observability.NoOpObserver{},
		sessions: make(map[string]*liveSession),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartNegotiation opens a session and returns its ID, along with the
// opening pitch when the configured negotiator makes one.
func (s *Service) StartNegotiation(ctx context.Context, req *connect.Request[StartNegotiationRequest]) (*connect.Response[StartNegotiationResponse], error) {
	msg := req.Msg

	cfg := s.base
	overlay := engine.Config{
		Party:     msg.Party,
		Limit:     msg.Limit,
		MaxRounds: msg.MaxRounds,
		Persona:   msg.Persona,
	}
	if msg.Product != nil {
		overlay.Product = *msg.Product
	}
	if msg.Advisor != nil {
		overlay.Advisor = *msg.Advisor
	}
	cfg.Merge(&overlay)

	if msg.Product == nil && msg.ProductName != "" {
		product, err := s.catalogProduct(ctx, msg.ProductName)
		if err != nil {
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		cfg.Product = product
	}

	opts := []engine.Option{engine.WithObserver(s.observer)}
	if msg.Agent != "" {
		negotiator, err := s.registry.Get(msg.Agent)
		if err != nil {
			return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("%w: %s", ErrAgentNotConfigured, msg.Agent))
		}
		cfg.Party = negotiator.Party()
		opts = append(opts, engine.WithNegotiator(negotiator))
	}

	eng, err := engine.New(&cfg, opts...)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	res := &StartNegotiationResponse{SessionID: eng.Session().ID()}
	if turn, ok := eng.Open(ctx); ok {
		res.Opening = &turn
	}

	s.mu.Lock()
	s.sessions[res.SessionID] = &liveSession{eng: eng}
	s.mu.Unlock()

	s.observer.OnEvent(ctx, observability.NewEvent(EventSessionStart, observability.LevelInfo, "api.StartNegotiation",
		map[string]any{"session_id": res.SessionID, "party": string(cfg.Party), "product": cfg.Product.Name}))

	return connect.NewResponse(res), nil
}

// Exchange advances a session by one counterpart line. An abandonment line
// settles the session as rejected and yields no turn; an already settled
// session fails with CodeFailedPrecondition, an exhausted round budget with
// CodeResourceExhausted.
func (s *Service) Exchange(ctx context.Context, req *connect.Request[ExchangeRequest]) (*connect.Response[ExchangeResponse], error) {
	live, err := s.session(req.Msg.SessionID)
	if err != nil {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	turn, err := live.eng.Step(ctx, req.Msg.Input)
	switch {
	case errors.Is(err, engine.ErrExit):
		s.archiveTerminal(ctx, live.eng)
		return connect.NewResponse(&ExchangeResponse{Status: live.eng.Status()}), nil
	case errors.Is(err, engine.ErrNoDeal):
		return nil, connect.NewError(connect.CodeResourceExhausted, err)
	case errors.Is(err, engine.ErrSettled):
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	case err != nil:
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	if turn.Status.Terminal() {
		s.archiveTerminal(ctx, live.eng)
	}

	s.observer.OnEvent(ctx, observability.NewEvent(EventExchange, observability.LevelVerbose, "api.Exchange",
		map[string]any{"session_id": req.Msg.SessionID, "round": turn.Round, "status": string(turn.Status)}))

	return connect.NewResponse(&ExchangeResponse{Turn: &turn, Status: turn.Status}), nil
}

// GetTranscript returns a session's state: the snapshot, the outcome so far,
// and a summary once the session is terminal.
func (s *Service) GetTranscript(ctx context.Context, req *connect.Request[GetTranscriptRequest]) (*connect.Response[GetTranscriptResponse], error) {
	live, err := s.session(req.Msg.SessionID)
	if err != nil {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}

	live.mu.Lock()
	defer live.mu.Unlock()

	snap := live.eng.Session().Snapshot()
	result := live.eng.Result()

	res := &GetTranscriptResponse{
		Snapshot:   snap,
		Status:     result.Status,
		FinalPrice: result.FinalPrice,
		Rounds:     result.Rounds,
	}
	if result.Status.Terminal() {
		sum := report.Build(snap, result.Status, result.FinalPrice)
		res.Summary = &sum
	}

	return connect.NewResponse(res), nil
}

func (s *Service) session(id string) (*liveSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	live, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return live, nil
}

// catalogProduct resolves a product by catalog name, reading through to the
// archive on a miss.
func (s *Service) catalogProduct(ctx context.Context, name string) (trade.Product, error) {
	if s.products == nil {
		return trade.Product{}, fmt.Errorf("%w: %s (no catalog configured)", ErrProductNotFound, name)
	}

	product, err := s.products.Resolve(ctx, name)
	if err != nil {
		return trade.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, name)
	}
	return product, nil
}

// archiveTerminal writes a finished session through to the archive store.
// Failures surface to the observer, not the caller; the negotiation outcome
// stands regardless.
func (s *Service) archiveTerminal(ctx context.Context, eng *engine.Engine) {
	if s.store == nil {
		return
	}

	result := eng.Result()
	t := archive.NewTranscript(eng.Session().Snapshot(), result.Status, result.FinalPrice)
	if err := archive.SaveTranscript(ctx, s.store, t); err != nil {
		s.observer.OnEvent(ctx, observability.NewEvent(EventArchiveFailed, observability.LevelWarning, "api.Exchange",
			map[string]any{"session_id": t.SessionID, "error": err.Error()}))
	}
}
