// Package engine implements the negotiation runtime loop that composes a
// negotiator, its session, and the advisory provider into the bounded
// offer/counteroffer cycle.
//
// The engine initializes from configuration via New, creating all subsystems
// internally. Functional options allow test overrides of any subsystem.
//
//	e, err := engine.New(&cfg)
//	turn, err := e.Step(ctx, "I can pay ₹400 for the lot")
//
// Step advances one round from a counterpart line; Run drives the loop to a
// terminal state against a Counterpart source such as a console reader.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/bazaar-agents/haggle/agent"
	"github.com/bazaar-agents/haggle/core/trade"
	"github.com/bazaar-agents/haggle/observability"
	"github.com/bazaar-agents/haggle/pricing"
	"github.com/bazaar-agents/haggle/session"
)

// Turn records one completed negotiation round: what the counterpart said,
// what the negotiator decided, and the deal status afterwards. The opening
// pitch is reported as a Turn with Round 0 and no counterpart fields.
type Turn struct {
	Round            int              `json:"round"`
	CounterpartPrice int              `json:"counterpart_price"`
	CounterpartText  string           `json:"counterpart_text,omitempty"`
	OwnPrice         int              `json:"own_price"`
	OwnText          string           `json:"own_text"`
	Status           trade.DealStatus `json:"status"`
}

// Result holds the outcome of a negotiation: final status, the settled
// price (the last own offer when unsettled, zero if none was ever made),
// completed rounds, and the per-round records.
type Result struct {
	Status     trade.DealStatus `json:"status"`
	FinalPrice int              `json:"final_price"`
	Rounds     int              `json:"rounds"`
	Turns      []Turn           `json:"turns,omitempty"`
}

// Counterpart supplies the opposing side's lines during a driven Run. Reply
// receives the negotiator's latest price and message (zero and empty before
// any own offer) and returns the counterpart's next line. Returning ErrExit
// or io.EOF ends the negotiation as abandonment.
type Counterpart interface {
	Reply(ctx context.Context, price int, message string) (string, error)
}

// Option configures an Engine after config-driven initialization.
// Applied by New after cold start, so overrides replace config-created
// defaults.
type Option func(*Engine)

// WithNegotiator overrides the config-created negotiator.
func WithNegotiator(n agent.Negotiator) Option {
	return func(e *Engine) { e.negotiator = n }
}

// WithRegistry overrides the config-created agent registry.
func WithRegistry(r *agent.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithSession overrides the config-created session.
func WithSession(s session.Session) Option {
	return func(e *Engine) { e.session = s }
}

// WithObserver overrides the config-resolved observer.
func WithObserver(o observability.Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// Engine is the single-negotiation runtime that executes the bounded
// offer/counteroffer loop. It is not safe for concurrent use; callers that
// share an engine across goroutines must serialize access.
type Engine struct {
	negotiator agent.Negotiator
	registry   *agent.Registry
	session    session.Session
	observer   observability.Observer
	maxRounds  int
	status     trade.DealStatus
	turns      []Turn
	opened     bool
}

// New creates an Engine from configuration. Subsystems (negotiator, session)
// are initialized from their respective config sections. Functional options
// applied after initialization can override any subsystem for testing.
func New(cfg *Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	negotiator, err := agent.New(&agent.Config{
		Party:     cfg.Party,
		Persona:   cfg.Persona,
		MaxRounds: cfg.MaxRounds,
		Advisor:   cfg.Advisor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create negotiator: %w", err)
	}

	sesh, err := session.New(cfg.Party, cfg.Product, cfg.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	reg := agent.NewRegistry()
	for name, agentCfg := range cfg.Agents {
		if err := reg.Register(name, agentCfg); err != nil {
			return nil, fmt.Errorf("failed to register agent %q: %w", name, err)
		}
	}

	var observer observability.Observer = observability.NewSlogObserver(slog.Default())
	if cfg.Observer != "" {
		observer, err = observability.GetObserver(cfg.Observer)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve observer: %w", err)
		}
	}

	e := &Engine{
		negotiator: negotiator,
		registry:   reg,
		session:    sesh,
		observer:   observer,
		maxRounds:  cfg.MaxRounds,
		status:     trade.StatusOngoing,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Registry returns the engine's agent registry.
func (e *Engine) Registry() *agent.Registry {
	return e.registry
}

// Session returns the engine's negotiation session.
func (e *Engine) Session() session.Session {
	return e.session
}

// Status returns the negotiation's current deal status.
func (e *Engine) Status() trade.DealStatus {
	return e.status
}

// IsExit reports whether a counterpart line signals abandonment.
func IsExit(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "exit", "quit":
		return true
	}
	return false
}

// Open emits the negotiator's unsolicited opening pitch, if it makes one.
// It reports false for negotiators that do not open (buyers), on repeated
// calls, and once any round has been played.
func (e *Engine) Open(ctx context.Context) (Turn, bool) {
	opener, ok := e.negotiator.(agent.Opener)
	if !ok || e.opened || e.status.Terminal() || e.session.Rounds() > 0 {
		return Turn{}, false
	}

	price, message := opener.Opening(e.session.Product())
	e.session.RecordOpening(price, message)
	e.opened = true

	e.observer.OnEvent(ctx, observability.NewEvent(EventOpening, observability.LevelInfo, "engine.Open",
		map[string]any{"price": price}))

	return Turn{OwnPrice: price, OwnText: message, Status: trade.StatusOngoing}, true
}

// Step advances the negotiation by one round from a counterpart line. The
// line's leading number is the counterpart's offer; a line with no number
// defaults to the base market price when the counterpart sells, and to zero
// when the counterpart buys. Returns ErrSettled after a terminal state,
// ErrExit on an abandonment line (recording nothing), and ErrNoDeal when
// the round budget is already exhausted.
func (e *Engine) Step(ctx context.Context, input string) (Turn, error) {
	if e.status.Terminal() {
		return Turn{}, ErrSettled
	}

	if IsExit(input) {
		e.status = trade.StatusRejected
		e.observer.OnEvent(ctx, observability.NewEvent(EventExit, observability.LevelInfo, "engine.Step",
			map[string]any{"rounds": e.session.Rounds()}))
		return Turn{}, ErrExit
	}

	if e.session.Rounds() >= e.maxRounds {
		e.observer.OnEvent(ctx, observability.NewEvent(EventNoDeal, observability.LevelWarning, "engine.Step",
			map[string]any{"rounds": e.session.Rounds()}))
		return Turn{}, ErrNoDeal
	}

	if err := ctx.Err(); err != nil {
		return Turn{}, err
	}

	snap := e.session.Snapshot()
	price := pricing.Extract(input)
	if price == 0 {
		price = e.counterpartDefault()
	}
	round := snap.Rounds + 1

	e.observer.OnEvent(ctx, observability.NewEvent(EventRoundStart, observability.LevelVerbose, "engine.Step",
		map[string]any{"round": round, "counterpart_price": price}))

	decision := e.negotiator.Respond(ctx, snap, round, price, input)
	e.session.RecordRound(price, input, decision.Price, decision.Message)
	e.status = decision.Status

	if decision.Status == trade.StatusAccepted {
		e.observer.OnEvent(ctx, observability.NewEvent(EventAccepted, observability.LevelInfo, "engine.Step",
			map[string]any{"round": round, "price": decision.Price}))
	}

	turn := Turn{
		Round:            round,
		CounterpartPrice: price,
		CounterpartText:  input,
		OwnPrice:         decision.Price,
		OwnText:          decision.Message,
		Status:           decision.Status,
	}
	e.turns = append(e.turns, turn)

	e.observer.OnEvent(ctx, observability.NewEvent(EventRoundComplete, observability.LevelVerbose, "engine.Step",
		map[string]any{"round": round, "price": decision.Price, "status": string(decision.Status)}))

	return turn, nil
}

// Run drives the negotiation to a terminal state against a counterpart:
// opening pitch first if the negotiator makes one, then alternating
// counterpart lines and negotiator decisions. Abandonment (ErrExit or
// io.EOF from the counterpart, or an exit line) yields a Rejected result
// and a nil error; an exhausted round budget yields the result so far and
// ErrNoDeal.
func (e *Engine) Run(ctx context.Context, counterpart Counterpart) (*Result, error) {
	e.observer.OnEvent(ctx, observability.NewEvent(EventRunStart, observability.LevelInfo, "engine.Run",
		map[string]any{"party": string(e.session.Party()), "max_rounds": e.maxRounds}))

	var lastPrice int
	var lastMessage string
	if turn, ok := e.Open(ctx); ok {
		lastPrice, lastMessage = turn.OwnPrice, turn.OwnText
	}

	for e.session.Rounds() < e.maxRounds && !e.status.Terminal() {
		if err := ctx.Err(); err != nil {
			return e.Result(), err
		}

		input, err := counterpart.Reply(ctx, lastPrice, lastMessage)
		if errors.Is(err, ErrExit) || errors.Is(err, io.EOF) {
			e.status = trade.StatusRejected
			e.observer.OnEvent(ctx, observability.NewEvent(EventExit, observability.LevelInfo, "engine.Run",
				map[string]any{"rounds": e.session.Rounds()}))
			return e.Result(), nil
		}
		if err != nil {
			return e.Result(), fmt.Errorf("counterpart reply failed: %w", err)
		}

		turn, err := e.Step(ctx, input)
		if errors.Is(err, ErrExit) {
			return e.Result(), nil
		}
		if err != nil {
			return e.Result(), err
		}

		lastPrice, lastMessage = turn.OwnPrice, turn.OwnText
	}

	if !e.status.Terminal() {
		e.observer.OnEvent(ctx, observability.NewEvent(EventNoDeal, observability.LevelWarning, "engine.Run",
			map[string]any{"rounds": e.session.Rounds()}))
		return e.Result(), ErrNoDeal
	}

	return e.Result(), nil
}

// Result returns the negotiation outcome so far.
func (e *Engine) Result() *Result {
	snap := e.session.Snapshot()

	final := 0
	if last, ok := snap.LastOwnOffer(); ok {
		final = last
	}

	return &Result{
		Status:     e.status,
		FinalPrice: final,
		Rounds:     snap.Rounds,
		Turns:      slices.Clone(e.turns),
	}
}

// counterpartDefault is the price assumed when a counterpart line carries no
// usable number: a counterpart selling to us is presumed to ask the market
// price, a counterpart buying from us to have offered nothing.
func (e *Engine) counterpartDefault() int {
	if e.session.Party() == trade.PartyBuyer {
		return e.session.Product().BaseMarketPrice
	}
	return 0
}
