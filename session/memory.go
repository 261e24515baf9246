package session

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/bazaar-agents/haggle/core/trade"
)

type memorySession struct {
	id      string
	party   trade.Party
	product trade.Product
	limit   int

	mu          sync.RWMutex
	rounds      int
	counterpart []int
	own         []int
	transcript  []trade.Message
}

// New creates an in-memory Session for the given party, product, and limit.
// The session is assigned a unique UUIDv7 identifier.
func New(party trade.Party, product trade.Product, limit int) (Session, error) {
	if !party.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidParty, party)
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	return &memorySession{
		id:      uuid.Must(uuid.NewV7()).String(),
		party:   party,
		product: product,
		limit:   limit,
	}, nil
}

func (s *memorySession) ID() string {
	return s.id
}

func (s *memorySession) Party() trade.Party {
	return s.party
}

func (s *memorySession) Product() trade.Product {
	return s.product
}

func (s *memorySession) Limit() int {
	return s.limit
}

func (s *memorySession) Rounds() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rounds
}

func (s *memorySession) RecordOpening(price int, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.own = append(s.own, price)
	s.transcript = append(s.transcript, trade.NewMessage(s.party, text))
}

func (s *memorySession) RecordRound(counterpartPrice int, counterpartText string, ownPrice int, ownText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rounds++
	s.counterpart = append(s.counterpart, counterpartPrice)
	s.transcript = append(s.transcript, trade.NewMessage(s.party.Counterpart(), counterpartText))
	s.own = append(s.own, ownPrice)
	s.transcript = append(s.transcript, trade.NewMessage(s.party, ownText))
}

func (s *memorySession) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		SessionID:         s.id,
		Party:             s.party,
		Product:           s.product,
		Limit:             s.limit,
		Rounds:            s.rounds,
		CounterpartOffers: slices.Clone(s.counterpart),
		OwnOffers:         slices.Clone(s.own),
		Transcript:        slices.Clone(s.transcript),
	}
}
