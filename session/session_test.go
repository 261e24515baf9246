package session_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/bazaar-agents/haggle/core/trade"
	"github.com/bazaar-agents/haggle/session"
)

func testProduct() trade.Product {
	return trade.Product{
		Name:            "Alphonso Mangoes",
		Category:        "Fruit",
		Quantity:        10,
		QualityGrade:    "A",
		Origin:          "India",
		BaseMarketPrice: 500,
		Attributes:      map[string]any{"export_grade": true},
	}
}

func newBuyerSession(t *testing.T) session.Session {
	t.Helper()
	s, err := session.New(trade.PartyBuyer, testProduct(), 450)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestNew(t *testing.T) {
	s := newBuyerSession(t)

	if s.ID() == "" {
		t.Error("session ID should not be empty")
	}
	if s.Party() != trade.PartyBuyer {
		t.Errorf("Party() = %s, want buyer", s.Party())
	}
	if s.Limit() != 450 {
		t.Errorf("Limit() = %d, want 450", s.Limit())
	}
	if s.Rounds() != 0 {
		t.Errorf("new session has %d rounds, want 0", s.Rounds())
	}
	if s.Product().Name != "Alphonso Mangoes" {
		t.Errorf("Product().Name = %q", s.Product().Name)
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		party   trade.Party
		product trade.Product
		limit   int
		wantErr error
	}{
		{"invalid party", trade.Party("broker"), testProduct(), 450, session.ErrInvalidParty},
		{"zero limit", trade.PartyBuyer, testProduct(), 0, session.ErrInvalidLimit},
		{"negative limit", trade.PartySeller, testProduct(), -10, session.ErrInvalidLimit},
		{"invalid product", trade.PartyBuyer, trade.Product{}, 450, trade.ErrInvalidProduct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := session.New(tt.party, tt.product, tt.limit)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSession_ID_Unique(t *testing.T) {
	s1 := newBuyerSession(t)
	s2 := newBuyerSession(t)

	if s1.ID() == s2.ID() {
		t.Errorf("two sessions should have different IDs, both got %q", s1.ID())
	}
}

func TestSession_RecordRound(t *testing.T) {
	s := newBuyerSession(t)

	s.RecordRound(690, "These are premium mangoes.", 430, "My offer is ₹430.")

	if s.Rounds() != 1 {
		t.Fatalf("Rounds() = %d, want 1", s.Rounds())
	}

	snap := s.Snapshot()
	if len(snap.CounterpartOffers) != 1 || snap.CounterpartOffers[0] != 690 {
		t.Errorf("CounterpartOffers = %v, want [690]", snap.CounterpartOffers)
	}
	if len(snap.OwnOffers) != 1 || snap.OwnOffers[0] != 430 {
		t.Errorf("OwnOffers = %v, want [430]", snap.OwnOffers)
	}
	if len(snap.Transcript) != 2 {
		t.Fatalf("Transcript has %d messages, want 2", len(snap.Transcript))
	}
	if snap.Transcript[0].From != trade.PartySeller {
		t.Errorf("first message from %s, want seller (counterpart first)", snap.Transcript[0].From)
	}
	if snap.Transcript[1].From != trade.PartyBuyer {
		t.Errorf("second message from %s, want buyer", snap.Transcript[1].From)
	}
}

func TestSession_Invariant_AfterNRounds(t *testing.T) {
	s := newBuyerSession(t)
	const n = 7

	for i := 0; i < n; i++ {
		s.RecordRound(690-i*10, "counter", 430+i*5, "offer")
	}

	snap := s.Snapshot()
	if snap.Rounds != n {
		t.Errorf("Rounds = %d, want %d", snap.Rounds, n)
	}
	if len(snap.CounterpartOffers) != n {
		t.Errorf("len(CounterpartOffers) = %d, want %d", len(snap.CounterpartOffers), n)
	}
	if len(snap.OwnOffers) != n {
		t.Errorf("len(OwnOffers) = %d, want %d", len(snap.OwnOffers), n)
	}
	if len(snap.Transcript) != 2*n {
		t.Errorf("len(Transcript) = %d, want %d", len(snap.Transcript), 2*n)
	}
}

func TestSession_RecordOpening_LeadsOwnOffers(t *testing.T) {
	s, err := session.New(trade.PartySeller, testProduct(), 460)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	s.RecordOpening(690, "These are premium Alphonso Mangoes. I can offer them for ₹690.")
	s.RecordRound(400, "Too steep for me.", 650, "I can do ₹650.")

	snap := s.Snapshot()
	if snap.Rounds != 1 {
		t.Errorf("Rounds = %d, want 1 (opening does not advance the counter)", snap.Rounds)
	}
	if len(snap.OwnOffers) != 2 {
		t.Fatalf("len(OwnOffers) = %d, want 2 (opening leads by one)", len(snap.OwnOffers))
	}
	if snap.OwnOffers[0] != 690 {
		t.Errorf("OwnOffers[0] = %d, want opening 690", snap.OwnOffers[0])
	}
	if len(snap.CounterpartOffers) != 1 {
		t.Errorf("len(CounterpartOffers) = %d, want 1", len(snap.CounterpartOffers))
	}
	if snap.Transcript[0].From != trade.PartySeller {
		t.Errorf("opening message from %s, want seller", snap.Transcript[0].From)
	}
}

func TestSnapshot_LastOwnOffer(t *testing.T) {
	s := newBuyerSession(t)

	if _, ok := s.Snapshot().LastOwnOffer(); ok {
		t.Error("LastOwnOffer() = ok on empty history")
	}

	s.RecordRound(690, "counter", 430, "offer")
	s.RecordRound(600, "counter", 445, "offer")

	got, ok := s.Snapshot().LastOwnOffer()
	if !ok || got != 445 {
		t.Errorf("LastOwnOffer() = %d, %v, want 445, true", got, ok)
	}

	cp, ok := s.Snapshot().LastCounterpartOffer()
	if !ok || cp != 600 {
		t.Errorf("LastCounterpartOffer() = %d, %v, want 600, true", cp, ok)
	}
}

func TestSnapshot_DefensiveCopy(t *testing.T) {
	s := newBuyerSession(t)
	s.RecordRound(690, "counter", 430, "offer")

	snap := s.Snapshot()
	snap.OwnOffers[0] = 1
	snap.CounterpartOffers[0] = 1
	snap.Transcript[0] = trade.NewMessage(trade.PartyBuyer, "tampered")
	snap.OwnOffers = append(snap.OwnOffers, 999)

	fresh := s.Snapshot()
	if fresh.OwnOffers[0] != 430 {
		t.Errorf("OwnOffers[0] = %d after tampering, want 430", fresh.OwnOffers[0])
	}
	if fresh.CounterpartOffers[0] != 690 {
		t.Errorf("CounterpartOffers[0] = %d after tampering, want 690", fresh.CounterpartOffers[0])
	}
	if fresh.Transcript[0].Text != "counter" {
		t.Errorf("Transcript[0].Text = %q after tampering", fresh.Transcript[0].Text)
	}
	if len(fresh.OwnOffers) != 1 {
		t.Errorf("len(OwnOffers) = %d after append to snapshot, want 1", len(fresh.OwnOffers))
	}
}

func TestSession_Concurrent_RecordAndSnapshot(t *testing.T) {
	s := newBuyerSession(t)
	const n = 100

	var wg sync.WaitGroup
	wg.Add(2 * n)

	for range n {
		go func() {
			defer wg.Done()
			s.RecordRound(690, "counter", 430, "offer")
		}()
		go func() {
			defer wg.Done()
			snap := s.Snapshot()
			// Offer sequences never drift apart, even mid-storm.
			if len(snap.CounterpartOffers) != len(snap.OwnOffers) {
				t.Errorf("offer sequences diverged: %d counterpart vs %d own",
					len(snap.CounterpartOffers), len(snap.OwnOffers))
			}
		}()
	}
	wg.Wait()

	if got := s.Rounds(); got != n {
		t.Errorf("Rounds() = %d, want %d", got, n)
	}
}
