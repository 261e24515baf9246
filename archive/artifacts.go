package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bazaar-agents/haggle/core/trade"
	"github.com/bazaar-agents/haggle/session"
)

// Transcript is the archived record of a finished negotiation: the session
// state frozen at its end plus the outcome.
type Transcript struct {
	SessionID         string           `json:"session_id"`
	Party             trade.Party      `json:"party"`
	Product           trade.Product    `json:"product"`
	Limit             int              `json:"limit"`
	Status            trade.DealStatus `json:"status"`
	FinalPrice        int              `json:"final_price"`
	Rounds            int              `json:"rounds"`
	CounterpartOffers []int            `json:"counterpart_offers"`
	OwnOffers         []int            `json:"own_offers"`
	Messages          []trade.Message  `json:"messages"`
	ArchivedAt        time.Time        `json:"archived_at"`
}

// NewTranscript freezes a session snapshot and its outcome into an
// archivable transcript.
func NewTranscript(snap session.Snapshot, status trade.DealStatus, finalPrice int) Transcript {
	return Transcript{
		SessionID:         snap.SessionID,
		Party:             snap.Party,
		Product:           snap.Product,
		Limit:             snap.Limit,
		Status:            status,
		FinalPrice:        finalPrice,
		Rounds:            snap.Rounds,
		CounterpartOffers: snap.CounterpartOffers,
		OwnOffers:         snap.OwnOffers,
		Messages:          snap.Transcript,
		ArchivedAt:        time.Now().UTC(),
	}
}

// SaveTranscript archives a transcript under its session ID.
func SaveTranscript(ctx context.Context, store Store, t Transcript) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: transcript %s: %v", ErrSaveFailed, t.SessionID, err)
	}
	return store.Save(ctx, Entry{Key: TranscriptKey(t.SessionID), Value: data})
}

// LoadTranscript reads an archived transcript by session ID.
func LoadTranscript(ctx context.Context, store Store, sessionID string) (Transcript, error) {
	entries, err := store.Load(ctx, TranscriptKey(sessionID))
	if err != nil {
		return Transcript{}, err
	}

	var t Transcript
	if err := json.Unmarshal(entries[0].Value, &t); err != nil {
		return Transcript{}, fmt.Errorf("%w: transcript %s: %v", ErrLoadFailed, sessionID, err)
	}
	return t, nil
}

// SaveProduct archives a product descriptor under a catalog name.
func SaveProduct(ctx context.Context, store Store, name string, p trade.Product) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: product %s: %v", ErrSaveFailed, name, err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: product %s: %v", ErrSaveFailed, name, err)
	}
	return store.Save(ctx, Entry{Key: ProductKey(name), Value: data})
}

// LoadProduct reads and validates a product descriptor by catalog name.
func LoadProduct(ctx context.Context, store Store, name string) (trade.Product, error) {
	entries, err := store.Load(ctx, ProductKey(name))
	if err != nil {
		return trade.Product{}, err
	}
	return trade.ParseProduct(entries[0].Value)
}
