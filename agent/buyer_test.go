package agent_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/bazaar-agents/haggle/agent"
	"github.com/bazaar-agents/haggle/core/trade"
	"github.com/bazaar-agents/haggle/session"
)

// recordingAdvisor captures the prompt it receives and replies with a
// scripted line or error.
type recordingAdvisor struct {
	reply  string
	err    error
	prompt string
	calls  int
}

func (r *recordingAdvisor) Name() string { return "recording" }

func (r *recordingAdvisor) Advise(_ context.Context, prompt string) (string, error) {
	r.calls++
	r.prompt = prompt
	return r.reply, r.err
}

// mangoes is the standard lot used across agent tests: grade A with the
// export flag, so the buyer fair price is 535 and the seller fair price
// for the same base is 535 as well.
func mangoes(base int) trade.Product {
	return trade.Product{
		Name:            "Alphonso Mangoes",
		Category:        "Fruit",
		Quantity:        10,
		QualityGrade:    "A",
		Origin:          "India",
		BaseMarketPrice: base,
		Attributes:      map[string]any{"export_grade": true},
	}
}

func buyerSnapshot(limit int, ownOffers ...int) session.Snapshot {
	return session.Snapshot{
		SessionID: "test-session",
		Party:     trade.PartyBuyer,
		Product:   mangoes(500),
		Limit:     limit,
		Rounds:    len(ownOffers),
		OwnOffers: ownOffers,
	}
}

func TestBuyer_CounterWithinBounds(t *testing.T) {
	// Base 500, grade A + export flag: fair 535, bounds [321, 450].
	tests := []struct {
		name        string
		reply       string
		wantPrice   int
		wantMessage string
	}{
		{
			name:        "in-range advisory kept verbatim",
			reply:       "I can offer ₹400.",
			wantPrice:   400,
			wantMessage: "I can offer ₹400.",
		},
		{
			name:        "advisory above budget clamps down",
			reply:       "Let's settle at ₹700, final.",
			wantPrice:   450,
			wantMessage: "Considering my budget and the value, I can only go up to ₹450.",
		},
		{
			name:        "advisory below floor clamps up",
			reply:       "₹100 is all this is worth.",
			wantPrice:   321,
			wantMessage: "This is my best and final offer given the market reality — ₹321.",
		},
		{
			name:        "advisory without a number clamps up from zero",
			reply:       "That seems steep for mangoes.",
			wantPrice:   321,
			wantMessage: "This is my best and final offer given the market reality — ₹321.",
		},
		{
			name:        "surrounding whitespace trimmed",
			reply:       "  ₹449 and not a rupee more  ",
			wantPrice:   449,
			wantMessage: "₹449 and not a rupee more",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buyer := agent.NewBuyer(&recordingAdvisor{reply: tt.reply})

			got := buyer.Respond(context.Background(), buyerSnapshot(450), 3, 600, "₹600, premium stock")

			if got.Status != trade.StatusOngoing {
				t.Errorf("got status %q, want %q", got.Status, trade.StatusOngoing)
			}
			if got.Price != tt.wantPrice {
				t.Errorf("got price %d, want %d", got.Price, tt.wantPrice)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("got message %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestBuyer_AdvisoryFallback(t *testing.T) {
	tests := []struct {
		name      string
		provider  *recordingAdvisor
		ownOffers []int
		want      string
	}{
		{
			name:     "provider error, first round",
			provider: &recordingAdvisor{err: errors.New("connection refused")},
			want:     "I can offer ₹401.", // 75% of fair 535
		},
		{
			name:      "provider error, mid negotiation",
			provider:  &recordingAdvisor{err: errors.New("connection refused")},
			ownOffers: []int{401, 430},
			want:      "I can offer ₹430.",
		},
		{
			name:     "empty reply",
			provider: &recordingAdvisor{reply: "   "},
			want:     "I can offer ₹401.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buyer := agent.NewBuyer(tt.provider)

			got := buyer.Respond(context.Background(), buyerSnapshot(450, tt.ownOffers...), len(tt.ownOffers)+1, 600, "firm at ₹600")

			if got.Message != tt.want {
				t.Errorf("got message %q, want %q", got.Message, tt.want)
			}
			if got.Status != trade.StatusOngoing {
				t.Errorf("got status %q, want %q", got.Status, trade.StatusOngoing)
			}
		})
	}
}

func TestBuyer_NilProviderIsDeterministic(t *testing.T) {
	buyer := agent.NewBuyer(nil)

	got := buyer.Respond(context.Background(), buyerSnapshot(450), 1, 600, "firm at ₹600")

	want := "I can offer ₹401."
	if got.Message != want {
		t.Errorf("got message %q, want %q", got.Message, want)
	}
	if got.Price != 401 {
		t.Errorf("got price %d, want 401", got.Price)
	}
}

func TestBuyer_AcceptanceOverride(t *testing.T) {
	// Fair 535, tolerance int(535*0.02) = 10, so the cutoff is 545.
	tests := []struct {
		name        string
		limit       int
		sellerPrice int
		wantAccept  bool
	}{
		{"within budget and fair", 450, 450, true},
		{"exactly at tolerance cutoff", 560, 545, true},
		{"one above tolerance cutoff", 560, 546, false},
		{"fair but over budget", 450, 451, false},
		{"cheap offer", 450, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &recordingAdvisor{reply: "I can offer ₹400."}
			buyer := agent.NewBuyer(provider)

			got := buyer.Respond(context.Background(), buyerSnapshot(tt.limit), 2, tt.sellerPrice, "take it or leave it")

			if tt.wantAccept {
				if got.Status != trade.StatusAccepted {
					t.Fatalf("got status %q, want %q", got.Status, trade.StatusAccepted)
				}
				if got.Price != tt.sellerPrice {
					t.Errorf("got price %d, want seller price %d", got.Price, tt.sellerPrice)
				}
				if want := "Alright, I accept ₹" + itoa(tt.sellerPrice) + "."; got.Message != want {
					t.Errorf("got message %q, want %q", got.Message, want)
				}
				if provider.calls != 0 {
					t.Errorf("advisory consulted %d times on acceptance, want 0", provider.calls)
				}
			} else if got.Status != trade.StatusOngoing {
				t.Fatalf("got status %q, want %q", got.Status, trade.StatusOngoing)
			}
		})
	}
}

func TestBuyer_ConcessionRound(t *testing.T) {
	tests := []struct {
		name        string
		sellerPrice int
		wantPrice   int
	}{
		{"ten percent under ask", 500, 450},
		{"clamped to budget", 1000, 450},
		{"clamped to floor", 100, 321},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &recordingAdvisor{reply: "unused"}
			buyer := agent.NewBuyer(provider)

			got := buyer.Respond(context.Background(), buyerSnapshot(450), 9, tt.sellerPrice, "still high")

			if got.Status != trade.StatusOngoing {
				t.Errorf("got status %q, want %q", got.Status, trade.StatusOngoing)
			}
			if got.Price != tt.wantPrice {
				t.Errorf("got price %d, want %d", got.Price, tt.wantPrice)
			}
			want := "If you can reduce by 10% to ₹" + itoa(tt.wantPrice) + ", we have a deal."
			if got.Message != want {
				t.Errorf("got message %q, want %q", got.Message, want)
			}
			if provider.calls != 0 {
				t.Errorf("advisory consulted %d times on concession round, want 0", provider.calls)
			}
		})
	}
}

func TestBuyer_ClosingRound(t *testing.T) {
	buyer := agent.NewBuyer(&recordingAdvisor{reply: "unused"})

	got := buyer.Respond(context.Background(), buyerSnapshot(450), 10, 600, "final price")

	if got.Status != trade.StatusAccepted {
		t.Fatalf("got status %q, want %q", got.Status, trade.StatusAccepted)
	}
	if got.Price != 600 {
		t.Errorf("got price %d, want 600", got.Price)
	}
	if want := "Alright, I accept ₹600."; got.Message != want {
		t.Errorf("got message %q, want %q", got.Message, want)
	}
}

func TestBuyer_CustomRoundBudget(t *testing.T) {
	buyer := agent.NewBuyer(&recordingAdvisor{reply: "unused"}, agent.WithMaxRounds(6))

	concession := buyer.Respond(context.Background(), buyerSnapshot(450), 5, 600, "still high")
	if !strings.HasPrefix(concession.Message, "If you can reduce by 10%") {
		t.Errorf("round 5 of 6 should concede, got %q", concession.Message)
	}

	closing := buyer.Respond(context.Background(), buyerSnapshot(450), 6, 600, "final price")
	if closing.Status != trade.StatusAccepted {
		t.Errorf("round 6 of 6 should accept, got status %q", closing.Status)
	}
}

func TestBuyer_PromptContent(t *testing.T) {
	provider := &recordingAdvisor{reply: "I can offer ₹400."}
	buyer := agent.NewBuyer(provider)

	buyer.Respond(context.Background(), buyerSnapshot(450, 401), 2, 480, "fresh lot, ₹480 only")

	wantFragments := []string{
		"You are a confident, firm, value-protecting buyer.",
		"negotiating for 10 x Alphonso Mangoes (quality: A)",
		"Market price: ₹500",
		"Fair price: ₹535",
		"Buyer budget: ₹450",
		"Seller offer: ₹480",
		"fresh lot, ₹480 only",
		"Your last offer: ₹401.",
		"must not exceed ₹450",
		"not go below ₹321",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(provider.prompt, fragment) {
			t.Errorf("prompt missing %q\nprompt:\n%s", fragment, provider.prompt)
		}
	}
}

func TestBuyer_OffersNeverExceedBounds(t *testing.T) {
	// Whatever number the advisory produces, the decision stays in
	// [321, 450] on every ordinary round.
	for advised := 0; advised <= 1200; advised += 7 {
		buyer := agent.NewBuyer(&recordingAdvisor{reply: "₹" + itoa(advised) + " or nothing"})

		for round := 1; round <= 8; round++ {
			got := buyer.Respond(context.Background(), buyerSnapshot(450), round, 600, "firm")
			if got.Price < 321 || got.Price > 450 {
				t.Fatalf("advised %d round %d: price %d outside [321, 450]", advised, round, got.Price)
			}
			if got.Status != trade.StatusOngoing {
				t.Fatalf("advised %d round %d: status %q, want ongoing", advised, round, got.Status)
			}
		}
	}
}

func TestBuyer_Identity(t *testing.T) {
	buyer := agent.NewBuyer(nil)

	if buyer.Name() != "buyer" {
		t.Errorf("got name %q, want %q", buyer.Name(), "buyer")
	}
	if buyer.Party() != trade.PartyBuyer {
		t.Errorf("got party %q, want %q", buyer.Party(), trade.PartyBuyer)
	}
	if got := buyer.Profile().Type; got != "assertive_value_protector" {
		t.Errorf("got profile type %q, want %q", got, "assertive_value_protector")
	}

	named := agent.NewBuyer(nil, agent.WithName("Meera"))
	if named.Name() != "Meera" {
		t.Errorf("got name %q, want %q", named.Name(), "Meera")
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
