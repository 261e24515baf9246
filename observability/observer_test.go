package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/bazaar-agents/haggle/observability"
)

// capture collects events for assertions.
type capture struct {
	events []observability.Event
}

func (c *capture) OnEvent(_ context.Context, event observability.Event) {
	c.events = append(c.events, event)
}

func roundEvent(round int) observability.Event {
	return observability.NewEvent(
		"engine.round.start",
		observability.LevelVerbose,
		"engine.Step",
		map[string]any{"round": round, "counterpart_price": 575},
	)
}

func TestNewEvent(t *testing.T) {
	before := time.Now()
	event := roundEvent(3)
	after := time.Now()

	if event.Type != "engine.round.start" {
		t.Errorf("got type %q, want %q", event.Type, "engine.round.start")
	}
	if event.Source != "engine.Step" {
		t.Errorf("got source %q, want %q", event.Source, "engine.Step")
	}
	if event.Timestamp.Before(before) || event.Timestamp.After(after) {
		t.Errorf("timestamp %v outside [%v, %v]", event.Timestamp, before, after)
	}
	if got := event.Data["round"]; got != 3 {
		t.Errorf("got round %v, want 3", got)
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level observability.Level
		want  string
	}{
		{1, "TRACE"},
		{observability.LevelVerbose, "DEBUG"},
		{observability.LevelInfo, "INFO"},
		{observability.LevelWarning, "WARN"},
		{observability.LevelError, "ERROR"},
		{21, "FATAL"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		level observability.Level
		want  slog.Level
	}{
		{observability.LevelVerbose, slog.LevelDebug},
		{observability.LevelInfo, slog.LevelInfo},
		{observability.LevelWarning, slog.LevelWarn},
		{observability.LevelError, slog.LevelError},
	}

	for _, tt := range tests {
		if got := tt.level.SlogLevel(); got != tt.want {
			t.Errorf("Level(%d).SlogLevel() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

// Levels sit at the bottom of their OTel SeverityNumber ranges; collectors
// depend on the numeric values, so they are pinned.
func TestLevel_OTelAlignment(t *testing.T) {
	tests := []struct {
		level observability.Level
		want  int
	}{
		{observability.LevelVerbose, 5},
		{observability.LevelInfo, 9},
		{observability.LevelWarning, 13},
		{observability.LevelError, 17},
	}

	for _, tt := range tests {
		if int(tt.level) != tt.want {
			t.Errorf("got %d, want %d", int(tt.level), tt.want)
		}
	}
}

func TestSlogObserver_EmitsEventFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	obs := observability.NewSlogObserver(logger)
	obs.OnEvent(context.Background(), roundEvent(3))

	output := buf.String()
	for _, want := range []string{"engine.round.start", "source=engine.Step", "round=3", "counterpart_price=575"} {
		if !strings.Contains(output, want) {
			t.Errorf("log output missing %q: %s", want, output)
		}
	}
}

func TestSlogObserver_HonorsHandlerLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    observability.Level
		minLevel slog.Level
		want     bool
	}{
		{"verbose at debug handler", observability.LevelVerbose, slog.LevelDebug, true},
		{"verbose at info handler", observability.LevelVerbose, slog.LevelInfo, false},
		{"info at info handler", observability.LevelInfo, slog.LevelInfo, true},
		{"info at warn handler", observability.LevelInfo, slog.LevelWarn, false},
		{"warning at warn handler", observability.LevelWarning, slog.LevelWarn, true},
		{"error at error handler", observability.LevelError, slog.LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
				Level: tt.minLevel,
			}))

			obs := observability.NewSlogObserver(logger)
			obs.OnEvent(context.Background(), observability.NewEvent("engine.accepted", tt.level, "engine.Step", nil))

			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("got output %v, want %v (buf: %q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestNoOpObserver(t *testing.T) {
	observability.NoOpObserver{}.OnEvent(context.Background(), roundEvent(1))
}

func TestMultiObserver_FansOut(t *testing.T) {
	first := &capture{}
	second := &capture{}

	multi := observability.NewMultiObserver(first, second)
	multi.OnEvent(context.Background(), roundEvent(2))

	for i, c := range []*capture{first, second} {
		if len(c.events) != 1 {
			t.Fatalf("observer %d received %d events, want 1", i, len(c.events))
		}
		if c.events[0].Type != "engine.round.start" {
			t.Errorf("observer %d got type %q, want %q", i, c.events[0].Type, "engine.round.start")
		}
	}
}

func TestMultiObserver_SkipsNil(t *testing.T) {
	c := &capture{}
	multi := observability.NewMultiObserver(nil, c, nil)

	multi.OnEvent(context.Background(), roundEvent(1))

	if len(c.events) != 1 {
		t.Errorf("received %d events, want 1", len(c.events))
	}
}

func TestGetObserver_Preregistered(t *testing.T) {
	for _, name := range []string{"noop", "slog"} {
		obs, err := observability.GetObserver(name)
		if err != nil {
			t.Errorf("GetObserver(%q) failed: %v", name, err)
		}
		if obs == nil {
			t.Errorf("GetObserver(%q) returned nil observer", name)
		}
	}
}

func TestGetObserver_Unknown(t *testing.T) {
	if _, err := observability.GetObserver("collector"); !errors.Is(err, observability.ErrUnknownObserver) {
		t.Errorf("got error %v, want ErrUnknownObserver", err)
	}
}

func TestRegisterObserver(t *testing.T) {
	c := &capture{}
	observability.RegisterObserver("session-capture", c)

	obs, err := observability.GetObserver("session-capture")
	if err != nil {
		t.Fatalf("GetObserver failed: %v", err)
	}
	obs.OnEvent(context.Background(), roundEvent(1))

	if len(c.events) != 1 {
		t.Errorf("received %d events, want 1", len(c.events))
	}
}
