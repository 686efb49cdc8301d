package repl

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
	"tradesim/internal/engine"
)

// flatSampler keeps every price where it is.
type flatSampler struct{}

func (flatSampler) Float64() float64 { return 0.5 }

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.NewEngine(engine.DefaultAssetConfigs(), nil,
		engine.WithSampler(flatSampler{}),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func runSession(t *testing.T, e *engine.Engine, input string, opts ...SessionOption) string {
	t.Helper()
	var out bytes.Buffer
	s := NewSession(e, strings.NewReader(input), &out, NewMoneyFormatter("USD"), opts...)
	if err := s.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return out.String()
}

func TestSession_Script(t *testing.T) {
	e := newTestEngine(t)
	script := strings.Join([]string{
		"view",
		"buy", "stock", "2",
		"view",
		"sell", "CRYPTO", "1",
		"buy", "Gold",
		"sell", "Stock", "abc",
		"buy", "Crypto", "0",
		"buy", "Crypto", "100",
		"dance",
		"EXIT",
		"view",
	}, "\n")
	out := runSession(t, e, script, WithPrompts(false))

	wants := []string{
		"\nCurrent Prices:\nStock: $100.00\nCrypto: $50.00\n",
		"\nYour Portfolio:\nCash: $1,000.00\nTotal Portfolio Value: $1,000.00\n\n",
		"Bought 2 of Stock\n",
		"\nYour Portfolio:\nCash: $800.00\nStock: 2 units at $100.00 each (Total: $200.00)\nTotal Portfolio Value: $1,000.00\n\n",
		"Not enough holdings to complete the sale\n",
		"Invalid asset name\n",
		"Invalid amount\n",
		"Not enough cash to complete the purchase\n",
		"Invalid action\n",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "Invalid amount"); n != 2 {
		t.Errorf("Invalid amount printed %d times, want 2", n)
	}
	if strings.Contains(out, "Do you want to") {
		t.Errorf("prompts written with prompts disabled:\n%s", out)
	}
	// one round per action, the trailing view is never read
	if got := e.CurrentTick(); got != 10 {
		t.Errorf("CurrentTick() = %d, want 10", got)
	}
	if got := len(e.Journal()); got != 3 {
		t.Errorf("len(Journal()) = %d, want 3", got)
	}
}

func TestSession_Prompts(t *testing.T) {
	e := newTestEngine(t)
	out := runSession(t, e, "sell\nStock\n5\nexit\n")

	for _, want := range []string{
		"\nDo you want to [buy], [sell], [view] portfolio, or [exit]? ",
		"Which asset do you want to sell (Stock/Crypto)? ",
		"How many units of Stock do you want to sell? ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing prompt %q:\n%s", want, out)
		}
	}
}

func TestSession_EndOfInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ticks int
	}{
		{"empty", "", 1},
		{"after action", "buy\n", 1},
		{"after asset", "buy\nStock", 1},
		{"after full round", "view\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			out := runSession(t, e, tt.input, WithPrompts(false))
			if strings.Contains(out, "Bought") {
				t.Errorf("order executed without an amount:\n%s", out)
			}
			if got := e.CurrentTick(); got != tt.ticks {
				t.Errorf("CurrentTick() = %d, want %d", got, tt.ticks)
			}
		})
	}
}
