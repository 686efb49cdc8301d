package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

type fixedSampler float64

func (f fixedSampler) Float64() float64 { return float64(f) }

// sequenceSampler replays values in order and then repeats the last one.
type sequenceSampler struct {
	values []float64
	i      int
}

func (s *sequenceSampler) Float64() float64 {
	v := s.values[s.i]
	if s.i < len(s.values)-1 {
		s.i++
	}
	return v
}

func TestSampleMove(t *testing.T) {
	tests := []struct {
		name string
		u    float64
		want string
	}{
		{"lowest sample", 0, "-0.1"},
		{"midpoint is no move", 0.5, "0"},
		{"three quarters", 0.75, "0.05"},
		{"one quarter", 0.25, "-0.05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sampleMove(fixedSampler(tt.u))
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("sampleMove(%v) = %s, want %s", tt.u, got, tt.want)
			}
		})
	}
}

func TestApplyMove(t *testing.T) {
	tests := []struct {
		name  string
		price string
		r     string
		want  string
	}{
		{"no move", "100", "0", "100"},
		{"max up", "100", "0.1", "110"},
		{"max down", "100", "-0.1", "90"},
		{"rounds to cents", "33.33", "0.0123", "33.74"},
		{"rounds half away from zero", "10.10", "0.05", "10.61"},
		{"clamped to upper band", "0.05", "0.1", "0.05"},
		{"clamped to lower band", "0.09", "-0.1", "0.09"},
		{"smallest price never reaches zero", "0.01", "-0.1", "0.01"},
		{"sub cent price without a cent in band", "0.004", "0.05", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyMove(decimal.RequireFromString(tt.price), decimal.RequireFromString(tt.r))
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("applyMove(%s, %s) = %s, want %s", tt.price, tt.r, got, tt.want)
			}
		})
	}
}

func TestAsset_Fluctuate(t *testing.T) {
	a := NewAsset("Stock", decimal.NewFromInt(100))
	a.Fluctuate(&sequenceSampler{values: []float64{1, 0, 0.5}})
	if !a.Price().Equal(decimal.NewFromInt(110)) {
		t.Fatalf("after first tick price = %s, want 110", a.Price())
	}
	a.Fluctuate(fixedSampler(0))
	if !a.Price().Equal(decimal.NewFromInt(99)) {
		t.Fatalf("after second tick price = %s, want 99", a.Price())
	}
	if a.Name() != "Stock" {
		t.Errorf("Name() = %q, want Stock", a.Name())
	}
}

func TestAsset_FluctuateStaysPositive(t *testing.T) {
	a := NewAsset("Crypto", decimal.NewFromInt(50))
	s := NewSampler(7)
	for i := 0; i < 5000; i++ {
		a.Fluctuate(s)
		if !a.Price().IsPositive() {
			t.Fatalf("tick %d: price %s is not positive", i, a.Price())
		}
	}
}

func TestNewSamplerIsDeterministic(t *testing.T) {
	a, b := NewSampler(42), NewSampler(42)
	for i := 0; i < 10; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d differs: %v != %v", i, x, y)
		}
	}
}

func TestProperty_FluctuationBound(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cents := rapid.Int64Range(1, 100_000_000).Draw(t, "cents")
		u := rapid.Float64Range(0, 1).Draw(t, "u")

		old := decimal.New(cents, -2)
		a := NewAsset("X", old)
		a.Fluctuate(fixedSampler(u))
		got := a.Price()

		lo := old.Mul(decimal.RequireFromString("0.9"))
		hi := old.Mul(decimal.RequireFromString("1.1"))
		if got.LessThan(lo) || got.GreaterThan(hi) {
			t.Fatalf("price %s moved to %s outside [%s, %s]", old, got, lo, hi)
		}
		if !got.Equal(got.Round(2)) {
			t.Fatalf("price %s has more than two decimals", got)
		}
		if !got.IsPositive() {
			t.Fatalf("price %s is not positive", got)
		}
	})
}
