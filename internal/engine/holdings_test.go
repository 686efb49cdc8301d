package engine

import (
	"errors"
	"reflect"
	"testing"
)

func TestHoldings_AddRemove(t *testing.T) {
	h := newHoldings()
	h.add("Stock", 2)
	h.add("Crypto", 5)
	h.add("Stock", 3)
	h.add("Ignored", 0)

	if got := h.Quantity("Stock"); got != 5 {
		t.Errorf("Quantity(Stock) = %d, want 5", got)
	}
	if h.Has("Ignored") {
		t.Errorf("zero quantity add created an entry")
	}
	if got, want := h.Names(), []string{"Stock", "Crypto"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	if err := h.remove("Stock", 5); err != nil {
		t.Fatalf("remove(Stock, 5) error = %v", err)
	}
	if h.Has("Stock") {
		t.Errorf("entry kept after reaching zero")
	}
	if _, ok := h.Snapshot()["Stock"]; ok {
		t.Errorf("snapshot still lists Stock")
	}
	if got, want := h.Names(), []string{"Crypto"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestHoldings_RemoveTooMuch(t *testing.T) {
	h := newHoldings()
	h.add("Crypto", 1)

	tests := []struct {
		name  string
		asset string
		qty   int64
	}{
		{"more than held", "Crypto", 2},
		{"never held", "Stock", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.remove(tt.asset, tt.qty)
			if !errors.Is(err, ErrInsufficientHoldings) {
				t.Fatalf("remove() error = %v, want %v", err, ErrInsufficientHoldings)
			}
			if got := h.Quantity("Crypto"); got != 1 {
				t.Errorf("Quantity(Crypto) = %d after failed remove, want 1", got)
			}
			if h.Has("Stock") {
				t.Errorf("failed remove created an entry")
			}
		})
	}
}

func TestHoldings_SnapshotIsCopy(t *testing.T) {
	h := newHoldings()
	h.add("Stock", 1)
	snap := h.Snapshot()
	snap["Stock"] = 99
	if h.Quantity("Stock") != 1 {
		t.Errorf("mutating snapshot changed holdings")
	}
}
