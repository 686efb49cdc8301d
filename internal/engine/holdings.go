package engine

import "slices"

// Holdings maps asset names to held quantities. A name is present iff its
// quantity is strictly positive; entries are deleted when they reach zero.
type Holdings struct {
	qty   map[string]int64
	order []string
}

func newHoldings() *Holdings {
	return &Holdings{qty: make(map[string]int64)}
}

func (h *Holdings) add(name string, qty int64) {
	if qty <= 0 {
		return
	}
	if _, ok := h.qty[name]; !ok {
		h.order = append(h.order, name)
	}
	h.qty[name] += qty
}

// remove takes qty units of name out of the holdings and drops the entry when
// nothing is left.
func (h *Holdings) remove(name string, qty int64) error {
	held, ok := h.qty[name]
	if !ok || held < qty {
		return ErrInsufficientHoldings
	}
	if held == qty {
		h.delete(name)
		return nil
	}
	h.qty[name] = held - qty
	return nil
}

func (h *Holdings) delete(name string) {
	delete(h.qty, name)
	h.order = slices.DeleteFunc(h.order, func(n string) bool { return n == name })
}

// Quantity returns the held quantity of name, zero when absent.
func (h *Holdings) Quantity(name string) int64 {
	return h.qty[name]
}

func (h *Holdings) Has(name string) bool {
	_, ok := h.qty[name]
	return ok
}

func (h *Holdings) Len() int {
	return len(h.qty)
}

// Names lists held assets in the order they were first acquired.
func (h *Holdings) Names() []string {
	return slices.Clone(h.order)
}

func (h *Holdings) Snapshot() map[string]int64 {
	out := make(map[string]int64, len(h.qty))
	for name, qty := range h.qty {
		out[name] = qty
	}
	return out
}
