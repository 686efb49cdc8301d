package types

import (
	"github.com/shopspring/decimal"
)

// PortfolioView is a read-only valuation of a portfolio at current prices.
type PortfolioView struct {
	Cash      decimal.Decimal
	Positions []PositionSnapshot
	Total     decimal.Decimal
	Tick      int
}

type PositionSnapshot struct {
	Symbol        string
	Quantity      int64
	AvgEntryPrice decimal.Decimal
	LastPrice     decimal.Decimal
	Value         decimal.Decimal
}

// Position returns the snapshot for symbol, if held.
func (v PortfolioView) Position(symbol string) (PositionSnapshot, bool) {
	for _, pos := range v.Positions {
		if pos.Symbol == symbol {
			return pos, true
		}
	}
	return PositionSnapshot{}, false
}
