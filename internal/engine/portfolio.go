package engine

import (
	"errors"
	"fmt"
	"tradesim/types"

	"github.com/shopspring/decimal"
)

// DefaultInitialCash is the cash a new portfolio starts with.
var DefaultInitialCash = decimal.NewFromInt(1000)

var (
	ErrInsufficientCash     = errors.New("insufficient cash")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	ErrNonPositiveQuantity  = errors.New("quantity must be a positive integer")
	ErrUnknownAsset         = errors.New("unknown asset")
)

// Portfolio is one trader's cash and holdings. Cash never goes negative and
// every buy or sell either applies completely or not at all.
type Portfolio struct {
	cash     decimal.Decimal
	holdings *Holdings
	avgCost  map[string]decimal.Decimal
}

// Fill describes an applied buy or sell.
type Fill struct {
	Ticker      string
	Side        types.Side
	Quantity    int64
	Price       decimal.Decimal
	Value       decimal.Decimal
	RealizedPnL decimal.Decimal
	CashAfter   decimal.Decimal
}

func NewPortfolio(initialCash decimal.Decimal) *Portfolio {
	return &Portfolio{
		cash:     initialCash,
		holdings: newHoldings(),
		avgCost:  make(map[string]decimal.Decimal),
	}
}

func (p *Portfolio) Cash() decimal.Decimal { return p.cash }

// Holdings returns a copy of the held quantities by asset name.
func (p *Portfolio) Holdings() map[string]int64 { return p.holdings.Snapshot() }

// AvgCost returns the average purchase price of a held asset.
func (p *Portfolio) AvgCost(name string) decimal.Decimal { return p.avgCost[name] }

// Buy purchases qty units of a at its current price.
func (p *Portfolio) Buy(a *Asset, qty int64) (Fill, error) {
	if qty <= 0 {
		return Fill{}, ErrNonPositiveQuantity
	}
	price := a.Price()
	quantity := decimal.NewFromInt(qty)
	cost := price.Mul(quantity)
	if cost.GreaterThan(p.cash) {
		return Fill{}, fmt.Errorf("buy %d %s for %s with %s available: %w", qty, a.Name(), cost, p.cash, ErrInsufficientCash)
	}

	held := decimal.NewFromInt(p.holdings.Quantity(a.Name()))
	p.avgCost[a.Name()] = weightedAvg(p.avgCost[a.Name()], held, price, quantity)
	p.cash = p.cash.Sub(cost)
	p.holdings.add(a.Name(), qty)

	return Fill{
		Ticker:    a.Name(),
		Side:      types.SideTypeBuy,
		Quantity:  qty,
		Price:     price,
		Value:     cost,
		CashAfter: p.cash,
	}, nil
}

// Sell disposes of qty units of a at its current price.
func (p *Portfolio) Sell(a *Asset, qty int64) (Fill, error) {
	if qty <= 0 {
		return Fill{}, ErrNonPositiveQuantity
	}
	price := a.Price()
	quantity := decimal.NewFromInt(qty)
	avg := p.avgCost[a.Name()]

	if err := p.holdings.remove(a.Name(), qty); err != nil {
		return Fill{}, fmt.Errorf("sell %d %s holding %d: %w", qty, a.Name(), p.holdings.Quantity(a.Name()), err)
	}
	if !p.holdings.Has(a.Name()) {
		delete(p.avgCost, a.Name())
	}

	proceeds := price.Mul(quantity)
	p.cash = p.cash.Add(proceeds)

	return Fill{
		Ticker:      a.Name(),
		Side:        types.SideTypeSell,
		Quantity:    qty,
		Price:       price,
		Value:       proceeds,
		RealizedPnL: price.Sub(avg).Mul(quantity),
		CashAfter:   p.cash,
	}, nil
}

// Valuation values every holding at the prices in assets. It fails with
// ErrUnknownAsset when a held name has no entry, which means the holdings
// reference an asset that is no longer traded.
func (p *Portfolio) Valuation(assets map[string]*Asset) (types.PortfolioView, error) {
	view := types.PortfolioView{
		Cash:      p.cash,
		Positions: make([]types.PositionSnapshot, 0, p.holdings.Len()),
		Total:     p.cash,
	}

	for _, name := range p.holdings.Names() {
		a, ok := assets[name]
		if !ok || a == nil {
			return types.PortfolioView{}, fmt.Errorf("value holding %q: %w", name, ErrUnknownAsset)
		}
		price := a.Price()
		qty := p.holdings.Quantity(name)
		value := price.Mul(decimal.NewFromInt(qty))

		view.Positions = append(view.Positions, types.PositionSnapshot{
			Symbol:        name,
			Quantity:      qty,
			AvgEntryPrice: p.avgCost[name],
			LastPrice:     price,
			Value:         value,
		})
		view.Total = view.Total.Add(value)
	}
	return view, nil
}

func weightedAvg(existingAvgPrice, existingQty, newPrice, newQty decimal.Decimal) decimal.Decimal {
	if existingQty.IsZero() {
		return newPrice
	}
	return existingAvgPrice.Mul(existingQty).
		Add(newPrice.Mul(newQty)).
		Div(existingQty.Add(newQty))
}
