package types

import (
	"github.com/shopspring/decimal"
)

// Candle summarizes the prices an asset took over a range of ticks.
type Candle struct {
	Ticker    string          `json:"ticker"`
	Open      decimal.Decimal `json:"open"`
	Close     decimal.Decimal `json:"close"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	FirstTick int             `json:"firstTick"`
	LastTick  int             `json:"lastTick"`
}

func NewCandle(ticker string, price decimal.Decimal, tick int) Candle {
	return Candle{
		Ticker:    ticker,
		Open:      price,
		Close:     price,
		High:      price,
		Low:       price,
		FirstTick: tick,
		LastTick:  tick,
	}
}

// Update folds a new price into the candle.
func (c *Candle) Update(price decimal.Decimal, tick int) {
	if price.GreaterThan(c.High) {
		c.High = price
	}
	if price.LessThan(c.Low) {
		c.Low = price
	}
	c.Close = price
	c.LastTick = tick
}

// Change is the relative move from open to close.
func (c Candle) Change() decimal.Decimal {
	if c.Open.IsZero() {
		return decimal.Zero
	}
	return c.Close.Sub(c.Open).Div(c.Open)
}
