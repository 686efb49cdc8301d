package types

import (
	"time"
)

// Order is a request to buy or sell a whole number of units of one asset at
// its current price.
type Order struct {
	Ticker    string
	Quantity  int64
	Side      Side
	CreatedAt time.Time
}

func NewOrder(ticker string, quantity int64, side Side, createdAt time.Time) Order {
	return Order{
		Ticker:    ticker,
		Quantity:  quantity,
		Side:      side,
		CreatedAt: createdAt,
	}
}
