package engine

import (
	"context"
	"tradesim/types"

	"github.com/shopspring/decimal"
)

type priceCatalog interface {
	GetAssetByTicker(ctx context.Context, ticker string) (*types.Asset, error)
	GetLatestClose(ctx context.Context, assetId int) (decimal.Decimal, error)
}

// Recorder receives engine events for monitoring.
type Recorder interface {
	ObserveTick(tick int)
	ObservePrice(ticker string, price decimal.Decimal)
	ObserveOrder(side types.Side, status types.OrderStatus)
	ObservePortfolioValue(total decimal.Decimal)
}

type nopRecorder struct{}

func (nopRecorder) ObserveTick(int)                            {}
func (nopRecorder) ObservePrice(string, decimal.Decimal)       {}
func (nopRecorder) ObserveOrder(types.Side, types.OrderStatus) {}
func (nopRecorder) ObservePortfolioValue(decimal.Decimal)      {}
