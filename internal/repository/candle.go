package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// GetLatestClose returns the most recent close price stored for an asset.
func (db *Database) GetLatestClose(ctx context.Context, assetId int) (decimal.Decimal, error) {
	closePrice, err := db.candles.GetLatestClose(ctx, int32(assetId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("asset %d %w", assetId, ErrNoCandles)
		}
		return decimal.Zero, err
	}
	if !closePrice.IsPositive() {
		return decimal.Zero, fmt.Errorf("asset %d has non-positive close %s", assetId, closePrice)
	}
	return closePrice, nil
}
