package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type assetRow struct {
	ID         int32
	Ticker     string
	Name       string
	Type       string
	CreatedAt  *time.Time
	ModifiedAt *time.Time
}

type queries struct {
	db querier
}

const getAssetByTicker = `
SELECT id, ticker, name, type, created_at, modified_at
FROM assets
WHERE ticker = $1`

func (q *queries) GetAssetByTicker(ctx context.Context, ticker string) (assetRow, error) {
	var a assetRow
	err := q.db.QueryRow(ctx, getAssetByTicker, ticker).
		Scan(&a.ID, &a.Ticker, &a.Name, &a.Type, &a.CreatedAt, &a.ModifiedAt)
	return a, err
}

const listAssets = `
SELECT id, ticker, name, type, created_at, modified_at
FROM assets
ORDER BY ticker`

func (q *queries) ListAssets(ctx context.Context) ([]assetRow, error) {
	rows, err := q.db.Query(ctx, listAssets)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (assetRow, error) {
		var a assetRow
		err := row.Scan(&a.ID, &a.Ticker, &a.Name, &a.Type, &a.CreatedAt, &a.ModifiedAt)
		return a, err
	})
}

const getLatestClose = `
SELECT close
FROM candles
WHERE asset_id = $1
ORDER BY timestamp DESC
LIMIT 1`

func (q *queries) GetLatestClose(ctx context.Context, assetID int32) (decimal.Decimal, error) {
	var closePrice decimal.Decimal
	err := q.db.QueryRow(ctx, getLatestClose, assetID).Scan(&closePrice)
	return closePrice, err
}
