package repository

import (
	"context"
	"errors"
	"testing"
	"time"
	"tradesim/types"

	"github.com/jackc/pgx/v5"
)

type mockAssetsRepository struct {
	sqlError error
	rows     []assetRow
}

func TestDatabase_GetAssetByTicker(t *testing.T) {
	type args struct {
		ticker string
	}
	tests := []struct {
		name    string
		args    args
		want    *types.Asset
		sqlErr  error
		wantErr error
	}{
		{"should throw ErrAssetNotFound", args{"Stock"}, nil, pgx.ErrNoRows, ErrAssetNotFound},
		{"should pass through driver errors", args{"Stock"}, nil, errors.New("connection reset"), nil},
		{"should return asset", args{"Stock"}, &types.Asset{Ticker: "Stock", Id: 1, Type: types.AssetTypeStock}, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &Database{
				assets: mockAssetsRepository{
					sqlError: tt.sqlErr,
				},
			}
			got, err := db.GetAssetByTicker(context.Background(), tt.args.ticker)
			if tt.sqlErr != nil {
				if err == nil {
					t.Fatalf("GetAssetByTicker() expected error, got %v", got)
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("GetAssetByTicker() error = %v, wantErr %v", err, tt.wantErr)
				}
				if tt.wantErr == nil && errors.Is(err, ErrAssetNotFound) {
					t.Errorf("GetAssetByTicker() driver error reported as not found: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetAssetByTicker() unexpected error = %v", err)
			}
			if got.Ticker != tt.want.Ticker {
				t.Errorf("GetAssetByTicker() ticker = %v, want %v", got, tt.want)
			}
			if got.Id != tt.want.Id {
				t.Errorf("GetAssetByTicker() id = %v, want %v", got, tt.want)
			}
			if got.Type != tt.want.Type {
				t.Errorf("GetAssetByTicker() type = %v, want %v", got.Type, tt.want.Type)
			}
			if got.CreatedAt.IsZero() {
				t.Errorf("GetAssetByTicker() createdAt not converted")
			}
		})
	}
}

func TestDatabase_ListAssets(t *testing.T) {
	created := time.UnixMilli(1)
	db := &Database{
		assets: mockAssetsRepository{
			rows: []assetRow{
				{ID: 2, Ticker: "Crypto", Name: "Crypto", Type: "CRYPTO", CreatedAt: &created},
				{ID: 1, Ticker: "Stock", Name: "Stock", Type: "STOCK"},
			},
		},
	}
	got, err := db.ListAssets(context.Background())
	if err != nil {
		t.Fatalf("ListAssets() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListAssets() len = %d, want 2", len(got))
	}
	if got[0].Ticker != "Crypto" || got[0].Type != types.AssetTypeCrypto || !got[0].CreatedAt.Equal(created) {
		t.Errorf("ListAssets()[0] = %+v", got[0])
	}
	if got[1].Id != 1 || !got[1].CreatedAt.IsZero() {
		t.Errorf("ListAssets()[1] = %+v", got[1])
	}
}

func TestDatabase_ListAssetsError(t *testing.T) {
	sqlErr := errors.New("relation \"assets\" does not exist")
	db := &Database{assets: mockAssetsRepository{sqlError: sqlErr}}
	if _, err := db.ListAssets(context.Background()); !errors.Is(err, sqlErr) {
		t.Errorf("ListAssets() error = %v, want %v", err, sqlErr)
	}
}

func (m mockAssetsRepository) GetAssetByTicker(_ context.Context, ticker string) (assetRow, error) {
	if m.sqlError != nil {
		return assetRow{}, m.sqlError
	}
	curTime := time.UnixMilli(1)
	return assetRow{
		ID:         1,
		Ticker:     ticker,
		Name:       "Stock",
		Type:       "STOCK",
		CreatedAt:  &curTime,
		ModifiedAt: &curTime,
	}, nil
}

func (m mockAssetsRepository) ListAssets(_ context.Context) ([]assetRow, error) {
	if m.sqlError != nil {
		return nil, m.sqlError
	}
	return m.rows, nil
}
