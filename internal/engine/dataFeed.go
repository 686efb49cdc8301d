package engine

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNonPositivePrice  = errors.New("price must be positive")
	ErrAssetTypeMismatch = errors.New("catalog asset type does not match")
)

// SeedFromCatalog replaces the starting price of every configured asset with
// the latest close recorded for it in the catalog, rounded to cents. A close
// that rounds to zero is rejected.
func SeedFromCatalog(ctx context.Context, catalog priceCatalog, configs []AssetConfig) ([]AssetConfig, error) {
	seeded := make([]AssetConfig, 0, len(configs))
	for _, cfg := range configs {
		asset, err := catalog.GetAssetByTicker(ctx, cfg.name)
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", cfg.name, err)
		}
		if cfg.assetType != "" && asset.Type != cfg.assetType {
			return nil, fmt.Errorf("seed %s: %w: want %s, catalog has %s", cfg.name, ErrAssetTypeMismatch, cfg.assetType, asset.Type)
		}
		closePrice, err := catalog.GetLatestClose(ctx, asset.Id)
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", cfg.name, err)
		}
		price := closePrice.Round(pricePlaces)
		if !price.IsPositive() {
			return nil, fmt.Errorf("seed %s: close %s rounds to %s: %w", cfg.name, closePrice, price.StringFixed(pricePlaces), ErrNonPositivePrice)
		}
		seeded = append(seeded, cfg.WithPrice(price))
	}
	return seeded, nil
}
