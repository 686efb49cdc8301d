package engine

import (
	"tradesim/types"

	"github.com/shopspring/decimal"
)

type PortfolioConfig struct {
	initialCash decimal.Decimal
}

func NewPortfolioConfig(initialCash decimal.Decimal) *PortfolioConfig {
	return &PortfolioConfig{
		initialCash: initialCash,
	}
}

// AssetConfig describes one tradeable asset and its starting price.
type AssetConfig struct {
	name         string
	initialPrice decimal.Decimal
	assetType    types.AssetType
}

func NewAssetConfig(name string, initialPrice decimal.Decimal) AssetConfig {
	return AssetConfig{
		name:         name,
		initialPrice: initialPrice,
	}
}

func NewAssetConfigs(configs ...AssetConfig) []AssetConfig {
	return configs
}

func (c AssetConfig) Name() string { return c.name }

// WithPrice returns a copy of the config starting at price.
func (c AssetConfig) WithPrice(price decimal.Decimal) AssetConfig {
	c.initialPrice = price
	return c
}

// WithType returns a copy of the config expecting the catalog to list the
// asset as t. An empty type matches anything.
func (c AssetConfig) WithType(t types.AssetType) AssetConfig {
	c.assetType = t
	return c
}

func (c AssetConfig) Type() types.AssetType { return c.assetType }

// DefaultAssetConfigs is the two asset market the simulator ships with.
func DefaultAssetConfigs() []AssetConfig {
	return NewAssetConfigs(
		NewAssetConfig("Stock", decimal.NewFromInt(100)).WithType(types.AssetTypeStock),
		NewAssetConfig("Crypto", decimal.NewFromInt(50)).WithType(types.AssetTypeCrypto),
	)
}
