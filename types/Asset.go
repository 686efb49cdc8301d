package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AssetType string

const (
	AssetTypeStock  AssetType = "STOCK"
	AssetTypeCrypto AssetType = "CRYPTO"
	AssetTypeEtf    AssetType = "ETF"
)

// ParseAssetType maps a case-insensitive type name to an AssetType. An empty
// name yields an empty type.
func ParseAssetType(name string) (AssetType, error) {
	t := AssetType(strings.ToUpper(strings.TrimSpace(name)))
	switch t {
	case "", AssetTypeStock, AssetTypeCrypto, AssetTypeEtf:
		return t, nil
	}
	return "", fmt.Errorf("unknown asset type %q", name)
}

// Asset is a catalog record for a tradeable instrument. The live, priced
// instrument used during a session is engine.Asset.
type Asset struct {
	Id         int       `json:"id"`
	Ticker     string    `json:"ticker"`
	Name       string    `json:"name"`
	Type       AssetType `json:"type"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// Quote is the price of one asset at a given tick.
type Quote struct {
	Ticker string          `json:"ticker"`
	Price  decimal.Decimal `json:"price"`
	Tick   int             `json:"tick"`
}
