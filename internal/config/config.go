package config

import (
	"fmt"
	"log/slog"
	"strings"
	"tradesim/types"

	"github.com/shopspring/decimal"
)

// SimulatorConfig is the root configuration for a simulation run.
type SimulatorConfig struct {
	Portfolio PortfolioConfig `yaml:"portfolio"`
	Market    MarketConfig    `yaml:"market"`
	Database  DatabaseConfig  `yaml:"database"`
	Reporting ReportingConfig `yaml:"reporting"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Log       LogConfig       `yaml:"log"`
}

// PortfolioConfig holds the starting state of the trader.
type PortfolioConfig struct {
	InitialCash string `yaml:"initial_cash"` // decimal, e.g. "1000" or "2500.50"
	Currency    string `yaml:"currency"`     // ISO 4217 code used for display
}

// MarketConfig lists the tradeable assets.
type MarketConfig struct {
	Assets []AssetConfig `yaml:"assets"`
	Seed   uint64        `yaml:"seed"` // 0 seeds from the clock
}

type AssetConfig struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Price string `yaml:"price"`
}

// DatabaseConfig points at an optional Postgres asset catalog used to seed
// starting prices.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type ReportingConfig struct {
	JournalPath  string `yaml:"journal_path"`
	PrintSummary bool   `yaml:"print_summary"`
}

// MetricsConfig holds Prometheus metrics settings. An empty Addr disables the
// endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// InitialCashDecimal parses the configured starting cash.
func (c PortfolioConfig) InitialCashDecimal() (decimal.Decimal, error) {
	cash, err := decimal.NewFromString(strings.TrimSpace(c.InitialCash))
	if err != nil {
		return decimal.Zero, fmt.Errorf("portfolio.initial_cash %q: %w", c.InitialCash, err)
	}
	return cash, nil
}

// PriceDecimal parses the configured starting price.
func (a AssetConfig) PriceDecimal() (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(a.Price))
	if err != nil {
		return decimal.Zero, fmt.Errorf("asset %s price %q: %w", a.Name, a.Price, err)
	}
	return price, nil
}

// AssetType parses the configured catalog type.
func (a AssetConfig) AssetType() (types.AssetType, error) {
	t, err := types.ParseAssetType(a.Type)
	if err != nil {
		return "", fmt.Errorf("asset %s: %w", a.Name, err)
	}
	return t, nil
}

// SlogLevel maps the configured level name to a slog.Level.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelWarn, fmt.Errorf("log.level %q: %w", c.Level, err)
	}
	return level, nil
}
