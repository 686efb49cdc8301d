package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
)

// Validate checks that all required fields are set and values are valid.
func (c *SimulatorConfig) Validate() error {
	cash, err := c.Portfolio.InitialCashDecimal()
	if err != nil {
		return err
	}
	if cash.IsNegative() {
		return errors.New("portfolio.initial_cash must be >= 0")
	}
	if money.GetCurrency(strings.ToUpper(c.Portfolio.Currency)) == nil {
		return fmt.Errorf("portfolio.currency %q is not a known currency code", c.Portfolio.Currency)
	}

	if len(c.Market.Assets) == 0 {
		return errors.New("market.assets must list at least one asset")
	}
	seen := make(map[string]bool, len(c.Market.Assets))
	for i, a := range c.Market.Assets {
		if err := a.validate(fmt.Sprintf("market.assets[%d]", i)); err != nil {
			return err
		}
		key := strings.ToLower(a.Name)
		if seen[key] {
			return fmt.Errorf("market.assets[%d]: duplicate asset name %q", i, a.Name)
		}
		seen[key] = true
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	if c.Metrics.Addr != "" && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("metrics.path must start with /")
	}

	return nil
}

func (a AssetConfig) validate(prefix string) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	price, err := a.PriceDecimal()
	if err != nil {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	if !price.IsPositive() {
		return fmt.Errorf("%s.price must be > 0", prefix)
	}
	if !price.Equal(price.Round(2)) {
		return fmt.Errorf("%s.price must have at most two decimal places", prefix)
	}
	if _, err := a.AssetType(); err != nil {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	return nil
}
