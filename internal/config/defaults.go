package config

// Default values for optional configuration fields.
const (
	DefaultInitialCash = "1000"
	DefaultCurrency    = "USD"
	DefaultMetricsPath = "/metrics"
	DefaultLogLevel    = "warn"
)

// DefaultAssets is the two asset market used when none is configured.
func DefaultAssets() []AssetConfig {
	return []AssetConfig{
		{Name: "Stock", Type: "STOCK", Price: "100"},
		{Name: "Crypto", Type: "CRYPTO", Price: "50"},
	}
}

// Default returns a configuration with every default applied.
func Default() *SimulatorConfig {
	cfg := &SimulatorConfig{}
	cfg.applyDefaults()
	return cfg
}

func (c *SimulatorConfig) applyDefaults() {
	// Portfolio defaults
	if c.Portfolio.InitialCash == "" {
		c.Portfolio.InitialCash = DefaultInitialCash
	}
	if c.Portfolio.Currency == "" {
		c.Portfolio.Currency = DefaultCurrency
	}

	// Market defaults
	if len(c.Market.Assets) == 0 {
		c.Market.Assets = DefaultAssets()
	}

	// Metrics defaults
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
