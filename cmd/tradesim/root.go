package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"
	"tradesim/internal/config"
	"tradesim/internal/engine"
	"tradesim/internal/metrics"
	"tradesim/internal/repl"
	"tradesim/internal/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var (
	debug       bool
	configPath  string
	seed        uint64
	cash        string
	currency    string
	scriptPath  string
	journalPath string
	summary     bool
	dbURL       string
	metricsAddr string

	rootCmd = &cobra.Command{
		Use:           "tradesim",
		Short:         "Interactive stock and crypto trading simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "yaml config file")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "postgres url of an asset catalog to seed prices from")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "price generator seed, 0 seeds from the clock")
	rootCmd.Flags().StringVar(&cash, "cash", "", "starting cash")
	rootCmd.Flags().StringVar(&currency, "currency", "", "ISO 4217 display currency")
	rootCmd.Flags().StringVar(&scriptPath, "script", "", "replay commands from a file instead of stdin")
	rootCmd.Flags().StringVar(&journalPath, "journal", "", "write every order to this csv file on exit")
	rootCmd.Flags().BoolVar(&summary, "summary", false, "print a session report on exit")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")

	rootCmd.AddCommand(catalogCmd)
}

// loadConfig reads the config file and lets flags that were set override it.
func loadConfig(cmd *cobra.Command) (*config.SimulatorConfig, error) {
	cfg, err := config.LoadWithDefaults(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Market.Seed = seed
	}
	if flags.Changed("cash") {
		cfg.Portfolio.InitialCash = cash
	}
	if flags.Changed("currency") {
		cfg.Portfolio.Currency = currency
	}
	if flags.Changed("journal") {
		cfg.Reporting.JournalPath = journalPath
	}
	if flags.Changed("summary") {
		cfg.Reporting.PrintSummary = summary
	}
	if flags.Changed("db") {
		cfg.Database.URL = dbURL
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = metricsAddr
	}
	if debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.SimulatorConfig) error {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	assets, err := assetConfigs(cfg.Market.Assets)
	if err != nil {
		return err
	}
	if cfg.Database.URL != "" {
		assets, err = seedPrices(ctx, cfg.Database.URL, assets)
		if err != nil {
			return err
		}
		logger.Info("seeded prices from catalog", "assets", len(assets))
	}

	initialCash, err := cfg.Portfolio.InitialCashDecimal()
	if err != nil {
		return err
	}
	opts := []engine.Option{
		engine.WithSampler(engine.NewSampler(cfg.Market.Seed)),
		engine.WithLogger(logger),
	}
	if cfg.Metrics.Addr != "" {
		collector := metrics.NewCollector()
		stop, err := serveMetrics(cfg.Metrics, collector, logger)
		if err != nil {
			return err
		}
		defer stop()
		opts = append(opts, engine.WithRecorder(collector))
	}

	eng, err := engine.NewEngine(assets, engine.NewPortfolioConfig(initialCash), opts...)
	if err != nil {
		return err
	}

	in, prompts, err := openInput(scriptPath)
	if err != nil {
		return err
	}
	defer in.Close()

	money := repl.NewMoneyFormatter(cfg.Portfolio.Currency)
	session := repl.NewSession(eng, in, os.Stdout, money, repl.WithPrompts(prompts))
	runErr := session.Run()

	if cfg.Reporting.JournalPath != "" {
		if err := eng.WriteJournalCSV(cfg.Reporting.JournalPath); err != nil {
			return errors.Join(runErr, err)
		}
		logger.Info("journal written", "path", cfg.Reporting.JournalPath, "orders", len(eng.Journal()))
	}
	if cfg.Reporting.PrintSummary {
		engine.PrintReport(os.Stdout, eng.Report(), money)
	}
	return runErr
}

func assetConfigs(assets []config.AssetConfig) ([]engine.AssetConfig, error) {
	configs := make([]engine.AssetConfig, 0, len(assets))
	for _, a := range assets {
		price, err := a.PriceDecimal()
		if err != nil {
			return nil, err
		}
		assetType, err := a.AssetType()
		if err != nil {
			return nil, err
		}
		configs = append(configs, engine.NewAssetConfig(a.Name, price).WithType(assetType))
	}
	return configs, nil
}

func seedPrices(ctx context.Context, url string, assets []engine.AssetConfig) ([]engine.AssetConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := repository.NewDatabase(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect catalog: %w", err)
	}
	defer db.Close()

	return engine.SeedFromCatalog(ctx, db, assets)
}

// serveMetrics exposes collector on its own registry. The returned func shuts
// the server down.
func serveMetrics(cfg config.MetricsConfig, collector *metrics.Collector, logger *slog.Logger) (func(), error) {
	reg := prometheus.NewRegistry()
	if err := collector.Register(reg); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: cfg.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", cfg.Addr, "path", cfg.Path)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}

// openInput returns the command source and whether prompts should be shown.
// Scripts never get prompts; stdin gets them only when it is a terminal.
func openInput(path string) (io.ReadCloser, bool, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), repl.IsInteractive(os.Stdin), nil
	}
	var progress io.Writer
	if repl.IsInteractive(os.Stderr) {
		progress = os.Stderr
	}
	r, err := repl.OpenScript(path, progress)
	if err != nil {
		return nil, false, err
	}
	return r, false, nil
}
