package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
	"tradesim/internal/repository"
	"tradesim/types"

	"github.com/spf13/cobra"
)

type assetLister interface {
	ListAssets(ctx context.Context) ([]types.Asset, error)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the assets in the postgres catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Database.URL == "" {
			return errors.New("catalog needs --db or database.url")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		db, err := repository.NewDatabase(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("connect catalog: %w", err)
		}
		defer db.Close()

		return printCatalog(ctx, cmd.OutOrStdout(), db)
	},
}

// printCatalog writes one line per catalog asset, ordered as the catalog
// returns them.
func printCatalog(ctx context.Context, w io.Writer, catalog assetLister) error {
	assets, err := catalog.ListAssets(ctx)
	if err != nil {
		return fmt.Errorf("list assets: %w", err)
	}
	if len(assets) == 0 {
		fmt.Fprintln(w, "catalog is empty")
		return nil
	}
	fmt.Fprintf(w, "%-6s %-10s %-8s %s\n", "ID", "TICKER", "TYPE", "NAME")
	for _, a := range assets {
		fmt.Fprintf(w, "%-6d %-10s %-8s %s\n", a.Id, a.Ticker, a.Type, a.Name)
	}
	return nil
}
