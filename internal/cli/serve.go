package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/estate/internal/config"
	"github.com/evcraddock/estate/internal/db"
	"github.com/evcraddock/estate/internal/geo"
	"github.com/evcraddock/estate/internal/listing"
	"github.com/evcraddock/estate/internal/logging"
	"github.com/evcraddock/estate/internal/web"
)

func newServeCmd() *cobra.Command {
	var port, dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI and API",
		Long:  "Start an HTTP server for the web UI and the JSON API. Serves the embedded catalog unless a SQLite catalog is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, dbPath)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "port to listen on (default: $ESTATE_PORT or 8080)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite catalog to serve (default: $ESTATE_DB or the embedded catalog)")

	return cmd
}

func runServe(ctx context.Context, port, dbPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Port = port
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	logging.Setup(cfg.DevMode)

	catalog, err := loadCatalog(cfg.DBPath)
	if err != nil {
		return err
	}

	srv, err := web.NewServer(catalog, web.Options{
		FilterDelay: cfg.FilterDelay,
		Viewport:    geo.Viewport{Width: float64(cfg.MapWidth), Height: float64(cfg.MapHeight)},
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, ":"+cfg.Port)
}

// loadCatalog returns the embedded catalog when path is empty, otherwise the
// catalog stored in the SQLite file at path.
func loadCatalog(path string) (*listing.Catalog, error) {
	if path == "" {
		return listing.LoadEmbedded()
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}

	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	defer closeDB(database)

	catalog, err := listing.NewRepository(database).Catalog()
	if err != nil {
		return nil, fmt.Errorf("loading catalog from %s: %w", path, err)
	}
	if catalog.Len() == 0 {
		return nil, fmt.Errorf("catalog %s is empty; run estate import first", path)
	}
	return catalog, nil
}
