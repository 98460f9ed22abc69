package main

import (
	"context"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/zachkp/folio/internal/prefs"
	"github.com/zachkp/folio/internal/server"
	"github.com/zachkp/folio/internal/theme"
)

var serveOpts struct {
	addr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the project catalog over HTTP",
	Long: `Serve the project catalog and theme preference as a JSON API.

Endpoints:
  GET /healthz                     Health check
  GET /api/projects                List projects (?category=, ?exact=, ?limit=)
  GET /api/projects/:id            Single project by ID
  GET /api/categories              Distinct category tags
  GET /api/theme                   Active theme name

Environment variables are loaded from a .env file when present.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveOpts.addr, "addr", "",
		"Listen address (default from config, e.g. :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveOpts.addr != "" {
		cfg.Serve.Addr = serveOpts.addr
	}

	store := prefStore
	if store == nil {
		store = prefs.NewMemStore()
	}
	themeCtl := theme.NewControllerWithDefault(store, cfg.Theme.Default)

	srv := server.New(cfg, projectCatalog, themeCtl, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
