// Package main provides the CLI entrypoint for folio.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zachkp/folio/internal/catalog"
	"github.com/zachkp/folio/internal/config"
	"github.com/zachkp/folio/internal/prefs"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose      bool
		projectsFile string
		configPath   string
	}
	logger *slog.Logger

	projectCatalog *catalog.Catalog
	prefStore      prefs.Store
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Terminal portfolio browser",
	Long: `folio is a portfolio browser for the terminal.

It shows a project showcase with an animated role headline, tag-based
filtering, and a persisted dark/light theme preference.

Running folio without a subcommand launches the interactive TUI.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging
		setupLogger()

		// Load configuration
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Initialize persistence (always enabled)
		if err := config.EnsureDataDir(); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}

		persistence, err := catalog.NewJSONLPersistence(projectsPath())
		if err != nil {
			return fmt.Errorf("failed to initialize persistence: %w", err)
		}

		projectCatalog = catalog.New(persistence)

		if err := projectCatalog.Hydrate(); err != nil {
			logger.Warn("failed to hydrate catalog from disk", "error", err)
		}

		// First run: populate the catalog with the starter projects
		if projectCatalog.Count() == 0 {
			if err := projectCatalog.AddBatch(catalog.Seed()); err != nil {
				logger.Warn("failed to seed catalog", "error", err)
			}
		}

		prefStore, err = prefs.NewFileStore(config.PrefsPath())
		if err != nil {
			return fmt.Errorf("failed to open preference store: %w", err)
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if prefStore != nil {
			if err := prefStore.Close(); err != nil {
				logger.Warn("failed to close preference store", "error", err)
			}
		}
		if projectCatalog != nil {
			return projectCatalog.Close()
		}
		return nil
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.projectsFile, "projects-file", "",
		"Path to projects file (default: ~/.local/share/folio/projects.jsonl)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/folio/config.toml)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// projectsPath returns the projects file path, honoring the global flag.
func projectsPath() string {
	if globalOpts.projectsFile != "" {
		return globalOpts.projectsFile
	}
	return config.ProjectsPath()
}
