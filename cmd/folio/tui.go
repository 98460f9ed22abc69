package main

import (
	"github.com/spf13/cobra"

	"github.com/zachkp/folio/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive portfolio browser",
	Long: `Launch the interactive terminal user interface for browsing projects.

The TUI provides:
  - Animated role headline (typewriter effect)
  - Tag filter bar with exactly one active filter
  - Scrollable project list with detail view
  - Dark/light theme toggle, persisted across sessions
  - Live reload when the projects file changes on disk

Key bindings:
  j/k, ↑/↓    Navigate list
  tab/l, h    Next/previous filter tag
  1-9         Jump to filter tag
  enter       View project details
  t           Toggle dark/light theme
  r           Refresh from disk
  ?           Show help
  q           Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run(tui.RunOptions{
		Config:       cfg,
		Catalog:      projectCatalog,
		Prefs:        prefStore,
		ProjectsPath: projectsPath(),
	})
}
