package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zachkp/folio/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the persisted theme preference",
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the active theme name",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl := theme.NewControllerWithDefault(prefStore, cfg.Theme.Default)
		fmt.Println(ctl.Name())
		return nil
	},
}

var themeSetCmd = &cobra.Command{
	Use:   "set <dark|light>",
	Short: "Set and persist the theme preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !theme.IsValid(name) {
			return fmt.Errorf("unknown theme: %s (valid: %s, %s)", name, theme.Dark, theme.Light)
		}

		ctl := theme.NewControllerWithDefault(prefStore, cfg.Theme.Default)
		if err := ctl.Set(name); err != nil {
			return fmt.Errorf("failed to persist theme: %w", err)
		}
		fmt.Println(ctl.Name())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeGetCmd)
	themeCmd.AddCommand(themeSetCmd)
}
