package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func Execute() error {
	root := &cobra.Command{
		Use:   "stagetree",
		Short: "Tree-shaped staging TUI for git changes",
		Long:  "Stagetree: browse changed files as a folder tree and stage whole subtrees with tri-state checkboxes.",
	}

	root.PersistentFlags().StringP("repo", "r", ".", "Path to repository root (default: current dir)")

	// Add subcommands
	root.AddCommand(newWatchCmd())
	root.AddCommand(newTreeCmd())

	if err := root.Execute(); err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	return nil
}

func mustGetStringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "flag error:", err)
		os.Exit(2)
	}
	return v
}
