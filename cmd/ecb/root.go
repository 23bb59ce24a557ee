package main

import (
	"github.com/spf13/cobra"

	"ecb/internal/version"
)

var (
	// workspaceFlag is the CLI --workspace flag value
	workspaceFlag string
)

var rootCmd = &cobra.Command{
	Use:   "ecb",
	Short: "ECB - Elm Completion Backend",
	Long: `ECB (Elm Completion Backend) discovers the Elm projects in a workspace and
serves context-aware code completion over the Language Server Protocol, with
one-shot CLI equivalents for scripting and debugging.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("ECB version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&workspaceFlag, "workspace", ".",
		"Workspace root to scan for Elm projects")
}
