// Package commands defines the finance CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cbk-gemmy/finance-platform/internal/buildinfo"
)

const defaultConfigPath = "./configs"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "finance",
		Short:   "Personal finance accounts API",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())

	return rootCmd
}
