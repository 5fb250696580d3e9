// Package commands wires the beanpull CLI: fetching remote budget data,
// translating it, and rendering ledger text on stdout with diagnostics on
// stderr.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beanpull-dev/beanpull/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "beanpull",
		Short:   "Import YNAB transactions into a plaintext double-entry ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newListIDsCommand())

	return rootCmd
}
