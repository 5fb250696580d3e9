package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/beanpull-dev/beanpull/internal/config"
)

func newInitCommand() *cobra.Command {
	var budget string
	var ledgerPath string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default beanpull.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, budget, ledgerPath)
		},
	}

	cmd.Flags().StringVar(&budget, "budget", "", "budget name to pin in the config")
	cmd.Flags().StringVar(&ledgerPath, "ledger", "", "existing ledger file to scan for ynab-id overrides")

	return cmd
}

func runInit(dir, budget, ledgerPath string) error {
	path := filepath.Join(dir, config.DefaultFile)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg := config.Default()
	cfg.Budget.Name = budget
	cfg.Ledger.Path = ledgerPath
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Printf("Wrote %s; set YNAB_TOKEN in the environment or a .env file\n", path)
	return nil
}
