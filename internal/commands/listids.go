package commands

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/beanpull-dev/beanpull/internal/config"
	"github.com/beanpull-dev/beanpull/internal/ledger"
	"github.com/beanpull-dev/beanpull/internal/model"
	"github.com/beanpull-dev/beanpull/internal/resolve"
	"github.com/beanpull-dev/beanpull/internal/ynab"
)

func newListIDsCommand() *cobra.Command {
	var configPath string
	var budget string
	var ledgerPath string

	cmd := &cobra.Command{
		Use:   "list-ynab-ids",
		Short: "List every remote account and category UUID and the ledger account bound to it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("budget") {
				s.cfg.Budget.Name = budget
			}
			if cmd.Flags().Changed("ledger") {
				s.cfg.Ledger.Path = ledgerPath
			}
			return runListIDs(cmd, s)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultFile, "config file")
	cmd.Flags().StringVar(&budget, "budget", "", "budget name (only needed with multiple budgets)")
	cmd.Flags().StringVar(&ledgerPath, "ledger", "", "existing ledger file to scan for ynab-id overrides")

	return cmd
}

func runListIDs(cmd *cobra.Command, s *session) error {
	mapping, err := ledger.LoadMapping(s.cfg.Ledger.Path)
	if err != nil {
		return err
	}

	budgets, err := s.client.Budgets(cmd.Context())
	if err != nil {
		return err
	}
	budget, err := ynab.SelectBudget(budgets, s.cfg.Budget.Name)
	if err != nil {
		return err
	}

	// Only the catalogs are needed here, not the transaction stream.
	var accounts []model.Account
	var categories []model.Category
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		accounts, err = s.client.Accounts(ctx, budget.ID)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.client.Categories(ctx, budget.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	catalog, err := resolve.NewCatalog(accounts, categories)
	if err != nil {
		return err
	}
	return resolve.WriteReport(os.Stdout, resolve.BuildReport(catalog, mapping))
}
