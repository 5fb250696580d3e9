package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beanpull-dev/beanpull/internal/config"
	"github.com/beanpull-dev/beanpull/internal/ledger"
	"github.com/beanpull-dev/beanpull/internal/model"
	"github.com/beanpull-dev/beanpull/internal/resolve"
	"github.com/beanpull-dev/beanpull/internal/translate"
)

type importFlags struct {
	configPath           string
	budget               string
	since                string
	ledgerPath           string
	skipStartingBalances bool
	includeCleared       bool
	adjustmentAccount    string
}

func newImportCommand() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Fetch transactions and print them as ledger text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", config.DefaultFile, "config file")
	cmd.Flags().StringVar(&flags.budget, "budget", "", "budget name (only needed with multiple budgets)")
	cmd.Flags().StringVar(&flags.since, "since", "", "only import transactions on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.ledgerPath, "ledger", "", "existing ledger file to scan for ynab-id overrides")
	cmd.Flags().BoolVar(&flags.skipStartingBalances, "skip-starting-balances", false, "ignore the service's generated starting balance transactions")
	cmd.Flags().BoolVar(&flags.includeCleared, "include-cleared", false, "import cleared transactions in addition to reconciled ones")
	cmd.Flags().StringVar(&flags.adjustmentAccount, "adjustment-account", "", "account for automatically entered reconciliation balance adjustments")

	return cmd
}

func runImport(cmd *cobra.Command, flags importFlags) error {
	s, err := newSession(flags.configPath)
	if err != nil {
		return err
	}
	applyImportFlags(cmd, flags, s.cfg)

	since, err := parseSince(flags.since)
	if err != nil {
		return err
	}

	// Overrides are scanned (and ambiguity detected) before anything is
	// fetched or translated.
	mapping, err := ledger.LoadMapping(s.cfg.Ledger.Path)
	if err != nil {
		return err
	}

	minState := model.StateReconciled
	if s.cfg.Import.IncludeCleared {
		minState = model.StateCleared
	}

	snap, err := s.client.Fetch(cmd.Context(), s.cfg.Budget.Name, since, minState)
	if err != nil {
		return err
	}

	catalog, err := resolve.NewCatalog(snap.Accounts, snap.Categories)
	if err != nil {
		return err
	}
	resolver := resolve.NewResolver(mapping, catalog, resolve.Prefixes{
		Assets:   s.cfg.Ledger.AssetPrefix,
		Expenses: s.cfg.Ledger.ExpensePrefix,
		Income:   s.cfg.Ledger.IncomePrefix,
	})
	translator := translate.NewTranslator(resolver, catalog, translate.Options{
		SkipStartingBalances: s.cfg.Import.SkipStartingBalances,
		AdjustmentAccount:    s.cfg.Import.AdjustmentAccount,
	}, s.log)

	out, sum := translator.Run(snap.Transactions)
	if err := ledger.RenderAll(os.Stdout, out); err != nil {
		return err
	}

	s.log.Info("import finished",
		"imported", sum.Translated(),
		"skipped", sum.Skipped,
		"warned", sum.Warned,
		"failed", len(sum.Failures),
	)
	for _, f := range sum.Failures {
		s.log.Error("translation failed", "transaction", f.Error())
	}
	if n := len(sum.Failures); n > 0 {
		return fmt.Errorf("%d of %d transactions failed to translate", n, n+sum.Translated()+sum.Skipped)
	}
	return nil
}

// applyImportFlags lets explicitly set flags override the config file.
func applyImportFlags(cmd *cobra.Command, flags importFlags, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("budget") {
		cfg.Budget.Name = flags.budget
	}
	if set("ledger") {
		cfg.Ledger.Path = flags.ledgerPath
	}
	if set("skip-starting-balances") {
		cfg.Import.SkipStartingBalances = flags.skipStartingBalances
	}
	if set("include-cleared") {
		cfg.Import.IncludeCleared = flags.includeCleared
	}
	if set("adjustment-account") {
		cfg.Import.AdjustmentAccount = flags.adjustmentAccount
	}
}
