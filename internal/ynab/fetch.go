package ynab

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/beanpull-dev/beanpull/internal/model"
)

// Snapshot is everything one run needs from the remote service, fetched once
// and read-only from then on.
type Snapshot struct {
	Budget       Budget
	Accounts     []model.Account
	Categories   []model.Category
	Transactions []model.Transaction
}

// Fetch looks up the budget, then fetches accounts, categories, and
// transactions concurrently. Translation is order-independent, so the only
// sequencing needed is the budget lookup that supplies the ID and currency.
func (c *Client) Fetch(ctx context.Context, budgetName string, since time.Time, minState model.ClearedState) (*Snapshot, error) {
	budgets, err := c.Budgets(ctx)
	if err != nil {
		return nil, err
	}
	budget, err := SelectBudget(budgets, budgetName)
	if err != nil {
		return nil, err
	}
	c.log.Info("fetching budget data", "budget", budget.Name, "currency", budget.Currency.ISOCode)
	if !since.IsZero() {
		c.log.Info("only fetching transactions on or after", "since", since.Format(dateFormat))
	}

	snap := &Snapshot{Budget: budget}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Accounts, err = c.Accounts(gctx, budget.ID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Categories, err = c.Categories(gctx, budget.ID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Transactions, err = c.Transactions(gctx, budget.ID, budget.Currency.ISOCode, since, minState)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching budget %s: %w", budget.Name, err)
	}

	c.log.Debug("fetch complete",
		"accounts", len(snap.Accounts),
		"categories", len(snap.Categories),
		"transactions", len(snap.Transactions),
	)
	return snap, nil
}
