// Package ynab fetches budgets, accounts, categories, and transactions from
// the YNAB v1 API and converts them to the importer's model types.
package ynab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"

	"github.com/beanpull-dev/beanpull/internal/model"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.ynab.com/v1"

const dateFormat = "2006-01-02"

// Client is a YNAB v1 API client with bearer-token auth and retry on
// rate-limit and server errors.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *log.Logger
}

// NewClient creates a Client. baseURL is usually DefaultBaseURL; tests point
// it at a local server.
func NewClient(baseURL, token string, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     logger,
	}
}

// httpError is a non-2xx response. Retryable for 429 and 5xx.
type httpError struct {
	status int
	detail string
}

func (e *httpError) Error() string {
	if e.detail != "" {
		return fmt.Sprintf("API responded %d: %s", e.status, e.detail)
	}
	return fmt.Sprintf("API responded %d", e.status)
}

func (e *httpError) retryable() bool {
	return e.status == http.StatusTooManyRequests || e.status >= 500
}

// get performs one GET with retries and decodes the JSON body into v.
func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = time.Minute

	return backoff.Retry(func() error {
		err := c.getOnce(ctx, u, v)
		if err == nil {
			return nil
		}
		var herr *httpError
		if errors.As(err, &herr) && herr.retryable() {
			c.log.Warn("retrying request", "url", u, "status", herr.status)
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(b, ctx))
}

func (c *Client) getOnce(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		herr := &httpError{status: resp.StatusCode}
		var apiErr errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil {
			herr.detail = apiErr.Error.Detail
		}
		return herr
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", u, err)
	}
	return nil
}

// Budgets lists the budgets the token can read.
func (c *Client) Budgets(ctx context.Context) ([]Budget, error) {
	var resp budgetsResponse
	if err := c.get(ctx, "/budgets", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching budgets: %w", err)
	}
	return resp.Data.Budgets, nil
}

// SelectBudget picks a budget by name. If name is empty the budget must be
// unique; the error for an ambiguous choice lists the candidates.
func SelectBudget(budgets []Budget, name string) (Budget, error) {
	if len(budgets) == 0 {
		return Budget{}, fmt.Errorf("token has no budgets")
	}
	if name == "" {
		if len(budgets) > 1 {
			names := make([]string, len(budgets))
			for i, b := range budgets {
				names[i] = b.Name
			}
			return Budget{}, fmt.Errorf("multiple budgets, specify one of: %s", strings.Join(names, ", "))
		}
		return budgets[0], nil
	}
	for _, b := range budgets {
		if b.Name == name {
			return b, nil
		}
	}
	return Budget{}, fmt.Errorf("no budget named %q", name)
}

// Accounts fetches the account catalog for a budget. Deleted accounts are
// dropped; closed accounts are kept because historical transactions still
// reference them.
func (c *Client) Accounts(ctx context.Context, budgetID string) ([]model.Account, error) {
	var resp accountsResponse
	if err := c.get(ctx, "/budgets/"+budgetID+"/accounts", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching accounts: %w", err)
	}

	var accounts []model.Account
	for _, a := range resp.Data.Accounts {
		if a.Deleted {
			continue
		}
		accounts = append(accounts, model.Account{
			ID:       a.ID,
			Name:     a.Name,
			Type:     a.Type,
			OnBudget: a.OnBudget,
			Closed:   a.Closed,
		})
	}
	return accounts, nil
}

// Categories fetches the category hierarchy and flattens it, denormalizing
// each category's group name.
func (c *Client) Categories(ctx context.Context, budgetID string) ([]model.Category, error) {
	var resp categoriesResponse
	if err := c.get(ctx, "/budgets/"+budgetID+"/categories", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}

	var categories []model.Category
	for _, g := range resp.Data.CategoryGroups {
		if g.Deleted {
			continue
		}
		for _, cat := range g.Categories {
			if cat.Deleted {
				continue
			}
			categories = append(categories, model.Category{
				ID:        cat.ID,
				GroupID:   g.ID,
				GroupName: g.Name,
				Name:      cat.Name,
				Hidden:    cat.Hidden,
			})
		}
	}
	return categories, nil
}

// Transactions fetches transactions for a budget, optionally only those on
// or after since. Deleted transactions and those below minState are dropped,
// upholding the translator's cleared-or-reconciled precondition. currency is
// stamped on every transaction from the budget's currency format.
func (c *Client) Transactions(ctx context.Context, budgetID, currency string, since time.Time, minState model.ClearedState) ([]model.Transaction, error) {
	query := url.Values{}
	if !since.IsZero() {
		query.Set("since_date", since.Format(dateFormat))
	}

	var resp transactionsResponse
	if err := c.get(ctx, "/budgets/"+budgetID+"/transactions", query, &resp); err != nil {
		return nil, fmt.Errorf("fetching transactions: %w", err)
	}

	var txns []model.Transaction
	for _, t := range resp.Data.Transactions {
		if t.Deleted || !eligible(model.ClearedState(t.Cleared), minState) {
			continue
		}
		date, err := time.Parse(dateFormat, t.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: parsing date %q: %w", t.ID, t.Date, err)
		}
		txn := model.Transaction{
			ID:                t.ID,
			Date:              date,
			PayeeName:         t.PayeeName,
			Memo:              t.Memo,
			Cleared:           model.ClearedState(t.Cleared),
			Amount:            model.Milliunits(t.Amount),
			Currency:          currency,
			AccountID:         t.AccountID,
			CategoryID:        t.CategoryID,
			TransferAccountID: t.TransferAccountID,
		}
		for _, s := range t.SubTransactions {
			txn.Legs = append(txn.Legs, model.SubTransaction{
				ID:                s.ID,
				Amount:            model.Milliunits(s.Amount),
				Memo:              s.Memo,
				PayeeName:         s.PayeeName,
				CategoryID:        s.CategoryID,
				TransferAccountID: s.TransferAccountID,
				Deleted:           s.Deleted,
			})
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// eligible reports whether a state passes the import threshold.
func eligible(s, min model.ClearedState) bool {
	if min == model.StateCleared {
		return s.AtLeastCleared()
	}
	return s == model.StateReconciled
}
