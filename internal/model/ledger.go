package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Flag marks a ledger transaction's confirmation state. Everything this
// importer emits is at least cleared, so the pending flag only appears if a
// collaborator violates that precondition.
type Flag string

const (
	FlagCleared Flag = "*"
	FlagPending Flag = "!"
)

// Posting is one account/amount line within a ledger transaction.
type Posting struct {
	Account  string // colon-delimited hierarchical path
	Amount   decimal.Decimal
	Currency string
	Comment  string // trailing "; ..." comment, usually a leg memo
}

// LedgerTransaction is a renderable double-entry transaction. Postings sum to
// zero per currency except for the warned single-leg tracking-account case.
type LedgerTransaction struct {
	Date     time.Time
	Flag     Flag
	Payee    string
	Memo     string
	RemoteID string // emitted as ynab-id metadata
	Postings []Posting
}

// Balanced reports whether the postings sum to zero in every currency.
func (t LedgerTransaction) Balanced() bool {
	sums := make(map[string]decimal.Decimal, 1)
	for _, p := range t.Postings {
		sums[p.Currency] = sums[p.Currency].Add(p.Amount)
	}
	for _, sum := range sums {
		if !sum.IsZero() {
			return false
		}
	}
	return true
}
