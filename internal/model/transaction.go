package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClearedState is the remote service's transaction lifecycle state.
type ClearedState string

const (
	StateUncleared  ClearedState = "uncleared"
	StateCleared    ClearedState = "cleared"
	StateReconciled ClearedState = "reconciled"
)

// AtLeastCleared reports whether the state is cleared or reconciled.
// Only such transactions are eligible for import.
func (s ClearedState) AtLeastCleared() bool {
	return s == StateCleared || s == StateReconciled
}

// Milliunits is the remote service's fixed-point amount representation:
// one thousandth of the currency's major unit, so -100000 is -100.00.
type Milliunits int64

// Decimal converts milliunits to a decimal major-unit amount.
func (m Milliunits) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -3)
}

// Neg returns the negated amount.
func (m Milliunits) Neg() Milliunits {
	return -m
}

// SubTransaction is one leg of a split transaction. The service reports leg
// amounts from the budget's point of view; the translator negates them so the
// legs balance the owning-account posting.
type SubTransaction struct {
	ID                string
	Amount            Milliunits
	Memo              string
	PayeeName         string
	CategoryID        string
	TransferAccountID string
	Deleted           bool
}

// Transaction is an immutable snapshot of one remote transaction.
type Transaction struct {
	ID                string
	Date              time.Time
	PayeeName         string
	Memo              string
	Cleared           ClearedState
	Amount            Milliunits
	Currency          string // ISO code from the budget's currency format
	AccountID         string
	CategoryID        string
	TransferAccountID string
	Deleted           bool
	Legs              []SubTransaction
}

// Split reports whether the transaction is split across categories.
func (t Transaction) Split() bool {
	return len(t.Legs) > 0
}
