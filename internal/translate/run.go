package translate

import (
	"fmt"
	"sort"
	"time"

	"github.com/beanpull-dev/beanpull/internal/model"
)

// Failure records one transaction whose translation failed. Failures never
// abort the run; they are collected and reported in the summary.
type Failure struct {
	TransactionID string
	Date          time.Time
	Payee         string
	Err           error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s %q (%s): %v", dateKey(f.Date), f.Payee, f.TransactionID, f.Err)
}

// Summary counts terminal outcomes for a whole run.
type Summary struct {
	Balanced int
	Warned   int
	Skipped  int
	Failures []Failure
}

// Translated returns the number of emitted ledger transactions.
func (s Summary) Translated() int {
	return s.Balanced + s.Warned
}

// Run translates every transaction and returns the emitted ledger
// transactions re-sorted by date then remote identifier, so output is
// deterministic regardless of fetch order.
func (tr *Translator) Run(txns []model.Transaction) ([]model.LedgerTransaction, Summary) {
	var out []model.LedgerTransaction
	var sum Summary

	for _, t := range txns {
		ledgerTxn, outcome, err := tr.Translate(t)
		switch outcome {
		case OutcomeSkipped:
			sum.Skipped++
		case OutcomeBalanced:
			sum.Balanced++
			out = append(out, ledgerTxn)
		case OutcomeUnbalancedWarned:
			sum.Warned++
			out = append(out, ledgerTxn)
		case OutcomeFailed:
			sum.Failures = append(sum.Failures, Failure{
				TransactionID: t.ID,
				Date:          t.Date,
				Payee:         t.PayeeName,
				Err:           err,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].RemoteID < out[j].RemoteID
	})
	return out, sum
}
