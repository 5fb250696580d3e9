// Package translate converts remote transactions into balanced double-entry
// ledger transactions and applies the import policies: starting-balance
// skipping, income consolidation, and single-leg tracking-account warnings.
package translate

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/beanpull-dev/beanpull/internal/model"
	"github.com/beanpull-dev/beanpull/internal/resolve"
)

// Reserved payee and memo strings the remote service generates itself.
const (
	startingBalancePayee = "Starting Balance"
	adjustmentPayee      = "Reconciliation Balance Adjustment"
	adjustmentMemo       = "Entered automatically by YNAB"
)

// Outcome is the terminal state of one transaction's translation.
type Outcome int

const (
	OutcomeSkipped Outcome = iota
	OutcomeBalanced
	OutcomeUnbalancedWarned
	OutcomeFailed
)

// Options holds the policy knobs recognized by the translator.
type Options struct {
	// SkipStartingBalances drops the service's generated "Starting Balance"
	// transactions before translation.
	SkipStartingBalances bool
	// AdjustmentAccount, when set, receives all automatically entered
	// reconciliation balance adjustments instead of their category.
	AdjustmentAccount string
}

// Translator converts one remote transaction at a time. All of its inputs
// are read-only, so translations are independent and order-free.
type Translator struct {
	resolver *resolve.Resolver
	catalog  *resolve.Catalog
	opts     Options
	log      *log.Logger
}

// NewTranslator creates a Translator. Diagnostics go to logger, never to the
// ledger output stream.
func NewTranslator(resolver *resolve.Resolver, catalog *resolve.Catalog, opts Options, logger *log.Logger) *Translator {
	return &Translator{resolver: resolver, catalog: catalog, opts: opts, log: logger}
}

// Translate converts one remote transaction. The returned outcome says
// whether the transaction was skipped by policy, translated balanced,
// translated with a single-leg warning, or failed.
func (tr *Translator) Translate(t model.Transaction) (model.LedgerTransaction, Outcome, error) {
	if tr.skipStartingBalance(t) {
		tr.log.Debug("skipping starting balance", "date", t.Date.Format("2006-01-02"), "id", t.ID)
		return model.LedgerTransaction{}, OutcomeSkipped, nil
	}

	owning, err := tr.resolver.Resolve(t.AccountID)
	if err != nil {
		return model.LedgerTransaction{}, OutcomeFailed, fmt.Errorf("owning account: %w", err)
	}

	out := model.LedgerTransaction{
		Date:     t.Date,
		Flag:     flagFor(t.Cleared),
		Payee:    t.PayeeName,
		Memo:     t.Memo,
		RemoteID: t.ID,
		Postings: []model.Posting{{
			Account:  owning.Path,
			Amount:   t.Amount.Decimal(),
			Currency: t.Currency,
		}},
	}

	if t.Split() {
		if err := tr.appendLegs(&out, t); err != nil {
			return model.LedgerTransaction{}, OutcomeFailed, err
		}
		return out, OutcomeBalanced, nil
	}

	target, ok, err := tr.target(t.PayeeName, t.Memo, t.CategoryID, t.TransferAccountID)
	if err != nil {
		return model.LedgerTransaction{}, OutcomeFailed, err
	}
	if !ok {
		// Tracking accounts can produce transactions with no category and no
		// transfer target. Emit the single posting as-is rather than invent a
		// plug account, and tell the user to supply the missing leg.
		tr.warnSingleLeg(t, owning.Path)
		return out, OutcomeUnbalancedWarned, nil
	}

	out.Postings = append(out.Postings, model.Posting{
		Account:  target,
		Amount:   t.Amount.Neg().Decimal(),
		Currency: t.Currency,
	})
	return out, OutcomeBalanced, nil
}

// appendLegs emits one posting per split leg. The service reports leg amounts
// from the budget's perspective, so each is negated to balance the owning
// posting. Zero-amount legs are omitted.
func (tr *Translator) appendLegs(out *model.LedgerTransaction, t model.Transaction) error {
	for _, leg := range t.Legs {
		if leg.Deleted || leg.Amount == 0 {
			continue
		}
		target, ok, err := tr.target(leg.PayeeName, leg.Memo, leg.CategoryID, leg.TransferAccountID)
		if err != nil {
			return fmt.Errorf("leg %s: %w", leg.ID, err)
		}
		if !ok {
			return fmt.Errorf("leg %s has no category or transfer target", leg.ID)
		}
		out.Postings = append(out.Postings, model.Posting{
			Account:  target,
			Amount:   leg.Amount.Neg().Decimal(),
			Currency: t.Currency,
			Comment:  leg.Memo,
		})
	}
	return nil
}

// target resolves the balancing side of a transaction or leg: the configured
// adjustment account for generated reconciliation adjustments, otherwise the
// category, otherwise the transfer account. ok is false when none exists.
func (tr *Translator) target(payee, memo, categoryID, transferAccountID string) (string, bool, error) {
	if tr.opts.AdjustmentAccount != "" && payee == adjustmentPayee && memo == adjustmentMemo {
		return tr.opts.AdjustmentAccount, true, nil
	}
	id := categoryID
	if id == "" {
		id = transferAccountID
	}
	if id == "" {
		return "", false, nil
	}
	res, err := tr.resolver.Resolve(id)
	if err != nil {
		return "", false, err
	}
	return res.Path, true, nil
}

// skipStartingBalance applies the starting-balance policy before any
// translation work, so a skipped transaction never produces partial output.
// Budget-account starting balances carry the Inflows category; tracking
// accounts carry no category at all. Both forms are skipped.
func (tr *Translator) skipStartingBalance(t model.Transaction) bool {
	if !tr.opts.SkipStartingBalances || t.PayeeName != startingBalancePayee {
		return false
	}
	return t.CategoryID == tr.catalog.InflowsID() || t.CategoryID == ""
}

func (tr *Translator) warnSingleLeg(t model.Transaction, owningPath string) {
	tr.log.Warn("transaction has only one resolvable leg; supply the missing posting by hand",
		"date", t.Date.Format("2006-01-02"),
		"payee", t.PayeeName,
		"account", owningPath,
		"amount", t.Amount.Decimal().String(),
		"ynab-id", t.ID,
	)
}

func flagFor(s model.ClearedState) model.Flag {
	if s.AtLeastCleared() {
		return model.FlagCleared
	}
	return model.FlagPending
}

// dateKey is the canonical per-day format used in diagnostics and sorting.
func dateKey(d time.Time) string {
	return d.Format("2006-01-02")
}
