// Package ledger reads and writes the plaintext ledger format: scanning an
// existing file for ynab-id account overrides, and rendering translated
// transactions as text.
package ledger

import (
	"fmt"
	"io"

	"github.com/beanpull-dev/beanpull/internal/model"
)

const (
	dateFormat   = "2006-01-02"
	accountWidth = 50
	amountWidth  = 10
)

// Render writes one transaction in ledger text form: a header line with
// date, flag, quoted payee and optional quoted memo; a ynab-id metadata
// line; then one line per posting with the account left-padded and the
// amount right-aligned, followed by the currency and any trailing comment.
func Render(w io.Writer, t model.LedgerTransaction) error {
	header := fmt.Sprintf("%s %s %q", t.Date.Format(dateFormat), t.Flag, t.Payee)
	if t.Memo != "" {
		header += fmt.Sprintf(" %q", t.Memo)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(w, "  ynab-id: %q\n", t.RemoteID); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	for _, p := range t.Postings {
		line := fmt.Sprintf("  %-*s%*s %s", accountWidth, p.Account, amountWidth, p.Amount.String(), p.Currency)
		if p.Comment != "" {
			line += " ; " + p.Comment
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing posting: %w", err)
		}
	}
	return nil
}

// RenderAll writes transactions separated by blank lines.
func RenderAll(w io.Writer, txns []model.LedgerTransaction) error {
	for _, t := range txns {
		if err := Render(w, t); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("writing separator: %w", err)
		}
	}
	return nil
}
