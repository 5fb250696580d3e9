package resolve

import (
	"fmt"
	"io"
	"sort"

	"github.com/beanpull-dev/beanpull/internal/normalize"
)

// NoneSentinel marks an identifier no ledger account currently declares.
const NoneSentinel = "(none)"

// ReportLine pairs one remote identifier with its display name and the
// ledger account declaring it, if any.
type ReportLine struct {
	ID       string
	Name     string
	Declared string
}

// BuildReport produces the list-ynab-ids diagnostic: every known account and
// category with its ynab-id and the ledger account bound to it, accounts
// first, each section sorted by name.
func BuildReport(catalog *Catalog, mapping Mapping) []ReportLine {
	var accounts, categories []ReportLine

	for _, id := range catalog.AccountIDs() {
		a, _ := catalog.Account(id)
		accounts = append(accounts, ReportLine{
			ID:       id,
			Name:     fallbackName(a.Name, ""),
			Declared: declared(mapping, id),
		})
	}
	for _, id := range catalog.CategoryIDs() {
		c, _ := catalog.Category(id)
		categories = append(categories, ReportLine{
			ID:       id,
			Name:     fallbackName(c.Name, c.GroupName),
			Declared: declared(mapping, id),
		})
	}

	byName := func(lines []ReportLine) {
		sort.Slice(lines, func(i, j int) bool { return lines[i].Name < lines[j].Name })
	}
	byName(accounts)
	byName(categories)
	return append(accounts, categories...)
}

// WriteReport renders report lines: the identifier and name on one line, the
// declaring ledger account indented beneath it.
func WriteReport(w io.Writer, lines []ReportLine) error {
	const indent = 36 // width of a UUID, so declarations line up under names
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s %s\n%*s %s\n", l.ID, l.Name, indent, "", l.Declared); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}

func declared(mapping Mapping, id string) string {
	if path, ok := mapping[id]; ok {
		return path
	}
	return NoneSentinel
}

// fallbackName is the normalized qualified name, or the raw display name
// when normalization cannot produce one. The report must list every
// identifier, including those whose names the default algorithm rejects.
func fallbackName(name, group string) string {
	q, err := normalize.Qualified(name, group)
	if err == nil {
		return q
	}
	if group != "" {
		return group + ":" + name
	}
	return name
}
