// Package resolve maps remote account and category identifiers to ledger
// account paths. An explicit ynab-id override from the ledger always wins;
// otherwise the path is derived from the normalized display name under a
// fixed prefix hierarchy.
package resolve

import (
	"fmt"

	"github.com/beanpull-dev/beanpull/internal/normalize"
)

// Mapping binds remote identifiers to ledger account paths, sourced from
// ynab-id metadata on existing ledger account declarations.
type Mapping map[string]string

// Source tags how a path was resolved.
type Source int

const (
	// Explicit means a ynab-id override in the ledger supplied the path.
	Explicit Source = iota
	// Derived means the default prefix + normalized-name algorithm applied.
	Derived
)

// Resolution is a resolved ledger account path and how it was obtained.
type Resolution struct {
	Path   string
	Source Source
}

// Prefixes are the ledger hierarchy roots used for derived paths.
type Prefixes struct {
	Assets   string
	Expenses string
	Income   string
}

// DefaultPrefixes returns the conventional beancount root names.
func DefaultPrefixes() Prefixes {
	return Prefixes{Assets: "Assets", Expenses: "Expenses", Income: "Income"}
}

// UnknownIDError reports an identifier present in neither the account nor the
// category catalog.
type UnknownIDError struct {
	ID string
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("remote identifier %s matches no known account or category", e.ID)
}

// Resolver is the single pure decision point for identifier resolution. Its
// inputs are built once per run and never mutated, so it is safe to share.
type Resolver struct {
	mapping  Mapping
	catalog  *Catalog
	prefixes Prefixes
}

// NewResolver creates a Resolver over an override mapping and a catalog.
func NewResolver(mapping Mapping, catalog *Catalog, prefixes Prefixes) *Resolver {
	if mapping == nil {
		mapping = Mapping{}
	}
	return &Resolver{mapping: mapping, catalog: catalog, prefixes: prefixes}
}

// Resolve maps a remote identifier to a ledger account path. Resolution
// order: explicit override first, then the derived algorithm: Assets for
// accounts, Income for the reserved Inflows pseudo-category, Expenses with a
// group segment for ordinary categories.
func (r *Resolver) Resolve(id string) (Resolution, error) {
	if path, ok := r.mapping[id]; ok {
		return Resolution{Path: path, Source: Explicit}, nil
	}
	path, err := r.derive(id)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Path: path, Source: Derived}, nil
}

func (r *Resolver) derive(id string) (string, error) {
	if a, ok := r.catalog.Account(id); ok {
		seg, err := normalize.Name(a.Name)
		if err != nil {
			return "", fmt.Errorf("account %s: %w", id, err)
		}
		return r.prefixes.Assets + ":" + seg, nil
	}
	if c, ok := r.catalog.Category(id); ok {
		seg, err := normalize.Qualified(c.Name, c.GroupName)
		if err != nil {
			return "", fmt.Errorf("category %s: %w", id, err)
		}
		prefix := r.prefixes.Expenses
		if id == r.catalog.InflowsID() {
			// Income consolidation: all pure income flows through the one
			// fixed Inflows pseudo-category, so it derives one fixed path.
			prefix = r.prefixes.Income
		}
		return prefix + ":" + seg, nil
	}
	return "", &UnknownIDError{ID: id}
}

// Override returns the explicit override for an identifier, if any.
func (r *Resolver) Override(id string) (string, bool) {
	path, ok := r.mapping[id]
	return path, ok
}
