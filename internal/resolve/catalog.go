package resolve

import (
	"fmt"

	"github.com/beanpull-dev/beanpull/internal/model"
)

// Reserved names the remote service uses for its internal pseudo-categories.
const (
	internalMasterGroup    = "Internal Master Category"
	creditCardPaymentGroup = "Credit Card Payments"
	inflowsName            = "Inflows"
	uncategorizedName      = "Uncategorized"
	deferredIncomeName     = "Deferred Income SubCategory"
)

// ReservedKind classifies the service's reserved pseudo-categories. Only
// Inflows carries special resolution semantics (income consolidation); the
// service documents nothing about the others, so they resolve through the
// default algorithm like any ordinary category.
type ReservedKind int

const (
	ReservedNone ReservedKind = iota
	ReservedInflows
	ReservedUncategorized
	ReservedDeferredIncome
	ReservedCreditCardPayment
)

// Classify returns the reserved kind of a category, or ReservedNone.
func Classify(c model.Category) ReservedKind {
	switch c.GroupName {
	case internalMasterGroup:
		switch c.Name {
		case inflowsName:
			return ReservedInflows
		case uncategorizedName:
			return ReservedUncategorized
		case deferredIncomeName:
			return ReservedDeferredIncome
		}
	case creditCardPaymentGroup:
		return ReservedCreditCardPayment
	}
	return ReservedNone
}

// Catalog is the read-only remote account and category snapshot, built once
// per run before any translation begins.
type Catalog struct {
	accounts   map[string]model.Account
	categories map[string]model.Category
	accountIDs []string
	categoryID []string
	inflowsID  string
}

// NewCatalog indexes accounts and categories by identifier and locates the
// reserved Inflows pseudo-category, which every budget carries exactly once.
func NewCatalog(accounts []model.Account, categories []model.Category) (*Catalog, error) {
	c := &Catalog{
		accounts:   make(map[string]model.Account, len(accounts)),
		categories: make(map[string]model.Category, len(categories)),
	}
	for _, a := range accounts {
		c.accounts[a.ID] = a
		c.accountIDs = append(c.accountIDs, a.ID)
	}
	for _, cat := range categories {
		c.categories[cat.ID] = cat
		c.categoryID = append(c.categoryID, cat.ID)
		if Classify(cat) == ReservedInflows {
			if c.inflowsID != "" {
				return nil, fmt.Errorf("multiple Inflows categories: %s and %s", c.inflowsID, cat.ID)
			}
			c.inflowsID = cat.ID
		}
	}
	if c.inflowsID == "" {
		return nil, fmt.Errorf("no Inflows category in %q group", internalMasterGroup)
	}
	return c, nil
}

// Account returns the account for a remote identifier.
func (c *Catalog) Account(id string) (model.Account, bool) {
	a, ok := c.accounts[id]
	return a, ok
}

// Category returns the category for a remote identifier.
func (c *Catalog) Category(id string) (model.Category, bool) {
	cat, ok := c.categories[id]
	return cat, ok
}

// AccountIDs returns account identifiers in fetch order.
func (c *Catalog) AccountIDs() []string {
	return c.accountIDs
}

// CategoryIDs returns category identifiers in fetch order.
func (c *Catalog) CategoryIDs() []string {
	return c.categoryID
}

// InflowsID returns the identifier of the reserved Inflows pseudo-category.
func (c *Catalog) InflowsID() string {
	return c.inflowsID
}
