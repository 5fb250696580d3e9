package model

// Account is a budget or tracking account as reported by the remote service.
// Tracking (off-budget) accounts can produce single-leg transactions because
// the service does not require a category on them.
type Account struct {
	ID       string // remote UUID
	Name     string
	Type     string // checking, savings, mortgage, etc.
	OnBudget bool
	Closed   bool
	Deleted  bool
}

// CategoryGroup is the top level of the remote category hierarchy.
type CategoryGroup struct {
	ID      string
	Name    string
	Hidden  bool
	Deleted bool
}

// Category is a budget category nested under a CategoryGroup. GroupName is
// denormalized at fetch time so resolution never needs the group table.
type Category struct {
	ID        string
	GroupID   string
	GroupName string
	Name      string
	Hidden    bool
	Deleted   bool
}
