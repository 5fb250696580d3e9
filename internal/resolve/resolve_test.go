package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanpull-dev/beanpull/internal/model"
	"github.com/beanpull-dev/beanpull/internal/normalize"
)

const (
	checkingID = "5c94e822-7f23-4a26-a9e4-111111111111"
	rentID     = "5c94e822-7f23-4a26-a9e4-222222222222"
	inflowsID  = "5c94e822-7f23-4a26-a9e4-333333333333"
	mortgageID = "5c94e822-7f23-4a26-a9e4-444444444444"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	accounts := []model.Account{
		{ID: checkingID, Name: "Checking", OnBudget: true},
		{ID: mortgageID, Name: "Mortgage", OnBudget: false},
	}
	categories := []model.Category{
		{ID: rentID, Name: "Rent/Mortgage", GroupName: "Immediate Obligations"},
		{ID: inflowsID, Name: "Inflows", GroupName: "Internal Master Category"},
	}
	c, err := NewCatalog(accounts, categories)
	require.NoError(t, err)
	return c
}

func TestResolve_OverrideAlwaysWins(t *testing.T) {
	mapping := Mapping{checkingID: "Assets:Bank:Joint-Checking"}
	r := NewResolver(mapping, testCatalog(t), DefaultPrefixes())

	res, err := r.Resolve(checkingID)
	require.NoError(t, err)
	assert.Equal(t, Explicit, res.Source)
	assert.Equal(t, "Assets:Bank:Joint-Checking", res.Path)
}

func TestResolve_DerivedAccount(t *testing.T) {
	r := NewResolver(nil, testCatalog(t), DefaultPrefixes())

	res, err := r.Resolve(checkingID)
	require.NoError(t, err)
	assert.Equal(t, Derived, res.Source)
	assert.Equal(t, "Assets:Checking", res.Path)
}

func TestResolve_DerivedCategoryWithGroup(t *testing.T) {
	r := NewResolver(nil, testCatalog(t), DefaultPrefixes())

	res, err := r.Resolve(rentID)
	require.NoError(t, err)
	assert.Equal(t, "Expenses:Immediate-Obligations:RentMortgage", res.Path)
}

func TestResolve_InflowsConsolidatesToIncome(t *testing.T) {
	r := NewResolver(nil, testCatalog(t), DefaultPrefixes())

	res, err := r.Resolve(inflowsID)
	require.NoError(t, err)
	assert.Equal(t, "Income:Internal-Master-Category:Inflows", res.Path)
}

func TestResolve_OverrideBeatsInflowsConsolidation(t *testing.T) {
	mapping := Mapping{inflowsID: "Income:Salary"}
	r := NewResolver(mapping, testCatalog(t), DefaultPrefixes())

	res, err := r.Resolve(inflowsID)
	require.NoError(t, err)
	assert.Equal(t, Explicit, res.Source)
	assert.Equal(t, "Income:Salary", res.Path)
}

func TestResolve_UnknownID(t *testing.T) {
	r := NewResolver(nil, testCatalog(t), DefaultPrefixes())

	_, err := r.Resolve("no-such-id")
	var unknown *UnknownIDError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "no-such-id", unknown.ID)
}

func TestResolve_PurePunctuationNameSurfacesError(t *testing.T) {
	accounts := []model.Account{{ID: checkingID, Name: "???"}}
	categories := []model.Category{
		{ID: inflowsID, Name: "Inflows", GroupName: "Internal Master Category"},
	}
	catalog, err := NewCatalog(accounts, categories)
	require.NoError(t, err)

	r := NewResolver(nil, catalog, DefaultPrefixes())
	_, err = r.Resolve(checkingID)
	var emptyErr *normalize.EmptyError
	require.ErrorAs(t, err, &emptyErr)
}

func TestNewCatalog_RequiresInflows(t *testing.T) {
	_, err := NewCatalog(nil, []model.Category{
		{ID: rentID, Name: "Rent/Mortgage", GroupName: "Immediate Obligations"},
	})
	require.Error(t, err)
}

func TestClassify_ReservedKinds(t *testing.T) {
	cases := []struct {
		category model.Category
		want     ReservedKind
	}{
		{model.Category{Name: "Inflows", GroupName: "Internal Master Category"}, ReservedInflows},
		{model.Category{Name: "Uncategorized", GroupName: "Internal Master Category"}, ReservedUncategorized},
		{model.Category{Name: "Deferred Income SubCategory", GroupName: "Internal Master Category"}, ReservedDeferredIncome},
		{model.Category{Name: "Visa", GroupName: "Credit Card Payments"}, ReservedCreditCardPayment},
		{model.Category{Name: "Groceries", GroupName: "Frequent"}, ReservedNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.category), tc.category.Name)
	}
}
