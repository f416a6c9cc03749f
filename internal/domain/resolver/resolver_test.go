package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hirosato/ynab-mcp/internal/domain/errors"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab/ynabtest"
)

func TestResolveAccount(t *testing.T) {
	t.Run("partial case-insensitive match", func(t *testing.T) {
		accounts := []ynab.Account{ynabtest.Account("My Checking Account", ynab.AccountTypeChecking, 0)}
		acc, err := ResolveAccount(accounts, "check")
		require.NoError(t, err)
		assert.Equal(t, "My Checking Account", acc.Name)
	})

	t.Run("first match in input order", func(t *testing.T) {
		accounts := []ynab.Account{
			ynabtest.Account("Joint Savings", ynab.AccountTypeSavings, 0),
			ynabtest.Account("Savings Buffer", ynab.AccountTypeSavings, 0),
		}
		acc, err := ResolveAccount(accounts, "savings")
		require.NoError(t, err)
		assert.Equal(t, "Joint Savings", acc.Name)
	})

	t.Run("default prefers checking", func(t *testing.T) {
		accounts := []ynab.Account{
			ynabtest.Account("Savings", ynab.AccountTypeSavings, 0),
			ynabtest.Account("Checking", ynab.AccountTypeChecking, 0),
		}
		acc, err := ResolveAccount(accounts, "")
		require.NoError(t, err)
		assert.Equal(t, "Checking", acc.Name)
	})

	t.Run("default falls back to any on-budget account", func(t *testing.T) {
		accounts := []ynab.Account{ynabtest.Account("Savings", ynab.AccountTypeSavings, 0)}
		acc, err := ResolveAccount(accounts, "")
		require.NoError(t, err)
		assert.Equal(t, "Savings", acc.Name)
	})

	t.Run("closed accounts are skipped everywhere", func(t *testing.T) {
		closed := ynabtest.Account("Old Checking", ynab.AccountTypeChecking, 0)
		closed.Closed = true
		accounts := []ynab.Account{closed, ynabtest.Account("New Savings", ynab.AccountTypeSavings, 0)}

		_, err := ResolveAccount(accounts, "Old Checking")
		var lookupErr *apperrors.LookupError
		require.ErrorAs(t, err, &lookupErr)
		assert.Equal(t, []string{"New Savings"}, lookupErr.Available)

		acc, err := ResolveAccount(accounts, "")
		require.NoError(t, err)
		assert.Equal(t, "New Savings", acc.Name)
	})

	t.Run("off-budget accounts are never defaults", func(t *testing.T) {
		tracking := ynabtest.Account("Tracking", ynab.AccountTypeSavings, 0)
		tracking.OnBudget = false
		_, err := ResolveAccount([]ynab.Account{tracking}, "")
		var lookupErr *apperrors.LookupError
		require.ErrorAs(t, err, &lookupErr)
		assert.Equal(t, "<default>", lookupErr.Query)
		assert.Empty(t, lookupErr.Available)
	})

	t.Run("no match lists open accounts", func(t *testing.T) {
		_, err := ResolveAccount([]ynab.Account{ynabtest.Account("Checking", ynab.AccountTypeChecking, 0)}, "Credit Card")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Available: Checking")
	})
}

func TestResolveCategory(t *testing.T) {
	groups := []ynab.CategoryGroup{
		ynabtest.Group("Internal Master Category", ynabtest.Category("Inflow: Ready to Assign", 0, 0, 0)),
		ynabtest.Group("Bills", ynabtest.Category("Rent", 0, 0, 0), ynabtest.Category("Electric", 0, 0, 0)),
		ynabtest.Group("Food", ynabtest.Category("Groceries", 0, 0, 0), ynabtest.Category("Dining Out", 0, 0, 0)),
	}

	cat, err := ResolveCategory(groups, "dining")
	require.NoError(t, err)
	assert.Equal(t, "Dining Out", cat.Name)

	// "e" matches Rent before anything in Food.
	cat, err = ResolveCategory(groups, "E")
	require.NoError(t, err)
	assert.Equal(t, "Rent", cat.Name)

	_, err = ResolveCategory(groups, "Inflow")
	var lookupErr *apperrors.LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "category", lookupErr.EntityType)

	hidden := ynabtest.Category("Old Groceries", 0, 0, 0)
	hidden.Hidden = true
	_, err = ResolveCategory([]ynab.CategoryGroup{ynabtest.Group("Food", hidden)}, "Groceries")
	assert.Error(t, err)

	hiddenGroup := ynabtest.Group("Archive", ynabtest.Category("Vacation", 0, 0, 0))
	hiddenGroup.Hidden = true
	_, err = ResolveCategory([]ynab.CategoryGroup{hiddenGroup}, "Vacation")
	assert.Error(t, err)
}

func TestResolveCategoryOrInflow(t *testing.T) {
	groups := []ynab.CategoryGroup{
		ynabtest.Group("Internal Master Category", ynabtest.Category("Inflow: Ready to Assign", 0, 0, 0)),
		ynabtest.Group("Income", ynabtest.Category("Cash Inflow Tracker", 0, 0, 0)),
	}

	for _, q := range []string{"inflow", "Ready to Assign", "  INFLOW: READY TO ASSIGN "} {
		cat, err := ResolveCategoryOrInflow(groups, q)
		require.NoError(t, err, q)
		assert.Equal(t, "Inflow: Ready to Assign", cat.Name, q)
	}

	cat, err := ResolveCategoryOrInflow(groups, "cash inflow")
	require.NoError(t, err)
	assert.Equal(t, "Cash Inflow Tracker", cat.Name)

	_, err = ResolveCategoryOrInflow(groups, "cashflow")
	assert.Error(t, err)

	deleted := ynabtest.Category("Inflow: Ready to Assign", 0, 0, 0)
	deleted.Deleted = true
	_, err = ResolveCategoryOrInflow([]ynab.CategoryGroup{ynabtest.Group("Internal Master Category", deleted)}, "inflow")
	assert.Error(t, err)
}

func TestResolvePayee(t *testing.T) {
	gone := ynabtest.Payee("HEB Old")
	gone.Deleted = true
	payees := []ynab.Payee{gone, ynabtest.Payee("HEB"), ynabtest.Payee("Costco")}

	p, err := ResolvePayee(payees, "heb")
	require.NoError(t, err)
	assert.Equal(t, "HEB", p.Name)

	var many []ynab.Payee
	for i := 0; i < 30; i++ {
		many = append(many, ynab.Payee{ID: string(rune('a' + i)), Name: "Store " + string(rune('A'+i))})
	}
	_, err = ResolvePayee(many, "nowhere")
	var lookupErr *apperrors.LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Len(t, lookupErr.Available, 20)
}
