package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hirosato/ynab-mcp/internal/domain/analysis"
	"github.com/hirosato/ynab-mcp/internal/domain/categorizer"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab/ynabtest"
)

func TestAccounts(t *testing.T) {
	closed := ynabtest.Account("Old", ynab.AccountTypeChecking, 1000)
	closed.Closed = true
	out := Accounts([]ynab.Account{
		ynabtest.Account("Checking", ynab.AccountTypeChecking, 1234500),
		ynabtest.Account("Visa", ynab.AccountTypeCreditCard, -250000),
		closed,
	})
	assert.Contains(t, out, "- + **Checking** (checking): $1,234.50")
	assert.Contains(t, out, "- - **Visa** (creditCard): $250.00")
	assert.NotContains(t, out, "Old")

	assert.Equal(t, "No open accounts found.", Accounts([]ynab.Account{closed}))
}

func TestBudgetSummary(t *testing.T) {
	groups := []ynab.CategoryGroup{
		ynabtest.Group("Internal Master Category", ynabtest.Category("Inflow: Ready to Assign", 0, 500000, 500000)),
		ynabtest.Group("Food",
			ynabtest.Category("Groceries", 400000, -450000, -50000),
			ynabtest.Category("Idle", 0, 0, 0),
		),
	}
	out := BudgetSummary(groups)
	assert.Contains(t, out, "### Food")
	assert.Contains(t, out, "[!!] Groceries: $400.00 budgeted | $450.00 spent | -$50.00 left")
	assert.NotContains(t, out, "Idle")
	assert.NotContains(t, out, "Inflow")
	assert.Contains(t, out, "**Totals:** $400.00 budgeted | $450.00 spent | -$50.00 remaining")
}

func TestTransactions_NewestFirstWithLimit(t *testing.T) {
	txns := []ynab.Transaction{
		ynabtest.Transaction("Old", -1000, "Food", "2025-01-01"),
		ynabtest.Transaction("New", 2000, "", "2025-03-01"),
		ynabtest.Transaction("Mid", -3000, "Food", "2025-02-01"),
	}
	out := Transactions(txns, 2)
	assert.Contains(t, out, "## Transactions (2 shown)")
	assert.Less(t, strings.Index(out, "New"), strings.Index(out, "Mid"))
	assert.NotContains(t, out, "Old")
	assert.Contains(t, out, "2025-03-01 [IN] **$2.00** | New | Uncategorized")

	assert.Equal(t, "No transactions found matching your criteria.", Transactions(nil, 10))
}

func TestOverspending(t *testing.T) {
	assert.Equal(t, "No overspending found. All categories are on track!", Overspending(analysis.OverspendingResult{}))

	out := Overspending(analysis.OverspendingResult{
		Overspent:      []analysis.CategoryBalance{{Name: "Rent", Amount: -100}},
		Suggestions:    []analysis.MoveSuggestion{{FromCategory: "Dining", ToCategory: "Rent", Amount: 80}},
		TotalOverspent: 100,
	})
	assert.Contains(t, out, "Total overspent: **$100.00**")
	assert.Contains(t, out, "- **Rent**: $100.00 over budget")
	assert.Contains(t, out, "- Move **$80.00** from Dining -> Rent")
}

func TestSpendingTrends(t *testing.T) {
	out := SpendingTrends(analysis.SpendingTrendResult{
		Months:        []string{"2025-02", "2025-03"},
		MonthlyTotals: map[string]map[string]float64{"2025-02": {"Food": 50}, "2025-03": {"Food": 150}},
		Averages:      map[string]float64{"Food": 100},
		Anomalies:     []analysis.AnomalyItem{{CategoryName: "Food", CurrentAmount: 150, AverageAmount: 100, PctAboveAverage: 50}},
	})
	assert.Contains(t, out, "| Category | 2025-02 | 2025-03 | Avg |")
	assert.Contains(t, out, "|---|---|---|---|")
	assert.Contains(t, out, "| Food | $50.00 | $150.00 | $100.00 |")
	assert.Contains(t, out, "(50% above average)")

	empty := SpendingTrends(analysis.SpendingTrendResult{MonthlyTotals: map[string]map[string]float64{"2025-03": {}}})
	assert.Equal(t, "No spending data found for the requested period.", empty)
}

func TestCreditCards(t *testing.T) {
	out := CreditCards(analysis.CreditCardAnalysis{
		Cards: []analysis.CreditCardInfo{
			{AccountName: "Visa", Balance: -500, PaymentAvailable: 400, Discrepancy: -100},
			{AccountName: "Amex", Balance: -100, PaymentAvailable: 100, Discrepancy: 0},
		},
		TotalOwed:             600,
		TotalPaymentAvailable: 500,
	})
	assert.Contains(t, out, "### [!!] Visa")
	assert.Contains(t, out, "- **Underfunded by:** $100.00")
	assert.Contains(t, out, "### [OK] Amex")
	assert.Contains(t, out, "- **Fully funded**")
	assert.Contains(t, out, "**Total owed:** $600.00")
}

func TestCategoryUpdated(t *testing.T) {
	name := "Food & Dining"
	empty := ""
	out := CategoryUpdated("Food", &name, nil, &empty)
	assert.Contains(t, out, "- **Name:** Food → Food & Dining")
	assert.Contains(t, out, "- **Note:** (none) → (cleared)")
}

func TestLearnedCategories(t *testing.T) {
	out := LearnedCategories([]categorizer.Mapping{{Payee: "whole foods", CategoryName: "Groceries"}}, 12)
	assert.Contains(t, out, "Learned 1 payee -> category mappings from 12 transactions.")
	assert.Contains(t, out, "- Whole Foods -> Groceries")
}

func TestImportAndBulk(t *testing.T) {
	assert.Equal(t, "Import complete. No new transactions found.", ImportResult(nil))
	assert.Equal(t, "Imported **1** new transaction.", ImportResult([]string{"a"}))

	out := BulkUpdateResult(2, []string{"No transaction found matching 'x'."})
	assert.Contains(t, out, "Updated **2** transactions.")
	assert.Contains(t, out, "**Errors (1):**")
}
