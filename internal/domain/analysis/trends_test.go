package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab/ynabtest"
)

var march15 = time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)

func TestAnalyzeSpendingTrends_Buckets(t *testing.T) {
	txns := []ynab.Transaction{
		ynabtest.Transaction("HEB", -50000, "Groceries", "2025-01-10"),
		ynabtest.Transaction("HEB", -70000, "Groceries", "2025-03-02"),
		ynabtest.Transaction("Employer", 900000, "Inflow: Ready to Assign", "2025-03-01"),
		ynabtest.Transaction("Mystery", -12340, "", "2025-02-20"),
		ynabtest.Transaction("Too Old", -99000, "Groceries", "2024-12-31"),
	}
	deleted := ynabtest.Transaction("HEB", -1000000, "Groceries", "2025-03-03")
	deleted.Deleted = true
	txns = append(txns, deleted)

	result := AnalyzeSpendingTrends(txns, 3, "", march15)

	assert.Equal(t, []string{"2025-01", "2025-02", "2025-03"}, result.Months)
	assert.Equal(t, 50.0, result.MonthlyTotals["2025-01"]["Groceries"])
	assert.Equal(t, 70.0, result.MonthlyTotals["2025-03"]["Groceries"])
	assert.Equal(t, 12.34, result.MonthlyTotals["2025-02"][ynab.UncategorizedLabel])
	assert.NotContains(t, result.MonthlyTotals["2025-03"], "Inflow: Ready to Assign")
	// Empty February counts toward the average.
	assert.Equal(t, 40.0, result.Averages["Groceries"])
	assert.Equal(t, 3, result.NumMonths)
}

func TestAnalyzeSpendingTrends_YearRollover(t *testing.T) {
	result := AnalyzeSpendingTrends(nil, 3, "", time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{"2024-11", "2024-12", "2025-01"}, result.Months)
	assert.Empty(t, result.Anomalies)
}

func TestAnalyzeSpendingTrends_CategoryFilter(t *testing.T) {
	txns := []ynab.Transaction{
		ynabtest.Transaction("HEB", -50000, "Groceries", "2025-03-01"),
		ynabtest.Transaction("Cafe", -20000, "Dining Out", "2025-03-01"),
	}
	result := AnalyzeSpendingTrends(txns, 1, "DINING", march15)
	assert.Equal(t, map[string]float64{"Dining Out": 20.0}, result.MonthlyTotals["2025-03"])
	assert.Equal(t, "DINING", result.CategoryFilter)
}

func TestAnalyzeSpendingTrends_AnomalyBoundary(t *testing.T) {
	history := ynabtest.Transaction("Cafe", -50000, "Dining", "2025-02-10")

	t.Run("exactly one and a half times the average", func(t *testing.T) {
		txns := []ynab.Transaction{history, ynabtest.Transaction("Cafe", -150000, "Dining", "2025-03-10")}
		result := AnalyzeSpendingTrends(txns, 2, "", march15)
		require.Equal(t, 100.0, result.Averages["Dining"])
		assert.Empty(t, result.Anomalies)
	})

	t.Run("one cent above", func(t *testing.T) {
		txns := []ynab.Transaction{history, ynabtest.Transaction("Cafe", -150010, "Dining", "2025-03-10")}
		result := AnalyzeSpendingTrends(txns, 2, "", march15)
		require.Len(t, result.Anomalies, 1)
		assert.Equal(t, "Dining", result.Anomalies[0].CategoryName)
		assert.Equal(t, 150.01, result.Anomalies[0].CurrentAmount)
	})
}

func TestAnalyzeSpendingTrends_AnomaliesSortedByOvershoot(t *testing.T) {
	txns := []ynab.Transaction{
		ynabtest.Transaction("Cafe", -10000, "Dining", "2025-01-10"),
		ynabtest.Transaction("Cafe", -100000, "Dining", "2025-03-10"),
		ynabtest.Transaction("Shop", -10000, "Shopping", "2025-01-10"),
		ynabtest.Transaction("Shop", -10000, "Shopping", "2025-02-10"),
		ynabtest.Transaction("Shop", -60000, "Shopping", "2025-03-10"),
	}
	result := AnalyzeSpendingTrends(txns, 3, "", march15)
	require.Len(t, result.Anomalies, 2)
	assert.Equal(t, "Dining", result.Anomalies[0].CategoryName)
	assert.Equal(t, "Shopping", result.Anomalies[1].CategoryName)
	assert.Greater(t, result.Anomalies[0].PctAboveAverage, result.Anomalies[1].PctAboveAverage)
}
