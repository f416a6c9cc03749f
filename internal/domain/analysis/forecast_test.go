package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab/ynabtest"
)

func TestForecastSpending(t *testing.T) {
	cat := ynabtest.Category("Groceries", 500000, 0, 0)

	t.Run("mid month projection", func(t *testing.T) {
		txns := []ynab.Transaction{
			ynabtest.Transaction("HEB", -100000, "Groceries", "2025-03-02"),
			ynabtest.Transaction("HEB", -50000, "Groceries", "2025-03-09"),
			ynabtest.Transaction("HEB", 20000, "Groceries", "2025-03-10"),
		}
		f := ForecastSpending(cat, txns, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, 15, f.DaysElapsed)
		assert.Equal(t, 16, f.DaysRemaining)
		assert.Equal(t, 150.0, f.SpentSoFar)
		assert.Equal(t, 10.0, f.DailyRate)
		assert.Equal(t, 310.0, f.ProjectedTotal)
		assert.True(t, f.WillStayInBudget)
		assert.Equal(t, 190.0, f.ProjectedRemaining)
	})

	t.Run("december thirty-first", func(t *testing.T) {
		txns := []ynab.Transaction{ynabtest.Transaction("HEB", -620000, "Groceries", "2025-12-20")}
		f := ForecastSpending(cat, txns, time.Date(2025, time.December, 31, 23, 0, 0, 0, time.UTC))
		assert.Equal(t, 31, f.DaysElapsed)
		assert.Equal(t, 0, f.DaysRemaining)
		assert.Equal(t, f.SpentSoFar, f.ProjectedTotal)
		assert.False(t, f.WillStayInBudget)
	})

	t.Run("january first", func(t *testing.T) {
		f := ForecastSpending(cat, nil, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, 1, f.DaysElapsed)
		assert.Equal(t, 30, f.DaysRemaining)
		assert.Zero(t, f.DailyRate)
		assert.True(t, f.WillStayInBudget)
	})

	t.Run("leap february", func(t *testing.T) {
		f := ForecastSpending(cat, nil, time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, 1, f.DaysRemaining)
	})
}
