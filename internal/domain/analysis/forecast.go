package analysis

import (
	"time"

	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

// ForecastSpending projects month-end spending for cat from the outflows in
// txns, which the caller has already scoped to the category and month.
func ForecastSpending(cat ynab.Category, txns []ynab.Transaction, ref time.Time) SpendingForecast {
	today := dateOnly(ref)
	first := FirstOfMonth(today)
	lastDay := NextMonth(today).AddDate(0, 0, -1)

	daysElapsed := int(today.Sub(first).Hours()/24) + 1
	daysRemaining := int(lastDay.Sub(today).Hours() / 24)

	var spentMU money.Milliunits
	for _, t := range txns {
		if t.Amount < 0 && !t.Deleted {
			spentMU += t.Amount.Abs()
		}
	}
	spent := spentMU.Major()

	var dailyRate float64
	if daysElapsed > 0 {
		dailyRate = spent / float64(daysElapsed)
	}
	projected := spent + dailyRate*float64(daysRemaining)
	budget := cat.Budgeted.Major()

	return SpendingForecast{
		CategoryName:       cat.Name,
		Budget:             money.Round2(budget),
		SpentSoFar:         money.Round2(spent),
		DaysElapsed:        daysElapsed,
		DaysRemaining:      daysRemaining,
		DailyRate:          money.Round2(dailyRate),
		ProjectedTotal:     money.Round2(projected),
		WillStayInBudget:   projected <= budget+halfCent,
		ProjectedRemaining: money.Round2(budget - projected),
	}
}
