package analysis

import (
	"math"

	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

// Budget assignment strategies.
const (
	StrategyLastMonthBudget = "last_month_budget"
	StrategyLastMonthActual = "last_month_actual"
)

// ComputeBudgetAssignments proposes next month's budgeted amounts for every
// visible category. Unknown strategies behave like StrategyLastMonthBudget.
func ComputeBudgetAssignments(cats []ynab.Category, strategy string) []BudgetAssignment {
	out := make([]BudgetAssignment, 0, len(cats))
	for _, cat := range cats {
		if !cat.Visible() {
			continue
		}
		current := cat.Budgeted.Major()
		proposed := current
		if strategy == StrategyLastMonthActual {
			proposed = math.Abs(cat.Activity.Major())
		}
		out = append(out, BudgetAssignment{
			CategoryID:       cat.ID,
			CategoryName:     cat.Name,
			CurrentBudgeted:  money.Round2(current),
			ProposedBudgeted: money.Round2(proposed),
		})
	}
	return out
}
