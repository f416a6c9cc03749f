package analysis

import (
	"math"

	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

// CheckAffordability reports whether a category's available balance covers
// a purchase of amount major units.
func CheckAffordability(cat ynab.Category, amount float64) AffordabilityResult {
	available := cat.Balance.Major()
	budget := cat.Budgeted.Major()
	activity := math.Abs(cat.Activity.Major())
	remaining := available - amount

	var utilization float64
	if budget > 0 {
		utilization = activity / budget * 100
	}

	return AffordabilityResult{
		CanAfford:      remaining >= -halfCent,
		CategoryName:   cat.Name,
		Available:      money.Round2(available),
		Requested:      money.Round2(amount),
		RemainingAfter: money.Round2(remaining),
		Budget:         money.Round2(budget),
		UtilizationPct: money.Round1(utilization),
	}
}
