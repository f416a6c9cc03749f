package analysis

import (
	"fmt"
	"math"

	apperrors "github.com/hirosato/ynab-mcp/internal/domain/errors"
	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

const splitTolerance = 0.01

// ValidateSplitAmounts fails when the split lines do not add up to total
// within one cent.
func ValidateSplitAmounts(total float64, splits []SplitItem) error {
	var sum float64
	for _, s := range splits {
		sum += s.Amount
	}
	diff := math.Abs(sum - total)
	if diff > splitTolerance {
		return apperrors.NewValidationError(fmt.Sprintf(
			"Split amounts sum to $%.2f but total is $%.2f. Difference: $%.2f", sum, total, diff))
	}
	return nil
}

// BuildSubtransactions converts split lines into outflow subtransactions.
// resolved maps each line's category name to its category.
func BuildSubtransactions(splits []SplitItem, resolved map[string]*ynab.Category) []ynab.NewSubTransaction {
	out := make([]ynab.NewSubTransaction, 0, len(splits))
	for _, s := range splits {
		sub := ynab.NewSubTransaction{
			Amount: money.FromMajor(-math.Abs(s.Amount)),
			Memo:   s.Memo,
		}
		if cat, ok := resolved[s.CategoryName]; ok && cat != nil {
			sub.CategoryID = cat.ID
		}
		out = append(out, sub)
	}
	return out
}
