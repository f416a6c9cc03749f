package analysis

import (
	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

// Target actions reported in CategoryTargetResult.
const (
	TargetSet     = "set"
	TargetUpdated = "updated"
	TargetRemoved = "removed"
)

// ComputeCategoryTargetUpdates builds the payload that sets, updates or
// clears a category goal, along with a before and after description.
func ComputeCategoryTargetUpdates(cat ynab.Category, amount *money.Milliunits, date *string, clear bool) (ynab.Payload, CategoryTargetResult) {
	result := CategoryTargetResult{
		CategoryName:       cat.Name,
		OldTargetDate:      cat.GoalTargetDate,
		PercentageComplete: cat.GoalPercentageComplete,
	}
	if cat.GoalTarget != nil {
		old := cat.GoalTarget.Major()
		result.OldTarget = &old
	}
	if cat.GoalType != nil {
		result.GoalType = cat.GoalType.Label()
	}
	if cat.GoalUnderFunded != nil {
		under := cat.GoalUnderFunded.Major()
		result.UnderFunded = &under
	}

	if clear {
		result.Action = TargetRemoved
		return ynab.Payload{"goal_target": nil, "goal_target_date": nil}, result
	}

	result.Action = TargetSet
	if cat.GoalType != nil || cat.GoalTarget != nil {
		result.Action = TargetUpdated
	}

	payload := ynab.Payload{}
	if amount != nil {
		payload["goal_target"] = int64(*amount)
		target := amount.Major()
		result.NewTarget = &target
	}
	if date != nil {
		payload["goal_target_date"] = *date
		d := *date
		result.NewTargetDate = &d
	}
	return payload, result
}
