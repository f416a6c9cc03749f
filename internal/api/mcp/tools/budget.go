package tools

import (
	"context"
	"fmt"

	"github.com/hirosato/ynab-mcp/internal/api/mcp/format"
	"github.com/hirosato/ynab-mcp/internal/common/utils"
	"github.com/hirosato/ynab-mcp/internal/domain/events"
	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/resolver"
)

type assignBudgetArgs struct {
	CategoryName string  `json:"category_name" validate:"required,max=100"`
	Amount       float64 `json:"amount" validate:"gte=0"`
	Month        string  `json:"month" validate:"omitempty,month"`
}

type moveMoneyArgs struct {
	FromCategory string  `json:"from_category" validate:"required,max=100"`
	ToCategory   string  `json:"to_category" validate:"required,max=100"`
	Amount       float64 `json:"amount" validate:"gt=0"`
	Month        string  `json:"month" validate:"omitempty,month"`
}

func (s *Toolset) budgetTools() []mcpTool {
	return []mcpTool{
		newTool(s, "ynab_assign_budget",
			"Assign a budgeted amount to a category for a month (defaults to the current month).",
			object(map[string]interface{}{
				"category_name": str("Category name (partial match)"),
				"amount":        number("Dollar amount to budget"),
				"month":         month("Budget month (YYYY-MM-01). Defaults to the current month"),
			}, "category_name", "amount"), s.assignBudget),
		newTool(s, "ynab_move_money",
			"Move budgeted money from one category to another.",
			object(map[string]interface{}{
				"from_category": str("Source category name"),
				"to_category":   str("Destination category name"),
				"amount":        positive("Dollar amount to move"),
				"month":         month("Budget month (YYYY-MM-01). Defaults to the current month"),
			}, "from_category", "to_category", "amount"), s.moveMoney),
	}
}

// budgetMonth normalizes an optional month, falling back to the current one.
func (s *Toolset) budgetMonth(m string) (string, error) {
	if m == "" {
		return s.currentMonth(), nil
	}
	return utils.NormalizeMonth(m)
}

func (s *Toolset) assignBudget(ctx context.Context, args assignBudgetArgs) (string, error) {
	month, err := s.budgetMonth(args.Month)
	if err != nil {
		return "", err
	}
	groups, err := s.repo.GetCategories(ctx)
	if err != nil {
		return "", err
	}
	cat, err := resolver.ResolveCategory(groups, args.CategoryName)
	if err != nil {
		return "", err
	}

	previous := cat.Budgeted
	if args.Month != "" {
		detail, err := s.repo.GetMonth(ctx, month)
		if err != nil {
			return "", err
		}
		for _, c := range detail.Categories {
			if c.ID == cat.ID {
				previous = c.Budgeted
				break
			}
		}
	}

	budgeted := money.FromMajor(args.Amount)
	if _, err := s.repo.UpdateCategoryBudget(ctx, month, cat.ID, budgeted); err != nil {
		return "", err
	}
	s.publish(ctx, events.CategoryBudgeted, cat.ID, fmt.Sprintf("%s %s for %s", cat.Name, budgeted, month))
	return format.BudgetAssigned(cat.Name, month, previous.Major(), budgeted.Major()), nil
}

func (s *Toolset) moveMoney(ctx context.Context, args moveMoneyArgs) (string, error) {
	month, err := s.budgetMonth(args.Month)
	if err != nil {
		return "", err
	}
	groups, err := s.repo.GetCategories(ctx)
	if err != nil {
		return "", err
	}
	from, err := resolver.ResolveCategory(groups, args.FromCategory)
	if err != nil {
		return "", err
	}
	to, err := resolver.ResolveCategory(groups, args.ToCategory)
	if err != nil {
		return "", err
	}
	if from.ID == to.ID {
		return fmt.Sprintf("Source and destination are the same category ('%s'). No money moved.", from.Name), nil
	}

	fromBudgeted, toBudgeted := from.Budgeted, to.Budgeted
	if args.Month != "" {
		detail, err := s.repo.GetMonth(ctx, month)
		if err != nil {
			return "", err
		}
		for _, c := range detail.Categories {
			switch c.ID {
			case from.ID:
				fromBudgeted = c.Budgeted
			case to.ID:
				toBudgeted = c.Budgeted
			}
		}
	}

	amount := money.FromMajor(args.Amount)
	newFrom, newTo := fromBudgeted-amount, toBudgeted+amount
	if _, err := s.repo.UpdateCategoryBudget(ctx, month, from.ID, newFrom); err != nil {
		return "", err
	}
	s.publish(ctx, events.CategoryBudgeted, from.ID, fmt.Sprintf("%s %s for %s", from.Name, newFrom, month))
	if _, err := s.repo.UpdateCategoryBudget(ctx, month, to.ID, newTo); err != nil {
		return "", err
	}
	s.publish(ctx, events.CategoryBudgeted, to.ID, fmt.Sprintf("%s %s for %s", to.Name, newTo, month))

	return format.MoveResult(from.Name, to.Name, args.Amount, newFrom.Major(), newTo.Major()), nil
}
