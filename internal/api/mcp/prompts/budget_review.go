package prompts

import (
	"context"
	"fmt"

	"github.com/hirosato/ynab-mcp/internal/common/utils"
	"github.com/hirosato/ynab-mcp/internal/domain/mcp"
)

// MonthlyBudgetReviewPrompt walks the model through a month-end review using
// the budget tools.
type MonthlyBudgetReviewPrompt struct{}

func (p *MonthlyBudgetReviewPrompt) GetName() string {
	return "monthly-budget-review"
}

func (p *MonthlyBudgetReviewPrompt) GetDescription() string {
	return "Review a month's budget: overspending, credit cards and projected spending"
}

func (p *MonthlyBudgetReviewPrompt) GetArguments() []mcp.PromptArgument {
	return []mcp.PromptArgument{
		{
			Name:        "month",
			Description: "The month to review (e.g., '2025-03')",
			Required:    true,
		},
		{
			Name:        "focus",
			Description: "Categories or concerns to pay extra attention to (e.g., 'dining out')",
			Required:    false,
		},
	}
}

func (p *MonthlyBudgetReviewPrompt) GetPrompt(ctx context.Context, arguments map[string]interface{}) (*mcp.GetPromptResult, error) {
	raw, ok := arguments["month"].(string)
	if !ok || raw == "" {
		return nil, fmt.Errorf("month argument is required")
	}
	month, err := utils.NormalizeMonth(raw)
	if err != nil {
		return nil, err
	}

	focus := "every category"
	if f, ok := arguments["focus"].(string); ok && f != "" {
		focus = f
	}

	messages := []mcp.PromptMessage{
		{
			Role: "user",
			Content: mcp.PromptContent{
				Type: "text",
				Text: fmt.Sprintf(`Please review my budget for the month starting %s, paying particular attention to %s.

Work through these steps:
1. Call ynab_get_budget_summary to see budgeted, spent and remaining amounts
2. Call ynab_cover_overspending and explain which moves would fix any overspent categories
3. Call ynab_credit_card_status and flag cards whose payment category is underfunded
4. Call ynab_spending_forecast for the categories that look at risk
5. Summarize what needs attention and suggest concrete moves

Do not move money or change anything without asking me first.`, month, focus),
			},
		},
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Budget review for %s", month),
		Messages:    messages,
	}, nil
}
