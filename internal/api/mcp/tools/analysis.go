package tools

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hirosato/ynab-mcp/internal/api/mcp/format"
	"github.com/hirosato/ynab-mcp/internal/domain/analysis"
	"github.com/hirosato/ynab-mcp/internal/domain/events"
	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/resolver"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

type spendingTrendsArgs struct {
	CategoryName string `json:"category_name" validate:"max=100"`
	NumMonths    *int   `json:"num_months" validate:"omitempty,min=1,max=12"`
}

type searchArgs struct {
	SinceDate         string   `json:"since_date" validate:"omitempty,date"`
	PayeeName         string   `json:"payee_name" validate:"max=200"`
	MinAmount         *float64 `json:"min_amount" validate:"omitempty,gte=0"`
	MaxAmount         *float64 `json:"max_amount" validate:"omitempty,gte=0"`
	MemoContains      string   `json:"memo_contains" validate:"max=500"`
	CategoryName      string   `json:"category_name" validate:"max=100"`
	AccountName       string   `json:"account_name" validate:"max=100"`
	UncategorizedOnly bool     `json:"uncategorized_only"`
	Limit             *int     `json:"limit" validate:"omitempty,min=1,max=100"`
}

type affordabilityArgs struct {
	CategoryName string  `json:"category_name" validate:"required,max=100"`
	Amount       float64 `json:"amount" validate:"gt=0"`
}

type setupBudgetArgs struct {
	Month    string `json:"month" validate:"omitempty,month"`
	Strategy string `json:"strategy" validate:"omitempty,oneof=last_month_budget last_month_actual"`
	Apply    bool   `json:"apply"`
}

func (s *Toolset) analysisTools() []mcpTool {
	return []mcpTool{
		newTool(s, "ynab_spending_trends",
			"Compare category spending across recent months and flag categories well above their average.",
			object(map[string]interface{}{
				"category_name": str("Focus on one category (partial match)"),
				"num_months":    integer("Number of months to analyze", 1, 12, 3),
			}), s.spendingTrends),
		newTool(s, "ynab_search_transactions",
			"Search transactions by payee, amount range, memo, category, account or uncategorized status.",
			object(map[string]interface{}{
				"since_date":         date("Start date (YYYY-MM-DD)"),
				"payee_name":         str("Payee name (partial match)"),
				"min_amount":         number("Minimum dollar amount (absolute value)"),
				"max_amount":         number("Maximum dollar amount (absolute value)"),
				"memo_contains":      str("Memo text (partial match)"),
				"category_name":      str("Category name (partial match)"),
				"account_name":       str("Account name (partial match)"),
				"uncategorized_only": boolean("Only uncategorized transactions"),
				"limit":              integer("Maximum results", 1, 100, defaultLimit),
			}), s.searchTransactions),
		newTool(s, "ynab_cover_overspending",
			"Find overspent categories and suggest moves from funded ones. Nothing is moved.",
			object(nil), s.coverOverspending),
		newTool(s, "ynab_affordability_check",
			"Check whether a purchase fits in a category's remaining budget.",
			object(map[string]interface{}{
				"category_name": str("Category name (partial match)"),
				"amount":        positive("Dollar amount of the purchase"),
			}, "category_name", "amount"), s.affordabilityCheck),
		newTool(s, "ynab_setup_budget",
			"Propose next month's budget from last month's budgeted amounts or actual spending, and optionally apply it.",
			object(map[string]interface{}{
				"month":    month("Target month (YYYY-MM-01). Defaults to next month"),
				"strategy": enum("How to propose amounts", []string{analysis.StrategyLastMonthBudget, analysis.StrategyLastMonthActual}),
				"apply":    boolean("Apply the assignments instead of previewing them"),
			}), s.setupBudget),
		newTool(s, "ynab_credit_card_status",
			"Compare credit card balances with their payment categories.",
			object(nil), s.creditCardStatus),
		newTool(s, "ynab_spending_forecast",
			"Project a category's spending through the end of the month at the current pace.",
			object(map[string]interface{}{
				"category_name": str("Category name (partial match)"),
			}, "category_name"), s.spendingForecast),
	}
}

func (s *Toolset) spendingTrends(ctx context.Context, args spendingTrendsArgs) (string, error) {
	n := ptrOr(args.NumMonths, 3)
	since := analysis.MonthsBack(s.today(), n).Format(analysis.DateLayout)
	txns, err := s.repo.GetTransactions(ctx, ynab.TransactionQuery{SinceDate: since})
	if err != nil {
		return "", err
	}
	return format.SpendingTrends(analysis.AnalyzeSpendingTrends(txns, n, args.CategoryName, s.today())), nil
}

func (s *Toolset) searchTransactions(ctx context.Context, args searchArgs) (string, error) {
	txns, err := s.repo.GetTransactions(ctx, ynab.TransactionQuery{SinceDate: args.SinceDate})
	if err != nil {
		return "", err
	}
	matches := analysis.FilterTransactions(txns, analysis.TransactionFilter{
		PayeeName:         args.PayeeName,
		CategoryName:      args.CategoryName,
		AccountName:       args.AccountName,
		MemoContains:      args.MemoContains,
		MinAmount:         args.MinAmount,
		MaxAmount:         args.MaxAmount,
		UncategorizedOnly: args.UncategorizedOnly,
	})
	return format.SearchResults(matches, ptrOr(args.Limit, defaultLimit)), nil
}

func (s *Toolset) coverOverspending(ctx context.Context, _ noArgs) (string, error) {
	groups, err := s.repo.GetCategories(ctx)
	if err != nil {
		return "", err
	}
	return format.Overspending(analysis.AnalyzeOverspending(groups)), nil
}

func (s *Toolset) affordabilityCheck(ctx context.Context, args affordabilityArgs) (string, error) {
	groups, err := s.repo.GetCategories(ctx)
	if err != nil {
		return "", err
	}
	cat, err := resolver.ResolveCategory(groups, args.CategoryName)
	if err != nil {
		return "", err
	}
	return format.Affordability(analysis.CheckAffordability(*cat, args.Amount)), nil
}

func (s *Toolset) setupBudget(ctx context.Context, args setupBudgetArgs) (string, error) {
	target := analysis.NextMonth(s.today()).Format(analysis.DateLayout)
	if args.Month != "" {
		m, err := s.budgetMonth(args.Month)
		if err != nil {
			return "", err
		}
		target = m
	}
	strategy := args.Strategy
	if strategy == "" {
		strategy = analysis.StrategyLastMonthBudget
	}

	groups, err := s.repo.GetCategories(ctx)
	if err != nil {
		return "", err
	}
	var cats []ynab.Category
	for _, g := range groups {
		if ynab.IsInternalGroup(g.Name) || g.Hidden || g.Deleted {
			continue
		}
		cats = append(cats, g.Categories...)
	}

	assignments := analysis.ComputeBudgetAssignments(cats, strategy)
	if !args.Apply {
		return format.BudgetSetupPreview(assignments), nil
	}

	for _, a := range assignments {
		if a.ProposedBudgeted < 0 {
			continue
		}
		budgeted := money.FromMajor(a.ProposedBudgeted)
		if _, err := s.repo.UpdateCategoryBudget(ctx, target, a.CategoryID, budgeted); err != nil {
			return "", err
		}
		s.publish(ctx, events.CategoryBudgeted, a.CategoryID, fmt.Sprintf("%s %s for %s", a.CategoryName, budgeted, target))
	}
	return format.BudgetSetupApplied(assignments, target), nil
}

func (s *Toolset) creditCardStatus(ctx context.Context, _ noArgs) (string, error) {
	var (
		accounts []ynab.Account
		groups   []ynab.CategoryGroup
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = s.repo.GetAccounts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		groups, err = s.repo.GetCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}
	return format.CreditCards(analysis.AnalyzeCreditCards(accounts, groups)), nil
}

func (s *Toolset) spendingForecast(ctx context.Context, args categoryArgs) (string, error) {
	groups, err := s.repo.GetCategories(ctx)
	if err != nil {
		return "", err
	}
	cat, err := resolver.ResolveCategory(groups, args.CategoryName)
	if err != nil {
		return "", err
	}
	txns, err := s.repo.GetTransactions(ctx, ynab.TransactionQuery{
		CategoryID: cat.ID,
		SinceDate:  s.currentMonth(),
	})
	if err != nil {
		return "", err
	}
	return format.Forecast(analysis.ForecastSpending(*cat, txns, s.today())), nil
}
