package tools

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hirosato/ynab-mcp/internal/api/mcp/format"
	"github.com/hirosato/ynab-mcp/internal/domain/analysis"
	"github.com/hirosato/ynab-mcp/internal/domain/resolver"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

const defaultLimit = 25

type getTransactionsArgs struct {
	SinceDate    string `json:"since_date" validate:"omitempty,date"`
	AccountName  string `json:"account_name" validate:"max=100"`
	CategoryName string `json:"category_name" validate:"max=100"`
	Limit        *int   `json:"limit" validate:"omitempty,min=1,max=100"`
}

type categoryArgs struct {
	CategoryName string `json:"category_name" validate:"required,max=100"`
}

type payeeTransactionsArgs struct {
	PayeeName string `json:"payee_name" validate:"required,max=200"`
	SinceDate string `json:"since_date" validate:"omitempty,date"`
	Limit     *int   `json:"limit" validate:"omitempty,min=1,max=100"`
}

func (s *Toolset) readTools() []mcpTool {
	return []mcpTool{
		newTool(s, "ynab_get_budgets",
			"List all budgets available to the authenticated user.",
			object(nil), s.getBudgets),
		newTool(s, "ynab_get_accounts",
			"List open accounts with their current balances.",
			object(nil), s.getAccounts),
		newTool(s, "ynab_get_budget_summary",
			"Show this month's budgeted, spent and remaining amounts for every category with activity.",
			object(nil), s.getBudgetSummary),
		newTool(s, "ynab_get_transactions",
			"List recent transactions, newest first. Filter by start date, account name or category name.",
			object(map[string]interface{}{
				"since_date":    date("Only include transactions on or after this date (YYYY-MM-DD)"),
				"account_name":  str("Filter by account name (partial match)"),
				"category_name": str("Filter by category name (partial match)"),
				"limit":         integer("Maximum number of transactions to show", 1, 100, defaultLimit),
			}), s.getTransactions),
		newTool(s, "ynab_get_category_spending",
			"Show a category's budget and its transactions for the current month.",
			object(map[string]interface{}{
				"category_name": str("Category name (partial match)"),
			}, "category_name"), s.getCategorySpending),
		newTool(s, "ynab_get_month_summaries",
			"List monthly income, budgeted, activity and ready-to-assign totals.",
			object(nil), s.getMonthSummaries),
		newTool(s, "ynab_get_payees",
			"List active payees alphabetically.",
			object(nil), s.getPayees),
		newTool(s, "ynab_get_payee_locations",
			"List stored payee locations.",
			object(nil), s.getPayeeLocations),
		newTool(s, "ynab_get_payee_transactions",
			"List transactions for one payee.",
			object(map[string]interface{}{
				"payee_name": str("Payee name (partial match)"),
				"since_date": date("Only include transactions on or after this date (YYYY-MM-DD)"),
				"limit":      integer("Maximum number of transactions to show", 1, 100, defaultLimit),
			}, "payee_name"), s.getPayeeTransactions),
		newTool(s, "ynab_get_category_targets",
			"List categories that have goal targets, with progress.",
			object(nil), s.getCategoryTargets),
		newTool(s, "ynab_get_budget_settings",
			"Show the budget's date and currency format.",
			object(nil), s.getBudgetSettings),
		newTool(s, "ynab_get_user",
			"Show the authenticated user.",
			object(nil), s.getUser),
		newTool(s, "ynab_get_scheduled_transactions",
			"List upcoming scheduled transactions by next date.",
			object(nil), s.getScheduledTransactions),
	}
}

func (s *Toolset) getBudgets(ctx context.Context, _ noArgs) (string, error) {
	budgets, err := s.repo.GetBudgets(ctx)
	if err != nil {
		return "", err
	}
	return format.Budgets(budgets), nil
}

func (s *Toolset) getAccounts(ctx context.Context, _ noArgs) (string, error) {
	accounts, err := s.repo.GetAccounts(ctx)
	if err != nil {
		return "", err
	}
	return format.Accounts(accounts), nil
}

func (s *Toolset) getBudgetSummary(ctx context.Context, _ noArgs) (string, error) {
	groups, err := s.repo.GetCategories(ctx)
	if err != nil {
		return "", err
	}
	return format.BudgetSummary(groups), nil
}

func (s *Toolset) getTransactions(ctx context.Context, args getTransactionsArgs) (string, error) {
	txns, err := s.repo.GetTransactions(ctx, ynab.TransactionQuery{SinceDate: args.SinceDate})
	if err != nil {
		return "", err
	}
	if args.AccountName != "" || args.CategoryName != "" {
		txns = analysis.FilterTransactions(txns, analysis.TransactionFilter{
			AccountName:  args.AccountName,
			CategoryName: args.CategoryName,
		})
	}
	return format.Transactions(txns, ptrOr(args.Limit, defaultLimit)), nil
}

func (s *Toolset) getCategorySpending(ctx context.Context, args categoryArgs) (string, error) {
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
	return format.CategoryDetail(cat, txns), nil
}

func (s *Toolset) getMonthSummaries(ctx context.Context, _ noArgs) (string, error) {
	months, err := s.repo.GetMonths(ctx)
	if err != nil {
		return "", err
	}
	return format.MonthSummaries(months), nil
}

func (s *Toolset) getPayees(ctx context.Context, _ noArgs) (string, error) {
	payees, err := s.repo.GetPayees(ctx)
	if err != nil {
		return "", err
	}
	return format.Payees(payees), nil
}

func (s *Toolset) getPayeeLocations(ctx context.Context, _ noArgs) (string, error) {
	var (
		locations []ynab.PayeeLocation
		payees    []ynab.Payee
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		locations, err = s.repo.GetPayeeLocations(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		payees, err = s.repo.GetPayees(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}
	return format.PayeeLocations(locations, payees), nil
}

func (s *Toolset) getPayeeTransactions(ctx context.Context, args payeeTransactionsArgs) (string, error) {
	payees, err := s.repo.GetPayees(ctx)
	if err != nil {
		return "", err
	}
	payee, err := resolver.ResolvePayee(payees, args.PayeeName)
	if err != nil {
		return "", err
	}
	txns, err := s.repo.GetTransactions(ctx, ynab.TransactionQuery{PayeeID: payee.ID, SinceDate: args.SinceDate})
	if err != nil {
		return "", err
	}
	return format.PayeeTransactions(payee.Name, txns, ptrOr(args.Limit, defaultLimit)), nil
}

func (s *Toolset) getCategoryTargets(ctx context.Context, _ noArgs) (string, error) {
	groups, err := s.repo.GetCategories(ctx)
	if err != nil {
		return "", err
	}
	return format.CategoryTargets(groups), nil
}

func (s *Toolset) getBudgetSettings(ctx context.Context, _ noArgs) (string, error) {
	settings, err := s.repo.GetBudgetSettings(ctx)
	if err != nil {
		return "", err
	}
	return format.BudgetSettings(settings), nil
}

func (s *Toolset) getUser(ctx context.Context, _ noArgs) (string, error) {
	user, err := s.repo.GetUser(ctx)
	if err != nil {
		return "", err
	}
	return format.User(user), nil
}

func (s *Toolset) getScheduledTransactions(ctx context.Context, _ noArgs) (string, error) {
	sts, err := s.repo.GetScheduledTransactions(ctx)
	if err != nil {
		return "", err
	}
	return format.ScheduledTransactions(sts), nil
}
