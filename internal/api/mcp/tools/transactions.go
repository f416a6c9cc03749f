package tools

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/hirosato/ynab-mcp/internal/api/mcp/format"
	"github.com/hirosato/ynab-mcp/internal/domain/analysis"
	"github.com/hirosato/ynab-mcp/internal/domain/categorizer"
	apperrors "github.com/hirosato/ynab-mcp/internal/domain/errors"
	"github.com/hirosato/ynab-mcp/internal/domain/events"
	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/resolver"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

var clearedStatuses = []ynab.ClearedStatus{ynab.Cleared, ynab.Uncleared, ynab.Reconciled}

type addTransactionArgs struct {
	Amount       float64 `json:"amount" validate:"required"`
	Payee        string  `json:"payee" validate:"required,max=200"`
	AccountName  string  `json:"account_name" validate:"max=100"`
	CategoryName string  `json:"category_name" validate:"max=100"`
	Memo         string  `json:"memo" validate:"max=500"`
	Date         string  `json:"date" validate:"omitempty,date"`
}

type addSplitArgs struct {
	Amount      float64              `json:"amount" validate:"gt=0"`
	Payee       string               `json:"payee" validate:"required,max=200"`
	AccountName string               `json:"account_name" validate:"max=100"`
	Date        string               `json:"date" validate:"omitempty,date"`
	Memo        string               `json:"memo" validate:"max=500"`
	Splits      []analysis.SplitItem `json:"splits" validate:"min=2,dive"`
}

type updateTransactionArgs struct {
	TransactionDescription string              `json:"transaction_description" validate:"required,max=200"`
	CategoryName           string              `json:"category_name" validate:"max=100"`
	Memo                   *string             `json:"memo" validate:"omitempty,max=500"`
	PayeeName              *string             `json:"payee_name" validate:"omitempty,max=200"`
	Date                   *string             `json:"date" validate:"omitempty,date"`
	Amount                 *float64            `json:"amount"`
	FlagColor              *ynab.FlagColor     `json:"flag_color" validate:"omitempty,oneof=red orange yellow green blue purple"`
	Cleared                *ynab.ClearedStatus `json:"cleared" validate:"omitempty,oneof=cleared uncleared reconciled"`
	Approved               *bool               `json:"approved"`
}

type bulkUpdateArgs struct {
	Updates []updateTransactionArgs `json:"updates" validate:"min=1,max=100,dive"`
}

type describeArgs struct {
	TransactionDescription string `json:"transaction_description" validate:"required,max=200"`
}

func (s *Toolset) transactionTools() []mcpTool {
	updateProps := func() map[string]interface{} {
		return map[string]interface{}{
			"transaction_description": str("Payee name, date, amount or memo identifying the transaction"),
			"category_name":           str("New category name (partial match)"),
			"memo":                    str("New memo. An empty string clears it"),
			"payee_name":              str("New payee name"),
			"date":                    date("New date (YYYY-MM-DD)"),
			"amount":                  number("New dollar amount (positive for outflow, negative for inflow)"),
			"flag_color":              enum("Flag color", ynab.FlagColors),
			"cleared":                 enum("Cleared status", clearedStatuses),
			"approved":                boolean("Approval state"),
		}
	}

	return []mcpTool{
		newTool(s, "ynab_add_transaction",
			"Add a transaction. Positive amounts are outflows. The category is suggested from learned payee patterns when omitted.",
			object(map[string]interface{}{
				"amount":        number("Dollar amount (positive for outflow, negative for inflow/refund)"),
				"payee":         str("Who you paid (e.g. 'HEB', 'Amazon')"),
				"account_name":  str("Account name. Defaults to the first checking account"),
				"category_name": str("Category name. Use 'inflow' for Ready to Assign"),
				"memo":          str("Optional note"),
				"date":          date("Transaction date (YYYY-MM-DD). Defaults to today"),
			}, "amount", "payee"), s.addTransaction),
		newTool(s, "ynab_add_split_transaction",
			"Add one purchase split across several categories.",
			object(map[string]interface{}{
				"amount":       positive("Total dollar amount (outflow)"),
				"payee":        str("Payee name"),
				"account_name": str("Account name"),
				"date":         date("Date (YYYY-MM-DD). Defaults to today"),
				"memo":         str("Overall memo"),
				"splits": map[string]interface{}{
					"type":        "array",
					"minItems":    2,
					"description": "Split lines adding up to the total",
					"items": object(map[string]interface{}{
						"category_name": str("Category name"),
						"amount":        positive("Dollar amount of this line"),
						"memo":          str("Line memo"),
					}, "category_name", "amount"),
				},
			}, "amount", "payee", "splits"), s.addSplitTransaction),
		newTool(s, "ynab_update_transaction",
			"Change fields of an existing transaction. Only the fields given are modified.",
			object(updateProps(), "transaction_description"), s.updateTransaction),
		newTool(s, "ynab_bulk_update_transactions",
			"Update many transactions in one request.",
			object(map[string]interface{}{
				"updates": map[string]interface{}{
					"type":        "array",
					"minItems":    1,
					"maxItems":    100,
					"description": "One entry per transaction to change",
					"items":       object(updateProps(), "transaction_description"),
				},
			}, "updates"), s.bulkUpdateTransactions),
		newTool(s, "ynab_delete_transaction",
			"Delete a transaction identified by description.",
			object(map[string]interface{}{
				"transaction_description": str("Payee name, date, amount or memo identifying the transaction"),
			}, "transaction_description"), s.deleteTransaction),
		newTool(s, "ynab_import_transactions",
			"Import new transactions from linked accounts.",
			object(nil), s.importTransactions),
	}
}

// learn records a payee pairing. Learning failures never fail the write.
func (s *Toolset) learn(ctx context.Context, observations ...categorizer.Observation) {
	if err := s.categorizer.Learn(ctx, observations); err != nil {
		s.logger.Warn("Failed to save learned category", "error", err)
	}
}

func (s *Toolset) addTransaction(ctx context.Context, args addTransactionArgs) (string, error) {
	accounts, err := s.repo.GetAccounts(ctx)
	if err != nil {
		return "", err
	}
	account, err := resolver.ResolveAccount(accounts, args.AccountName)
	if err != nil {
		return "", err
	}

	var categoryID, categoryName string
	if args.CategoryName != "" {
		groups, err := s.repo.GetCategories(ctx)
		if err != nil {
			return "", err
		}
		cat, err := resolver.ResolveCategoryOrInflow(groups, args.CategoryName)
		if err != nil {
			return "", err
		}
		categoryID, categoryName = cat.ID, cat.Name
	} else if suggestion, ok := s.categorizer.Suggest(args.Payee); ok {
		categoryID, categoryName = suggestion.CategoryID, suggestion.CategoryName
	}

	txnDate := args.Date
	if txnDate == "" {
		txnDate = s.todayISO()
	}

	created, err := s.repo.CreateTransaction(ctx, ynab.NewTransaction{
		AccountID:  account.ID,
		Date:       txnDate,
		Amount:     analysis.OutflowAmount(args.Amount),
		PayeeName:  args.Payee,
		CategoryID: categoryID,
		Memo:       args.Memo,
		Cleared:    ynab.Uncleared,
		Approved:   true,
	})
	if err != nil {
		return "", err
	}

	if categoryID != "" {
		s.learn(ctx, categorizer.Observation{PayeeName: args.Payee, CategoryID: categoryID, CategoryName: categoryName})
	}
	s.publish(ctx, events.TransactionCreated, created.ID, fmt.Sprintf("%s %s", args.Payee, created.Amount))

	accountName := created.AccountName
	if accountName == "" {
		accountName = account.Name
	}
	if created.PayeeName == nil {
		created.PayeeName = &args.Payee
	}
	return format.TransactionCreated(created, categoryName, accountName), nil
}

func (s *Toolset) addSplitTransaction(ctx context.Context, args addSplitArgs) (string, error) {
	if err := analysis.ValidateSplitAmounts(args.Amount, args.Splits); err != nil {
		return "", err
	}

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

	account, err := resolver.ResolveAccount(accounts, args.AccountName)
	if err != nil {
		return "", err
	}
	resolved := make(map[string]*ynab.Category, len(args.Splits))
	for _, split := range args.Splits {
		cat, err := resolver.ResolveCategory(groups, split.CategoryName)
		if err != nil {
			return "", err
		}
		resolved[split.CategoryName] = cat
	}

	txnDate := args.Date
	if txnDate == "" {
		txnDate = s.todayISO()
	}
	total := money.FromMajor(-math.Abs(args.Amount))

	created, err := s.repo.CreateTransaction(ctx, ynab.NewTransaction{
		AccountID:       account.ID,
		Date:            txnDate,
		Amount:          total,
		PayeeName:       args.Payee,
		Memo:            args.Memo,
		Cleared:         ynab.Uncleared,
		Approved:        true,
		Subtransactions: analysis.BuildSubtransactions(args.Splits, resolved),
	})
	if err != nil {
		return "", err
	}
	s.publish(ctx, events.TransactionCreated, created.ID, fmt.Sprintf("%s %s split %d ways", args.Payee, total, len(args.Splits)))

	lines := make([]format.SplitLine, 0, len(args.Splits))
	for _, split := range args.Splits {
		lines = append(lines, format.SplitLine{
			CategoryName: resolved[split.CategoryName].Name,
			Amount:       money.FromMajor(split.Amount),
			Memo:         split.Memo,
		})
	}
	return format.SplitTransactionCreated(total, args.Payee, account.Name, txnDate, args.Memo, lines), nil
}

func noMatch(description string) string {
	return fmt.Sprintf("No transaction found matching '%s'.", description)
}

func (a updateTransactionArgs) bulk() analysis.BulkUpdate {
	return analysis.BulkUpdate{
		Description:  a.TransactionDescription,
		CategoryName: a.CategoryName,
		Memo:         a.Memo,
		PayeeName:    a.PayeeName,
		Date:         a.Date,
		Amount:       a.Amount,
		FlagColor:    a.FlagColor,
		Cleared:      a.Cleared,
		Approved:     a.Approved,
	}
}

func (s *Toolset) updateTransaction(ctx context.Context, args updateTransactionArgs) (string, error) {
	txns, err := s.repo.GetTransactions(ctx, ynab.TransactionQuery{})
	if err != nil {
		return "", err
	}
	txn := analysis.FindTransactionByDescription(txns, args.TransactionDescription)
	if txn == nil {
		return noMatch(args.TransactionDescription), nil
	}

	u := analysis.TransactionUpdate{
		Memo:      args.Memo,
		PayeeName: args.PayeeName,
		Date:      args.Date,
		FlagColor: args.FlagColor,
		Cleared:   args.Cleared,
		Approved:  args.Approved,
	}
	if args.CategoryName != "" {
		groups, err := s.repo.GetCategories(ctx)
		if err != nil {
			return "", err
		}
		cat, err := resolver.ResolveCategoryOrInflow(groups, args.CategoryName)
		if err != nil {
			return "", err
		}
		u.CategoryID, u.CategoryName = &cat.ID, cat.Name
	}
	if args.Amount != nil {
		amount := analysis.OutflowAmount(*args.Amount)
		u.Amount = &amount
	}

	payload, changes := analysis.ComputeTransactionUpdates(*txn, u)
	if len(changes) == 0 {
		return "", apperrors.NewValidationError("No changes to apply. The transaction already has these values.")
	}
	if _, err := s.repo.UpdateTransaction(ctx, txn.ID, payload); err != nil {
		return "", err
	}
	s.publish(ctx, events.TransactionUpdated, txn.ID, fmt.Sprintf("%d field(s) changed", len(changes)))
	return format.TransactionUpdated(*txn, changes), nil
}

func (s *Toolset) bulkUpdateTransactions(ctx context.Context, args bulkUpdateArgs) (string, error) {
	var (
		txns   []ynab.Transaction
		groups []ynab.CategoryGroup
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = s.repo.GetTransactions(gctx, ynab.TransactionQuery{})
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

	updates := make([]analysis.BulkUpdate, len(args.Updates))
	for i, u := range args.Updates {
		updates[i] = u.bulk()
	}
	payloads, errs := analysis.ComputeBulkTransactionUpdates(txns, groups, updates)
	if len(payloads) == 0 {
		return format.BulkUpdateResult(0, errs), nil
	}

	if _, err := s.repo.UpdateTransactions(ctx, payloads); err != nil {
		return "", err
	}
	for _, p := range payloads {
		id, _ := p["id"].(string)
		s.publish(ctx, events.TransactionUpdated, id, "bulk update")
	}
	return format.BulkUpdateResult(len(payloads), errs), nil
}

func (s *Toolset) deleteTransaction(ctx context.Context, args describeArgs) (string, error) {
	txns, err := s.repo.GetTransactions(ctx, ynab.TransactionQuery{})
	if err != nil {
		return "", err
	}
	txn := analysis.FindTransactionByDescription(txns, args.TransactionDescription)
	if txn == nil {
		return noMatch(args.TransactionDescription), nil
	}
	if _, err := s.repo.DeleteTransaction(ctx, txn.ID); err != nil {
		return "", err
	}
	s.publish(ctx, events.TransactionDeleted, txn.ID, fmt.Sprintf("%s %s", txn.Payee(), txn.Amount))
	return format.TransactionDeleted(*txn), nil
}

func (s *Toolset) importTransactions(ctx context.Context, _ noArgs) (string, error) {
	ids, err := s.repo.ImportTransactions(ctx)
	if err != nil {
		return "", err
	}
	if len(ids) > 0 {
		s.publish(ctx, events.TransactionsImported, "", fmt.Sprintf("%d imported", len(ids)))
	}
	return format.ImportResult(ids), nil
}
