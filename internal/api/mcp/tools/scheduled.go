package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/hirosato/ynab-mcp/internal/api/mcp/format"
	"github.com/hirosato/ynab-mcp/internal/domain/analysis"
	apperrors "github.com/hirosato/ynab-mcp/internal/domain/errors"
	"github.com/hirosato/ynab-mcp/internal/domain/events"
	"github.com/hirosato/ynab-mcp/internal/domain/resolver"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

type createScheduledArgs struct {
	Amount       float64        `json:"amount" validate:"required"`
	Payee        string         `json:"payee" validate:"required,max=200"`
	Frequency    ynab.Frequency `json:"frequency" validate:"required,oneof=never daily weekly everyOtherWeek twiceAMonth every4Weeks monthly everyOtherMonth every3Months every4Months twiceAYear yearly"`
	Date         string         `json:"date" validate:"required,date"`
	AccountName  string         `json:"account_name" validate:"max=100"`
	CategoryName string         `json:"category_name" validate:"max=100"`
	Memo         string         `json:"memo" validate:"max=500"`
	FlagColor    ynab.FlagColor `json:"flag_color" validate:"omitempty,oneof=red orange yellow green blue purple"`
}

type updateScheduledArgs struct {
	TransactionDescription string          `json:"transaction_description" validate:"required,max=200"`
	CategoryName           string          `json:"category_name" validate:"max=100"`
	Memo                   *string         `json:"memo" validate:"omitempty,max=500"`
	PayeeName              *string         `json:"payee_name" validate:"omitempty,max=200"`
	Date                   *string         `json:"date" validate:"omitempty,date"`
	Amount                 *float64        `json:"amount"`
	FlagColor              *ynab.FlagColor `json:"flag_color" validate:"omitempty,oneof=red orange yellow green blue purple"`
	Frequency              *ynab.Frequency `json:"frequency" validate:"omitempty,oneof=never daily weekly everyOtherWeek twiceAMonth every4Weeks monthly everyOtherMonth every3Months every4Months twiceAYear yearly"`
}

func (s *Toolset) scheduledTools() []mcpTool {
	return []mcpTool{
		newTool(s, "ynab_create_scheduled_transaction",
			"Create a recurring transaction. Positive amounts are outflows.",
			object(map[string]interface{}{
				"amount":        number("Dollar amount (positive for outflow, negative for inflow)"),
				"payee":         str("Payee name"),
				"frequency":     enum("How often it repeats", ynab.Frequencies),
				"date":          date("First occurrence (YYYY-MM-DD)"),
				"account_name":  str("Account name. Defaults to the first checking account"),
				"category_name": str("Category name (partial match)"),
				"memo":          str("Optional note"),
				"flag_color":    enum("Flag color", ynab.FlagColors),
			}, "amount", "payee", "frequency", "date"), s.createScheduled),
		newTool(s, "ynab_update_scheduled_transaction",
			"Change fields of a scheduled transaction, including its frequency.",
			object(map[string]interface{}{
				"transaction_description": str("Payee name, date, amount or memo identifying the scheduled transaction"),
				"category_name":           str("New category name (partial match)"),
				"memo":                    str("New memo. An empty string clears it"),
				"payee_name":              str("New payee name"),
				"date":                    date("New next date (YYYY-MM-DD)"),
				"amount":                  number("New dollar amount (positive for outflow)"),
				"flag_color":              enum("Flag color", ynab.FlagColors),
				"frequency":               enum("How often it repeats", ynab.Frequencies),
			}, "transaction_description"), s.updateScheduled),
		newTool(s, "ynab_delete_scheduled_transaction",
			"Delete a scheduled transaction identified by description.",
			object(map[string]interface{}{
				"transaction_description": str("Payee name, date, amount or memo identifying the scheduled transaction"),
			}, "transaction_description"), s.deleteScheduled),
	}
}

func (s *Toolset) createScheduled(ctx context.Context, args createScheduledArgs) (string, error) {
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
	}

	created, err := s.repo.CreateScheduledTransaction(ctx, ynab.NewScheduledTransaction{
		AccountID:  account.ID,
		Date:       args.Date,
		Amount:     analysis.OutflowAmount(args.Amount),
		Frequency:  args.Frequency,
		PayeeName:  args.Payee,
		CategoryID: categoryID,
		Memo:       args.Memo,
		FlagColor:  args.FlagColor,
	})
	if err != nil {
		return "", err
	}
	s.publish(ctx, events.ScheduledTransactionCreated, created.ID, fmt.Sprintf("%s %s %s", args.Payee, created.Amount, args.Frequency))

	if created.PayeeName == nil {
		created.PayeeName = &args.Payee
	}
	return format.ScheduledTransactionCreated(created, account.Name, categoryName), nil
}

func (s *Toolset) updateScheduled(ctx context.Context, args updateScheduledArgs) (string, error) {
	sts, err := s.repo.GetScheduledTransactions(ctx)
	if err != nil {
		return "", err
	}
	st := analysis.FindScheduledByDescription(sts, args.TransactionDescription)
	if st == nil {
		return fmt.Sprintf("No scheduled transaction found matching '%s'.", args.TransactionDescription), nil
	}

	u := analysis.ScheduledUpdate{
		Memo:      args.Memo,
		PayeeName: args.PayeeName,
		Date:      args.Date,
		FlagColor: args.FlagColor,
		Frequency: args.Frequency,
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

	payload, changes := analysis.ComputeScheduledUpdates(*st, u)
	if len(changes) == 0 {
		return "", apperrors.NewValidationError("No changes to apply. The scheduled transaction already has these values.")
	}
	if _, err := s.repo.UpdateScheduledTransaction(ctx, st.ID, payload); err != nil {
		return "", err
	}
	fields := make([]string, len(changes))
	for i, c := range changes {
		fields[i] = c.FieldName
	}
	s.publish(ctx, events.ScheduledTransactionUpdated, st.ID, strings.Join(fields, ", "))
	return format.ScheduledTransactionUpdated(st.Payee(), changes), nil
}

func (s *Toolset) deleteScheduled(ctx context.Context, args describeArgs) (string, error) {
	sts, err := s.repo.GetScheduledTransactions(ctx)
	if err != nil {
		return "", err
	}
	st := analysis.FindScheduledByDescription(sts, args.TransactionDescription)
	if st == nil {
		return fmt.Sprintf("No scheduled transaction found matching '%s'.", args.TransactionDescription), nil
	}
	if _, err := s.repo.DeleteScheduledTransaction(ctx, st.ID); err != nil {
		return "", err
	}
	s.publish(ctx, events.ScheduledTransactionDeleted, st.ID, st.Payee())
	return format.ScheduledTransactionDeleted(*st), nil
}
