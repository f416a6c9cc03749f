package tools

import (
	"context"
	"fmt"

	"github.com/hirosato/ynab-mcp/internal/api/mcp/format"
	"github.com/hirosato/ynab-mcp/internal/domain/analysis"
	apperrors "github.com/hirosato/ynab-mcp/internal/domain/errors"
	"github.com/hirosato/ynab-mcp/internal/domain/events"
	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/resolver"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

type renamePayeeArgs struct {
	PayeeName string `json:"payee_name" validate:"required,max=200"`
	NewName   string `json:"new_name" validate:"required,max=200"`
}

type updateCategoryArgs struct {
	CategoryName string  `json:"category_name" validate:"required,max=100"`
	NewName      *string `json:"new_name" validate:"omitempty,min=1,max=100"`
	Note         *string `json:"note" validate:"omitempty,max=500"`
}

type categoryTargetArgs struct {
	CategoryName string   `json:"category_name" validate:"required,max=100"`
	TargetAmount *float64 `json:"target_amount" validate:"omitempty,gte=0"`
	TargetDate   *string  `json:"target_date" validate:"omitempty,date"`
	Clear        bool     `json:"clear"`
}

type createAccountArgs struct {
	Name    string           `json:"name" validate:"required,max=100"`
	Type    ynab.AccountType `json:"type" validate:"required,oneof=checking savings creditCard cash lineOfCredit otherAsset otherLiability mortgage autoLoan studentLoan personalLoan medicalDebt otherDebt"`
	Balance float64          `json:"balance"`
}

func (s *Toolset) metadataTools() []mcpTool {
	return []mcpTool{
		newTool(s, "ynab_rename_payee",
			"Rename a payee.",
			object(map[string]interface{}{
				"payee_name": str("Current payee name (partial match)"),
				"new_name":   str("New payee name"),
			}, "payee_name", "new_name"), s.renamePayee),
		newTool(s, "ynab_update_category",
			"Rename a category and/or set its note. An empty note clears it.",
			object(map[string]interface{}{
				"category_name": str("Category name (partial match)"),
				"new_name":      str("New category name"),
				"note":          str("New note. An empty string clears it"),
			}, "category_name"), s.updateCategory),
		newTool(s, "ynab_set_category_target",
			"Set, change or remove a category's goal target.",
			object(map[string]interface{}{
				"category_name": str("Category name (partial match)"),
				"target_amount": number("Target dollar amount"),
				"target_date":   date("Target date (YYYY-MM-DD)"),
				"clear":         boolean("Remove the target instead of setting it"),
			}, "category_name"), s.setCategoryTarget),
		newTool(s, "ynab_create_account",
			"Create an account with a starting balance.",
			object(map[string]interface{}{
				"name":    str("Account name"),
				"type":    enum("Account type", ynab.AccountTypes),
				"balance": number("Starting balance in dollars (negative for debts)"),
			}, "name", "type"), s.createAccount),
	}
}

func (s *Toolset) renamePayee(ctx context.Context, args renamePayeeArgs) (string, error) {
	payees, err := s.repo.GetPayees(ctx)
	if err != nil {
		return "", err
	}
	payee, err := resolver.ResolvePayee(payees, args.PayeeName)
	if err != nil {
		return "", err
	}
	if _, err := s.repo.UpdatePayee(ctx, payee.ID, args.NewName); err != nil {
		return "", err
	}
	s.publish(ctx, events.PayeeUpdated, payee.ID, fmt.Sprintf("%s -> %s", payee.Name, args.NewName))
	return format.PayeeRenamed(payee.Name, args.NewName), nil
}

func (s *Toolset) updateCategory(ctx context.Context, args updateCategoryArgs) (string, error) {
	if args.NewName == nil && args.Note == nil {
		return "", apperrors.NewValidationError("Provide a new_name or a note to update.")
	}
	groups, err := s.repo.GetCategories(ctx)
	if err != nil {
		return "", err
	}
	cat, err := resolver.ResolveCategory(groups, args.CategoryName)
	if err != nil {
		return "", err
	}

	payload := ynab.Payload{}
	if args.NewName != nil {
		payload["name"] = *args.NewName
	}
	if args.Note != nil {
		if *args.Note == "" {
			payload["note"] = nil
		} else {
			payload["note"] = *args.Note
		}
	}
	if _, err := s.repo.UpdateCategory(ctx, cat.ID, payload); err != nil {
		return "", err
	}
	s.publish(ctx, events.CategoryUpdated, cat.ID, cat.Name)
	return format.CategoryUpdated(cat.Name, args.NewName, cat.Note, args.Note), nil
}

func (s *Toolset) setCategoryTarget(ctx context.Context, args categoryTargetArgs) (string, error) {
	if !args.Clear && args.TargetAmount == nil && args.TargetDate == nil {
		return "", apperrors.NewValidationError("Provide a target_amount or target_date, or set clear to remove the target.")
	}
	groups, err := s.repo.GetCategories(ctx)
	if err != nil {
		return "", err
	}
	cat, err := resolver.ResolveCategory(groups, args.CategoryName)
	if err != nil {
		return "", err
	}

	var amount *money.Milliunits
	if args.TargetAmount != nil {
		m := money.FromMajor(*args.TargetAmount)
		amount = &m
	}
	payload, result := analysis.ComputeCategoryTargetUpdates(*cat, amount, args.TargetDate, args.Clear)
	updated, err := s.repo.UpdateCategory(ctx, cat.ID, payload)
	if err != nil {
		return "", err
	}
	if updated != nil && result.Action != analysis.TargetRemoved {
		if updated.GoalType != nil {
			result.GoalType = updated.GoalType.Label()
		}
		result.PercentageComplete = updated.GoalPercentageComplete
		if updated.GoalUnderFunded != nil {
			under := updated.GoalUnderFunded.Major()
			result.UnderFunded = &under
		}
	}
	s.publish(ctx, events.CategoryUpdated, cat.ID, "target "+result.Action)
	return format.CategoryTargetSet(result), nil
}

func (s *Toolset) createAccount(ctx context.Context, args createAccountArgs) (string, error) {
	account, err := s.repo.CreateAccount(ctx, ynab.NewAccount{
		Name:    args.Name,
		Type:    args.Type,
		Balance: money.FromMajor(args.Balance),
	})
	if err != nil {
		return "", err
	}
	s.publish(ctx, events.AccountCreated, account.ID, account.Name)
	return format.AccountCreated(account), nil
}
