package tools

import (
	"context"
	"fmt"

	"github.com/hirosato/ynab-mcp/internal/api/mcp/format"
	"github.com/hirosato/ynab-mcp/internal/domain/analysis"
	"github.com/hirosato/ynab-mcp/internal/domain/categorizer"
	"github.com/hirosato/ynab-mcp/internal/domain/events"
	"github.com/hirosato/ynab-mcp/internal/domain/resolver"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

type mappingArgs struct {
	PayeeName    string `json:"payee_name" validate:"required,max=200"`
	CategoryName string `json:"category_name" validate:"required,max=100"`
}

type categorizeArgs struct {
	TransactionDescription string `json:"transaction_description" validate:"required,max=200"`
	CategoryName           string `json:"category_name" validate:"required,max=100"`
}

func (s *Toolset) categorizerTools() []mcpTool {
	categorizeSchema := object(map[string]interface{}{
		"transaction_description": str("Payee name, date, amount or memo identifying the transaction"),
		"category_name":           str("Category to assign (partial match)"),
	}, "transaction_description", "category_name")

	return []mcpTool{
		newTool(s, "ynab_learn_categories",
			"Learn payee to category patterns from transaction history for auto-categorization.",
			object(nil), s.learnCategories),
		newTool(s, "ynab_set_category_mapping",
			"Always use a category for a payee, overriding learned history.",
			object(map[string]interface{}{
				"payee_name":    str("Payee name"),
				"category_name": str("Category name (partial match)"),
			}, "payee_name", "category_name"), s.setCategoryMapping),
		newTool(s, "ynab_clear_category_mappings",
			"Forget every learned payee to category mapping.",
			object(nil), s.clearCategoryMappings),
		newTool(s, "ynab_uncategorized",
			"List transactions that still need a category.",
			object(nil), s.uncategorized),
		newTool(s, "ynab_categorize_transaction",
			"Assign a category to an uncategorized transaction.",
			categorizeSchema, s.categorizeTransaction),
		newTool(s, "ynab_recategorize_transaction",
			"Change the category of any transaction.",
			categorizeSchema, s.recategorizeTransaction),
	}
}

func (s *Toolset) learnCategories(ctx context.Context, _ noArgs) (string, error) {
	txns, err := s.repo.GetTransactions(ctx, ynab.TransactionQuery{})
	if err != nil {
		return "", err
	}

	observations := categorizer.ObservationsFrom(txns)
	if err := s.categorizer.Learn(ctx, observations); err != nil {
		return "", err
	}
	return format.LearnedCategories(s.categorizer.Mappings(), len(observations)), nil
}

func (s *Toolset) setCategoryMapping(ctx context.Context, args mappingArgs) (string, error) {
	groups, err := s.repo.GetCategories(ctx)
	if err != nil {
		return "", err
	}
	cat, err := resolver.ResolveCategoryOrInflow(groups, args.CategoryName)
	if err != nil {
		return "", err
	}
	if err := s.categorizer.SetManual(ctx, args.PayeeName, cat.ID, cat.Name); err != nil {
		return "", err
	}
	return format.MappingSet(args.PayeeName, cat.Name), nil
}

func (s *Toolset) clearCategoryMappings(ctx context.Context, _ noArgs) (string, error) {
	n, err := s.categorizer.Clear(ctx)
	if err != nil {
		return "", err
	}
	return format.MappingsCleared(n), nil
}

func (s *Toolset) uncategorized(ctx context.Context, _ noArgs) (string, error) {
	txns, err := s.repo.GetTransactions(ctx, ynab.TransactionQuery{})
	if err != nil {
		return "", err
	}
	return format.Uncategorized(analysis.FindUncategorized(txns)), nil
}

func (s *Toolset) categorizeTransaction(ctx context.Context, args categorizeArgs) (string, error) {
	txns, err := s.repo.GetTransactions(ctx, ynab.TransactionQuery{})
	if err != nil {
		return "", err
	}
	txn := analysis.FindTransactionByDescription(analysis.FindUncategorized(txns), args.TransactionDescription)
	if txn == nil {
		return fmt.Sprintf("No uncategorized transaction found matching '%s'.", args.TransactionDescription), nil
	}
	cat, err := s.assignCategory(ctx, *txn, args.CategoryName)
	if err != nil {
		return "", err
	}
	return format.TransactionCategorized(*txn, cat.Name), nil
}

func (s *Toolset) recategorizeTransaction(ctx context.Context, args categorizeArgs) (string, error) {
	txns, err := s.repo.GetTransactions(ctx, ynab.TransactionQuery{})
	if err != nil {
		return "", err
	}
	txn := analysis.FindTransactionByDescription(txns, args.TransactionDescription)
	if txn == nil {
		return noMatch(args.TransactionDescription), nil
	}
	cat, err := s.assignCategory(ctx, *txn, args.CategoryName)
	if err != nil {
		return "", err
	}
	return format.TransactionRecategorized(*txn, cat.Name), nil
}

// assignCategory resolves the category, patches the transaction and learns
// the payee pairing.
func (s *Toolset) assignCategory(ctx context.Context, txn ynab.Transaction, categoryName string) (*ynab.Category, error) {
	groups, err := s.repo.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	cat, err := resolver.ResolveCategoryOrInflow(groups, categoryName)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.UpdateTransaction(ctx, txn.ID, ynab.Payload{"category_id": cat.ID}); err != nil {
		return nil, err
	}
	if payee := txn.Payee(); payee != "" {
		s.learn(ctx, categorizer.Observation{PayeeName: payee, CategoryID: cat.ID, CategoryName: cat.Name})
	}
	s.publish(ctx, events.TransactionUpdated, txn.ID, "category "+cat.Name)
	return cat, nil
}
