package ynab

import (
	"context"

	"github.com/hirosato/ynab-mcp/internal/domain/money"
)

// Payload is a partial update body. Only keys present are written; a nil
// value clears the field on the server.
type Payload map[string]any

type NewAccount struct {
	Name    string           `json:"name"`
	Type    AccountType      `json:"type"`
	Balance money.Milliunits `json:"balance"`
}

type NewSubTransaction struct {
	Amount     money.Milliunits `json:"amount"`
	CategoryID string           `json:"category_id,omitempty"`
	PayeeName  string           `json:"payee_name,omitempty"`
	Memo       string           `json:"memo,omitempty"`
}

type NewTransaction struct {
	AccountID       string              `json:"account_id"`
	Date            string              `json:"date"`
	Amount          money.Milliunits    `json:"amount"`
	PayeeName       string              `json:"payee_name,omitempty"`
	CategoryID      string              `json:"category_id,omitempty"`
	Memo            string              `json:"memo,omitempty"`
	Cleared         ClearedStatus       `json:"cleared,omitempty"`
	Approved        bool                `json:"approved"`
	FlagColor       FlagColor           `json:"flag_color,omitempty"`
	Subtransactions []NewSubTransaction `json:"subtransactions,omitempty"`
}

type NewScheduledTransaction struct {
	AccountID  string           `json:"account_id"`
	Date       string           `json:"date"`
	Amount     money.Milliunits `json:"amount"`
	Frequency  Frequency        `json:"frequency"`
	PayeeName  string           `json:"payee_name,omitempty"`
	CategoryID string           `json:"category_id,omitempty"`
	Memo       string           `json:"memo,omitempty"`
	FlagColor  FlagColor        `json:"flag_color,omitempty"`
}

// TransactionQuery narrows a transaction listing. Any non-empty field makes
// the query scoped, which is always fetched fresh.
type TransactionQuery struct {
	SinceDate  string
	AccountID  string
	CategoryID string
	PayeeID    string
}

// Scoped reports whether the query is narrower than the whole collection.
func (q TransactionQuery) Scoped() bool {
	return q.SinceDate != "" || q.AccountID != "" || q.CategoryID != "" || q.PayeeID != ""
}

// Repository is the budgeting service as seen by the tool layer. The
// budget is fixed when the repository is constructed.
type Repository interface {
	BudgetID() string
	GetBudgets(ctx context.Context) ([]Budget, error)
	GetBudgetSettings(ctx context.Context) (*BudgetSettings, error)
	GetUser(ctx context.Context) (*User, error)

	GetAccounts(ctx context.Context) ([]Account, error)
	CreateAccount(ctx context.Context, account NewAccount) (*Account, error)

	GetCategories(ctx context.Context) ([]CategoryGroup, error)
	GetCategory(ctx context.Context, categoryID string) (*Category, error)
	UpdateCategory(ctx context.Context, categoryID string, payload Payload) (*Category, error)
	UpdateCategoryBudget(ctx context.Context, month, categoryID string, budgeted money.Milliunits) (*Category, error)

	GetTransactions(ctx context.Context, query TransactionQuery) ([]Transaction, error)
	GetTransaction(ctx context.Context, transactionID string) (*Transaction, error)
	CreateTransaction(ctx context.Context, txn NewTransaction) (*Transaction, error)
	UpdateTransaction(ctx context.Context, transactionID string, payload Payload) (*Transaction, error)
	UpdateTransactions(ctx context.Context, payloads []Payload) ([]Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) (*Transaction, error)
	ImportTransactions(ctx context.Context) ([]string, error)

	GetPayees(ctx context.Context) ([]Payee, error)
	UpdatePayee(ctx context.Context, payeeID, name string) (*Payee, error)
	GetPayeeLocations(ctx context.Context) ([]PayeeLocation, error)

	GetMonths(ctx context.Context) ([]MonthSummary, error)
	GetMonth(ctx context.Context, month string) (*MonthDetail, error)

	GetScheduledTransactions(ctx context.Context) ([]ScheduledTransaction, error)
	GetScheduledTransaction(ctx context.Context, id string) (*ScheduledTransaction, error)
	CreateScheduledTransaction(ctx context.Context, st NewScheduledTransaction) (*ScheduledTransaction, error)
	UpdateScheduledTransaction(ctx context.Context, id string, payload Payload) (*ScheduledTransaction, error)
	DeleteScheduledTransaction(ctx context.Context, id string) (*ScheduledTransaction, error)
}
