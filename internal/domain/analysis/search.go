package analysis

import (
	"strings"

	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

// TransactionFilter narrows a transaction list. Every set field must match.
// Amount bounds apply to the absolute major amount.
type TransactionFilter struct {
	PayeeName         string
	CategoryName      string
	AccountName       string
	MemoContains      string
	MinAmount         *float64
	MaxAmount         *float64
	UncategorizedOnly bool
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// FilterTransactions returns the live transactions matching f, in input order.
func FilterTransactions(txns []ynab.Transaction, f TransactionFilter) []ynab.Transaction {
	var out []ynab.Transaction
	for _, t := range txns {
		if t.Deleted {
			continue
		}
		if f.UncategorizedOnly && t.CategoryID != nil {
			continue
		}
		if f.PayeeName != "" && !containsFold(t.Payee(), f.PayeeName) {
			continue
		}
		if f.CategoryName != "" && !containsFold(t.Category(), f.CategoryName) {
			continue
		}
		if f.AccountName != "" && !containsFold(t.AccountName, f.AccountName) {
			continue
		}
		if f.MemoContains != "" && !containsFold(t.MemoText(), f.MemoContains) {
			continue
		}
		abs := t.Amount.Abs().Major()
		if f.MinAmount != nil && abs < *f.MinAmount {
			continue
		}
		if f.MaxAmount != nil && abs > *f.MaxAmount {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FindUncategorized returns live transactions without a category.
func FindUncategorized(txns []ynab.Transaction) []ynab.Transaction {
	var out []ynab.Transaction
	for _, t := range txns {
		if t.Uncategorized() {
			out = append(out, t)
		}
	}
	return out
}

// FindTransactionByDescription returns the first live transaction whose
// payee, memo, date or formatted amount contains the description.
func FindTransactionByDescription(txns []ynab.Transaction, description string) *ynab.Transaction {
	q := strings.ToLower(description)
	for i := range txns {
		t := txns[i]
		if t.Deleted {
			continue
		}
		if strings.Contains(strings.ToLower(t.Payee()), q) ||
			strings.Contains(strings.ToLower(t.MemoText()), q) ||
			strings.Contains(t.Date, q) ||
			strings.Contains(money.Format(t.Amount.Abs().Major()), q) {
			return &t
		}
	}
	return nil
}

// FindScheduledByDescription is FindTransactionByDescription for scheduled
// transactions, matching payee, next date or formatted amount.
func FindScheduledByDescription(sts []ynab.ScheduledTransaction, description string) *ynab.ScheduledTransaction {
	q := strings.ToLower(description)
	for i := range sts {
		st := sts[i]
		if st.Deleted {
			continue
		}
		if strings.Contains(strings.ToLower(st.Payee()), q) ||
			strings.Contains(st.DateNext, q) ||
			strings.Contains(money.Format(st.Amount.Abs().Major()), q) {
			return &st
		}
	}
	return nil
}
