// Package ynabtest builds snapshot records for tests.
package ynabtest

import (
	"strings"
	"time"

	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Account returns an open on-budget account of the given type.
func Account(name string, accountType ynab.AccountType, balance money.Milliunits) ynab.Account {
	return ynab.Account{
		ID:             "acc-" + slug(name),
		Name:           name,
		Type:           accountType,
		OnBudget:       true,
		Balance:        balance,
		ClearedBalance: balance,
	}
}

// Category returns a visible category.
func Category(name string, budgeted, activity, balance money.Milliunits) ynab.Category {
	return ynab.Category{
		ID:              "cat-" + slug(name),
		CategoryGroupID: "grp-1",
		Name:            name,
		Budgeted:        budgeted,
		Activity:        activity,
		Balance:         balance,
	}
}

// Group returns a visible group owning the categories.
func Group(name string, categories ...ynab.Category) ynab.CategoryGroup {
	id := "grp-" + slug(name)
	for i := range categories {
		categories[i].CategoryGroupID = id
	}
	return ynab.CategoryGroup{ID: id, Name: name, Categories: categories}
}

// Transaction returns an approved, uncleared transaction. An empty category
// name leaves it uncategorized.
func Transaction(payee string, amount money.Milliunits, category, date string) ynab.Transaction {
	t := ynab.Transaction{
		ID:          "txn-" + slug(payee) + "-" + date,
		Date:        date,
		Amount:      amount,
		Cleared:     ynab.Uncleared,
		Approved:    true,
		AccountID:   "acc-checking",
		AccountName: "Checking",
		PayeeName:   Ptr(payee),
	}
	if category != "" {
		t.CategoryID = Ptr("cat-" + slug(category))
		t.CategoryName = Ptr(category)
	}
	return t
}

// Scheduled returns a monthly scheduled transaction.
func Scheduled(payee string, amount money.Milliunits, category, dateNext string) ynab.ScheduledTransaction {
	st := ynab.ScheduledTransaction{
		ID:          "st-" + slug(payee),
		DateFirst:   "2025-01-01",
		DateNext:    dateNext,
		Frequency:   ynab.FrequencyMonthly,
		Amount:      amount,
		AccountID:   "acc-checking",
		AccountName: "Checking",
		PayeeName:   Ptr(payee),
	}
	if category != "" {
		st.CategoryID = Ptr("cat-" + slug(category))
		st.CategoryName = Ptr(category)
	}
	return st
}

// Payee returns a live payee.
func Payee(name string) ynab.Payee {
	return ynab.Payee{ID: "payee-" + slug(name), Name: name}
}

// Date parses a "YYYY-MM-DD" date, panicking on bad input.
func Date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
