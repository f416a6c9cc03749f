package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hirosato/ynab-mcp/internal/domain/analysis"
	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

func approval(t ynab.Transaction) string {
	if t.Approved {
		return "✓"
	}
	return "⏳"
}

// newestFirst drops deleted transactions and sorts by date descending.
func newestFirst(txns []ynab.Transaction) []ynab.Transaction {
	out := make([]ynab.Transaction, 0, len(txns))
	for _, t := range txns {
		if !t.Deleted {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// Transactions lists up to limit live transactions, newest first.
func Transactions(txns []ynab.Transaction, limit int) string {
	live := newestFirst(txns)
	if limit > 0 && len(live) > limit {
		live = live[:limit]
	}
	if len(live) == 0 {
		return "No transactions found matching your criteria."
	}

	lines := []string{fmt.Sprintf("## Transactions (%d shown)\n", len(live))}
	for _, t := range live {
		lines = append(lines, fmt.Sprintf("- %s [%s] **%s** | %s | %s | %s | %s",
			t.Date, direction(t.Amount), absUSD(t.Amount),
			orDefault(t.Payee(), "Unknown"), orDefault(t.Category(), ynab.UncategorizedLabel),
			t.AccountName, approval(t)))
		if memo := t.MemoText(); memo != "" {
			lines = append(lines, fmt.Sprintf("  _Memo: %s_", memo))
		}
	}
	return strings.Join(lines, "\n")
}

func CategoryDetail(cat *ynab.Category, txns []ynab.Transaction) string {
	live := newestFirst(txns)
	lines := []string{
		"## " + cat.Name,
		"**Budgeted:** " + cat.Budgeted.String(),
		"**Spent:** " + absUSD(cat.Activity),
		"**Remaining:** " + cat.Balance.String(),
		"",
		fmt.Sprintf("### Transactions this month (%d)", len(live)),
	}
	for _, t := range live {
		lines = append(lines, fmt.Sprintf("- %s | %s | %s", t.Date, absUSD(t.Amount), orDefault(t.Payee(), "Unknown")))
	}
	return strings.Join(lines, "\n")
}

func Uncategorized(txns []ynab.Transaction) string {
	live := newestFirst(txns)
	if len(live) == 0 {
		return "No uncategorized transactions found."
	}
	lines := []string{fmt.Sprintf("## Uncategorized Transactions (%d)\n", len(live))}
	for i, t := range live {
		lines = append(lines, fmt.Sprintf("%d. %s [%s] **%s** | %s | %s",
			i+1, t.Date, direction(t.Amount), absUSD(t.Amount), orDefault(t.Payee(), "Unknown"), t.AccountName))
		if memo := t.MemoText(); memo != "" {
			lines = append(lines, fmt.Sprintf("   _Memo: %s_", memo))
		}
	}
	lines = append(lines, "\nTo categorize, tell me which transaction and what category.")
	return strings.Join(lines, "\n")
}

// SearchResults lists up to limit matches, newest first, followed by the net
// total of every match.
func SearchResults(txns []ynab.Transaction, limit int) string {
	live := newestFirst(txns)
	if len(live) == 0 {
		return "No transactions found matching your criteria."
	}
	var total money.Milliunits
	for _, t := range live {
		total += t.Amount
	}
	return Transactions(live, limit) + fmt.Sprintf("\n\n**Net total:** %s across %d matching %s", total, len(live), plural(len(live), "transaction"))
}

func TransactionCreated(t *ynab.Transaction, categoryName, accountName string) string {
	lines := []string{
		"Transaction added!\n",
		fmt.Sprintf("- **Amount:** %s %s", absUSD(t.Amount), flow(t.Amount)),
		"- **Payee:** " + orDefault(t.Payee(), "Unknown"),
		"- **Category:** " + orDefault(categoryName, ynab.UncategorizedLabel),
		"- **Account:** " + accountName,
		"- **Date:** " + t.Date,
	}
	if memo := t.MemoText(); memo != "" {
		lines = append(lines, "- **Memo:** "+memo)
	}
	return strings.Join(lines, "\n")
}

// SplitLine is one rendered line of a split transaction.
type SplitLine struct {
	CategoryName string
	Amount       money.Milliunits
	Memo         string
}

func SplitTransactionCreated(total money.Milliunits, payee, accountName, date, memo string, splits []SplitLine) string {
	lines := []string{
		"Split transaction added!\n",
		fmt.Sprintf("- **Total:** %s %s", absUSD(total), flow(total)),
		"- **Payee:** " + payee,
		"- **Account:** " + accountName,
		"- **Date:** " + date,
	}
	if memo != "" {
		lines = append(lines, "- **Memo:** "+memo)
	}
	lines = append(lines, "\n**Splits:**")
	for _, s := range splits {
		line := fmt.Sprintf("  - %s -> %s", absUSD(s.Amount), s.CategoryName)
		if s.Memo != "" {
			line += " (" + s.Memo + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func TransactionCategorized(t ynab.Transaction, category string) string {
	return fmt.Sprintf("Categorized **%s** at **%s** as **%s**.", absUSD(t.Amount), orDefault(t.Payee(), "Unknown"), category)
}

func TransactionRecategorized(t ynab.Transaction, newCategory string) string {
	return fmt.Sprintf("Recategorized **%s** at **%s**: %s → **%s**.",
		absUSD(t.Amount), orDefault(t.Payee(), "Unknown"), orDefault(t.Category(), ynab.UncategorizedLabel), newCategory)
}

func changeLines(changes []analysis.FieldChange) []string {
	lines := make([]string, 0, len(changes))
	for _, c := range changes {
		lines = append(lines, fmt.Sprintf("- **%s:** %s → %s", c.FieldName, c.OldValue, c.NewValue))
	}
	return lines
}

func TransactionUpdated(t ynab.Transaction, changes []analysis.FieldChange) string {
	lines := []string{fmt.Sprintf("Updated **%s** at **%s** (%s)\n", absUSD(t.Amount), orDefault(t.Payee(), "Unknown"), t.Date)}
	return strings.Join(append(lines, changeLines(changes)...), "\n")
}

func TransactionDeleted(t ynab.Transaction) string {
	return fmt.Sprintf("Deleted **%s** at **%s** (%s).", absUSD(t.Amount), orDefault(t.Payee(), "Unknown"), t.Date)
}

func BulkUpdateResult(count int, errs []string) string {
	lines := []string{fmt.Sprintf("Updated **%d** %s.", count, plural(count, "transaction"))}
	if len(errs) > 0 {
		lines = append(lines, fmt.Sprintf("\n**Errors (%d):**", len(errs)))
		for _, e := range errs {
			lines = append(lines, "- "+e)
		}
	}
	return strings.Join(lines, "\n")
}

func ImportResult(ids []string) string {
	if len(ids) == 0 {
		return "Import complete. No new transactions found."
	}
	return fmt.Sprintf("Imported **%d** new %s.", len(ids), plural(len(ids), "transaction"))
}

func ScheduledTransactions(sts []ynab.ScheduledTransaction) string {
	var live []ynab.ScheduledTransaction
	for _, st := range sts {
		if !st.Deleted {
			live = append(live, st)
		}
	}
	if len(live) == 0 {
		return "No scheduled transactions found."
	}
	sort.SliceStable(live, func(i, j int) bool { return live[i].DateNext < live[j].DateNext })

	lines := []string{fmt.Sprintf("## Scheduled Transactions (%d)\n", len(live))}
	for _, st := range live {
		lines = append(lines, fmt.Sprintf("- %s [%s] **%s** | %s | %s | %s",
			st.DateNext, direction(st.Amount), absUSD(st.Amount),
			orDefault(st.Payee(), "Unknown"), orDefault(st.Category(), ynab.UncategorizedLabel), st.Frequency))
		if st.Memo != nil && *st.Memo != "" {
			lines = append(lines, fmt.Sprintf("  _Memo: %s_", *st.Memo))
		}
	}
	return strings.Join(lines, "\n")
}

func ScheduledTransactionCreated(st *ynab.ScheduledTransaction, accountName, categoryName string) string {
	lines := []string{
		"Scheduled transaction created!\n",
		fmt.Sprintf("- **Amount:** %s %s", absUSD(st.Amount), flow(st.Amount)),
		"- **Payee:** " + orDefault(st.Payee(), "Unknown"),
		"- **Category:** " + orDefault(categoryName, ynab.UncategorizedLabel),
		"- **Account:** " + accountName,
		"- **First date:** " + st.DateFirst,
		"- **Frequency:** " + string(st.Frequency),
	}
	if st.Memo != nil && *st.Memo != "" {
		lines = append(lines, "- **Memo:** "+*st.Memo)
	}
	return strings.Join(lines, "\n")
}

func ScheduledTransactionUpdated(payee string, changes []analysis.FieldChange) string {
	lines := []string{fmt.Sprintf("Updated scheduled transaction for **%s**:\n", payee)}
	return strings.Join(append(lines, changeLines(changes)...), "\n")
}

func ScheduledTransactionDeleted(st ynab.ScheduledTransaction) string {
	return fmt.Sprintf("Deleted scheduled transaction: **%s** at **%s** (next: %s).",
		absUSD(st.Amount), orDefault(st.Payee(), "Unknown"), st.DateNext)
}
