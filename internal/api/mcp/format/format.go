// Package format renders tool results as Markdown for the LLM host.
package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

// usd renders a non-negative major amount, e.g. "$1,234.50".
func usd(d float64) string {
	return money.Dollars(d)
}

func absUSD(m money.Milliunits) string {
	return money.Dollars(m.Abs().Major())
}

func direction(m money.Milliunits) string {
	if m > 0 {
		return "IN"
	}
	return "OUT"
}

func flow(m money.Milliunits) string {
	if m > 0 {
		return "inflow"
	}
	return "outflow"
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func Budgets(budgets []ynab.Budget) string {
	if len(budgets) == 0 {
		return "No budgets found."
	}
	lines := []string{"## Your Budgets\n"}
	for _, b := range budgets {
		lines = append(lines, fmt.Sprintf("- **%s** (ID: `%s`)", b.Name, b.ID))
	}
	return strings.Join(lines, "\n")
}

func Accounts(accounts []ynab.Account) string {
	lines := []string{"## Accounts\n"}
	for _, a := range accounts {
		if a.Closed || a.Deleted {
			continue
		}
		sign := "+"
		if a.Balance < 0 {
			sign = "-"
		}
		lines = append(lines, fmt.Sprintf("- %s **%s** (%s): %s", sign, a.Name, a.Type, absUSD(a.Balance)))
	}
	if len(lines) == 1 {
		return "No open accounts found."
	}
	return strings.Join(lines, "\n")
}

func userGroups(groups []ynab.CategoryGroup) []ynab.CategoryGroup {
	var out []ynab.CategoryGroup
	for _, g := range groups {
		if g.Hidden || g.Deleted || ynab.IsInternalGroup(g.Name) {
			continue
		}
		out = append(out, g)
	}
	return out
}

func status(ok bool) string {
	if ok {
		return "OK"
	}
	return "!!"
}

// BudgetSummary lists categories with any money or activity this month.
func BudgetSummary(groups []ynab.CategoryGroup) string {
	lines := []string{"## Budget Summary (Current Month)\n"}
	var totalBudgeted, totalActivity, totalBalance money.Milliunits

	for _, g := range userGroups(groups) {
		var budgeted, activity, balance money.Milliunits
		var rows []string
		for _, c := range g.Categories {
			if !c.Visible() {
				continue
			}
			budgeted += c.Budgeted
			activity += c.Activity
			balance += c.Balance
			if c.Budgeted == 0 && c.Activity == 0 {
				continue
			}
			rows = append(rows, fmt.Sprintf("  [%s] %s: %s budgeted | %s spent | %s left",
				status(c.Balance >= 0), c.Name, c.Budgeted, absUSD(c.Activity), c.Balance))
		}
		if budgeted == 0 && activity == 0 {
			continue
		}
		lines = append(lines, "\n### "+g.Name)
		lines = append(lines, rows...)
		totalBudgeted += budgeted
		totalActivity += activity
		totalBalance += balance
	}

	lines = append(lines, "\n---")
	lines = append(lines, fmt.Sprintf("**Totals:** %s budgeted | %s spent | %s remaining",
		totalBudgeted, absUSD(totalActivity), totalBalance))
	return strings.Join(lines, "\n")
}

func MonthSummaries(months []ynab.MonthSummary) string {
	var live []ynab.MonthSummary
	for _, m := range months {
		if !m.Deleted {
			live = append(live, m)
		}
	}
	if len(live) == 0 {
		return "No months found."
	}
	sort.SliceStable(live, func(i, j int) bool { return live[i].Month > live[j].Month })

	lines := []string{
		"## Monthly Summaries\n",
		"| Month | Income | Budgeted | Activity | To Be Budgeted | Age of Money |",
		"|---|---|---|---|---|---|",
	}
	for _, m := range live {
		age := "-"
		if m.AgeOfMoney != nil {
			age = fmt.Sprintf("%d days", *m.AgeOfMoney)
		}
		lines = append(lines, fmt.Sprintf("| %s | %s | %s | %s | %s | %s |",
			m.Month[:min(7, len(m.Month))], m.Income, m.Budgeted, m.Activity, m.ToBeBudgeted, age))
	}
	return strings.Join(lines, "\n")
}

func BudgetSettings(s *ynab.BudgetSettings) string {
	cf := s.CurrencyFormat
	return fmt.Sprintf("## Budget Settings\n\n- **Date format:** %s\n- **Currency:** %s (%s)\n- **Example:** %s\n- **Decimal digits:** %d",
		s.DateFormat.Format, cf.CurrencySymbol, cf.ISOCode, cf.ExampleFormat, cf.DecimalDigits)
}

func User(u *ynab.User) string {
	return fmt.Sprintf("Authenticated as user `%s`.", u.ID)
}

func AccountCreated(a *ynab.Account) string {
	return fmt.Sprintf("Account created!\n\n- **Name:** %s\n- **Type:** %s\n- **Balance:** %s", a.Name, a.Type, a.Balance)
}
