package format

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hirosato/ynab-mcp/internal/domain/analysis"
)

const halfCent = 0.005

func SpendingTrends(r analysis.SpendingTrendResult) string {
	empty := true
	for _, cats := range r.MonthlyTotals {
		if len(cats) > 0 {
			empty = false
			break
		}
	}
	if empty {
		return "No spending data found for the requested period."
	}

	title := "Spending Trends"
	if r.CategoryFilter != "" {
		title += " (" + r.CategoryFilter + ")"
	}
	lines := []string{"## " + title + "\n"}

	cats := make([]string, 0, len(r.Averages))
	for c := range r.Averages {
		cats = append(cats, c)
	}
	sort.Strings(cats)

	lines = append(lines, "| Category | "+strings.Join(r.Months, " | ")+" | Avg |")
	lines = append(lines, "|"+strings.Repeat("---|", len(r.Months)+2))
	for _, c := range cats {
		var b strings.Builder
		b.WriteString("| " + c + " ")
		for _, m := range r.Months {
			b.WriteString("| " + usd(r.MonthlyTotals[m][c]) + " ")
		}
		b.WriteString("| " + usd(r.Averages[c]) + " |")
		lines = append(lines, b.String())
	}

	if len(r.Anomalies) > 0 {
		lines = append(lines, "\n### Anomalies")
		for _, a := range r.Anomalies {
			lines = append(lines, fmt.Sprintf("- **%s**: %s this month vs %s avg (%.0f%% above average)",
				a.CategoryName, usd(a.CurrentAmount), usd(a.AverageAmount), a.PctAboveAverage))
		}
	}
	return strings.Join(lines, "\n")
}

func Overspending(r analysis.OverspendingResult) string {
	if len(r.Overspent) == 0 {
		return "No overspending found. All categories are on track!"
	}
	lines := []string{
		"## Overspending Analysis",
		fmt.Sprintf("\nTotal overspent: **%s**\n", usd(r.TotalOverspent)),
		"### Overspent Categories",
	}
	for _, c := range r.Overspent {
		lines = append(lines, fmt.Sprintf("- **%s**: %s over budget", c.Name, usd(math.Abs(c.Amount))))
	}
	if len(r.Suggestions) == 0 {
		lines = append(lines, "\nNo categories with enough surplus to cover the overspending.")
		return strings.Join(lines, "\n")
	}
	lines = append(lines, "\n### Suggested Moves")
	for _, s := range r.Suggestions {
		lines = append(lines, fmt.Sprintf("- Move **%s** from %s -> %s", usd(s.Amount), s.FromCategory, s.ToCategory))
	}
	lines = append(lines, "\nUse `ynab_move_money` to execute these moves, or tell me to cover them.")
	return strings.Join(lines, "\n")
}

func Affordability(r analysis.AffordabilityResult) string {
	verdict, can := "No", "you cannot"
	if r.CanAfford {
		verdict, can = "Yes", "you can"
	}
	return strings.Join([]string{
		fmt.Sprintf("## [%s] %s, %s afford %s in %s\n", status(r.CanAfford), verdict, can, usd(r.Requested), r.CategoryName),
		"- **Available:** " + usd(r.Available),
		"- **After purchase:** " + usd(r.RemainingAfter),
		"- **Budget:** " + usd(r.Budget),
		fmt.Sprintf("- **Budget used:** %.0f%%", r.UtilizationPct),
	}, "\n")
}

func BudgetSetupPreview(assignments []analysis.BudgetAssignment) string {
	if len(assignments) == 0 {
		return "No categories to assign."
	}
	lines := []string{
		"## Budget Setup Preview\n",
		"| Category | Current | Proposed | Change |",
		"|---|---|---|---|",
	}
	var total float64
	for _, a := range assignments {
		change := a.ProposedBudgeted - a.CurrentBudgeted
		sign := ""
		if change > 0 {
			sign = "+"
		}
		lines = append(lines, fmt.Sprintf("| %s | %s | %s | %s%s |",
			a.CategoryName, usd(a.CurrentBudgeted), usd(a.ProposedBudgeted), sign, usd(change)))
		total += a.ProposedBudgeted
	}
	lines = append(lines, "\n**Total proposed:** "+usd(total))
	lines = append(lines, "\nSet `apply: true` to apply these assignments.")
	return strings.Join(lines, "\n")
}

func BudgetSetupApplied(assignments []analysis.BudgetAssignment, month string) string {
	lines := []string{fmt.Sprintf("## Budget Applied for %s\n", month)}
	var total float64
	for _, a := range assignments {
		lines = append(lines, fmt.Sprintf("- %s: %s", a.CategoryName, usd(a.ProposedBudgeted)))
		total += a.ProposedBudgeted
	}
	lines = append(lines, "\n**Total assigned:** "+usd(total))
	return strings.Join(lines, "\n")
}

func CreditCards(r analysis.CreditCardAnalysis) string {
	if len(r.Cards) == 0 {
		return "No open credit card accounts found."
	}
	lines := []string{"## Credit Card Status\n"}
	for _, c := range r.Cards {
		lines = append(lines, fmt.Sprintf("### [%s] %s", status(c.Discrepancy >= -halfCent), c.AccountName))
		lines = append(lines, "- **Balance owed:** "+usd(math.Abs(c.Balance)))
		lines = append(lines, "- **Payment available:** "+usd(c.PaymentAvailable))
		switch {
		case c.Discrepancy < -halfCent:
			lines = append(lines, "- **Underfunded by:** "+usd(math.Abs(c.Discrepancy)))
		case c.Discrepancy > halfCent:
			lines = append(lines, "- **Overfunded by:** "+usd(c.Discrepancy))
		default:
			lines = append(lines, "- **Fully funded**")
		}
		lines = append(lines, "")
	}
	lines = append(lines, "---")
	lines = append(lines, "**Total owed:** "+usd(r.TotalOwed))
	lines = append(lines, "**Total payment available:** "+usd(r.TotalPaymentAvailable))
	return strings.Join(lines, "\n")
}

func Forecast(r analysis.SpendingForecast) string {
	verdict := "Projected to exceed budget"
	if r.WillStayInBudget {
		verdict = "On track"
	}
	return strings.Join([]string{
		fmt.Sprintf("## [%s] %s Forecast\n", status(r.WillStayInBudget), r.CategoryName),
		"- **Budget:** " + usd(r.Budget),
		fmt.Sprintf("- **Spent so far:** %s (%d days)", usd(r.SpentSoFar), r.DaysElapsed),
		fmt.Sprintf("- **Daily rate:** %s/day", usd(r.DailyRate)),
		fmt.Sprintf("- **Projected total:** %s (%d days left)", usd(r.ProjectedTotal), r.DaysRemaining),
		"- **Projected remaining:** " + usd(r.ProjectedRemaining),
		"\n**Status:** " + verdict,
	}, "\n")
}

func MoveResult(fromName, toName string, amount, newFrom, newTo float64) string {
	return fmt.Sprintf("Moved %s\n\n- **From:** %s (new budget: %s)\n- **To:** %s (new budget: %s)",
		usd(amount), fromName, usd(newFrom), toName, usd(newTo))
}

func BudgetAssigned(categoryName, month string, previous, budgeted float64) string {
	return fmt.Sprintf("Assigned %s to **%s** for %s (was %s).", usd(budgeted), categoryName, month, usd(previous))
}
