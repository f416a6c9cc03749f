package format

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/hirosato/ynab-mcp/internal/domain/analysis"
	"github.com/hirosato/ynab-mcp/internal/domain/categorizer"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

// CategoryTargets lists categories that carry a goal, by group.
func CategoryTargets(groups []ynab.CategoryGroup) string {
	lines := []string{"## Category Targets\n"}
	var totalTarget, totalUnderfunded float64
	count := 0

	for _, g := range userGroups(groups) {
		var rows []string
		for _, c := range g.Categories {
			if !c.Visible() || c.GoalType == nil {
				continue
			}
			count++
			var target, underfunded float64
			if c.GoalTarget != nil {
				target = c.GoalTarget.Major()
			}
			if c.GoalUnderFunded != nil {
				underfunded = c.GoalUnderFunded.Major()
			}
			totalTarget += target
			totalUnderfunded += underfunded
			pct := 0
			if c.GoalPercentageComplete != nil {
				pct = *c.GoalPercentageComplete
			}

			row := fmt.Sprintf("  - **%s**: %s (%s), %d%% funded", c.Name, usd(target), c.GoalType.Label(), pct)
			if underfunded > halfCent {
				row += fmt.Sprintf(" | %s underfunded", usd(underfunded))
			}
			if c.GoalTargetDate != nil && *c.GoalTargetDate != "" {
				row += " | by " + *c.GoalTargetDate
			}
			rows = append(rows, row)
		}
		if len(rows) > 0 {
			lines = append(lines, "\n### "+g.Name)
			lines = append(lines, rows...)
		}
	}

	if count == 0 {
		return "No category targets/goals found."
	}
	lines = append(lines, "\n---")
	lines = append(lines, fmt.Sprintf("**%d categories with targets**", count))
	lines = append(lines, "**Total target amount:** "+usd(totalTarget))
	if totalUnderfunded > halfCent {
		lines = append(lines, "**Total underfunded:** "+usd(totalUnderfunded))
	}
	return strings.Join(lines, "\n")
}

func CategoryTargetSet(r analysis.CategoryTargetResult) string {
	if r.Action == analysis.TargetRemoved {
		lines := []string{fmt.Sprintf("Target removed from **%s**.", r.CategoryName)}
		if r.OldTarget != nil {
			lines = append(lines, "- **Previous target:** "+usd(*r.OldTarget))
			if r.OldTargetDate != nil && *r.OldTargetDate != "" {
				lines = append(lines, "- **Previous target date:** "+*r.OldTargetDate)
			}
		}
		return strings.Join(lines, "\n")
	}

	verb := "Target updated"
	if r.Action == analysis.TargetSet {
		verb = "Target set"
	}
	lines := []string{fmt.Sprintf("%s for **%s**:\n", verb, r.CategoryName)}
	if r.OldTarget != nil {
		lines = append(lines, "- **Previous target:** "+usd(*r.OldTarget))
	}
	if r.NewTarget != nil {
		lines = append(lines, "- **New target:** "+usd(*r.NewTarget))
	}
	if r.NewTargetDate != nil && *r.NewTargetDate != "" {
		lines = append(lines, "- **Target date:** "+*r.NewTargetDate)
	}
	if r.GoalType != "" {
		lines = append(lines, "- **Goal type:** "+r.GoalType)
	}
	if r.PercentageComplete != nil {
		lines = append(lines, fmt.Sprintf("- **Progress:** %d%% complete", *r.PercentageComplete))
	}
	if r.UnderFunded != nil && *r.UnderFunded > halfCent {
		lines = append(lines, "- **Under-funded:** "+usd(*r.UnderFunded))
	}
	return strings.Join(lines, "\n")
}

// CategoryUpdated confirms a rename and/or note change. A nil pointer means
// the field was left alone.
func CategoryUpdated(oldName string, newName *string, oldNote, newNote *string) string {
	lines := []string{fmt.Sprintf("Updated category **%s**:\n", oldName)}
	if newName != nil {
		lines = append(lines, fmt.Sprintf("- **Name:** %s → %s", oldName, *newName))
	}
	if newNote != nil {
		old := "(none)"
		if oldNote != nil && *oldNote != "" {
			old = *oldNote
		}
		lines = append(lines, fmt.Sprintf("- **Note:** %s → %s", old, orDefault(*newNote, "(cleared)")))
	}
	return strings.Join(lines, "\n")
}

func Payees(payees []ynab.Payee) string {
	var live []ynab.Payee
	for _, p := range payees {
		if !p.Deleted {
			live = append(live, p)
		}
	}
	if len(live) == 0 {
		return "No payees found."
	}
	sort.SliceStable(live, func(i, j int) bool { return strings.ToLower(live[i].Name) < strings.ToLower(live[j].Name) })
	lines := []string{fmt.Sprintf("## Payees (%d)\n", len(live))}
	for _, p := range live {
		lines = append(lines, "- "+p.Name)
	}
	return strings.Join(lines, "\n")
}

func PayeeRenamed(oldName, newName string) string {
	return fmt.Sprintf("Renamed payee **%s** → **%s**.", oldName, newName)
}

func PayeeLocations(locations []ynab.PayeeLocation, payees []ynab.Payee) string {
	names := make(map[string]string, len(payees))
	for _, p := range payees {
		names[p.ID] = p.Name
	}
	var lines []string
	for _, loc := range locations {
		if loc.Deleted {
			continue
		}
		lines = append(lines, fmt.Sprintf("- **%s**: (%s, %s)", orDefault(names[loc.PayeeID], "Unknown"), loc.Latitude, loc.Longitude))
	}
	if len(lines) == 0 {
		return "No payee locations found."
	}
	return strings.Join(append([]string{fmt.Sprintf("## Payee Locations (%d)\n", len(lines))}, lines...), "\n")
}

func PayeeTransactions(payee string, txns []ynab.Transaction, limit int) string {
	live := newestFirst(txns)
	if len(live) == 0 {
		return fmt.Sprintf("No transactions found for **%s**.", payee)
	}
	return fmt.Sprintf("# %s\n\n", payee) + Transactions(live, limit)
}

// LearnedCategories shows up to ten sample mappings.
func LearnedCategories(mappings []categorizer.Mapping, txnCount int) string {
	lines := []string{
		fmt.Sprintf("Learned %d payee -> category mappings from %d transactions.\n", len(mappings), txnCount),
		"Now when you add a transaction, I'll auto-suggest the category. Examples:",
	}
	for i, m := range mappings {
		if i == 10 {
			break
		}
		lines = append(lines, fmt.Sprintf("- %s -> %s", titleCase(m.Payee), m.CategoryName))
	}
	return strings.Join(lines, "\n")
}

func MappingSet(payee, category string) string {
	return fmt.Sprintf("Mapped **%s** -> **%s**. Future transactions from this payee will use it.", payee, category)
}

func MappingsCleared(count int) string {
	return fmt.Sprintf("Cleared %d learned category %s.", count, plural(count, "mapping"))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
