package analysis

import (
	"sort"

	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

// halfCent absorbs rounding noise when comparing major amounts.
const halfCent = 0.005

// tolerance absorbs sub-cent balances and leftovers.
const tolerance money.Milliunits = 5

type fundedBalance struct {
	entry   CategoryBalance
	balance money.Milliunits
}

func balanceEntries(in []fundedBalance) []CategoryBalance {
	if len(in) == 0 {
		return nil
	}
	out := make([]CategoryBalance, len(in))
	for i, b := range in {
		out[i] = b.entry
	}
	return out
}

// AnalyzeOverspending plans moves from funded categories into overspent
// ones. Worst deficits are served first, from the richest sources first, and
// a source's capacity is shared across all deficits. Nothing is moved.
func AnalyzeOverspending(groups []ynab.CategoryGroup) OverspendingResult {
	var overspent, sources []fundedBalance

	for _, g := range groups {
		if ynab.IsInternalGroup(g.Name) || g.Hidden || g.Deleted {
			continue
		}
		for _, cat := range g.Categories {
			if !cat.Visible() {
				continue
			}
			l := fundedBalance{
				entry:   CategoryBalance{Name: cat.Name, CategoryID: cat.ID, Amount: money.Round2(cat.Balance.Major())},
				balance: cat.Balance,
			}
			switch {
			case cat.Balance < -tolerance:
				overspent = append(overspent, l)
			case cat.Balance > tolerance:
				sources = append(sources, l)
			}
		}
	}

	sort.SliceStable(overspent, func(i, j int) bool { return overspent[i].balance < overspent[j].balance })
	sort.SliceStable(sources, func(i, j int) bool { return sources[i].balance > sources[j].balance })

	remaining := make([]money.Milliunits, len(sources))
	for i, s := range sources {
		remaining[i] = s.balance
	}

	var (
		suggestions []MoveSuggestion
		total       money.Milliunits
	)
	for _, deficit := range overspent {
		needed := deficit.balance.Abs()
		total += needed
		for i, source := range sources {
			if needed <= tolerance {
				break
			}
			move := min(needed, remaining[i])
			if move <= tolerance {
				continue
			}
			suggestions = append(suggestions, MoveSuggestion{
				FromCategory:   source.entry.Name,
				FromCategoryID: source.entry.CategoryID,
				ToCategory:     deficit.entry.Name,
				ToCategoryID:   deficit.entry.CategoryID,
				Amount:         money.Round2(move.Major()),
			})
			remaining[i] -= move
			needed -= move
		}
	}

	return OverspendingResult{
		Overspent:      balanceEntries(overspent),
		Sources:        balanceEntries(sources),
		Suggestions:    suggestions,
		TotalOverspent: money.Round2(total.Major()),
	}
}
