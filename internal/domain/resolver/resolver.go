// Package resolver maps user supplied names onto snapshot records.
//
// Every resolver returns the first case-insensitive substring match in input
// order. Ties are never ranked.
package resolver

import (
	"strings"

	apperrors "github.com/hirosato/ynab-mcp/internal/domain/errors"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

const maxPayeeCandidates = 20

var inflowAliases = map[string]struct{}{
	"inflow":                  {},
	"inflow: ready to assign": {},
	"ready to assign":         {},
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// ResolveAccount finds an open account by name. With an empty name it picks
// the first open on-budget checking account, then any open on-budget account.
func ResolveAccount(accounts []ynab.Account, name string) (*ynab.Account, error) {
	open := make([]ynab.Account, 0, len(accounts))
	for _, a := range accounts {
		if !a.Closed && !a.Deleted {
			open = append(open, a)
		}
	}

	if name != "" {
		for i := range open {
			if contains(open[i].Name, name) {
				return &open[i], nil
			}
		}
		names := make([]string, 0, len(open))
		for _, a := range open {
			names = append(names, a.Name)
		}
		return nil, apperrors.NewLookupError("account", name, names)
	}

	for i := range open {
		if open[i].OnBudget && open[i].Type == ynab.AccountTypeChecking {
			return &open[i], nil
		}
	}
	for i := range open {
		if open[i].OnBudget {
			return &open[i], nil
		}
	}
	return nil, apperrors.NewLookupError("account", "<default>", nil)
}

// ResolveCategory finds a visible category in a user-facing group.
func ResolveCategory(groups []ynab.CategoryGroup, name string) (*ynab.Category, error) {
	for _, g := range groups {
		if ynab.IsInternalGroup(g.Name) || g.Hidden || g.Deleted {
			continue
		}
		for i := range g.Categories {
			cat := g.Categories[i]
			if cat.Visible() && contains(cat.Name, name) {
				return &cat, nil
			}
		}
	}
	return nil, apperrors.NewLookupError("category", name, nil)
}

// IsInflowAlias reports whether a query names the inflow pseudo-category.
func IsInflowAlias(name string) bool {
	_, ok := inflowAliases[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// ResolveCategoryOrInflow behaves like ResolveCategory, except that the
// exact inflow aliases resolve to the reserved inflow category, which lives
// in an internal group.
func ResolveCategoryOrInflow(groups []ynab.CategoryGroup, name string) (*ynab.Category, error) {
	if IsInflowAlias(name) {
		for _, g := range groups {
			for i := range g.Categories {
				cat := g.Categories[i]
				if cat.Name == ynab.InflowCategoryName && !cat.Deleted {
					return &cat, nil
				}
			}
		}
	}
	return ResolveCategory(groups, name)
}

// ResolvePayee finds a live payee by name.
func ResolvePayee(payees []ynab.Payee, name string) (*ynab.Payee, error) {
	names := make([]string, 0, maxPayeeCandidates)
	for i := range payees {
		p := payees[i]
		if p.Deleted {
			continue
		}
		if contains(p.Name, name) {
			return &p, nil
		}
		if len(names) < maxPayeeCandidates {
			names = append(names, p.Name)
		}
	}
	return nil, apperrors.NewLookupError("payee", name, names)
}
