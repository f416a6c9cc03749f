package analysis

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab/ynabtest"
)

func TestAnalyzeOverspending_LimitedSurplus(t *testing.T) {
	groups := []ynab.CategoryGroup{
		ynabtest.Group("Bills",
			ynabtest.Category("Electric", 50000, -80000, -30000),
			ynabtest.Category("Rent", 1000000, -1100000, -100000),
		),
		ynabtest.Group("Fun", ynabtest.Category("Dining", 200000, -120000, 80000)),
	}

	result := AnalyzeOverspending(groups)

	require.Len(t, result.Overspent, 2)
	assert.Equal(t, "Rent", result.Overspent[0].Name)
	assert.Equal(t, "Electric", result.Overspent[1].Name)
	assert.Equal(t, 130.0, result.TotalOverspent)

	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, MoveSuggestion{
		FromCategory: "Dining", FromCategoryID: "cat-dining",
		ToCategory: "Rent", ToCategoryID: "cat-rent",
		Amount: 80.0,
	}, result.Suggestions[0])
}

func TestAnalyzeOverspending_Conservation(t *testing.T) {
	groups := []ynab.CategoryGroup{
		ynabtest.Group("Bills",
			ynabtest.Category("Rent", 0, 0, -100000),
			ynabtest.Category("Electric", 0, 0, -30000),
			ynabtest.Category("Water", 0, 0, -45500),
		),
		ynabtest.Group("Savings",
			ynabtest.Category("Vacation", 0, 0, 60000),
			ynabtest.Category("Gifts", 0, 0, 90000),
			ynabtest.Category("Tiny", 0, 0, 4),
		),
	}

	result := AnalyzeOverspending(groups)

	into := map[string]float64{}
	from := map[string]float64{}
	for _, s := range result.Suggestions {
		into[s.ToCategory] += s.Amount
		from[s.FromCategory] += s.Amount
		assert.Greater(t, s.Amount, 0.0)
	}
	for _, c := range result.Overspent {
		assert.LessOrEqual(t, into[c.Name], -c.Amount+halfCent, c.Name)
	}
	for _, c := range result.Sources {
		assert.LessOrEqual(t, from[c.Name], c.Amount+halfCent, c.Name)
	}
	// Two sources hold 150 against 175.50 of deficits.
	assert.InDelta(t, 150.0, from["Vacation"]+from["Gifts"], 0.001)
	assert.NotContains(t, from, "Tiny")
	assert.Equal(t, "Gifts", result.Sources[0].Name)
}

func TestAnalyzeOverspending_NoZeroMoves(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 2000; round++ {
		n := 2 + rng.Intn(7)
		cats := make([]ynab.Category, 0, n)
		for i := 0; i < n; i++ {
			cents := int64(rng.Intn(40001) - 20000)
			cats = append(cats, ynabtest.Category(fmt.Sprintf("C%d", i), 0, 0, money.Milliunits(cents*10)))
		}
		result := AnalyzeOverspending([]ynab.CategoryGroup{ynabtest.Group("Mixed", cats...)})

		from := map[string]float64{}
		for _, s := range result.Suggestions {
			require.Greater(t, s.Amount, 0.0, "round %d: %+v", round, s)
			from[s.FromCategoryID] += s.Amount
		}
		for _, c := range result.Sources {
			assert.LessOrEqual(t, from[c.CategoryID], c.Amount+halfCent, "round %d: %s", round, c.Name)
		}
	}
}

func TestAnalyzeOverspending_SubCentLeftoverIgnored(t *testing.T) {
	groups := []ynab.CategoryGroup{
		ynabtest.Group("Bills",
			ynabtest.Category("Rent", 0, 0, -10003),
			ynabtest.Category("Water", 0, 0, -5000),
		),
		ynabtest.Group("Savings", ynabtest.Category("Gifts", 0, 0, 10006)),
	}

	result := AnalyzeOverspending(groups)

	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "Rent", result.Suggestions[0].ToCategory)
	assert.Equal(t, 10.0, result.Suggestions[0].Amount)
	assert.Equal(t, 15.0, result.TotalOverspent)
}

func TestAnalyzeOverspending_SkipsInternalAndHidden(t *testing.T) {
	hidden := ynabtest.Category("Old", 0, 0, -5000)
	hidden.Hidden = true
	archived := ynabtest.Group("Archive", ynabtest.Category("Gone", 0, 0, -9000))
	archived.Hidden = true

	groups := []ynab.CategoryGroup{
		ynabtest.Group(ynab.InternalMasterCategoryGroup, ynabtest.Category(ynab.InflowCategoryName, 0, 0, 500000)),
		ynabtest.Group("Bills", hidden),
		archived,
	}

	result := AnalyzeOverspending(groups)
	assert.Empty(t, result.Overspent)
	assert.Empty(t, result.Sources)
	assert.Empty(t, result.Suggestions)
	assert.Zero(t, result.TotalOverspent)
}
