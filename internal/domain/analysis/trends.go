package analysis

import (
	"sort"
	"strings"
	"time"

	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

const anomalyFactor = 1.5

// AnalyzeSpendingTrends buckets outflows by month and category for the
// numMonths months ending at ref, and flags current-month categories that
// exceed 1.5x their average. Empty months count toward the average.
func AnalyzeSpendingTrends(txns []ynab.Transaction, numMonths int, categoryFilter string, ref time.Time) SpendingTrendResult {
	if numMonths < 1 {
		numMonths = 1
	}
	months := make([]string, numMonths)
	for i := 0; i < numMonths; i++ {
		months[numMonths-1-i] = MonthsBack(ref, i).Format(monthLayout)
	}
	current := months[numMonths-1]

	totals := make(map[string]map[string]money.Milliunits, numMonths)
	for _, m := range months {
		totals[m] = make(map[string]money.Milliunits)
	}

	filter := strings.ToLower(categoryFilter)
	for _, t := range txns {
		if t.Deleted || t.Amount >= 0 || len(t.Date) < 7 {
			continue
		}
		bucket, ok := totals[t.Date[:7]]
		if !ok {
			continue
		}
		cat := t.Category()
		if cat == "" {
			cat = ynab.UncategorizedLabel
		}
		if filter != "" && !strings.Contains(strings.ToLower(cat), filter) {
			continue
		}
		bucket[cat] += t.Amount.Abs()
	}

	seen := make(map[string]struct{})
	for _, bucket := range totals {
		for cat := range bucket {
			seen[cat] = struct{}{}
		}
	}

	averages := make(map[string]float64, len(seen))
	rawAverages := make(map[string]float64, len(seen))
	for cat := range seen {
		var sum money.Milliunits
		for _, m := range months {
			sum += totals[m][cat]
		}
		avg := float64(sum) / float64(numMonths)
		rawAverages[cat] = avg
		averages[cat] = money.Round2(avg / 1000)
	}

	var anomalies []AnomalyItem
	for cat, amount := range totals[current] {
		avg := rawAverages[cat]
		cur := float64(amount)
		if avg > 0 && cur > avg*anomalyFactor {
			anomalies = append(anomalies, AnomalyItem{
				CategoryName:    cat,
				CurrentAmount:   money.Round2(cur / 1000),
				AverageAmount:   money.Round2(avg / 1000),
				PctAboveAverage: money.Round1((cur - avg) / avg * 100),
			})
		}
	}
	sort.SliceStable(anomalies, func(i, j int) bool {
		if anomalies[i].PctAboveAverage != anomalies[j].PctAboveAverage {
			return anomalies[i].PctAboveAverage > anomalies[j].PctAboveAverage
		}
		return anomalies[i].CategoryName < anomalies[j].CategoryName
	})

	monthly := make(map[string]map[string]float64, numMonths)
	for m, bucket := range totals {
		out := make(map[string]float64, len(bucket))
		for cat, amount := range bucket {
			out[cat] = money.Round2(amount.Major())
		}
		monthly[m] = out
	}

	return SpendingTrendResult{
		Months:         months,
		MonthlyTotals:  monthly,
		Averages:       averages,
		Anomalies:      anomalies,
		CategoryFilter: categoryFilter,
		NumMonths:      numMonths,
	}
}
