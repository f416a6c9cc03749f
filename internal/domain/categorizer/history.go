package categorizer

import "github.com/hirosato/ynab-mcp/internal/domain/ynab"

// ObservationsFrom collects the categorized, non-deleted transactions that
// name a payee, in the order given. Split parents are skipped.
func ObservationsFrom(txns []ynab.Transaction) []Observation {
	var observations []Observation
	for _, t := range txns {
		if t.Deleted || t.Payee() == "" || t.CategoryID == nil || len(t.Subtransactions) > 0 {
			continue
		}
		observations = append(observations, Observation{
			PayeeName:    t.Payee(),
			CategoryID:   *t.CategoryID,
			CategoryName: t.Category(),
		})
	}
	return observations
}
