package analysis

import (
	"math"
	"strings"

	"github.com/hirosato/ynab-mcp/internal/domain/money"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
)

// AnalyzeCreditCards pairs each open credit card account with the payment
// category of the same name and reports how far the two disagree.
func AnalyzeCreditCards(accounts []ynab.Account, groups []ynab.CategoryGroup) CreditCardAnalysis {
	payments := make(map[string]ynab.Category)
	for _, g := range groups {
		if !strings.Contains(strings.ToLower(g.Name), "credit card") {
			continue
		}
		for _, cat := range g.Categories {
			if cat.Visible() {
				payments[strings.ToLower(cat.Name)] = cat
			}
		}
	}

	var (
		result           CreditCardAnalysis
		owedTotal, avail float64
	)
	for _, acct := range accounts {
		if acct.Type != ynab.AccountTypeCreditCard || acct.Closed || acct.Deleted {
			continue
		}
		balance := acct.Balance.Major()
		owed := math.Abs(balance)

		info := CreditCardInfo{
			AccountName: acct.Name,
			AccountID:   acct.ID,
			Balance:     money.Round2(balance),
		}
		var paymentAvail float64
		if cat, ok := payments[strings.ToLower(acct.Name)]; ok {
			paymentAvail = cat.Balance.Major()
			info.PaymentCategoryName = cat.Name
		}
		info.PaymentAvailable = money.Round2(paymentAvail)
		info.Discrepancy = money.Round2(paymentAvail - owed)
		result.Cards = append(result.Cards, info)

		owedTotal += owed
		avail += paymentAvail
	}

	result.TotalOwed = money.Round2(owedTotal)
	result.TotalPaymentAvailable = money.Round2(avail)
	return result
}
