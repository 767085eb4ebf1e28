package ledger

import (
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

var categoryOrder = []ledger.Category{
	ledger.CategoryTravel,
	ledger.CategoryFood,
	ledger.CategorySalary,
	ledger.CategoryUtilities,
	ledger.CategoryOther,
}

// Summarize reduces transactions into income, expense and balance, absolute totals per
// category and a trailing series of months ending with the month of today.
func Summarize(txs []ledger.Transaction, today time.Time, months int) ledger.Summary {
	summary := ledger.Summary{
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		Count:      len(txs),
		Categories: []ledger.CategoryTotal{},
		Trend:      make([]ledger.MonthTotal, 0, months),
	}

	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	trendIndex := make(map[string]int, months)
	for i := months - 1; i >= 0; i-- {
		m := first.AddDate(0, -i, 0)
		key := m.Format("2006-01")
		trendIndex[key] = len(summary.Trend)
		summary.Trend = append(summary.Trend, ledger.MonthTotal{
			Month:   key,
			Label:   m.Format("Jan 2006"),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		})
	}

	byCategory := make(map[ledger.Category]decimal.Decimal)
	for _, t := range txs {
		amount := t.Amount.Abs()
		byCategory[t.Category] = byCategory[t.Category].Add(amount)

		idx, inTrend := trendIndex[t.Date.Format("2006-01")]
		switch t.Type {
		case ledger.TypeIncome:
			summary.Income = summary.Income.Add(amount)
			if inTrend {
				summary.Trend[idx].Income = summary.Trend[idx].Income.Add(amount)
			}
		case ledger.TypeExpense:
			summary.Expense = summary.Expense.Add(amount)
			if inTrend {
				summary.Trend[idx].Expense = summary.Trend[idx].Expense.Add(amount)
			}
		}
	}
	summary.Balance = summary.Income.Sub(summary.Expense)

	for _, c := range categoryOrder {
		if total, ok := byCategory[c]; ok {
			summary.Categories = append(summary.Categories, ledger.CategoryTotal{Category: c, Total: total})
		}
	}
	return summary
}
