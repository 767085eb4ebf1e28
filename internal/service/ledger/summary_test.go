package ledger

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(date string, amount string, c ledger.Category, t ledger.Type) ledger.Transaction {
	d, _ := time.Parse("2006-01-02", date)
	return ledger.Transaction{Date: d, Amount: decimal.RequireFromString(amount), Category: c, Type: t}
}

func TestSummarize(t *testing.T) {
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	txs := []ledger.Transaction{
		tx("2024-03-01", "5000", ledger.CategorySalary, ledger.TypeIncome),
		tx("2024-03-02", "-120.50", ledger.CategoryFood, ledger.TypeExpense),
		tx("2024-02-10", "80.25", ledger.CategoryTravel, ledger.TypeExpense),
		tx("2024-01-20", "30", ledger.CategoryFood, ledger.TypeExpense),
		tx("2023-10-05", "999", ledger.CategoryOther, ledger.TypeIncome),
	}

	s := Summarize(txs, today, 4)

	assert.Equal(t, "5999", s.Income.String())
	assert.Equal(t, "230.75", s.Expense.String())
	assert.Equal(t, "5768.25", s.Balance.String())
	assert.Equal(t, 5, s.Count)

	require.Len(t, s.Categories, 4)
	assert.Equal(t, ledger.CategoryTravel, s.Categories[0].Category)
	assert.Equal(t, ledger.CategoryFood, s.Categories[1].Category)
	assert.Equal(t, "150.5", s.Categories[1].Total.String(), "negative amounts are bucketed as absolute values")
	assert.Equal(t, ledger.CategoryOther, s.Categories[3].Category)

	require.Len(t, s.Trend, 4)
	assert.Equal(t, "2023-12", s.Trend[0].Month)
	assert.Equal(t, "Mar 2024", s.Trend[3].Label)
	assert.True(t, s.Trend[0].Income.IsZero())
	assert.Equal(t, "30", s.Trend[1].Expense.String())
	assert.Equal(t, "80.25", s.Trend[2].Expense.String())
	assert.Equal(t, "5000", s.Trend[3].Income.String())
	assert.Equal(t, "120.5", s.Trend[3].Expense.String())
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 2)
	assert.True(t, s.Balance.IsZero())
	assert.Empty(t, s.Categories)
	require.Len(t, s.Trend, 2)
	assert.Equal(t, "2023-12", s.Trend[0].Month)
	assert.Equal(t, "2024-01", s.Trend[1].Month)
}
