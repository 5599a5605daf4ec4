package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/entity"
	"github.com/dharmendra-007/personal-finance-tracker/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var analyticsNow = time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

func expense(amount float64, date string) entity.Transaction {
	return entity.Transaction{Amount: amount, Date: date, Description: "expense", Type: entity.TypeExpense}
}

func income(amount float64, date string) entity.Transaction {
	return entity.Transaction{Amount: amount, Date: date, Description: "income", Type: entity.TypeIncome}
}

func TestComputeStats(t *testing.T) {
	t.Run("mixed collection", func(t *testing.T) {
		stats := ComputeStats([]entity.Transaction{
			income(100, "2026-08-01"),
			expense(40, "2026-08-02"),
		})

		assert.Equal(t, 100.0, stats.TotalIncome)
		assert.Equal(t, 40.0, stats.TotalExpenses)
		assert.Equal(t, 60.0, stats.TotalBalance)
		assert.Equal(t, 2, stats.TransactionCount)
		assert.Equal(t, 40.0, stats.ExpenseRatio)
	})

	t.Run("empty collection has no division by zero", func(t *testing.T) {
		stats := ComputeStats(nil)

		assert.Zero(t, stats.TotalIncome)
		assert.Zero(t, stats.TotalExpenses)
		assert.Zero(t, stats.TotalBalance)
		assert.Zero(t, stats.TransactionCount)
		assert.Zero(t, stats.ExpenseRatio)
	})

	t.Run("expenses without income", func(t *testing.T) {
		stats := ComputeStats([]entity.Transaction{expense(25, "2026-08-01")})

		assert.Equal(t, -25.0, stats.TotalBalance)
		assert.Zero(t, stats.ExpenseRatio, "ratio stays 0 when income is 0")
	})
}

func TestMonthlyExpenses(t *testing.T) {
	t.Run("always six buckets oldest first", func(t *testing.T) {
		buckets := MonthlyExpenses(nil, analyticsNow)

		require.Len(t, buckets, 6)
		assert.Equal(t, "Mar 2026", buckets[0].Month)
		assert.Equal(t, "Aug 2026", buckets[5].Month)
		assert.Equal(t, 2026, buckets[5].Year)
		assert.Equal(t, 7, buckets[5].MonthIndex, "month index is zero-based")
		for _, b := range buckets {
			assert.Zero(t, b.Expenses)
		}
	})

	t.Run("window straddles a year boundary", func(t *testing.T) {
		buckets := MonthlyExpenses(nil, time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC))

		require.Len(t, buckets, 6)
		assert.Equal(t, "Sep 2025", buckets[0].Month)
		assert.Equal(t, 2025, buckets[0].Year)
		assert.Equal(t, 8, buckets[0].MonthIndex)
		assert.Equal(t, "Feb 2026", buckets[5].Month)
	})

	t.Run("transactions land in their month", func(t *testing.T) {
		buckets := MonthlyExpenses([]entity.Transaction{
			expense(30, "2026-08-01"),
			expense(20, "2026-08-20"),
			expense(15, "2026-03-05"),
		}, analyticsNow)

		assert.Equal(t, 50.0, buckets[5].Expenses)
		assert.Equal(t, 15.0, buckets[0].Expenses)
	})

	t.Run("dates outside the window are silently excluded", func(t *testing.T) {
		buckets := MonthlyExpenses([]entity.Transaction{
			expense(10, analyticsNow.AddDate(0, -7, 0).Format(entity.DateLayout)),
			expense(10, analyticsNow.AddDate(0, 1, 0).Format(entity.DateLayout)),
		}, analyticsNow)

		for _, b := range buckets {
			assert.Zero(t, b.Expenses)
		}
	})
}

func TestBuildInsights(t *testing.T) {
	t.Run("independent groups fire together", func(t *testing.T) {
		// expenseRatio 85 on nonzero income with negative balance:
		// both warning-tier messages fire.
		stats := Stats{
			TotalIncome:      1000,
			TotalExpenses:    850,
			TotalBalance:     -10,
			TransactionCount: 10,
			ExpenseRatio:     85,
		}

		insights := BuildInsights(stats)

		require.Len(t, insights, 2)
		assert.Equal(t, InsightWarning, insights[0].Level)
		assert.Contains(t, insights[0].Message, "85.0% of your income")
		assert.Equal(t, InsightWarning, insights[1].Level)
		assert.Contains(t, insights[1].Message, "spending more than you earn")
	})

	t.Run("empty collection only suggests starting", func(t *testing.T) {
		insights := BuildInsights(Stats{})

		require.Len(t, insights, 1)
		assert.Equal(t, InsightInfo, insights[0].Level)
		assert.Contains(t, insights[0].Message, "Start by adding your first transaction")
	})

	t.Run("moderate ratio is informational", func(t *testing.T) {
		stats := Stats{TotalIncome: 100, TotalExpenses: 60, TotalBalance: 40, TransactionCount: 8, ExpenseRatio: 60}

		insights := BuildInsights(stats)

		require.Len(t, insights, 2)
		assert.Equal(t, InsightInfo, insights[0].Level)
		assert.Contains(t, insights[0].Message, "spending moderately")
		assert.Equal(t, InsightSuccess, insights[1].Level, "saving well over a fifth of income")
	})

	t.Run("low ratio with income is a success", func(t *testing.T) {
		stats := Stats{TotalIncome: 100, TotalExpenses: 10, TotalBalance: 90, TransactionCount: 12, ExpenseRatio: 10}

		insights := BuildInsights(stats)

		require.NotEmpty(t, insights)
		assert.Equal(t, InsightSuccess, insights[0].Level)
		assert.Contains(t, insights[0].Message, "only 10.0%")
	})

	t.Run("few transactions prompt for more", func(t *testing.T) {
		stats := Stats{TotalIncome: 100, TotalExpenses: 10, TotalBalance: 90, TransactionCount: 3, ExpenseRatio: 10}

		insights := BuildInsights(stats)

		last := insights[len(insights)-1]
		assert.Equal(t, InsightInfo, last.Level)
		assert.Contains(t, last.Message, "Add more transactions")
	})
}

func TestAnalyticsOverview(t *testing.T) {
	repo := new(mocks.MockTransactionRepository)
	svc := NewAnalyticsService(repo).WithClock(func() time.Time { return analyticsNow })
	ctx := context.Background()

	repo.On("FindAll", ctx).Return([]entity.Transaction{
		income(1000, "2026-08-01"),
		expense(850, "2026-08-15"),
		expense(160, "2026-07-02"),
	}, nil).Once()

	overview, err := svc.Overview(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1000.0, overview.Stats.TotalIncome)
	assert.Equal(t, 1010.0, overview.Stats.TotalExpenses)
	assert.Equal(t, -10.0, overview.Stats.TotalBalance)
	assert.Equal(t, 3, overview.Stats.TransactionCount)
	assert.Equal(t, 101.0, overview.Stats.ExpenseRatio)

	require.Len(t, overview.MonthlyExpenses, 6)
	// Only expenses feed the series; the August income never does.
	assert.Equal(t, 850.0, overview.MonthlyExpenses[5].Expenses)
	assert.Equal(t, 160.0, overview.MonthlyExpenses[4].Expenses)

	// Ratio over 80, negative balance, under five transactions: all
	// three advisory groups fire.
	require.Len(t, overview.Insights, 3)
	assert.Equal(t, InsightWarning, overview.Insights[0].Level)
	assert.Equal(t, InsightWarning, overview.Insights[1].Level)
	assert.Equal(t, InsightInfo, overview.Insights[2].Level)
	repo.AssertExpectations(t)
}

func BenchmarkComputeStats(b *testing.B) {
	txs := make([]entity.Transaction, 0, 1000)
	for i := 0; i < 1000; i++ {
		date := fmt.Sprintf("2026-%02d-15", i%6+3)
		if i%2 == 0 {
			txs = append(txs, income(float64(i), date))
		} else {
			txs = append(txs, expense(float64(i), date))
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		stats := ComputeStats(txs)
		MonthlyExpenses(txs, analyticsNow)
		BuildInsights(stats)
	}
}
