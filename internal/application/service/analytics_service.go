package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/entity"
	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/repository"
)

// monthlyWindow is the number of calendar months covered by the expense
// series, current month included.
const monthlyWindow = 6

// Stats holds the summary figures derived from the whole transaction
// collection. Everything is recomputed from scratch on demand; the
// collection is small enough that correctness beats caching.
type Stats struct {
	TotalIncome      float64 `json:"totalIncome"`
	TotalExpenses    float64 `json:"totalExpenses"`
	TotalBalance     float64 `json:"totalBalance"`
	TransactionCount int     `json:"transactionCount"`
	ExpenseRatio     float64 `json:"expenseRatio"`
}

// MonthBucket is one calendar month of the expense series.
type MonthBucket struct {
	Month      string  `json:"month"`
	Year       int     `json:"year"`
	MonthIndex int     `json:"monthIndex"`
	Expenses   float64 `json:"expenses"`
}

// InsightLevel classifies an advisory message. Insights are purely
// informational, never errors.
type InsightLevel string

const (
	InsightWarning InsightLevel = "warning"
	InsightInfo    InsightLevel = "info"
	InsightSuccess InsightLevel = "success"
)

// Insight is a single advisory derived from the summary stats.
type Insight struct {
	Level   InsightLevel `json:"level"`
	Message string       `json:"message"`
}

// Overview bundles everything the dashboard needs in one response.
type Overview struct {
	Stats           Stats         `json:"stats"`
	MonthlyExpenses []MonthBucket `json:"monthlyExpenses"`
	Insights        []Insight     `json:"insights"`
}

// AnalyticsService derives summary statistics, the monthly expense
// series and the advisory insights from the stored transactions.
type AnalyticsService struct {
	repo repository.TransactionRepository
	now  func() time.Time
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(repo repository.TransactionRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo, now: time.Now}
}

// WithClock overrides the time source that anchors the monthly window.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// Overview loads the collection and computes the full dashboard view.
func (s *AnalyticsService) Overview(ctx context.Context) (*Overview, error) {
	txs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := ComputeStats(txs)
	expenses := make([]entity.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Type == entity.TypeExpense {
			expenses = append(expenses, tx)
		}
	}

	return &Overview{
		Stats:           stats,
		MonthlyExpenses: MonthlyExpenses(expenses, s.now()),
		Insights:        BuildInsights(stats),
	}, nil
}

// ComputeStats derives the five summary figures from a transaction
// collection. Order of the input is irrelevant.
func ComputeStats(txs []entity.Transaction) Stats {
	var stats Stats
	for _, tx := range txs {
		switch tx.Type {
		case entity.TypeIncome:
			stats.TotalIncome += tx.Amount
		case entity.TypeExpense:
			stats.TotalExpenses += tx.Amount
		}
	}
	stats.TotalBalance = stats.TotalIncome - stats.TotalExpenses
	stats.TransactionCount = len(txs)
	if stats.TotalIncome > 0 {
		stats.ExpenseRatio = stats.TotalExpenses / stats.TotalIncome * 100
	}
	return stats
}

// MonthlyExpenses buckets the given transactions into exactly six
// calendar months ending with the month of now, oldest first. Whatever
// is handed in gets summed per month; callers decide which subset to
// pass (the service passes expenses only). Transactions dated outside
// the window are silently excluded.
func MonthlyExpenses(txs []entity.Transaction, now time.Time) []MonthBucket {
	buckets := make([]MonthBucket, 0, monthlyWindow)
	for i := monthlyWindow - 1; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		buckets = append(buckets, MonthBucket{
			Month:      m.Format("Jan 2006"),
			Year:       m.Year(),
			MonthIndex: int(m.Month()) - 1,
		})
	}

	for _, tx := range txs {
		d, err := tx.DateValue()
		if err != nil {
			continue
		}
		for i := range buckets {
			if buckets[i].Year == d.Year() && buckets[i].MonthIndex == int(d.Month())-1 {
				buckets[i].Expenses += tx.Amount
				break
			}
		}
	}

	return buckets
}

// BuildInsights evaluates the three advisory rule groups. The groups
// are independent, not mutually exclusive: a collection can trigger one
// message from each group at once, so they are separate functions
// concatenated rather than a single cascading chain.
func BuildInsights(stats Stats) []Insight {
	insights := make([]Insight, 0, 3)
	for _, rule := range []func(Stats) *Insight{ratioInsight, balanceInsight, activityInsight} {
		if in := rule(stats); in != nil {
			insights = append(insights, *in)
		}
	}
	return insights
}

// ratioInsight grades the expense-to-income ratio. The success tier is
// only reachable with positive income: with zero income and zero
// expenses the ratio defaults to 0 and no message fires at all.
func ratioInsight(stats Stats) *Insight {
	switch {
	case stats.ExpenseRatio > 80:
		return &Insight{
			Level:   InsightWarning,
			Message: fmt.Sprintf("Your expenses are %.1f%% of your income. Consider reducing spending to improve your financial health.", stats.ExpenseRatio),
		}
	case stats.ExpenseRatio > 50:
		return &Insight{
			Level:   InsightInfo,
			Message: fmt.Sprintf("Your expenses are %.1f%% of your income. You're spending moderately but could save more.", stats.ExpenseRatio),
		}
	case stats.TotalIncome > 0:
		return &Insight{
			Level:   InsightSuccess,
			Message: fmt.Sprintf("Great job! Your expenses are only %.1f%% of your income. You're saving well.", stats.ExpenseRatio),
		}
	}
	return nil
}

func balanceInsight(stats Stats) *Insight {
	switch {
	case stats.TotalBalance < 0:
		return &Insight{
			Level:   InsightWarning,
			Message: "You're spending more than you earn. Consider creating a budget to track your expenses.",
		}
	case stats.TotalBalance > stats.TotalIncome*0.2:
		return &Insight{
			Level:   InsightSuccess,
			Message: "Excellent! You're saving more than 20% of your income. Keep up the good work!",
		}
	}
	return nil
}

func activityInsight(stats Stats) *Insight {
	switch {
	case stats.TransactionCount == 0:
		return &Insight{
			Level:   InsightInfo,
			Message: "Start by adding your first transaction to begin tracking your finances.",
		}
	case stats.TransactionCount < 5:
		return &Insight{
			Level:   InsightInfo,
			Message: "Add more transactions to get better insights into your spending patterns.",
		}
	}
	return nil
}
