package itinerary

import (
	"github.com/shopspring/decimal"

	"github.com/iudanet/wanderlust/internal/models"
)

// BudgetSummary агрегированные расходы поездки. Всегда вычисляется заново из itinerary.
type BudgetSummary struct {
	Budget    decimal.Decimal
	Actual    decimal.Decimal
	Estimated decimal.Decimal
	// Remaining может быть отрицательным при перерасходе
	Remaining  decimal.Decimal
	Currency   string
	ItemCount  int
	OverBudget bool
}

// Summarize sums actual and estimated expenses over every item of every day.
func Summarize(trip *models.Trip) BudgetSummary {
	actual := decimal.Zero
	estimated := decimal.Zero
	count := 0

	for _, items := range trip.Itinerary {
		for _, item := range items {
			actual = actual.Add(decimal.NewFromFloat(item.ActualExpense))
			estimated = estimated.Add(decimal.NewFromFloat(item.EstimatedExpense))
			count++
		}
	}

	budget := decimal.NewFromFloat(trip.Budget)
	return BudgetSummary{
		Budget:     budget,
		Actual:     actual,
		Estimated:  estimated,
		Remaining:  budget.Sub(actual),
		Currency:   trip.Currency(),
		ItemCount:  count,
		OverBudget: actual.GreaterThan(budget),
	}
}
