package itinerary

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/wanderlust/internal/models"
)

func budgetTrip() models.Trip {
	return models.Trip{
		ID:        "t1",
		StartDate: "2024-03-01",
		EndDate:   "2024-03-03",
		Budget:    100,
		Itinerary: map[string][]models.ItineraryItem{
			"2024-03-01": {
				{ID: "a", EstimatedExpense: 20, ActualExpense: 10.1},
				{ID: "b", EstimatedExpense: 30, ActualExpense: 20.2},
			},
			"2024-03-03": {
				{ID: "c", EstimatedExpense: 5, ActualExpense: 0},
			},
		},
	}
}

func TestSummarize(t *testing.T) {
	trip := budgetTrip()
	s := Summarize(&trip)

	assert.True(t, s.Actual.Equal(decimal.RequireFromString("30.3")), "actual = %s", s.Actual)
	assert.True(t, s.Estimated.Equal(decimal.NewFromInt(55)))
	assert.True(t, s.Remaining.Equal(decimal.RequireFromString("69.7")), "remaining = %s", s.Remaining)
	assert.Equal(t, 3, s.ItemCount)
	assert.Equal(t, "$", s.Currency)
	assert.False(t, s.OverBudget)
}

func TestSummarize_OverBudgetHasNegativeRemaining(t *testing.T) {
	trip := budgetTrip()
	trip.Budget = 25
	s := Summarize(&trip)

	assert.True(t, s.OverBudget)
	assert.True(t, s.Remaining.IsNegative())
}

func TestSummarize_ExactlyOnBudgetIsNotOver(t *testing.T) {
	trip := models.Trip{
		Budget: 50,
		Itinerary: map[string][]models.ItineraryItem{
			"2024-03-01": {{ID: "a", ActualExpense: 50}},
		},
	}
	s := Summarize(&trip)
	assert.False(t, s.OverBudget)
	assert.True(t, s.Remaining.IsZero())
}

func TestSummarize_EmptyTrip(t *testing.T) {
	s := Summarize(&models.Trip{Budget: 10})
	assert.True(t, s.Actual.IsZero())
	assert.True(t, s.Remaining.Equal(decimal.NewFromInt(10)))
	assert.Zero(t, s.ItemCount)
}

func TestSummarize_ReflectsExactlyOneUpdate(t *testing.T) {
	trip := budgetTrip()
	before := Summarize(&trip)

	updated, err := UpdateActualExpense(&trip, "2024-03-01", "a", 15.1)
	require.NoError(t, err)
	after := Summarize(&updated)

	// разница ровно в изменение одного события: 15.1 - 10.1
	delta := before.Remaining.Sub(after.Remaining)
	assert.True(t, delta.Equal(decimal.NewFromInt(5)), "delta = %s", delta)

	// исходная поездка не изменилась
	assert.True(t, Summarize(&trip).Actual.Equal(before.Actual))
}
