package itinerary

import (
	"cmp"
	"slices"

	"github.com/iudanet/wanderlust/internal/models"
)

// periodBucket порядок частей дня при отображении; события без периода идут в конце
func periodBucket(p models.Period) int {
	switch p {
	case models.PeriodMorning:
		return 1
	case models.PeriodAfternoon:
		return 2
	case models.PeriodNight:
		return 3
	default:
		return 4
	}
}

// compareItems задает полный порядок: корзина периода, затем события со временем
// раньше событий без времени, затем строковое сравнение времени.
func compareItems(a, b models.ItineraryItem) int {
	if c := cmp.Compare(periodBucket(a.Period), periodBucket(b.Period)); c != 0 {
		return c
	}
	aTimed, bTimed := a.Time != "", b.Time != ""
	switch {
	case aTimed && !bTimed:
		return -1
	case !aTimed && bTimed:
		return 1
	}
	return cmp.Compare(a.Time, b.Time)
}

// SortDay returns a sorted copy of the items of one day.
// The sort is stable: items that compare equal keep their insertion order.
func SortDay(items []models.ItineraryItem) []models.ItineraryItem {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, compareItems)
	return sorted
}

// DayEvents возвращает отсортированные события поездки за дату
func DayEvents(trip *models.Trip, date string) []models.ItineraryItem {
	return SortDay(trip.Itinerary[date])
}
