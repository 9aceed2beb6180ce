package itinerary

import (
	"fmt"
	"slices"

	"github.com/iudanet/wanderlust/internal/models"
	"github.com/iudanet/wanderlust/internal/validation"
)

// Значения по умолчанию для нового события
const (
	DefaultStartTime = "09:00"
	DefaultEndTime   = "10:00"
	DefaultTitle     = "New Event"
)

// normalizeItem приводит событие к каноническому виду и проверяет поля
func normalizeItem(item models.ItineraryItem) (models.ItineraryItem, error) {
	if !item.Period.Valid() {
		return item, fmt.Errorf("%w: unknown period %q", ErrInvalidItem, item.Period)
	}

	if item.Period != models.PeriodNone {
		item.Time = ""
		item.EndTime = ""
	} else {
		if item.Time == "" {
			item.Time = DefaultStartTime
		}
		if item.EndTime == "" {
			item.EndTime = DefaultEndTime
		}
		if err := validation.ValidateClock(item.Time); err != nil {
			return item, fmt.Errorf("%w: %v", ErrInvalidItem, err)
		}
		if err := validation.ValidateClock(item.EndTime); err != nil {
			return item, fmt.Errorf("%w: %v", ErrInvalidItem, err)
		}
	}

	if item.Type == "" {
		item.Type = models.ItemTypeSightseeing
	}
	if !item.Type.Valid() {
		return item, fmt.Errorf("%w: unknown type %q", ErrInvalidItem, item.Type)
	}

	if item.Title == "" {
		item.Title = DefaultTitle
	}

	if err := validation.ValidateExpense(item.EstimatedExpense); err != nil {
		return item, fmt.Errorf("%w: estimated %v", ErrInvalidItem, err)
	}
	if err := validation.ValidateExpense(item.ActualExpense); err != nil {
		return item, fmt.Errorf("%w: actual %v", ErrInvalidItem, err)
	}

	return item, nil
}

// SaveItem adds or replaces an item in the given day and returns the updated trip
// together with the stored (normalized) item.
//
// An empty item ID means "add": a fresh ID is assigned and the item is appended.
// Otherwise the item with the same ID in that day is replaced as a whole;
// an unknown ID is ErrItemNotFound.
// When the saved item carries a currency, it becomes the trip's default currency.
func SaveItem(trip *models.Trip, date string, item models.ItineraryItem) (models.Trip, models.ItineraryItem, error) {
	if !inRange(trip, date) {
		return models.Trip{}, models.ItineraryItem{}, fmt.Errorf("%w: %s not in %s..%s",
			ErrDateOutOfRange, date, trip.StartDate, trip.EndDate)
	}

	item, err := normalizeItem(item)
	if err != nil {
		return models.Trip{}, models.ItineraryItem{}, err
	}

	updated := trip.Clone()
	if updated.Itinerary == nil {
		updated.Itinerary = make(map[string][]models.ItineraryItem)
	}
	day := updated.Itinerary[date]

	if item.ID == "" {
		item.ID = models.NewID()
		day = append(day, item)
	} else {
		idx := indexOf(day, item.ID)
		if idx < 0 {
			return models.Trip{}, models.ItineraryItem{}, fmt.Errorf("%w: %s on %s", ErrItemNotFound, item.ID, date)
		}
		day[idx] = item
	}
	updated.Itinerary[date] = day

	if item.Currency != "" {
		updated.DefaultCurrency = item.Currency
	}

	return updated, item, nil
}

// FindItem возвращает копию события дня по id
func FindItem(trip *models.Trip, date, itemID string) (models.ItineraryItem, error) {
	day := trip.Itinerary[date]
	idx := indexOf(day, itemID)
	if idx < 0 {
		return models.ItineraryItem{}, fmt.Errorf("%w: %s on %s", ErrItemNotFound, itemID, date)
	}
	return day[idx], nil
}

// UpdateActualExpense заменяет фактический расход одного события
func UpdateActualExpense(trip *models.Trip, date, itemID string, value float64) (models.Trip, error) {
	if err := validation.ValidateExpense(value); err != nil {
		return models.Trip{}, fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}

	idx := indexOf(trip.Itinerary[date], itemID)
	if idx < 0 {
		return models.Trip{}, fmt.Errorf("%w: %s on %s", ErrItemNotFound, itemID, date)
	}

	updated := trip.Clone()
	updated.Itinerary[date][idx].ActualExpense = value
	return updated, nil
}

// RemoveItem удаляет событие из дня. Отсутствующее событие - ErrItemNotFound.
func RemoveItem(trip *models.Trip, date, itemID string) (models.Trip, error) {
	idx := indexOf(trip.Itinerary[date], itemID)
	if idx < 0 {
		return models.Trip{}, fmt.Errorf("%w: %s on %s", ErrItemNotFound, itemID, date)
	}

	updated := trip.Clone()
	updated.Itinerary[date] = slices.Delete(updated.Itinerary[date], idx, idx+1)
	return updated, nil
}

// SaveFlight привязывает рейс к первому (вылет) или последнему (возврат) дню поездки
func SaveFlight(trip *models.Trip, date string, flight models.FlightInfo) (models.Trip, error) {
	updated := trip.Clone()

	switch Position(trip, date) {
	case First:
		updated.DepartureFlight = &flight
	case Last:
		updated.ReturnFlight = &flight
	default:
		return models.Trip{}, fmt.Errorf("%w: %s", ErrNotEdgeDay, date)
	}

	return updated, nil
}

// RateDay ставит оценку дню поездки (0..5)
func RateDay(trip *models.Trip, date string, rating int) (models.Trip, error) {
	if !inRange(trip, date) {
		return models.Trip{}, fmt.Errorf("%w: %s", ErrDateOutOfRange, date)
	}
	if rating < 0 || rating > 5 {
		return models.Trip{}, fmt.Errorf("rating must be between 0 and 5, got %d", rating)
	}

	updated := trip.Clone()
	if updated.DayRatings == nil {
		updated.DayRatings = make(map[string]int)
	}
	updated.DayRatings[date] = rating
	return updated, nil
}

// ToggleFavoriteDay добавляет дату в избранные дни или убирает её оттуда
func ToggleFavoriteDay(trip *models.Trip, date string) (models.Trip, error) {
	if !inRange(trip, date) {
		return models.Trip{}, fmt.Errorf("%w: %s", ErrDateOutOfRange, date)
	}

	updated := trip.Clone()
	if i := slices.Index(updated.FavoriteDays, date); i >= 0 {
		updated.FavoriteDays = slices.Delete(updated.FavoriteDays, i, i+1)
	} else {
		updated.FavoriteDays = append(updated.FavoriteDays, date)
	}
	return updated, nil
}

func indexOf(items []models.ItineraryItem, id string) int {
	return slices.IndexFunc(items, func(it models.ItineraryItem) bool { return it.ID == id })
}
