package itinerary

import (
	"fmt"
	"iter"

	"github.com/iudanet/wanderlust/internal/models"
	"github.com/iudanet/wanderlust/internal/validation"
)

// DayPosition положение даты относительно интервала поездки
type DayPosition int

const (
	Outside DayPosition = iota
	First
	Interior
	Last
)

func (p DayPosition) String() string {
	switch p {
	case First:
		return "first"
	case Interior:
		return "interior"
	case Last:
		return "last"
	default:
		return "outside"
	}
}

// Days returns the inclusive sequence of calendar dates from start to end.
// The sequence can be ranged over any number of times.
func Days(start, end string) (iter.Seq[string], error) {
	if err := validation.ValidateDateRange(start, end); err != nil {
		return nil, err
	}
	// ошибки уже проверены выше
	s, _ := validation.ParseDate(start)
	e, _ := validation.ParseDate(end)

	return func(yield func(string) bool) {
		for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
			if !yield(d.Format(models.DateLayout)) {
				return
			}
		}
	}, nil
}

// DayList возвращает все даты поездки списком
func DayList(trip *models.Trip) ([]string, error) {
	seq, err := Days(trip.StartDate, trip.EndDate)
	if err != nil {
		return nil, fmt.Errorf("trip %s: %w", trip.ID, err)
	}
	var days []string
	for d := range seq {
		days = append(days, d)
	}
	return days, nil
}

// Position определяет, является ли дата первым, последним или промежуточным днем поездки.
// Однодневная поездка считается первым днем: рейс к ней относится к вылету.
func Position(trip *models.Trip, date string) DayPosition {
	d, err := validation.ParseDate(date)
	if err != nil {
		return Outside
	}
	s, errS := validation.ParseDate(trip.StartDate)
	e, errE := validation.ParseDate(trip.EndDate)
	if errS != nil || errE != nil {
		return Outside
	}

	switch {
	case d.Before(s) || d.After(e):
		return Outside
	case d.Equal(s):
		return First
	case d.Equal(e):
		return Last
	default:
		return Interior
	}
}

// FlightFor возвращает рейс, относящийся к дате: вылет в первый день, возврат в последний
func FlightFor(trip *models.Trip, date string) *models.FlightInfo {
	switch Position(trip, date) {
	case First:
		return trip.DepartureFlight
	case Last:
		return trip.ReturnFlight
	default:
		return nil
	}
}

func inRange(trip *models.Trip, date string) bool {
	return Position(trip, date) != Outside
}
