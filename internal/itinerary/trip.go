package itinerary

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/iudanet/wanderlust/internal/models"
	"github.com/iudanet/wanderlust/internal/validation"
)

// TripInput поля формы создания поездки
type TripInput struct {
	Title           string
	Location        string
	StartDate       string
	EndDate         string
	Description     string
	CoverImage      string
	DefaultCurrency string
	Budget          float64
}

// NewTrip создает новую будущую поездку с пустыми коллекциями
func NewTrip(in TripInput) (models.Trip, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Trip{}, fmt.Errorf("trip title cannot be empty")
	}
	if err := validation.ValidateDateRange(in.StartDate, in.EndDate); err != nil {
		return models.Trip{}, err
	}
	if in.Budget < 0 {
		return models.Trip{}, fmt.Errorf("budget must not be negative, got %v", in.Budget)
	}

	return models.Trip{
		ID:              models.NewID(),
		Title:           in.Title,
		Location:        in.Location,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		Description:     in.Description,
		Status:          models.TripStatusFuture,
		CoverImage:      in.CoverImage,
		DefaultCurrency: in.DefaultCurrency,
		Budget:          in.Budget,
		Photos:          []models.Photo{},
		Comments:        []models.Comment{},
		DayRatings:      map[string]int{},
		Itinerary:       map[string][]models.ItineraryItem{},
	}, nil
}

// Combine merges the selected trips into a single multi-country trip.
// Trips are ordered by start date; itineraries of later trips overwrite equal dates.
// The source trips are left untouched; removing them is up to the caller.
func Combine(trips []models.Trip, ids []string, now time.Time) (models.Trip, error) {
	var selected []models.Trip
	for _, t := range trips {
		if slices.Contains(ids, t.ID) {
			selected = append(selected, t)
		}
	}
	if len(selected) < 2 {
		return models.Trip{}, ErrNotEnoughTrips
	}

	slices.SortStableFunc(selected, func(a, b models.Trip) int {
		return cmp.Compare(a.StartDate, b.StartDate)
	})

	titles := make([]string, 0, len(selected))
	locations := make([]string, 0, len(selected))
	itinerary := make(map[string][]models.ItineraryItem)
	var budget float64
	end := selected[0].EndDate

	for _, t := range selected {
		titles = append(titles, t.Title)
		locations = append(locations, t.Location)
		budget += t.Budget
		end = max(end, t.EndDate)

		c := t.Clone()
		maps.Copy(itinerary, c.Itinerary)
	}

	return models.Trip{
		ID:          fmt.Sprintf("combined-%d", now.UnixMilli()),
		Title:       "Multi-Country: " + strings.Join(titles, " & "),
		Location:    strings.Join(locations, ", "),
		StartDate:   selected[0].StartDate,
		EndDate:     end,
		Description: fmt.Sprintf("Combined journey covering %d regions.", len(selected)),
		Status:      models.TripStatusFuture,
		CoverImage:  selected[0].CoverImage,
		Budget:      budget,
		Photos:      []models.Photo{},
		Comments:    []models.Comment{},
		DayRatings:  map[string]int{},
		Itinerary:   itinerary,
	}, nil
}
