package sync

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/iudanet/wanderlust/internal/models"
	"github.com/iudanet/wanderlust/pkg/api"
)

// Окна времени для событий, привязанных к части дня
var periodWindows = map[models.Period][2]string{
	models.PeriodMorning:   {"07:00", "12:00"},
	models.PeriodAfternoon: {"13:00", "17:00"},
	models.PeriodNight:     {"19:00", "22:00"},
}

const (
	eventPrefix = "✈️ [WL] "
	eventFooter = "Synced from Wanderlust Journal"
	// localLayout формат dateTime без смещения; зона передается отдельно
	localLayout = "2006-01-02T15:04:05"
)

// LocalTimeZone returns the IANA zone from $TZ, falling back to UTC
func LocalTimeZone() string {
	if tz := os.Getenv("TZ"); tz != "" {
		if _, err := time.LoadLocation(tz); err == nil {
			return tz
		}
	}
	return "UTC"
}

// SyncTripToCalendar creates one calendar event per titled itinerary item.
// Days are processed in date order. A failed item is logged and skipped.
func (s *service) SyncTripToCalendar(ctx context.Context, trip models.Trip) (int, error) {
	if err := s.tokens.ValidateToken(ctx); err != nil {
		return 0, err
	}
	token := s.tokens.Token()

	created := 0
	for _, date := range slices.Sorted(maps.Keys(trip.Itinerary)) {
		for _, item := range trip.Itinerary[date] {
			if item.Title == "" {
				continue
			}

			event, err := s.buildEvent(&trip, date, &item)
			if err != nil {
				s.logger.Error("failed to build calendar event", "title", item.Title, "date", date, "error", err)
				continue
			}

			if _, err := s.apiClient.InsertEvent(ctx, token, s.opts.CalendarID, event); err != nil {
				s.logger.Error("failed to sync calendar event", "title", item.Title, "date", date, "error", err)
				continue
			}
			created++
		}
	}

	s.logger.Info("trip synced to calendar", "trip_id", trip.ID, "events", created)
	return created, nil
}

func (s *service) buildEvent(trip *models.Trip, date string, item *models.ItineraryItem) (api.CalendarEvent, error) {
	start, end, err := EventWindow(date, item)
	if err != nil {
		return api.CalendarEvent{}, err
	}

	return api.CalendarEvent{
		Summary:     eventPrefix + item.Title,
		Location:    trip.Location,
		Description: EventDescription(trip, item),
		Start:       api.EventDateTime{DateTime: start, TimeZone: s.opts.TimeZone},
		End:         api.EventDateTime{DateTime: end, TimeZone: s.opts.TimeZone},
		Reminders:   &api.Reminders{UseDefault: true},
	}, nil
}

// EventWindow вычисляет начало и конец события в локальном времени дня date.
// Точное время важнее части дня; без того и другого событие занимает 09:00-10:00.
func EventWindow(date string, item *models.ItineraryItem) (start, end string, err error) {
	startClock, endClock := "09:00", "10:00"

	switch {
	case item.Time != "":
		startClock, endClock = item.Time, item.EndTime
	case item.Period != models.PeriodNone:
		w, ok := periodWindows[item.Period]
		if !ok {
			return "", "", fmt.Errorf("unknown period %q", item.Period)
		}
		startClock, endClock = w[0], w[1]
	}

	startAt, err := time.Parse(models.DateLayout+" 15:04", date+" "+startClock)
	if err != nil {
		return "", "", fmt.Errorf("invalid start %s %s: %w", date, startClock, err)
	}

	var endAt time.Time
	if endClock == "" {
		endAt = startAt.Add(time.Hour)
	} else {
		endAt, err = time.Parse(models.DateLayout+" 15:04", date+" "+endClock)
		if err != nil {
			return "", "", fmt.Errorf("invalid end %s %s: %w", date, endClock, err)
		}
	}

	return startAt.Format(localLayout), endAt.Format(localLayout), nil
}

// EventDescription текст описания события календаря
func EventDescription(trip *models.Trip, item *models.ItineraryItem) string {
	currency := item.Currency
	if currency == "" {
		currency = trip.DefaultCurrency
	}
	return fmt.Sprintf("%s\n\nType: %s\nEst. Cost: %s%s\n\n%s",
		item.Description,
		item.Type,
		currency,
		strconv.FormatFloat(item.EstimatedExpense, 'f', -1, 64),
		eventFooter,
	)
}
