package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"
	_ "time/tzdata" // зоны событий проверяются и без системной базы tzdata

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/iudanet/wanderlust/internal/models"
	"github.com/iudanet/wanderlust/internal/server/storage"
	"github.com/iudanet/wanderlust/pkg/api"
)

// localDateTimeLayout dateTime события без смещения, зона задается отдельно
const localDateTimeLayout = "2006-01-02T15:04:05"

// CalendarHandler обрабатывает API календаря (/calendar/v3)
type CalendarHandler struct {
	logger    *slog.Logger
	events    storage.EventStorage
	metrics   Recorder
	sanitizer *bluemonday.Policy
	now       func() time.Time
}

// NewCalendarHandler создает новый handler календаря
func NewCalendarHandler(logger *slog.Logger, events storage.EventStorage, metrics Recorder) *CalendarHandler {
	return &CalendarHandler{
		logger:    logger,
		events:    events,
		metrics:   metrics,
		sanitizer: bluemonday.StrictPolicy(),
		now:       time.Now,
	}
}

// Insert обрабатывает POST /calendar/v3/calendars/{calendarID}/events
func (h *CalendarHandler) Insert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID, ok := GetAccountID(ctx)
	if !ok {
		SendError(w, h.logger, "unauthorized", http.StatusUnauthorized)
		return
	}

	calendarID := chi.URLParam(r, "calendarID")

	var req api.CalendarEvent
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode event", slog.Any("error", err))
		SendError(w, h.logger, "invalid request body", http.StatusBadRequest)
		return
	}

	event := &models.StoredEvent{
		ID:            strings.ReplaceAll(uuid.New().String(), "-", ""),
		AccountID:     accountID,
		CalendarID:    calendarID,
		Summary:       h.plainText(req.Summary),
		Location:      h.plainText(req.Location),
		Description:   h.plainText(req.Description),
		StartDateTime: req.Start.DateTime,
		StartTimeZone: req.Start.TimeZone,
		EndDateTime:   req.End.DateTime,
		EndTimeZone:   req.End.TimeZone,
		UseDefault:    req.Reminders == nil || req.Reminders.UseDefault,
		CreatedAt:     h.now(),
	}

	if err := validateEvent(event); err != nil {
		SendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.events.CreateEvent(ctx, event); err != nil {
		h.logger.ErrorContext(ctx, "failed to create event", slog.Any("error", err))
		SendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	h.metrics.RecordEventCreated()
	h.logger.InfoContext(ctx, "calendar event created",
		slog.String("account_id", accountID),
		slog.String("calendar_id", calendarID),
		slog.String("event_id", event.ID))

	SendJSON(w, h.logger, toCalendarEvent(event), http.StatusOK)
}

// List обрабатывает GET /calendar/v3/calendars/{calendarID}/events
func (h *CalendarHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID, ok := GetAccountID(ctx)
	if !ok {
		SendError(w, h.logger, "unauthorized", http.StatusUnauthorized)
		return
	}

	calendarID := chi.URLParam(r, "calendarID")
	events, err := h.events.ListEvents(ctx, accountID, calendarID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list events", slog.Any("error", err))
		SendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.EventList{Items: make([]api.CalendarEvent, 0, len(events))}
	for _, e := range events {
		resp.Items = append(resp.Items, toCalendarEvent(e))
	}
	SendJSON(w, h.logger, resp, http.StatusOK)
}

// maxSanitizePasses ограничивает вложенность экранирования (&amp;lt;b&amp;gt;)
const maxSanitizePasses = 4

// plainText сводит поле к тексту без тегов. Сущности раскрываются, поэтому
// проход повторяется: раскрытый &lt;script&gt; тоже вырезается. Если за
// maxSanitizePasses текст не устоялся, он остается экранированным.
func (h *CalendarHandler) plainText(s string) string {
	for range maxSanitizePasses {
		next := html.UnescapeString(h.sanitizer.Sanitize(s))
		if next == s {
			return strings.TrimSpace(s)
		}
		s = next
	}
	return strings.TrimSpace(h.sanitizer.Sanitize(s))
}

func validateEvent(e *models.StoredEvent) error {
	if e.Summary == "" {
		return errors.New("summary is required")
	}

	start, err := parseEventTime(e.StartDateTime, e.StartTimeZone)
	if err != nil {
		return fmt.Errorf("invalid start: %w", err)
	}
	end, err := parseEventTime(e.EndDateTime, e.EndTimeZone)
	if err != nil {
		return fmt.Errorf("invalid end: %w", err)
	}
	if end.Before(start) {
		return errors.New("end must not be before start")
	}
	return nil
}

// parseEventTime принимает dateTime без смещения (в зоне события) или полный RFC3339
func parseEventTime(dateTime, timeZone string) (time.Time, error) {
	if dateTime == "" {
		return time.Time{}, errors.New("dateTime is required")
	}

	loc := time.UTC
	if timeZone != "" {
		l, err := time.LoadLocation(timeZone)
		if err != nil {
			return time.Time{}, fmt.Errorf("unknown time zone %q", timeZone)
		}
		loc = l
	}

	if t, err := time.ParseInLocation(localDateTimeLayout, dateTime, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, dateTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("dateTime %q is not RFC3339", dateTime)
	}
	return t, nil
}

func toCalendarEvent(e *models.StoredEvent) api.CalendarEvent {
	return api.CalendarEvent{
		ID:          e.ID,
		Summary:     e.Summary,
		Location:    e.Location,
		Description: e.Description,
		Start:       api.EventDateTime{DateTime: e.StartDateTime, TimeZone: e.StartTimeZone},
		End:         api.EventDateTime{DateTime: e.EndDateTime, TimeZone: e.EndTimeZone},
		Reminders:   &api.Reminders{UseDefault: e.UseDefault},
	}
}
