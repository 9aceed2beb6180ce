package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/iudanet/wanderlust/pkg/api"
)

// InsertEvent создает событие в календаре
func (c *Client) InsertEvent(ctx context.Context, token, calendarID string, event api.CalendarEvent) (*api.CalendarEvent, error) {
	var resp api.CalendarEvent
	path := "/calendar/v3/calendars/" + url.PathEscape(calendarID) + "/events"
	if err := c.doJSON(ctx, http.MethodPost, path, token, event, &resp); err != nil {
		return nil, fmt.Errorf("insert event failed: %w", err)
	}
	return &resp, nil
}

// ListEvents возвращает события календаря
func (c *Client) ListEvents(ctx context.Context, token, calendarID string) ([]api.CalendarEvent, error) {
	var resp api.EventList
	path := "/calendar/v3/calendars/" + url.PathEscape(calendarID) + "/events"
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, fmt.Errorf("list events failed: %w", err)
	}
	return resp.Items, nil
}
