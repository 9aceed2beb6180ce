package sqlite

import (
	"context"
	"fmt"

	"github.com/iudanet/wanderlust/internal/models"
)

// CreateEvent stores a new calendar event
func (s *Storage) CreateEvent(ctx context.Context, event *models.StoredEvent) error {
	query := `
		INSERT INTO events (id, account_id, calendar_id, summary, location, description,
			start_date_time, start_time_zone, end_date_time, end_time_zone, use_default_reminders, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.AccountID,
		event.CalendarID,
		event.Summary,
		event.Location,
		event.Description,
		event.StartDateTime,
		event.StartTimeZone,
		event.EndDateTime,
		event.EndTimeZone,
		event.UseDefault,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

// ListEvents returns events of one calendar ordered by start time
func (s *Storage) ListEvents(ctx context.Context, accountID, calendarID string) ([]*models.StoredEvent, error) {
	query := `
		SELECT id, account_id, calendar_id, summary, location, description,
			start_date_time, start_time_zone, end_date_time, end_time_zone, use_default_reminders, created_at
		FROM events
		WHERE account_id = ? AND calendar_id = ?
		ORDER BY start_date_time ASC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, accountID, calendarID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.StoredEvent, 0)
	for rows.Next() {
		var e models.StoredEvent
		err := rows.Scan(
			&e.ID,
			&e.AccountID,
			&e.CalendarID,
			&e.Summary,
			&e.Location,
			&e.Description,
			&e.StartDateTime,
			&e.StartTimeZone,
			&e.EndDateTime,
			&e.EndTimeZone,
			&e.UseDefault,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}
