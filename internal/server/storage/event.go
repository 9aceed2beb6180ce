package storage

import (
	"context"

	"github.com/iudanet/wanderlust/internal/models"
)

// EventStorage defines interface for calendar events persistence
type EventStorage interface {
	// CreateEvent stores a new event
	CreateEvent(ctx context.Context, event *models.StoredEvent) error

	// ListEvents returns events of one calendar ordered by start time
	ListEvents(ctx context.Context, accountID, calendarID string) ([]*models.StoredEvent, error)
}
