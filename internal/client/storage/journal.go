package storage

import (
	"context"

	"github.com/iudanet/wanderlust/internal/models"
)

//go:generate moq -out journal_mock.go . JournalStorage

// Ключи журнала в локальном хранилище. Совпадают с ключами веб-версии,
// чтобы экспорт локального хранилища оставался совместимым.
const (
	KeyTrips    = "wanderlust_trips"
	KeyProfile  = "wanderlust_profile"
	KeyEvents   = "wanderlust_events"
	KeyMemos    = "wanderlust_memos"
	KeyLanguage = "wanderlust_lang"
	KeyDarkMode = "wanderlust_dark"
)

// JournalStorage defines the persisted journal state.
// Absent keys yield defaults; a value that cannot be decoded is returned as an
// error wrapping ErrCorruptValue and is never repaired silently.
// Every write stamps the local modification time in metadata.
type JournalStorage interface {
	LoadTrips(ctx context.Context) ([]models.Trip, error)
	SaveTrips(ctx context.Context, trips []models.Trip) error

	LoadProfile(ctx context.Context) (models.UserProfile, error)
	SaveProfile(ctx context.Context, profile models.UserProfile) error

	LoadEvents(ctx context.Context) ([]models.CustomEvent, error)
	SaveEvents(ctx context.Context, events []models.CustomEvent) error

	LoadMemos(ctx context.Context) ([]models.Memo, error)
	SaveMemos(ctx context.Context, memos []models.Memo) error

	LoadLanguage(ctx context.Context) (models.Language, error)
	SaveLanguage(ctx context.Context, lang models.Language) error

	LoadDarkMode(ctx context.Context) (bool, error)
	SaveDarkMode(ctx context.Context, dark bool) error

	// ReplaceAll atomically overwrites every journal key with the snapshot and
	// sets the local modification time to modified (epoch ms).
	ReplaceAll(ctx context.Context, snap models.Snapshot, modified int64) error
}
