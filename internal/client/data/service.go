package data

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/iudanet/wanderlust/internal/client/storage"
	"github.com/iudanet/wanderlust/internal/itinerary"
	"github.com/iudanet/wanderlust/internal/models"
)

// ErrTripNotFound поездка с таким id отсутствует в журнале
var ErrTripNotFound = errors.New("trip not found")

// Service определяет интерфейс клиентского сервиса журнала
type Service interface {
	Trips(ctx context.Context) ([]models.Trip, error)
	Trip(ctx context.Context, id string) (models.Trip, error)
	SaveTrip(ctx context.Context, trip models.Trip) error
	DeleteTrip(ctx context.Context, id string) error
	CombineTrips(ctx context.Context, ids []string) (models.Trip, error)

	Profile(ctx context.Context) (models.UserProfile, error)
	SaveProfile(ctx context.Context, profile models.UserProfile) error

	Events(ctx context.Context) ([]models.CustomEvent, error)
	SaveEvents(ctx context.Context, events []models.CustomEvent) error
	AddEvent(ctx context.Context, event models.CustomEvent) (models.CustomEvent, error)

	Memos(ctx context.Context) ([]models.Memo, error)
	AddMemo(ctx context.Context, memo models.Memo) (models.Memo, error)
	DeleteMemo(ctx context.Context, id string) error

	Language(ctx context.Context) (models.Language, error)
	SetLanguage(ctx context.Context, lang models.Language) error
	DarkMode(ctx context.Context) (bool, error)
	SetDarkMode(ctx context.Context, dark bool) error

	LocalModified(ctx context.Context) (int64, error)
	Snapshot(ctx context.Context) (models.Snapshot, error)
	ApplySnapshot(ctx context.Context, snap models.Snapshot, timestamp int64) error
}

// service работает с журналом поверх локального хранилища
type service struct {
	journal  storage.JournalStorage
	metadata storage.MetadataStorage
	now      func() time.Time
}

// NewService creates a new journal data service
func NewService(journal storage.JournalStorage, metadata storage.MetadataStorage) Service {
	return &service{
		journal:  journal,
		metadata: metadata,
		now:      time.Now,
	}
}

// Trips returns all trips, pinned first, otherwise in stored order
func (s *service) Trips(ctx context.Context) ([]models.Trip, error) {
	trips, err := s.journal.LoadTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load trips: %w", err)
	}
	slices.SortStableFunc(trips, func(a, b models.Trip) int {
		switch {
		case a.IsPinned && !b.IsPinned:
			return -1
		case !a.IsPinned && b.IsPinned:
			return 1
		}
		return 0
	})
	return trips, nil
}

// Trip returns a single trip by id
func (s *service) Trip(ctx context.Context, id string) (models.Trip, error) {
	trips, err := s.journal.LoadTrips(ctx)
	if err != nil {
		return models.Trip{}, fmt.Errorf("failed to load trips: %w", err)
	}
	for _, t := range trips {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Trip{}, fmt.Errorf("%w: %s", ErrTripNotFound, id)
}

// SaveTrip заменяет поездку с тем же id или добавляет новую в конец
func (s *service) SaveTrip(ctx context.Context, trip models.Trip) error {
	if trip.ID == "" {
		return fmt.Errorf("trip id cannot be empty")
	}

	trips, err := s.journal.LoadTrips(ctx)
	if err != nil {
		return fmt.Errorf("failed to load trips: %w", err)
	}

	if idx := slices.IndexFunc(trips, func(t models.Trip) bool { return t.ID == trip.ID }); idx >= 0 {
		trips[idx] = trip
	} else {
		trips = append(trips, trip)
	}

	if err := s.journal.SaveTrips(ctx, trips); err != nil {
		return fmt.Errorf("failed to save trips: %w", err)
	}
	return nil
}

// DeleteTrip удаляет поездку
func (s *service) DeleteTrip(ctx context.Context, id string) error {
	trips, err := s.journal.LoadTrips(ctx)
	if err != nil {
		return fmt.Errorf("failed to load trips: %w", err)
	}

	idx := slices.IndexFunc(trips, func(t models.Trip) bool { return t.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTripNotFound, id)
	}

	if err := s.journal.SaveTrips(ctx, slices.Delete(trips, idx, idx+1)); err != nil {
		return fmt.Errorf("failed to save trips: %w", err)
	}
	return nil
}

// CombineTrips заменяет выбранные поездки одной объединенной
func (s *service) CombineTrips(ctx context.Context, ids []string) (models.Trip, error) {
	trips, err := s.journal.LoadTrips(ctx)
	if err != nil {
		return models.Trip{}, fmt.Errorf("failed to load trips: %w", err)
	}

	combined, err := itinerary.Combine(trips, ids, s.now())
	if err != nil {
		return models.Trip{}, err
	}

	remaining := slices.DeleteFunc(trips, func(t models.Trip) bool { return slices.Contains(ids, t.ID) })
	if err := s.journal.SaveTrips(ctx, append(remaining, combined)); err != nil {
		return models.Trip{}, fmt.Errorf("failed to save trips: %w", err)
	}
	return combined, nil
}

// Profile returns the user profile
func (s *service) Profile(ctx context.Context) (models.UserProfile, error) {
	return s.journal.LoadProfile(ctx)
}

// SaveProfile stores the user profile
func (s *service) SaveProfile(ctx context.Context, profile models.UserProfile) error {
	if profile.Name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	return s.journal.SaveProfile(ctx, profile)
}

// Events returns custom calendar events
func (s *service) Events(ctx context.Context) ([]models.CustomEvent, error) {
	return s.journal.LoadEvents(ctx)
}

// SaveEvents replaces custom calendar events
func (s *service) SaveEvents(ctx context.Context, events []models.CustomEvent) error {
	return s.journal.SaveEvents(ctx, events)
}

// AddEvent добавляет пользовательское событие в планировщик
func (s *service) AddEvent(ctx context.Context, event models.CustomEvent) (models.CustomEvent, error) {
	if event.Name == "" {
		return models.CustomEvent{}, fmt.Errorf("event name cannot be empty")
	}
	if event.ID == "" {
		event.ID = models.NewID()
	}
	if event.Type == "" {
		event.Type = models.CustomEventCustom
	}

	events, err := s.journal.LoadEvents(ctx)
	if err != nil {
		return models.CustomEvent{}, fmt.Errorf("failed to load events: %w", err)
	}
	if err := s.journal.SaveEvents(ctx, append(events, event)); err != nil {
		return models.CustomEvent{}, fmt.Errorf("failed to save events: %w", err)
	}
	return event, nil
}

// Memos returns memos
func (s *service) Memos(ctx context.Context) ([]models.Memo, error) {
	return s.journal.LoadMemos(ctx)
}

// AddMemo добавляет заметку; пустая дата заменяется текущей
func (s *service) AddMemo(ctx context.Context, memo models.Memo) (models.Memo, error) {
	if memo.Text == "" {
		return models.Memo{}, fmt.Errorf("memo text cannot be empty")
	}
	if memo.ID == "" {
		memo.ID = models.NewID()
	}
	if memo.Date == "" {
		memo.Date = s.now().Format(models.DateLayout)
	}

	memos, err := s.journal.LoadMemos(ctx)
	if err != nil {
		return models.Memo{}, fmt.Errorf("failed to load memos: %w", err)
	}
	if err := s.journal.SaveMemos(ctx, append(memos, memo)); err != nil {
		return models.Memo{}, fmt.Errorf("failed to save memos: %w", err)
	}
	return memo, nil
}

// DeleteMemo удаляет заметку; отсутствующая заметка не ошибка
func (s *service) DeleteMemo(ctx context.Context, id string) error {
	memos, err := s.journal.LoadMemos(ctx)
	if err != nil {
		return fmt.Errorf("failed to load memos: %w", err)
	}
	memos = slices.DeleteFunc(memos, func(m models.Memo) bool { return m.ID == id })
	return s.journal.SaveMemos(ctx, memos)
}

// Language returns the UI language
func (s *service) Language(ctx context.Context) (models.Language, error) {
	return s.journal.LoadLanguage(ctx)
}

// SetLanguage stores the UI language
func (s *service) SetLanguage(ctx context.Context, lang models.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("unsupported language %q", lang)
	}
	return s.journal.SaveLanguage(ctx, lang)
}

// DarkMode returns the dark mode flag
func (s *service) DarkMode(ctx context.Context) (bool, error) {
	return s.journal.LoadDarkMode(ctx)
}

// SetDarkMode stores the dark mode flag
func (s *service) SetDarkMode(ctx context.Context, dark bool) error {
	return s.journal.SaveDarkMode(ctx, dark)
}

// LocalModified returns the epoch ms of the last local journal write
func (s *service) LocalModified(ctx context.Context) (int64, error) {
	return s.metadata.GetLocalModified(ctx)
}

// Snapshot собирает полный снимок журнала для бэкапа
func (s *service) Snapshot(ctx context.Context) (models.Snapshot, error) {
	var (
		snap models.Snapshot
		err  error
	)

	if snap.Trips, err = s.journal.LoadTrips(ctx); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load trips: %w", err)
	}
	if snap.UserProfile, err = s.journal.LoadProfile(ctx); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load profile: %w", err)
	}
	if snap.CustomEvents, err = s.journal.LoadEvents(ctx); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load events: %w", err)
	}
	if snap.Memos, err = s.journal.LoadMemos(ctx); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load memos: %w", err)
	}
	if snap.Language, err = s.journal.LoadLanguage(ctx); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load language: %w", err)
	}
	if snap.DarkMode, err = s.journal.LoadDarkMode(ctx); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to load dark mode: %w", err)
	}

	return snap, nil
}

// ApplySnapshot заменяет весь журнал снимком из бэкапа.
// Время локального изменения становится равным времени бэкапа, чтобы
// следующая проверка синхронизации считала состояния одинаковыми.
func (s *service) ApplySnapshot(ctx context.Context, snap models.Snapshot, timestamp int64) error {
	if err := s.journal.ReplaceAll(ctx, snap, timestamp); err != nil {
		return fmt.Errorf("failed to apply snapshot: %w", err)
	}
	return nil
}
