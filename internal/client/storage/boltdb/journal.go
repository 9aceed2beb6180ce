package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/wanderlust/internal/client/storage"
	"github.com/iudanet/wanderlust/internal/models"
)

// getJSON читает значение ключа журнала. found=false, если ключа нет.
func (s *Storage) getJSON(key string, dst any) (found bool, err error) {
	err = s.view(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketJournal)
		if err != nil {
			return err
		}

		data := b.Get([]byte(key))
		if data == nil {
			return nil
		}
		found = true

		if err := json.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("%w: %s: %v", storage.ErrCorruptValue, key, err)
		}
		return nil
	})
	return found, err
}

// putJSON пишет значение и в той же транзакции отмечает время локального изменения
func (s *Storage) putJSON(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketJournal)
		if err != nil {
			return err
		}
		if err := b.Put([]byte(key), data); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
		return putInt64(tx, keyLocalModified, s.now().UnixMilli())
	})
}

// LoadTrips returns stored trips, empty when nothing is stored yet
func (s *Storage) LoadTrips(ctx context.Context) ([]models.Trip, error) {
	trips := []models.Trip{}
	if _, err := s.getJSON(storage.KeyTrips, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// SaveTrips replaces the stored trip list
func (s *Storage) SaveTrips(ctx context.Context, trips []models.Trip) error {
	if trips == nil {
		trips = []models.Trip{}
	}
	return s.putJSON(storage.KeyTrips, trips)
}

// LoadProfile returns the stored profile or the default one
func (s *Storage) LoadProfile(ctx context.Context) (models.UserProfile, error) {
	var profile models.UserProfile
	found, err := s.getJSON(storage.KeyProfile, &profile)
	if err != nil {
		return models.UserProfile{}, err
	}
	if !found {
		return models.DefaultProfile(), nil
	}
	return profile, nil
}

// SaveProfile stores the profile
func (s *Storage) SaveProfile(ctx context.Context, profile models.UserProfile) error {
	return s.putJSON(storage.KeyProfile, profile)
}

// LoadEvents returns stored custom calendar events
func (s *Storage) LoadEvents(ctx context.Context) ([]models.CustomEvent, error) {
	events := []models.CustomEvent{}
	if _, err := s.getJSON(storage.KeyEvents, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// SaveEvents replaces the custom events
func (s *Storage) SaveEvents(ctx context.Context, events []models.CustomEvent) error {
	if events == nil {
		events = []models.CustomEvent{}
	}
	return s.putJSON(storage.KeyEvents, events)
}

// LoadMemos returns stored memos
func (s *Storage) LoadMemos(ctx context.Context) ([]models.Memo, error) {
	memos := []models.Memo{}
	if _, err := s.getJSON(storage.KeyMemos, &memos); err != nil {
		return nil, err
	}
	return memos, nil
}

// SaveMemos replaces the memos
func (s *Storage) SaveMemos(ctx context.Context, memos []models.Memo) error {
	if memos == nil {
		memos = []models.Memo{}
	}
	return s.putJSON(storage.KeyMemos, memos)
}

// LoadLanguage returns the UI language, "en" by default
func (s *Storage) LoadLanguage(ctx context.Context) (models.Language, error) {
	lang := models.LanguageEN
	if _, err := s.getJSON(storage.KeyLanguage, &lang); err != nil {
		return "", err
	}
	return lang, nil
}

// SaveLanguage stores the UI language
func (s *Storage) SaveLanguage(ctx context.Context, lang models.Language) error {
	return s.putJSON(storage.KeyLanguage, lang)
}

// LoadDarkMode returns the dark mode flag, false by default
func (s *Storage) LoadDarkMode(ctx context.Context) (bool, error) {
	var dark bool
	if _, err := s.getJSON(storage.KeyDarkMode, &dark); err != nil {
		return false, err
	}
	return dark, nil
}

// SaveDarkMode stores the dark mode flag
func (s *Storage) SaveDarkMode(ctx context.Context, dark bool) error {
	return s.putJSON(storage.KeyDarkMode, dark)
}

// ReplaceAll перезаписывает весь журнал одной транзакцией (восстановление из бэкапа)
func (s *Storage) ReplaceAll(ctx context.Context, snap models.Snapshot, modified int64) error {
	if snap.Trips == nil {
		snap.Trips = []models.Trip{}
	}
	if snap.CustomEvents == nil {
		snap.CustomEvents = []models.CustomEvent{}
	}
	if snap.Memos == nil {
		snap.Memos = []models.Memo{}
	}
	if snap.Language == "" {
		snap.Language = models.LanguageEN
	}

	values := []struct {
		key   string
		value any
	}{
		{storage.KeyTrips, snap.Trips},
		{storage.KeyProfile, snap.UserProfile},
		{storage.KeyEvents, snap.CustomEvents},
		{storage.KeyMemos, snap.Memos},
		{storage.KeyLanguage, snap.Language},
		{storage.KeyDarkMode, snap.DarkMode},
	}

	encoded := make(map[string][]byte, len(values))
	for _, v := range values {
		data, err := json.Marshal(v.value)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", v.key, err)
		}
		encoded[v.key] = data
	}

	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketJournal)
		if err != nil {
			return err
		}
		for key, data := range encoded {
			if err := b.Put([]byte(key), data); err != nil {
				return fmt.Errorf("failed to save %s: %w", key, err)
			}
		}
		return putInt64(tx, keyLocalModified, modified)
	})
}
