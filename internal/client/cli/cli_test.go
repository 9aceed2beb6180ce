package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/wanderlust/internal/client/auth"
	"github.com/iudanet/wanderlust/internal/client/config"
	"github.com/iudanet/wanderlust/internal/client/data"
	"github.com/iudanet/wanderlust/internal/client/iocli"
	"github.com/iudanet/wanderlust/internal/client/storage/boltdb"
	"github.com/iudanet/wanderlust/internal/itinerary"
	"github.com/iudanet/wanderlust/internal/models"
)

// device одно устройство: своя локальная БД, общие облако и сессия
type device struct {
	t       *testing.T
	dbPath  string
	session *fakeSession
	cloud   *fakeCloud
	media   MediaService
}

func newDevice(t *testing.T, cloud *fakeCloud) *device {
	t.Helper()
	return &device{
		t:       t,
		dbPath:  filepath.Join(t.TempDir(), "journal.db"),
		session: &fakeSession{status: auth.TokenValid, username: "traveler"},
		cloud:   cloud,
	}
}

func (d *device) build(ctx context.Context, cfg *config.Config, console iocli.IO, logger *slog.Logger) (*Deps, error) {
	store, err := boltdb.New(ctx, cfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}
	return &Deps{
		Data:    data.NewService(store, store),
		Session: d.session,
		Sync:    d.cloud,
		Media:   d.media,
		Closer:  store,
	}, nil
}

// run выполняет команду с заданным вводом и возвращает вывод
func (d *device) run(input string, args ...string) (string, error) {
	d.t.Helper()

	var out bytes.Buffer
	c := New(iocli.NewStreams(strings.NewReader(input), &out), d.build)
	c.now = func() time.Time { return time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC) }

	root := c.Root("test")
	root.SetArgs(append([]string{
		"--config", filepath.Join(d.t.TempDir(), "absent.yaml"),
		"--db", d.dbPath,
	}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// withData открывает БД устройства напрямую
func (d *device) withData(fn func(svc data.Service)) {
	d.t.Helper()

	store, err := boltdb.New(context.Background(), d.dbPath)
	require.NoError(d.t, err)
	defer func() { require.NoError(d.t, store.Close()) }()

	fn(data.NewService(store, store))
}

func (d *device) seed(trip models.Trip) {
	d.withData(func(svc data.Service) {
		require.NoError(d.t, svc.SaveTrip(context.Background(), trip))
	})
}

func seededTrip() models.Trip {
	return models.Trip{
		ID:              "kyoto",
		Title:           "Autumn in Kyoto",
		Location:        "Kyoto, Japan",
		StartDate:       "2024-03-01",
		EndDate:         "2024-03-03",
		Status:          models.TripStatusFuture,
		Budget:          100,
		DefaultCurrency: "¥",
		DepartureFlight: &models.FlightInfo{Code: "JL001", Gate: "A1"},
		Itinerary: map[string][]models.ItineraryItem{
			"2024-03-01": {
				{ID: "n1", Title: "Pontocho dinner", Period: models.PeriodNight, Type: models.ItemTypeEating, ActualExpense: 30},
				{ID: "m1", Title: "Fushimi Inari", Period: models.PeriodMorning, Type: models.ItemTypeSightseeing},
			},
		},
	}
}

func TestTripAddAndList(t *testing.T) {
	d := newDevice(t, &fakeCloud{})

	out, err := d.run("", "trip", "add",
		"--title", "Lisbon", "--location", "Portugal",
		"--start", "2024-05-01", "--end", "2024-05-04", "--budget", "1200")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Trip created: Lisbon")

	out, err = d.run("", "trip", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 trip(s)")
	assert.Contains(t, out, "Location: Portugal")
	assert.Contains(t, out, "2024-05-01 .. 2024-05-04 (future)")
}

func TestTripAdd_PromptsForMissingFields(t *testing.T) {
	d := newDevice(t, &fakeCloud{})

	out, err := d.run("Seoul\nKorea\n2024-09-01\n2024-09-02\n", "trip", "add")
	require.NoError(t, err)
	assert.Contains(t, out, "Start date (YYYY-MM-DD): ")
	assert.Contains(t, out, "✓ Trip created: Seoul")
}

func TestTripAdd_InvalidRange(t *testing.T) {
	d := newDevice(t, &fakeCloud{})

	_, err := d.run("", "trip", "add", "--title", "x", "--location", "y", "--start", "2024-05-04", "--end", "2024-05-01")
	assert.Error(t, err)
}

func TestTripList_Empty(t *testing.T) {
	d := newDevice(t, &fakeCloud{})

	out, err := d.run("", "trip", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No trips yet.")
}

func TestTripShow(t *testing.T) {
	d := newDevice(t, &fakeCloud{})
	d.seed(seededTrip())

	out, err := d.run("", "trip", "show", "kyoto")
	require.NoError(t, err)

	assert.Contains(t, out, "Remaining: ¥70.00")
	assert.Contains(t, out, "--- 2024-03-01 (departure) ---")
	assert.Contains(t, out, "--- 2024-03-02 ---")
	assert.Contains(t, out, "--- 2024-03-03 (return) ---")
	assert.Contains(t, out, "✈ JL001 gate A1")

	// утро раньше вечера независимо от порядка хранения
	assert.Less(t, strings.Index(out, "Fushimi Inari"), strings.Index(out, "Pontocho dinner"))
}

func TestTripShow_NotFound(t *testing.T) {
	d := newDevice(t, &fakeCloud{})

	_, err := d.run("", "trip", "show", "nope")
	assert.ErrorIs(t, err, data.ErrTripNotFound)
}

func TestTripDelete_Cancelled(t *testing.T) {
	d := newDevice(t, &fakeCloud{})
	d.seed(seededTrip())

	out, err := d.run("n\n", "trip", "delete", "kyoto")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")

	d.withData(func(svc data.Service) {
		_, err := svc.Trip(context.Background(), "kyoto")
		assert.NoError(t, err)
	})

	_, err = d.run("", "trip", "delete", "kyoto", "--yes")
	require.NoError(t, err)
	d.withData(func(svc data.Service) {
		_, err := svc.Trip(context.Background(), "kyoto")
		assert.ErrorIs(t, err, data.ErrTripNotFound)
	})
}

func TestEventAddAndExpense(t *testing.T) {
	d := newDevice(t, &fakeCloud{})
	d.seed(seededTrip())

	out, err := d.run("", "event", "add", "kyoto", "2024-03-02",
		"--title", "Tea ceremony", "--time", "14:00", "--end", "15:30", "--cost", "40", "--currency", "JPY")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Event saved: Tea ceremony on 2024-03-02")

	var itemID string
	d.withData(func(svc data.Service) {
		trip, err := svc.Trip(context.Background(), "kyoto")
		require.NoError(t, err)
		require.Len(t, trip.Itinerary["2024-03-02"], 1)
		itemID = trip.Itinerary["2024-03-02"][0].ID
		assert.Equal(t, "JPY", trip.DefaultCurrency)
	})

	out, err = d.run("", "event", "expense", "kyoto", "2024-03-02", itemID, "25.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Remaining budget: JPY44.50")

	_, err = d.run("", "event", "add", "kyoto", "2024-04-01", "--title", "Too late")
	assert.Error(t, err)
}

func TestEventEdit_KeepsFieldsNotGiven(t *testing.T) {
	d := newDevice(t, &fakeCloud{})
	d.seed(seededTrip())

	out, err := d.run("", "event", "add", "kyoto", "2024-03-01", "--id", "n1", "--title", "Pontocho dinner (late)")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Event saved: Pontocho dinner (late) on 2024-03-01 (ID: n1)")

	d.withData(func(svc data.Service) {
		trip, err := svc.Trip(context.Background(), "kyoto")
		require.NoError(t, err)

		item, err := itinerary.FindItem(&trip, "2024-03-01", "n1")
		require.NoError(t, err)
		assert.Equal(t, "Pontocho dinner (late)", item.Title)
		assert.Equal(t, models.PeriodNight, item.Period)
		assert.Equal(t, models.ItemTypeEating, item.Type)
		assert.Empty(t, item.Time)
		assert.InDelta(t, 30, item.ActualExpense, 0.0001)
		assert.Len(t, trip.Itinerary["2024-03-01"], 2)
		assert.InDelta(t, 30, itinerary.Summarize(&trip).Actual.InexactFloat64(), 0.0001)
	})
}

func TestEventEdit_TimeReplacesPeriod(t *testing.T) {
	d := newDevice(t, &fakeCloud{})
	d.seed(seededTrip())

	_, err := d.run("", "event", "add", "kyoto", "2024-03-01", "--id", "n1", "--time", "20:30", "--end", "22:00")
	require.NoError(t, err)

	d.withData(func(svc data.Service) {
		trip, err := svc.Trip(context.Background(), "kyoto")
		require.NoError(t, err)

		item, err := itinerary.FindItem(&trip, "2024-03-01", "n1")
		require.NoError(t, err)
		assert.Equal(t, models.PeriodNone, item.Period)
		assert.Equal(t, "20:30", item.Time)
		assert.Equal(t, "22:00", item.EndTime)
		assert.Equal(t, "Pontocho dinner", item.Title)
		assert.Equal(t, models.ItemTypeEating, item.Type)
	})
}

func TestEventEdit_UnknownID(t *testing.T) {
	d := newDevice(t, &fakeCloud{})
	d.seed(seededTrip())

	_, err := d.run("", "event", "add", "kyoto", "2024-03-01", "--id", "stale", "--title", "Ghost")
	require.ErrorIs(t, err, itinerary.ErrItemNotFound)

	d.withData(func(svc data.Service) {
		trip, err := svc.Trip(context.Background(), "kyoto")
		require.NoError(t, err)
		assert.Len(t, trip.Itinerary["2024-03-01"], 2)
	})
}

func TestOverlayEvent(t *testing.T) {
	existing := models.ItineraryItem{
		ID: "n1", Title: "Dinner", Period: models.PeriodNight, Type: models.ItemTypeEating,
		Description: "book ahead", Currency: "¥", EstimatedExpense: 50, ActualExpense: 30,
	}

	tests := []struct {
		name    string
		edit    models.ItineraryItem
		changed []string
		want    models.ItineraryItem
	}{
		{
			name: "nothing changed",
			edit: models.ItineraryItem{ID: "n1"},
			want: existing,
		},
		{
			name:    "cost can be reset to zero",
			edit:    models.ItineraryItem{ID: "n1"},
			changed: []string{"cost"},
			want: func() models.ItineraryItem {
				w := existing
				w.EstimatedExpense = 0
				return w
			}(),
		},
		{
			name:    "period switch",
			edit:    models.ItineraryItem{ID: "n1", Period: models.PeriodMorning},
			changed: []string{"period"},
			want: func() models.ItineraryItem {
				w := existing
				w.Period = models.PeriodMorning
				return w
			}(),
		},
		{
			name:    "description cleared",
			edit:    models.ItineraryItem{ID: "n1"},
			changed: []string{"description"},
			want: func() models.ItineraryItem {
				w := existing
				w.Description = ""
				return w
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := func(name string) bool {
				for _, c := range tt.changed {
					if c == name {
						return true
					}
				}
				return false
			}
			assert.Equal(t, tt.want, overlayEvent(existing, tt.edit, changed))
		})
	}
}

func TestFlightAndDayCommands(t *testing.T) {
	d := newDevice(t, &fakeCloud{})
	d.seed(seededTrip())

	_, err := d.run("", "flight", "kyoto", "2024-03-03", "--code", "JL002")
	require.NoError(t, err)

	_, err = d.run("", "flight", "kyoto", "2024-03-02", "--code", "XX")
	assert.Error(t, err)

	_, err = d.run("", "day", "rate", "kyoto", "2024-03-02", "4")
	require.NoError(t, err)
	_, err = d.run("", "day", "favorite", "kyoto", "2024-03-02")
	require.NoError(t, err)

	d.withData(func(svc data.Service) {
		trip, err := svc.Trip(context.Background(), "kyoto")
		require.NoError(t, err)
		require.NotNil(t, trip.ReturnFlight)
		assert.Equal(t, "JL002", trip.ReturnFlight.Code)
		assert.Equal(t, 4, trip.DayRatings["2024-03-02"])
		assert.Equal(t, []string{"2024-03-02"}, trip.FavoriteDays)
	})
}

func TestSync_BackupThenRestoreOnSecondDevice(t *testing.T) {
	cloud := &fakeCloud{}

	laptop := newDevice(t, cloud)
	laptop.seed(seededTrip())

	out, err := laptop.run("", "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Backup created")
	assert.Equal(t, 1, cloud.backups)

	phone := newDevice(t, cloud)
	out, err = phone.run("", "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Cloud backup is newer, restoring...")
	assert.Contains(t, out, "✓ Journal restored")

	phone.withData(func(svc data.Service) {
		trip, err := svc.Trip(context.Background(), "kyoto")
		require.NoError(t, err)
		assert.Equal(t, "Autumn in Kyoto", trip.Title)

		local, err := svc.LocalModified(context.Background())
		require.NoError(t, err)
		assert.Equal(t, cloud.ts, local)
	})

	out, err = phone.run("", "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Already up to date")
	assert.Equal(t, 1, cloud.backups)
}

func TestSync_ProbeFailure(t *testing.T) {
	cloud := &fakeCloud{probeErr: assert.AnError}
	d := newDevice(t, cloud)

	_, err := d.run("", "sync")
	assert.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, cloud.backups)
}

func TestRestore_NoBackup(t *testing.T) {
	d := newDevice(t, &fakeCloud{})

	out, err := d.run("", "restore", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "No backup found")
}

func TestCalendar(t *testing.T) {
	cloud := &fakeCloud{}
	d := newDevice(t, cloud)
	trip := seededTrip()
	trip.Itinerary["2024-03-02"] = []models.ItineraryItem{{ID: "x", Title: ""}}
	d.seed(trip)

	out, err := d.run("", "calendar", "kyoto")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ 2 event(s) added")
	assert.Len(t, cloud.calendars, 2)
}

func TestStatus(t *testing.T) {
	cloud := &fakeCloud{}
	d := newDevice(t, cloud)

	out, err := d.run("", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Account:        traveler")
	assert.Contains(t, out, "Token:          valid")
	assert.Contains(t, out, "Local changes:  never")
	assert.Contains(t, out, "Cloud backup:   no backup yet")
	assert.Contains(t, out, "Suggested sync: backup")

	d.session.status = auth.TokenMissing
	out, err = d.run("", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Cloud backup:   login required")
	assert.NotContains(t, out, "Suggested sync")
}

func TestPhotoAddAndAIEdit(t *testing.T) {
	d := newDevice(t, &fakeCloud{})
	d.seed(seededTrip())

	// минимальный PNG заголовок, чтобы DetectContentType вернул image/png
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)
	file := filepath.Join(t.TempDir(), "shrine.png")
	require.NoError(t, os.WriteFile(file, png, 0o600))

	out, err := d.run("", "photo", "add", "kyoto", file)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ New Photo added")

	var photoID string
	d.withData(func(svc data.Service) {
		trip, err := svc.Trip(context.Background(), "kyoto")
		require.NoError(t, err)
		require.Len(t, trip.Photos, 1)
		photoID = trip.Photos[0].ID
		assert.True(t, strings.HasPrefix(trip.Photos[0].URL, "data:image/png;base64,"))
	})

	_, err = d.run("", "photo", "edit", "kyoto", photoID, "add", "snow")
	assert.ErrorContains(t, err, "AI features are disabled")

	ai := &fakeMedia{edited: &mediaImage}
	d.media = ai
	out, err = d.run("", "photo", "edit", "kyoto", photoID, "add", "snow")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Edited photo added")
	assert.Equal(t, []string{"add snow"}, ai.prompts)

	d.withData(func(svc data.Service) {
		trip, err := svc.Trip(context.Background(), "kyoto")
		require.NoError(t, err)
		require.Len(t, trip.Photos, 2)
		assert.Equal(t, "AI: add snow", trip.Photos[1].Caption)
	})
}

func TestVlog(t *testing.T) {
	d := newDevice(t, &fakeCloud{})
	d.seed(seededTrip())
	d.media = &fakeMedia{video: &mediaVideo}

	out := filepath.Join(t.TempDir(), "vlog.mp4")
	stdout, err := d.run("", "vlog", "kyoto", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ Saved 3 bytes")

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "mp4", string(content))

	d.withData(func(svc data.Service) {
		trip, err := svc.Trip(context.Background(), "kyoto")
		require.NoError(t, err)
		require.Len(t, trip.Photos, 1)
		assert.Equal(t, models.MediaTypeVideo, trip.Photos[0].Type)
		assert.Equal(t, mediaVideo.URI, trip.Photos[0].URL)
	})
}

func TestMemoAndSettings(t *testing.T) {
	d := newDevice(t, &fakeCloud{})

	_, err := d.run("", "memo", "add", "buy", "rail", "pass")
	require.NoError(t, err)
	out, err := d.run("", "memo", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "[yellow] buy rail pass")

	_, err = d.run("", "settings", "language", "ja")
	require.NoError(t, err)
	_, err = d.run("", "settings", "language", "fr")
	assert.Error(t, err)
	_, err = d.run("", "settings", "dark", "on")
	require.NoError(t, err)

	out, err = d.run("", "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "Language:  ja")
	assert.Contains(t, out, "Dark mode: true")
}

func TestRegister_PasswordSources(t *testing.T) {
	d := newDevice(t, &fakeCloud{})

	_, err := d.run("alice\nsecret-pass-1\n", "register")
	require.NoError(t, err)

	_, err = d.run("bob\n", "register", "--password", "from-args-1")
	require.NoError(t, err)

	t.Setenv(PasswordEnv, "from-env-1")
	_, err = d.run("carol\n", "register", "--password", "ignored")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"alice:secret-pass-1",
		"bob:from-args-1",
		"carol:from-env-1",
	}, d.session.registered)
}

func TestGetPassword_FromFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "password.txt")
	require.NoError(t, os.WriteFile(file, []byte("file-password\n"), 0o600))

	c := &Cli{passwords: Passwords{FromFile: file, FromArgs: "args-password"}}
	password, err := c.getPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "file-password", password)

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o600))
	c.passwords.FromFile = empty
	_, err = c.getPassword("Password: ")
	assert.Error(t, err)
}
