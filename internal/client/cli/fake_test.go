package cli

import (
	"context"
	"io"
	"strings"

	"github.com/iudanet/wanderlust/internal/client/auth"
	"github.com/iudanet/wanderlust/internal/client/errs"
	"github.com/iudanet/wanderlust/internal/client/media"
	"github.com/iudanet/wanderlust/internal/client/sync"
	"github.com/iudanet/wanderlust/internal/models"
)

// fakeSession сессия без сети
type fakeSession struct {
	validateErr error
	username    string
	status      auth.TokenStatus
	registered  []string
}

func (f *fakeSession) ValidateToken(ctx context.Context) error { return f.validateErr }

func (f *fakeSession) Status(ctx context.Context) (auth.TokenStatus, error) { return f.status, nil }

func (f *fakeSession) Username(ctx context.Context) string { return f.username }

func (f *fakeSession) Register(ctx context.Context, username, password string) (string, error) {
	f.registered = append(f.registered, username+":"+password)
	return "acc-1", nil
}

func (f *fakeSession) Logout(ctx context.Context) error {
	f.username = ""
	return nil
}

// fakeCloud облачный бэкап в памяти; общий для нескольких "устройств"
type fakeCloud struct {
	probeErr  error
	snap      *models.Snapshot
	ts        int64
	backups   int
	calendars []string
}

var _ sync.Service = (*fakeCloud)(nil)

func (f *fakeCloud) Backup(ctx context.Context, snap models.Snapshot, timestamp int64) (*sync.BackupResult, error) {
	f.backups++
	f.snap = &snap
	f.ts = timestamp
	return &sync.BackupResult{FileID: "file-1", Created: f.backups == 1}, nil
}

func (f *fakeCloud) Restore(ctx context.Context) (*sync.RestoreResult, error) {
	if f.snap == nil {
		return nil, errs.ErrBackupNotFound
	}
	return &sync.RestoreResult{Snapshot: *f.snap, Timestamp: f.ts}, nil
}

func (f *fakeCloud) RemoteMetadata(ctx context.Context) sync.Probe {
	switch {
	case f.probeErr != nil:
		return sync.ProbeFailed(f.probeErr)
	case f.snap == nil:
		return sync.ProbeNotFound()
	default:
		return sync.ProbeFound(sync.RemoteMeta{ID: "file-1", Timestamp: f.ts})
	}
}

func (f *fakeCloud) SyncTripToCalendar(ctx context.Context, trip models.Trip) (int, error) {
	n := 0
	for _, items := range trip.Itinerary {
		for _, item := range items {
			if item.Title != "" {
				f.calendars = append(f.calendars, item.Title)
				n++
			}
		}
	}
	return n, nil
}

var (
	mediaImage = media.Image{MIMEType: "image/png", Data: []byte("edited")}
	mediaVideo = media.VideoHandle{URI: "https://media.example.com/v1/files/vlog:download?alt=media"}
)

// fakeMedia AI сервис с заранее заданными ответами
type fakeMedia struct {
	edited  *media.Image
	video   *media.VideoHandle
	prompts []string
}

func (f *fakeMedia) EditImage(ctx context.Context, image, prompt string) (*media.Image, error) {
	f.prompts = append(f.prompts, prompt)
	return f.edited, nil
}

func (f *fakeMedia) GenerateVlog(ctx context.Context, prompt, startImage string, opts media.PollOptions) (*media.VideoHandle, error) {
	f.prompts = append(f.prompts, prompt)
	return f.video, nil
}

func (f *fakeMedia) Download(ctx context.Context, handle *media.VideoHandle, w io.Writer) (int64, error) {
	n, err := io.Copy(w, strings.NewReader("mp4"))
	return n, err
}
