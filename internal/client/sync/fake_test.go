package sync

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	gosync "sync"

	"github.com/iudanet/wanderlust/internal/client/errs"
	"github.com/iudanet/wanderlust/pkg/api"
)

// fakeRemote - hand-written in-memory облачный сервис для тестов
type fakeRemote struct {
	mu gosync.Mutex

	files   map[string]*fakeFile
	events  []api.CalendarEvent
	nextID  int
	updates int
	creates int

	findErr   error
	insertErr func(ev api.CalendarEvent) error
}

type fakeFile struct {
	meta    api.FileMetadata
	content []byte
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{files: make(map[string]*fakeFile)}
}

func notFound(id string) error {
	return errs.NewRemoteRequestError(http.StatusNotFound, []byte(fmt.Sprintf(`{"error":{"code":404,"message":"File not found: %s"}}`, id)))
}

func (f *fakeRemote) Health(ctx context.Context) (*api.HealthResponse, error) {
	return &api.HealthResponse{Status: "ok"}, nil
}

func (f *fakeRemote) Discovery(ctx context.Context) (*api.DiscoveryResponse, error) {
	return nil, errors.New("not used")
}

func (f *fakeRemote) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	return nil, errors.New("not used")
}

func (f *fakeRemote) Token(ctx context.Context, clientID, username, password, scope string) (*api.TokenResponse, error) {
	return nil, errors.New("not used")
}

func (f *fakeRemote) FindFiles(ctx context.Context, token, name string) ([]api.FileMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []api.FileMetadata
	for i := 1; i <= f.nextID; i++ {
		if file, ok := f.files[fmt.Sprintf("file-%d", i)]; ok && file.meta.Name == name {
			out = append(out, file.meta)
		}
	}
	return out, nil
}

func (f *fakeRemote) GetFile(ctx context.Context, token, id string) (*api.FileMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[id]
	if !ok {
		return nil, notFound(id)
	}
	m := file.meta
	return &m, nil
}

func (f *fakeRemote) DownloadFile(ctx context.Context, token, id string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[id]
	if !ok {
		return nil, notFound(id)
	}
	return append([]byte(nil), file.content...), nil
}

func (f *fakeRemote) CreateFile(ctx context.Context, token string, meta api.FileMetadata, content []byte) (*api.FileMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.creates++
	meta.ID = fmt.Sprintf("file-%d", f.nextID)
	f.files[meta.ID] = &fakeFile{meta: meta, content: append([]byte(nil), content...)}
	return &meta, nil
}

func (f *fakeRemote) UpdateFile(ctx context.Context, token, id string, meta api.FileMetadata, content []byte) (*api.FileMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.files[id]; !ok {
		return nil, notFound(id)
	}
	f.updates++
	meta.ID = id
	f.files[id] = &fakeFile{meta: meta, content: append([]byte(nil), content...)}
	return &meta, nil
}

func (f *fakeRemote) InsertEvent(ctx context.Context, token, calendarID string, event api.CalendarEvent) (*api.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		if err := f.insertErr(event); err != nil {
			return nil, err
		}
	}
	event.ID = fmt.Sprintf("ev-%d", len(f.events)+1)
	f.events = append(f.events, event)
	return &event, nil
}

func (f *fakeRemote) ListEvents(ctx context.Context, token, calendarID string) ([]api.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.CalendarEvent(nil), f.events...), nil
}

func (f *fakeRemote) fileCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

// staticTokens - TokenProvider с фиксированным результатом
type staticTokens struct {
	err   error
	calls int
}

func (s *staticTokens) ValidateToken(ctx context.Context) error {
	s.calls++
	return s.err
}

func (s *staticTokens) Token() string { return "test-token" }

// memMetadata - in-memory storage.MetadataStorage
type memMetadata struct {
	modified int64
	fileID   string
	clientID string
}

func (m *memMetadata) GetLocalModified(ctx context.Context) (int64, error) { return m.modified, nil }
func (m *memMetadata) SetLocalModified(ctx context.Context, v int64) error {
	m.modified = v
	return nil
}
func (m *memMetadata) GetBackupFileID(ctx context.Context) (string, error) { return m.fileID, nil }
func (m *memMetadata) SaveBackupFileID(ctx context.Context, id string) error {
	m.fileID = id
	return nil
}
func (m *memMetadata) DeleteBackupFileID(ctx context.Context) error {
	m.fileID = ""
	return nil
}
func (m *memMetadata) GetClientID(ctx context.Context) (string, error) { return m.clientID, nil }
func (m *memMetadata) SaveClientID(ctx context.Context, id string) error {
	m.clientID = id
	return nil
}
