package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	httpClient "github.com/iudanet/wanderlust/internal/client/api"
	"github.com/iudanet/wanderlust/internal/client/errs"
	"github.com/iudanet/wanderlust/internal/client/storage"
	"github.com/iudanet/wanderlust/internal/models"
	"github.com/iudanet/wanderlust/pkg/api"
)

// BackupFileName имя файла бэкапа в облачном хранилище
const BackupFileName = "wanderlust_backup.json"

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс облачного бэкапа и синхронизации с календарем
type Service interface {
	// Backup загружает снимок журнала в облако, создавая или перезаписывая единственный файл бэкапа
	Backup(ctx context.Context, snap models.Snapshot, timestamp int64) (*BackupResult, error)

	// Restore скачивает бэкап; errs.ErrBackupNotFound если его нет
	Restore(ctx context.Context) (*RestoreResult, error)

	// RemoteMetadata проверяет наличие и время бэкапа, не возвращая ошибок
	RemoteMetadata(ctx context.Context) Probe

	// SyncTripToCalendar создает события календаря для плана поездки и возвращает число созданных
	SyncTripToCalendar(ctx context.Context, trip models.Trip) (int, error)
}

// TokenProvider источник access token (auth.Session)
type TokenProvider interface {
	ValidateToken(ctx context.Context) error
	Token() string
}

// Options настройки сервиса
type Options struct {
	// FileName имя файла бэкапа, по умолчанию BackupFileName
	FileName string
	// CalendarID календарь для событий, по умолчанию "primary"
	CalendarID string
	// TimeZone IANA зона событий календаря
	TimeZone string
}

type service struct {
	apiClient httpClient.ClientAPI
	tokens    TokenProvider
	metadata  storage.MetadataStorage
	logger    *slog.Logger
	opts      Options
}

// NewService creates a new sync service
func NewService(apiClient httpClient.ClientAPI, tokens TokenProvider, metadata storage.MetadataStorage, logger *slog.Logger, opts Options) Service {
	if opts.FileName == "" {
		opts.FileName = BackupFileName
	}
	if opts.CalendarID == "" {
		opts.CalendarID = api.PrimaryCalendar
	}
	if opts.TimeZone == "" {
		opts.TimeZone = LocalTimeZone()
	}
	return &service{
		apiClient: apiClient,
		tokens:    tokens,
		metadata:  metadata,
		logger:    logger,
		opts:      opts,
	}
}

// BackupResult итог загрузки бэкапа
type BackupResult struct {
	FileID  string
	Created bool // true, если файл создан, false - перезаписан
}

// RestoreResult содержимое бэкапа и время, когда он был сделан (epoch ms)
type RestoreResult struct {
	Snapshot  models.Snapshot
	Timestamp int64
}

// Backup uploads the snapshot as two-space indented JSON.
// The artifact is looked up by cached id first, then by name; only when both
// find nothing is a new file created. A failed lookup never creates a duplicate.
func (s *service) Backup(ctx context.Context, snap models.Snapshot, timestamp int64) (*BackupResult, error) {
	if err := s.tokens.ValidateToken(ctx); err != nil {
		return nil, err
	}
	token := s.tokens.Token()

	content, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	meta := api.FileMetadata{
		Name:     s.opts.FileName,
		MimeType: "application/json",
		AppProperties: map[string]string{
			api.AppPropertyLastModified: strconv.FormatInt(timestamp, 10),
		},
	}

	fileID, err := s.metadata.GetBackupFileID(ctx)
	if err != nil {
		s.logger.Warn("failed to read cached backup id", "error", err)
		fileID = ""
	}

	if fileID != "" {
		_, err := s.apiClient.UpdateFile(ctx, token, fileID, meta, content)
		switch {
		case err == nil:
			s.logger.Info("backup updated", "file_id", fileID, "bytes", len(content))
			return &BackupResult{FileID: fileID}, nil
		case errs.IsStatus(err, http.StatusNotFound):
			// файл удален в облаке: забываем id и ищем по имени
			s.logger.Warn("cached backup file is gone, searching by name", "file_id", fileID)
			if err := s.metadata.DeleteBackupFileID(ctx); err != nil {
				s.logger.Warn("failed to drop cached backup id", "error", err)
			}
		default:
			return nil, fmt.Errorf("backup update failed: %w", err)
		}
	}

	existing, err := s.find(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("backup lookup failed: %w", err)
	}

	if existing != nil {
		if _, err := s.apiClient.UpdateFile(ctx, token, existing.ID, meta, content); err != nil {
			return nil, fmt.Errorf("backup update failed: %w", err)
		}
		s.cacheFileID(ctx, existing.ID)
		s.logger.Info("backup updated", "file_id", existing.ID, "bytes", len(content))
		return &BackupResult{FileID: existing.ID}, nil
	}

	created, err := s.apiClient.CreateFile(ctx, token, meta, content)
	if err != nil {
		return nil, fmt.Errorf("backup create failed: %w", err)
	}
	s.cacheFileID(ctx, created.ID)
	s.logger.Info("backup created", "file_id", created.ID, "bytes", len(content))

	return &BackupResult{FileID: created.ID, Created: true}, nil
}

// Restore downloads the backup artifact found by name and caches its id
func (s *service) Restore(ctx context.Context) (*RestoreResult, error) {
	if err := s.tokens.ValidateToken(ctx); err != nil {
		return nil, err
	}
	token := s.tokens.Token()

	file, err := s.find(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("backup lookup failed: %w", err)
	}
	if file == nil {
		return nil, errs.ErrBackupNotFound
	}
	s.cacheFileID(ctx, file.ID)

	content, err := s.apiClient.DownloadFile(ctx, token, file.ID)
	if err != nil {
		return nil, fmt.Errorf("backup download failed: %w", err)
	}

	var snap models.Snapshot
	if err := json.NewDecoder(bytes.NewReader(content)).Decode(&snap); err != nil {
		return nil, fmt.Errorf("backup content is not a journal snapshot: %w", err)
	}

	ts := parseTimestamp(file.AppProperties)
	s.logger.Info("backup restored", "file_id", file.ID, "timestamp", ts, "trips", len(snap.Trips))

	return &RestoreResult{Snapshot: snap, Timestamp: ts}, nil
}

// RemoteMetadata never fails: problems are reported as ProbeFailed
func (s *service) RemoteMetadata(ctx context.Context) Probe {
	if err := s.tokens.ValidateToken(ctx); err != nil {
		s.logger.Warn("failed to check remote backup", "error", err)
		return ProbeFailed(err)
	}

	file, err := s.find(ctx, s.tokens.Token())
	if err != nil {
		s.logger.Warn("failed to check remote backup", "error", err)
		return ProbeFailed(err)
	}
	if file == nil {
		return ProbeNotFound()
	}

	return ProbeFound(RemoteMeta{ID: file.ID, Timestamp: parseTimestamp(file.AppProperties)})
}

// find ищет бэкап по имени; (nil, nil) если его нет
func (s *service) find(ctx context.Context, token string) (*api.FileMetadata, error) {
	files, err := s.apiClient.FindFiles(ctx, token, s.opts.FileName)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > 1 {
		s.logger.Warn("multiple backup files found, using the first", "count", len(files))
	}
	return &files[0], nil
}

func (s *service) cacheFileID(ctx context.Context, id string) {
	if id == "" {
		return
	}
	if err := s.metadata.SaveBackupFileID(ctx, id); err != nil {
		s.logger.Warn("failed to cache backup id", "file_id", id, "error", err)
	}
}

// parseTimestamp читает lastModified; отсутствующее или нечисловое значение дает 0
func parseTimestamp(props map[string]string) int64 {
	raw, ok := props[api.AppPropertyLastModified]
	if !ok {
		return 0
	}
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return ts
}
