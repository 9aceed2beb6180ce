package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/iudanet/wanderlust/internal/models"
	"github.com/iudanet/wanderlust/internal/server/storage"
	"github.com/iudanet/wanderlust/pkg/api"
)

// modifiedTimeLayout формат modifiedTime в ответах (RFC3339 с миллисекундами, UTC)
const modifiedTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// errUploadTooLarge тело загрузки превысило лимит
var errUploadTooLarge = errors.New("upload exceeds size limit")

// FilesHandler обрабатывает файловое API (/drive/v3, /upload/drive/v3)
type FilesHandler struct {
	logger         *slog.Logger
	files          storage.FileStorage
	metrics        Recorder
	now            func() time.Time
	maxUploadBytes int64
}

// NewFilesHandler создает новый handler файлового API
func NewFilesHandler(logger *slog.Logger, files storage.FileStorage, metrics Recorder, maxUploadBytes int64) *FilesHandler {
	return &FilesHandler{
		logger:         logger,
		files:          files,
		metrics:        metrics,
		now:            time.Now,
		maxUploadBytes: maxUploadBytes,
	}
}

// List обрабатывает GET /drive/v3/files?q=...
func (h *FilesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID, ok := GetAccountID(ctx)
	if !ok {
		SendError(w, h.logger, "unauthorized", http.StatusUnauthorized)
		return
	}

	query, err := ParseFileQuery(r.URL.Query().Get("q"))
	if err != nil {
		SendError(w, h.logger, err.Error(), http.StatusBadRequest)
		return
	}

	found, err := h.files.FindFiles(ctx, accountID, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to find files", slog.Any("error", err))
		SendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.FileList{Files: make([]api.FileMetadata, 0, len(found))}
	for _, f := range found {
		resp.Files = append(resp.Files, toFileMetadata(f))
	}

	SendJSON(w, h.logger, resp, http.StatusOK)
}

// Get обрабатывает GET /drive/v3/files/{fileID}; с alt=media отдает содержимое
func (h *FilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID, ok := GetAccountID(ctx)
	if !ok {
		SendError(w, h.logger, "unauthorized", http.StatusUnauthorized)
		return
	}

	fileID := chi.URLParam(r, "fileID")
	file, err := h.files.GetFile(ctx, accountID, fileID)
	if err != nil {
		h.storageError(w, r, err, fileID)
		return
	}

	switch alt := r.URL.Query().Get("alt"); alt {
	case "", "json":
		SendJSON(w, h.logger, toFileMetadata(file), http.StatusOK)
	case "media":
		w.Header().Set("Content-Type", file.MimeType)
		w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(file.Content); err != nil {
			h.logger.WarnContext(ctx, "failed to write file content", slog.Any("error", err))
		}
	default:
		SendError(w, h.logger, "unsupported alt: "+alt, http.StatusBadRequest)
	}
}

// Create обрабатывает POST /upload/drive/v3/files?uploadType=multipart
func (h *FilesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID, ok := GetAccountID(ctx)
	if !ok {
		SendError(w, h.logger, "unauthorized", http.StatusUnauthorized)
		return
	}

	meta, content, ok := h.readUpload(w, r)
	if !ok {
		return
	}
	if meta.Name == "" {
		SendError(w, h.logger, "file name is required", http.StatusBadRequest)
		return
	}

	now := h.now()
	file := &models.StoredFile{
		ID:            uuid.New().String(),
		AccountID:     accountID,
		Name:          meta.Name,
		MimeType:      meta.MimeType,
		AppProperties: meta.AppProperties,
		Content:       content,
		CreatedAt:     now,
		ModifiedAt:    now,
	}
	if file.Content == nil {
		file.Content = []byte{}
	}

	if err := h.files.CreateFile(ctx, file); err != nil {
		h.logger.ErrorContext(ctx, "failed to create file", slog.Any("error", err))
		SendError(w, h.logger, "internal server error", http.StatusInternalServerError)
		return
	}

	h.metrics.RecordUpload(len(file.Content))
	h.logger.InfoContext(ctx, "file created",
		slog.String("account_id", accountID),
		slog.String("file_id", file.ID),
		slog.Int("size", len(file.Content)))

	SendJSON(w, h.logger, toFileMetadata(file), http.StatusOK)
}

// Update обрабатывает PATCH /upload/drive/v3/files/{fileID}?uploadType=multipart.
// Пустые поля метаданных сохраняют прежние значения, appProperties сливаются по ключам.
func (h *FilesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID, ok := GetAccountID(ctx)
	if !ok {
		SendError(w, h.logger, "unauthorized", http.StatusUnauthorized)
		return
	}

	fileID := chi.URLParam(r, "fileID")
	meta, content, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	file, err := h.files.GetFile(ctx, accountID, fileID)
	if err != nil {
		h.storageError(w, r, err, fileID)
		return
	}

	if meta.Name != "" {
		file.Name = meta.Name
	}
	if meta.MimeType != "" {
		file.MimeType = meta.MimeType
	}
	if len(meta.AppProperties) > 0 {
		if file.AppProperties == nil {
			file.AppProperties = map[string]string{}
		}
		maps.Copy(file.AppProperties, meta.AppProperties)
	}
	file.Content = content
	file.ModifiedAt = h.now()

	if err := h.files.UpdateFile(ctx, file); err != nil {
		h.storageError(w, r, err, fileID)
		return
	}

	if content != nil {
		h.metrics.RecordUpload(len(content))
	}
	h.logger.InfoContext(ctx, "file updated",
		slog.String("account_id", accountID),
		slog.String("file_id", fileID),
		slog.Int("size", len(content)))

	SendJSON(w, h.logger, toFileMetadata(file), http.StatusOK)
}

// Delete обрабатывает DELETE /drive/v3/files/{fileID}: файл уходит в корзину
func (h *FilesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID, ok := GetAccountID(ctx)
	if !ok {
		SendError(w, h.logger, "unauthorized", http.StatusUnauthorized)
		return
	}

	fileID := chi.URLParam(r, "fileID")
	if err := h.files.TrashFile(ctx, accountID, fileID); err != nil {
		h.storageError(w, r, err, fileID)
		return
	}

	h.logger.InfoContext(ctx, "file trashed",
		slog.String("account_id", accountID),
		slog.String("file_id", fileID))

	w.WriteHeader(http.StatusNoContent)
}

// readUpload читает multipart/related тело. При ошибке ответ уже отправлен и ok=false.
func (h *FilesHandler) readUpload(w http.ResponseWriter, r *http.Request) (api.FileMetadata, []byte, bool) {
	if uploadType := r.URL.Query().Get("uploadType"); uploadType != "multipart" {
		SendError(w, h.logger, "uploadType must be multipart", http.StatusBadRequest)
		return api.FileMetadata{}, nil, false
	}

	body := http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	meta, content, err := decodeRelated(r.Header.Get("Content-Type"), body)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			SendError(w, h.logger, errUploadTooLarge.Error(), http.StatusRequestEntityTooLarge)
		case errors.Is(err, errUnsupportedMediaType):
			SendError(w, h.logger, err.Error(), http.StatusUnsupportedMediaType)
		default:
			h.logger.WarnContext(r.Context(), "failed to decode upload", slog.Any("error", err))
			SendError(w, h.logger, err.Error(), http.StatusBadRequest)
		}
		return api.FileMetadata{}, nil, false
	}

	return meta, content, true
}

// errUnsupportedMediaType загрузка пришла не в multipart/related
var errUnsupportedMediaType = errors.New("content type must be multipart/related")

// decodeRelated разбирает multipart/related: первая часть JSON метаданные,
// вторая (необязательная) содержимое файла
func decodeRelated(contentType string, body io.Reader) (api.FileMetadata, []byte, error) {
	var meta api.FileMetadata

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "multipart/related" {
		return meta, nil, errUnsupportedMediaType
	}
	boundary := params["boundary"]
	if boundary == "" {
		return meta, nil, fmt.Errorf("multipart boundary is missing")
	}

	mr := multipart.NewReader(body, boundary)

	part, err := mr.NextPart()
	if err != nil {
		return meta, nil, fmt.Errorf("metadata part is missing: %w", err)
	}
	if err := json.NewDecoder(part).Decode(&meta); err != nil {
		return meta, nil, fmt.Errorf("invalid metadata part: %w", err)
	}

	part, err = mr.NextPart()
	if errors.Is(err, io.EOF) {
		return meta, nil, nil
	}
	if err != nil {
		return meta, nil, fmt.Errorf("failed to read content part: %w", err)
	}

	content, err := io.ReadAll(part)
	if err != nil {
		return meta, nil, fmt.Errorf("failed to read content part: %w", err)
	}
	if meta.MimeType == "" {
		meta.MimeType = part.Header.Get("Content-Type")
	}

	return meta, content, nil
}

func (h *FilesHandler) storageError(w http.ResponseWriter, r *http.Request, err error, fileID string) {
	if errors.Is(err, storage.ErrFileNotFound) {
		SendError(w, h.logger, "file not found: "+fileID, http.StatusNotFound)
		return
	}
	h.logger.ErrorContext(r.Context(), "file storage failed",
		slog.String("file_id", fileID), slog.Any("error", err))
	SendError(w, h.logger, "internal server error", http.StatusInternalServerError)
}

func toFileMetadata(f *models.StoredFile) api.FileMetadata {
	return api.FileMetadata{
		ID:            f.ID,
		Name:          f.Name,
		MimeType:      f.MimeType,
		AppProperties: f.AppProperties,
		ModifiedTime:  f.ModifiedAt.UTC().Format(modifiedTimeLayout),
	}
}
