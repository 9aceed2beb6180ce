package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/wanderlust/internal/models"
	"github.com/iudanet/wanderlust/internal/server/storage"
)

// CreateFile stores a new file with content
func (s *Storage) CreateFile(ctx context.Context, file *models.StoredFile) error {
	props, err := encodeProperties(file.AppProperties)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO files (id, account_id, name, mime_type, app_properties, content, trashed, created_at, modified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		file.ID,
		file.AccountID,
		file.Name,
		file.MimeType,
		props,
		file.Content,
		file.Trashed,
		file.CreatedAt,
		file.ModifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert file: %w", err)
	}

	return nil
}

// UpdateFile replaces metadata and, when given, content
func (s *Storage) UpdateFile(ctx context.Context, file *models.StoredFile) error {
	props, err := encodeProperties(file.AppProperties)
	if err != nil {
		return err
	}

	query := `
		UPDATE files
		SET name = ?, mime_type = ?, app_properties = ?, modified_at = ?
		WHERE id = ? AND account_id = ? AND trashed = 0
	`
	args := []any{file.Name, file.MimeType, props, file.ModifiedAt, file.ID, file.AccountID}

	if file.Content != nil {
		query = `
			UPDATE files
			SET name = ?, mime_type = ?, app_properties = ?, modified_at = ?, content = ?
			WHERE id = ? AND account_id = ? AND trashed = 0
		`
		args = []any{file.Name, file.MimeType, props, file.ModifiedAt, file.Content, file.ID, file.AccountID}
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update file: %w", err)
	}

	return expectOneRow(result, storage.ErrFileNotFound)
}

// GetFile retrieves file with content; trashed files are not found
func (s *Storage) GetFile(ctx context.Context, accountID, fileID string) (*models.StoredFile, error) {
	query := `
		SELECT id, account_id, name, mime_type, app_properties, content, trashed, created_at, modified_at
		FROM files
		WHERE id = ? AND account_id = ? AND trashed = 0
	`

	file, err := scanFile(s.db.QueryRowContext(ctx, query, fileID, accountID), true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to get file: %w", err)
	}

	return file, nil
}

// FindFiles returns files matching the query without content, newest first
func (s *Storage) FindFiles(ctx context.Context, accountID string, q storage.FileQuery) ([]*models.StoredFile, error) {
	var (
		where = []string{"account_id = ?"}
		args  = []any{accountID}
	)
	if q.Name != "" {
		where = append(where, "name = ?")
		args = append(args, q.Name)
	}
	if q.Trashed != nil {
		where = append(where, "trashed = ?")
		args = append(args, *q.Trashed)
	}

	query := `
		SELECT id, account_id, name, mime_type, app_properties, NULL, trashed, created_at, modified_at
		FROM files
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY modified_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	files := make([]*models.StoredFile, 0)
	for rows.Next() {
		file, err := scanFile(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating files: %w", err)
	}

	return files, nil
}

// TrashFile marks file as trashed
func (s *Storage) TrashFile(ctx context.Context, accountID, fileID string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE files SET trashed = 1 WHERE id = ? AND account_id = ? AND trashed = 0`, fileID, accountID)
	if err != nil {
		return fmt.Errorf("failed to trash file: %w", err)
	}

	return expectOneRow(result, storage.ErrFileNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner, withContent bool) (*models.StoredFile, error) {
	var (
		file    models.StoredFile
		props   string
		content []byte
	)

	err := row.Scan(
		&file.ID,
		&file.AccountID,
		&file.Name,
		&file.MimeType,
		&props,
		&content,
		&file.Trashed,
		&file.CreatedAt,
		&file.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(props), &file.AppProperties); err != nil {
		return nil, fmt.Errorf("failed to decode app properties: %w", err)
	}
	if withContent {
		file.Content = content
		if file.Content == nil {
			file.Content = []byte{}
		}
	}

	return &file, nil
}

func encodeProperties(props map[string]string) (string, error) {
	if props == nil {
		return "{}", nil
	}
	data, err := json.Marshal(props)
	if err != nil {
		return "", fmt.Errorf("failed to encode app properties: %w", err)
	}
	return string(data), nil
}
