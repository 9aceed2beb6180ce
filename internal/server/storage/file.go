package storage

import (
	"context"

	"github.com/iudanet/wanderlust/internal/models"
)

// FileQuery условия поиска файлов; пустые поля не фильтруют
type FileQuery struct {
	Name    string
	Trashed *bool
}

// FileStorage defines interface for account files persistence.
// Every method is scoped to one account: files of other accounts are invisible.
type FileStorage interface {
	// CreateFile stores a new file with content
	CreateFile(ctx context.Context, file *models.StoredFile) error

	// UpdateFile replaces name, mime type, app properties and content.
	// Nil content keeps the stored content.
	// Returns ErrFileNotFound if file doesn't exist or is trashed
	UpdateFile(ctx context.Context, file *models.StoredFile) error

	// GetFile retrieves file with content
	// Returns ErrFileNotFound if file doesn't exist or is trashed
	GetFile(ctx context.Context, accountID, fileID string) (*models.StoredFile, error)

	// FindFiles returns files matching the query without content, newest first
	FindFiles(ctx context.Context, accountID string, query FileQuery) ([]*models.StoredFile, error)

	// TrashFile marks file as trashed. After that the file is visible only
	// through FindFiles.
	// Returns ErrFileNotFound if file doesn't exist or is already trashed
	TrashFile(ctx context.Context, accountID, fileID string) error
}
