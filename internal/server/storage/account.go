package storage

import (
	"context"
	"time"

	"github.com/iudanet/wanderlust/internal/models"
)

// AccountStorage defines interface for account persistence
type AccountStorage interface {
	// CreateAccount creates a new account
	// Returns ErrAccountExists if username is taken
	CreateAccount(ctx context.Context, account *models.Account) error

	// GetAccountByUsername retrieves account by username
	// Returns ErrAccountNotFound if account doesn't exist
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)

	// GetAccountByID retrieves account by ID
	// Returns ErrAccountNotFound if account doesn't exist
	GetAccountByID(ctx context.Context, accountID string) (*models.Account, error)

	// UpdateLastLogin updates the last token issue time
	UpdateLastLogin(ctx context.Context, accountID string, lastLogin time.Time) error
}
