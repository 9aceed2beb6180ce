package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/wanderlust/internal/models"
	"github.com/iudanet/wanderlust/internal/server/storage"
)

// CreateAccount creates a new account in the storage
func (s *Storage) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, username, password_hash, created_at, last_login)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		account.ID,
		account.Username,
		account.PasswordHash,
		account.CreatedAt,
		account.LastLogin,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAccountExists
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}

	return nil
}

// GetAccountByUsername retrieves account by username
func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	return s.getAccount(ctx, "username", username)
}

// GetAccountByID retrieves account by ID
func (s *Storage) GetAccountByID(ctx context.Context, accountID string) (*models.Account, error) {
	return s.getAccount(ctx, "id", accountID)
}

// getAccount column всегда константа из этого файла, не пользовательский ввод
func (s *Storage) getAccount(ctx context.Context, column, value string) (*models.Account, error) {
	query := `
		SELECT id, username, password_hash, created_at, last_login
		FROM accounts
		WHERE ` + column + ` = ?
	`

	account := &models.Account{}
	var lastLogin sql.NullTime

	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&account.CreatedAt,
		&lastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if lastLogin.Valid {
		account.LastLogin = &lastLogin.Time
	}

	return account, nil
}

// UpdateLastLogin updates the last token issue time
func (s *Storage) UpdateLastLogin(ctx context.Context, accountID string, lastLogin time.Time) error {
	result, err := s.db.ExecContext(ctx, `UPDATE accounts SET last_login = ? WHERE id = ?`, lastLogin, accountID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	return expectOneRow(result, storage.ErrAccountNotFound)
}

// expectOneRow превращает "0 строк затронуто" в notFound
func expectOneRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
