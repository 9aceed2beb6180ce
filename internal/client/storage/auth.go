package storage

import (
	"context"
	"time"
)

//go:generate moq -out auth_mock.go . AuthStorage

// AuthStorage defines interface for caching the access token on client
type AuthStorage interface {
	// SaveAuth stores the access token
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves the cached access token
	// Returns ErrAuthNotFound if no token is cached
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes the cached token (logout)
	DeleteAuth(ctx context.Context) error
}

// AuthData cached bearer token with its granted scopes
type AuthData struct {
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
	ExpiresAt   int64  `json:"expires_at"`
}

// Expired reports whether the token is past its expiry at now
func (a *AuthData) Expired(now time.Time) bool {
	return a.ExpiresAt > 0 && now.Unix() >= a.ExpiresAt
}
