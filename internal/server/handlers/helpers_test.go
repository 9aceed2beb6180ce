package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/wanderlust/internal/models"
	"github.com/iudanet/wanderlust/internal/server/jwt"
	"github.com/iudanet/wanderlust/internal/server/storage/sqlite"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestStorage(t *testing.T) *sqlite.Storage {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// createTestAccount создает аккаунт напрямую в хранилище (без хеширования)
func createTestAccount(t *testing.T, store *sqlite.Storage, username string) string {
	t.Helper()

	id := uuid.New().String()
	err := store.CreateAccount(context.Background(), &models.Account{
		ID:           id,
		Username:     username,
		PasswordHash: "unused",
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)
	return id
}

// withAccount имитирует AuthMiddleware: кладет claims аккаунта в контекст
func withAccount(r *http.Request, accountID string) *http.Request {
	claims := &jwt.Claims{AccountID: accountID, Username: "traveler", Scope: "drive.file calendar.events"}
	return r.WithContext(WithClaims(r.Context(), claims))
}

// countingRecorder считает доменные события
type countingRecorder struct {
	mu            sync.Mutex
	clients       []string
	registrations int
	uploads       int
	uploadBytes   int
	events        int
}

func (c *countingRecorder) RecordRegistration() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registrations++
}

func (c *countingRecorder) RecordTokenIssued(clientID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clients = append(c.clients, clientID)
}

func (c *countingRecorder) RecordUpload(bytes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uploads++
	c.uploadBytes += bytes
}

func (c *countingRecorder) RecordEventCreated() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events++
}
