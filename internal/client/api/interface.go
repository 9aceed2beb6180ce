package api

import (
	"context"

	"github.com/iudanet/wanderlust/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI операции облачного сервиса, которые использует клиент
type ClientAPI interface {
	Health(ctx context.Context) (*api.HealthResponse, error)
	Discovery(ctx context.Context) (*api.DiscoveryResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)
	Token(ctx context.Context, clientID, username, password, scope string) (*api.TokenResponse, error)

	FindFiles(ctx context.Context, token, name string) ([]api.FileMetadata, error)
	GetFile(ctx context.Context, token, id string) (*api.FileMetadata, error)
	DownloadFile(ctx context.Context, token, id string) ([]byte, error)
	CreateFile(ctx context.Context, token string, meta api.FileMetadata, content []byte) (*api.FileMetadata, error)
	UpdateFile(ctx context.Context, token, id string, meta api.FileMetadata, content []byte) (*api.FileMetadata, error)

	InsertEvent(ctx context.Context, token, calendarID string, event api.CalendarEvent) (*api.CalendarEvent, error)
	ListEvents(ctx context.Context, token, calendarID string) ([]api.CalendarEvent, error)
}

var _ ClientAPI = (*Client)(nil)
