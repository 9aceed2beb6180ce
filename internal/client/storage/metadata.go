package storage

import "context"

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// GetLocalModified returns the epoch ms of the last journal write, 0 if none
	GetLocalModified(ctx context.Context) (int64, error)

	// SetLocalModified overrides the last journal write time
	SetLocalModified(ctx context.Context, modified int64) error

	// GetBackupFileID returns the cached remote id of the backup artifact, "" if unknown
	GetBackupFileID(ctx context.Context) (string, error)

	// SaveBackupFileID caches the remote id of the backup artifact
	SaveBackupFileID(ctx context.Context, id string) error

	// DeleteBackupFileID drops a cached id the remote no longer knows
	DeleteBackupFileID(ctx context.Context) error

	// GetClientID returns the configured OAuth client id, "" if unset
	GetClientID(ctx context.Context) (string, error)

	// SaveClientID stores the OAuth client id
	SaveClientID(ctx context.Context, clientID string) error
}
