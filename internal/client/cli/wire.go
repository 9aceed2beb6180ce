package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/iudanet/wanderlust/internal/client/api"
	"github.com/iudanet/wanderlust/internal/client/auth"
	"github.com/iudanet/wanderlust/internal/client/config"
	"github.com/iudanet/wanderlust/internal/client/data"
	"github.com/iudanet/wanderlust/internal/client/iocli"
	"github.com/iudanet/wanderlust/internal/client/media"
	"github.com/iudanet/wanderlust/internal/client/storage/boltdb"
	"github.com/iudanet/wanderlust/internal/client/sync"
)

// UsernameEnv вместе с PasswordEnv позволяет получить токен без интерактивного ввода
const UsernameEnv = "WANDERLUST_USERNAME"

// DefaultBuilder собирает рабочие зависимости: BoltDB, HTTP клиент, сессию, сервисы
func DefaultBuilder(ctx context.Context, cfg *config.Config, console iocli.IO, logger *slog.Logger) (*Deps, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store, err := boltdb.New(ctx, cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	clientID, err := resolveClientID(ctx, cfg, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	apiClient := api.NewClient(cfg.Server.URL)

	var prompter auth.ConsentPrompter = auth.NewConsolePrompter(console)
	if u, p := os.Getenv(UsernameEnv), os.Getenv(PasswordEnv); u != "" && p != "" {
		prompter = auth.StaticPrompter{Credentials: auth.Credentials{Username: u, Password: p}}
	}
	session := auth.NewSession(apiClient, store, prompter, clientID, logger)

	deps := &Deps{
		Data:    data.NewService(store, store),
		Session: session,
		Sync: sync.NewService(apiClient, session, store, logger, sync.Options{
			FileName:   cfg.Sync.BackupFileName,
			CalendarID: cfg.Sync.CalendarID,
			TimeZone:   cfg.Sync.TimeZone,
		}),
		Closer: store,
		Poll: media.PollOptions{
			Interval: cfg.Media.PollInterval,
			MaxPolls: cfg.Media.MaxPolls,
		},
	}

	if cfg.Media.APIKey != "" {
		backend, err := media.NewGenAIBackend(ctx, cfg.Media.APIKey)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		deps.Media = media.NewService(backend, cfg.Media.APIKey, logger)
	}

	return deps, nil
}

// resolveClientID: явный client_id из конфигурации запоминается в хранилище,
// иначе берется сохраненный, иначе config.DefaultClientID
func resolveClientID(ctx context.Context, cfg *config.Config, store *boltdb.Storage) (string, error) {
	if cfg.Server.ClientID != "" {
		if err := store.SaveClientID(ctx, cfg.Server.ClientID); err != nil {
			return "", fmt.Errorf("failed to save client id: %w", err)
		}
		return cfg.Server.ClientID, nil
	}

	saved, err := store.GetClientID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read client id: %w", err)
	}
	if saved != "" {
		return saved, nil
	}
	return config.DefaultClientID, nil
}
