package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/wanderlust/internal/client/auth"
	"github.com/iudanet/wanderlust/internal/client/config"
	"github.com/iudanet/wanderlust/internal/client/data"
	"github.com/iudanet/wanderlust/internal/client/iocli"
	"github.com/iudanet/wanderlust/internal/client/media"
	"github.com/iudanet/wanderlust/internal/client/sync"
)

// PasswordEnv переменная окружения с паролем аккаунта
const PasswordEnv = "WANDERLUST_PASSWORD"

// Session часть auth.Session, которая нужна командам
type Session interface {
	ValidateToken(ctx context.Context) error
	Status(ctx context.Context) (auth.TokenStatus, error)
	Username(ctx context.Context) string
	Register(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context) error
}

// MediaService AI-функции альбома
type MediaService interface {
	EditImage(ctx context.Context, image, prompt string) (*media.Image, error)
	GenerateVlog(ctx context.Context, prompt, startImage string, opts media.PollOptions) (*media.VideoHandle, error)
	Download(ctx context.Context, handle *media.VideoHandle, w io.Writer) (int64, error)
}

// Deps собранные зависимости команд
type Deps struct {
	Data    data.Service
	Session Session
	Sync    sync.Service
	// Media nil, если API ключ не задан
	Media  MediaService
	Closer io.Closer
	Poll   media.PollOptions
}

// Builder собирает зависимости по загруженной конфигурации
type Builder func(ctx context.Context, cfg *config.Config, console iocli.IO, logger *slog.Logger) (*Deps, error)

// Passwords источники пароля, кроме переменной окружения и интерактивного ввода
type Passwords struct {
	FromFile string
	FromArgs string
}

// Cli состояние одного запуска клиента
type Cli struct {
	io     iocli.IO
	build  Builder
	deps   *Deps
	logger *slog.Logger
	now    func() time.Time

	configPath string
	serverURL  string
	dbPath     string
	logLevel   string
	passwords  Passwords
}

// New создает CLI; build вызывается один раз перед выполнением команды
func New(console iocli.IO, build Builder) *Cli {
	return &Cli{
		io:    console,
		build: build,
		now:   time.Now,
	}
}

// setup загружает конфигурацию и собирает зависимости (cobra PersistentPreRunE)
func (c *Cli) setup(cmd *cobra.Command, _ []string) error {
	if c.deps != nil {
		return nil
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.serverURL != "" {
		cfg.Server.URL = c.serverURL
	}
	if c.dbPath != "" {
		cfg.Storage.DBPath = c.dbPath
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := config.ParseLevel(cfg.Logging.Level)
	c.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	deps, err := c.build(cmd.Context(), cfg, c.io, c.logger)
	if err != nil {
		return err
	}
	c.deps = deps
	return nil
}

// teardown закрывает хранилище (cobra PersistentPostRunE)
func (c *Cli) teardown(_ *cobra.Command, _ []string) error {
	if c.deps == nil || c.deps.Closer == nil {
		return nil
	}
	err := c.deps.Closer.Close()
	c.deps = nil
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// getPassword retrieves the account password with priority:
// 1. Environment variable WANDERLUST_PASSWORD
// 2. File given by --password-file
// 3. Command-line parameter --password
// 4. Interactive prompt (fallback)
func (c *Cli) getPassword(prompt string) (string, error) {
	if envPassword := os.Getenv(PasswordEnv); envPassword != "" {
		return envPassword, nil
	}

	if c.passwords.FromFile != "" {
		content, err := os.ReadFile(c.passwords.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", fmt.Errorf("password file is empty")
		}
		return password, nil
	}

	if c.passwords.FromArgs != "" {
		return c.passwords.FromArgs, nil
	}

	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	return password, nil
}

// requireMedia возвращает AI сервис или понятную ошибку
func (c *Cli) requireMedia() (MediaService, error) {
	if c.deps.Media == nil {
		return nil, errors.New("AI features are disabled: set WANDERLUST_GENAI_API_KEY or media.api_key in the config")
	}
	return c.deps.Media, nil
}
