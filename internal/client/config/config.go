package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultClientID идентификатор клиента, если пользователь не задал свой
const DefaultClientID = "wanderlust-cli"

// Config настройки клиента журнала
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Sync    SyncConfig    `yaml:"sync"`
	Media   MediaConfig   `yaml:"media"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig облачный сервис бэкапа и календаря
type ServerConfig struct {
	URL      string `yaml:"url"`
	ClientID string `yaml:"client_id"`
}

// StorageConfig локальное хранилище
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// SyncConfig бэкап и календарь
type SyncConfig struct {
	BackupFileName string `yaml:"backup_file_name"`
	CalendarID     string `yaml:"calendar_id"`
	TimeZone       string `yaml:"time_zone"`
}

// MediaConfig генерация фото и видео
type MediaConfig struct {
	APIKey       string        `yaml:"api_key"`
	PollInterval time.Duration `yaml:"poll_interval"`
	MaxPolls     int           `yaml:"max_polls"`
}

// LoggingConfig уровень логов клиента
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultDir returns $HOME/.wanderlust, or the working directory when HOME is unknown
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".wanderlust")
}

// DefaultPath путь к файлу конфигурации по умолчанию
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:      "http://localhost:8080",
			ClientID: "",
		},
		Storage: StorageConfig{
			DBPath: filepath.Join(DefaultDir(), "journal.db"),
		},
		Sync: SyncConfig{
			BackupFileName: "wanderlust_backup.json",
			CalendarID:     "primary",
		},
		Media: MediaConfig{
			PollInterval: 10 * time.Second,
			MaxPolls:     60,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load читает YAML файл поверх значений по умолчанию и применяет WANDERLUST_* переменные.
// Отсутствующий файл не ошибка.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save записывает конфигурацию; файл может содержать API ключ, поэтому права 0600
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	stringVars := map[string]*string{
		"WANDERLUST_SERVER_URL":    &c.Server.URL,
		"WANDERLUST_CLIENT_ID":     &c.Server.ClientID,
		"WANDERLUST_DB":            &c.Storage.DBPath,
		"WANDERLUST_BACKUP_FILE":   &c.Sync.BackupFileName,
		"WANDERLUST_CALENDAR_ID":   &c.Sync.CalendarID,
		"WANDERLUST_TIME_ZONE":     &c.Sync.TimeZone,
		"WANDERLUST_GENAI_API_KEY": &c.Media.APIKey,
		"WANDERLUST_LOG_LEVEL":     &c.Logging.Level,
	}
	for name, dst := range stringVars {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	// общепринятое имя ключа Gemini, если свой не задан
	if c.Media.APIKey == "" {
		c.Media.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if v := os.Getenv("WANDERLUST_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid WANDERLUST_POLL_INTERVAL: %w", err)
		}
		c.Media.PollInterval = d
	}
	if v := os.Getenv("WANDERLUST_MAX_POLLS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid WANDERLUST_MAX_POLLS: %w", err)
		}
		c.Media.MaxPolls = n
	}
	return nil
}

// Validate проверяет значения, которые нельзя исправить молча
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server url is required")
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Sync.TimeZone != "" {
		if _, err := time.LoadLocation(c.Sync.TimeZone); err != nil {
			return fmt.Errorf("invalid time zone %q: %w", c.Sync.TimeZone, err)
		}
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel переводит уровень логов из конфигурации в slog.Level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}
