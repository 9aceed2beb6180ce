// Package config загружает настройки облачного сервиса из окружения.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

// Config настройки сервера. Читается один раз при старте.
type Config struct {
	Addr            string
	DatabasePath    string
	LogLevel        string
	JWTSecret       []byte
	AccessTokenTTL  time.Duration
	ShutdownTimeout time.Duration
	RateLimit       rate.Limit
	RateBurst       int
	MaxUploadBytes  int64
}

// Load читает .env (если есть) и переменные окружения.
// Обязательные переменные перечисляются в ошибке все сразу.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv не перезаписывает уже заданные переменные
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{}

	var missing []string

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	cfg.JWTSecret = []byte(secret)

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	cfg.Addr = getEnvString("SERVER_ADDR", ":8080")
	cfg.DatabasePath = getEnvString("DATABASE_PATH", "wanderlust-server.db")
	cfg.LogLevel = getEnvString("LOG_LEVEL", "info")
	cfg.AccessTokenTTL = getEnvDuration("ACCESS_TOKEN_TTL", time.Hour)
	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	cfg.RateLimit = rate.Limit(getEnvFloat("RATE_LIMIT_RPS", 10))
	cfg.RateBurst = getEnvInt("RATE_LIMIT_BURST", 30)
	cfg.MaxUploadBytes = int64(getEnvInt("MAX_UPLOAD_BYTES", 32<<20))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения после загрузки
func (c *Config) Validate() error {
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes")
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel переводит LOG_LEVEL в slog.Level
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", level)
	}
	return l, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
