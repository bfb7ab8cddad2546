package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/joho/godotenv"
)

const (
	DefaultPracticumEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultPollSchedule      = "@every 600s"
	DefaultRequestTimeout    = 30 * time.Second
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID string

	PracticumEndpoint    string
	PollSchedule         string // cron spec, "@every 600s" by default
	RequestTimeout       time.Duration
	NotifyEmptyResponses bool // send "no new statuses" on every empty poll
	NotifyOnStart        bool

	DatabaseURL string // optional, enables the delivery journal
	MetricsAddr string // optional, enables /metrics and /healthz
	LogLevel    string
	Environment string
}

// Load reads configuration from environment variables and .env file (if present).
// Every absent secret is reported at once in a *homework.ConfigurationError.
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from an arbitrary lookup function.
func FromEnv(getenv func(string) string) (*AppConfig, error) {
	cfg := &AppConfig{}
	var err error

	var missing []string
	secret := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	cfg.PracticumToken = secret("PRACTICUM_TOKEN")
	cfg.TelegramToken = secret("TELEGRAM_TOKEN")
	cfg.TelegramChatID = secret("TELEGRAM_CHAT_ID")
	if len(missing) > 0 {
		return nil, &homework.ConfigurationError{Missing: missing}
	}

	cfg.PracticumEndpoint = getenv("PRACTICUM_ENDPOINT")
	if cfg.PracticumEndpoint == "" {
		cfg.PracticumEndpoint = DefaultPracticumEndpoint
	}

	cfg.PollSchedule = getenv("POLL_SCHEDULE")
	if cfg.PollSchedule == "" {
		cfg.PollSchedule = DefaultPollSchedule
	}

	cfg.RequestTimeout = DefaultRequestTimeout
	if raw := getenv("REQUEST_TIMEOUT"); raw != "" {
		cfg.RequestTimeout, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
		}
		if cfg.RequestTimeout <= 0 {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: must be positive, got %s", raw)
		}
	}

	cfg.NotifyEmptyResponses, err = boolVar(getenv, "NOTIFY_EMPTY_RESPONSES", false)
	if err != nil {
		return nil, err
	}
	cfg.NotifyOnStart, err = boolVar(getenv, "NOTIFY_ON_START", true)
	if err != nil {
		return nil, err
	}

	cfg.DatabaseURL = getenv("DATABASE_URL")
	cfg.MetricsAddr = getenv("METRICS_ADDR")

	cfg.LogLevel = strings.ToLower(getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}

func boolVar(getenv func(string) string, key string, def bool) (bool, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
