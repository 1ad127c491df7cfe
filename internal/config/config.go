package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Chapter files referenced by outlines are resolved under this directory.
	ContentRoot string

	// Outline building
	MaxDepth          int
	TitleTimeout      time.Duration
	DropEmptyChapters bool

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	LogLevel slog.Level
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("OUTLINE_API_KEY"),

		ContentRoot: envOr("CONTENT_ROOT", "."),

		MaxDepth:          envInt("MAX_DEPTH", 32),
		TitleTimeout:      envDuration("TITLE_TIMEOUT", 5*time.Second),
		DropEmptyChapters: envBool("DROP_EMPTY_CHAPTERS", false),

		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 1<<20), // 1MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 32
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 1 << 20
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.APIKey, validation.Required.Error("OUTLINE_API_KEY is required")),
		validation.Field(&c.ContentRoot, validation.Required.Error("CONTENT_ROOT is required")),
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.TitleTimeout, validation.Min(time.Duration(0))),
	)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(strings.TrimSpace(v))); err == nil {
			return l
		}
	}
	return fallback
}
