package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Gemini edits
	GeminiAPIKey string
	GeminiModel  string

	// Rephrase fallback service
	RephraseURL    string
	RephraseAPIKey string

	// Postgres document store
	DatabaseURL   string
	DocCacheSize  int
	DefaultDocCap int

	// Redis edit history
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	HistoryPerDoc  int
	HistoryExpires time.Duration

	// MinIO source archive (optional)
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// Import worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("LEXAMPLIFY_API_KEY"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", "gemini-2.0-flash"),

		RephraseURL:    envOr("REPHRASE_URL", ""),
		RephraseAPIKey: os.Getenv("REPHRASE_API_KEY"),

		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DocCacheSize:  envInt("DOC_CACHE_SIZE", 256),
		DefaultDocCap: envInt("DEFAULT_DOC_LIST_LIMIT", 100),

		RedisAddr:      envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        envInt("REDIS_DB", 0),
		HistoryPerDoc:  envInt("HISTORY_PER_DOC", 50),
		HistoryExpires: envDuration("HISTORY_TTL", 30*24*time.Hour),

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    envOr("MINIO_BUCKET", "lexamplify-imports"),
		MinioUseSSL:    envBool("MINIO_USE_SSL", false),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.DocCacheSize <= 0 {
		cfg.DocCacheSize = 256
	}
	if cfg.DefaultDocCap <= 0 {
		cfg.DefaultDocCap = 100
	}
	if cfg.HistoryPerDoc <= 0 {
		cfg.HistoryPerDoc = 50
	}
	if cfg.HistoryExpires <= 0 {
		cfg.HistoryExpires = 30 * 24 * time.Hour
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("LEXAMPLIFY_API_KEY is required")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

// MinioEnabled reports whether the optional source archive is configured.
func (c Config) MinioEnabled() bool {
	return c.MinioEndpoint != "" && c.MinioAccessKey != "" && c.MinioSecretKey != ""
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
