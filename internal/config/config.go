package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	OpenAIAPIKey string
	EmbedModel   string
	ChatModel    string

	SECUserAgent string
	SECRateLimit float64
	Tickers      []string
	Forms        []string
	FetchLimit   int

	DBPath     string
	ChunksPath string
	IndexPath  string
	MetaPath   string
	ReportDir  string

	ChunkSize    int
	ChunkOverlap int

	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// If a .env file exists in the current directory or a parent directory, it is
// loaded first; environment variables already set take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	// Walk up from the working directory looking for a .env file.
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		EmbedModel:   getEnv("EMBED_MODEL", "text-embedding-3-small"),
		ChatModel:    getEnv("CHAT_MODEL", "gpt-4o-mini"),
		SECUserAgent: getEnv("SEC_USER_AGENT", "secbrief/0.1 (contact: ops@example.com)"),
		Tickers:      splitList(getEnv("TICKERS", "AAPL,MSFT,NVDA,TSLA,AMZN")),
		Forms:        splitList(getEnv("FORMS", "8-K,10-Q")),
		DBPath:       getEnv("DB_PATH", "data/secbrief.db"),
		ChunksPath:   getEnv("CHUNKS_PATH", "data/chunks/sec_chunks.jsonl"),
		IndexPath:    getEnv("INDEX_PATH", "data/index/sec.index"),
		MetaPath:     getEnv("META_PATH", "data/index/sec_meta.json"),
		ReportDir:    getEnv("REPORT_DIR", "reports"),
		APIPort:      getEnv("API_PORT", "9000"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.SECRateLimit, err = parseFloat("SEC_RATE_LIMIT", 4.0); err != nil {
		return nil, err
	}
	if cfg.FetchLimit, err = parseInt("FETCH_LIMIT", 8); err != nil {
		return nil, err
	}
	if cfg.ChunkSize, err = parseInt("CHUNK_SIZE", 1200); err != nil {
		return nil, err
	}
	if cfg.ChunkOverlap, err = parseInt("CHUNK_OVERLAP", 150); err != nil {
		return nil, err
	}
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("CHUNK_SIZE must be greater than 0")
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE)")
	}

	switch strings.ToLower(getEnv("LOG_LEVEL", "info")) {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}

	return cfg, nil
}

// RequireOpenAIKey returns an error if no API key is configured. Commands that
// embed or chat call this before constructing clients so the failure is
// immediate rather than surfacing on the first request.
func (c *Config) RequireOpenAIKey() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY missing: set it in the environment or a .env file")
	}
	return nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return v, nil
}

func parseFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return v, nil
}

// splitList splits a comma-separated list, trimming whitespace and uppercasing
// entries. Tickers and form types are compared case-insensitively downstream,
// but EDGAR lookups expect uppercase.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
