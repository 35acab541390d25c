package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL     string
	SessionFile    string
	MediaUploadURL string
	MediaMaxSize   int64
	LogLevel       string
	LogFormat      string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:     getEnv("BLOG_API_URL", "http://localhost:8080"),
		SessionFile:    getEnv("BLOG_SESSION_FILE", defaultSessionFile()),
		MediaUploadURL: getEnv("MEDIA_UPLOAD_URL", ""),
		MediaMaxSize:   getInt64("MEDIA_MAX_SIZE", 10485760),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "pretty"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("BLOG_API_URL cannot be empty")
	}

	if strings.TrimSpace(c.SessionFile) == "" {
		return fmt.Errorf("BLOG_SESSION_FILE cannot be empty")
	}

	if c.MediaMaxSize <= 0 {
		return fmt.Errorf("MEDIA_MAX_SIZE must be positive")
	}

	return nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".blogctl/session.json"
	}

	return filepath.Join(home, ".blogctl", "session.json")
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt64(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}

	return v
}
