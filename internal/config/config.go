package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Output files
	OutputDir      string
	MaxOutputFiles int
	DownloadName   string

	// Request limits
	MaxRequestBytes int64

	// CORS
	AllowedOrigins []string

	// Auth for /api routes; empty disables it.
	APIKey string

	// Stats
	StatsWindow time.Duration

	LogLevel slog.Level
}

// Load reads configuration from the environment. A .env file in the
// working directory, if present, fills in unset variables.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "5000"),

		OutputDir:      envOr("OUTPUT_DIR", "static"),
		MaxOutputFiles: envInt("MAX_OUTPUT_FILES", 9),
		DownloadName:   envOr("DOWNLOAD_NAME", "output.xlsx"),

		MaxRequestBytes: envInt64("MAX_REQUEST_BYTES", 10485760), // 10MB

		AllowedOrigins: envList("ALLOWED_ORIGINS", []string{"*"}),

		APIKey: os.Getenv("API_KEY"),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.MaxOutputFiles < 0 {
		cfg.MaxOutputFiles = 9
	}
	if cfg.MaxRequestBytes <= 0 {
		cfg.MaxRequestBytes = 10485760
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric: %q", c.Port)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR is required")
	}
	if strings.ContainsAny(c.DownloadName, `/\"`) {
		return fmt.Errorf("DOWNLOAD_NAME must be a bare file name: %q", c.DownloadName)
	}
	return nil
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

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			return lvl
		}
	}
	return fallback
}
