package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultAPIBaseURL = "https://www.fantasycritic.games/api"

type Config struct {
	Token            string
	DatabaseURL      string
	APIBaseURL       string
	ScoreThreshold   float64
	LiveCacheTTL     time.Duration
	BaselineCacheTTL time.Duration
	DedupeWindow     time.Duration
	MetricsAddr      string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	token := readSecret("discord_token")
	if token == "" {
		token = os.Getenv("DISCORD_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is not set (via secret or env var)")
	}

	dbURL := readSecret("database_url")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set (via secret or env var)")
	}

	cfg := &Config{
		Token:            token,
		DatabaseURL:      dbURL,
		APIBaseURL:       envString("FC_API_BASE_URL", DefaultAPIBaseURL),
		ScoreThreshold:   envFloat("SCORE_NOISE_FLOOR", 2.0),
		LiveCacheTTL:     envDuration("LIVE_CACHE_TTL", 30*time.Second),
		BaselineCacheTTL: envDuration("BASELINE_CACHE_TTL", 24*time.Hour),
		DedupeWindow:     envDuration("DEDUPE_WINDOW", time.Hour),
		MetricsAddr:      envString("METRICS_ADDR", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var secretsDir = "/run/secrets/"

func readSecret(name string) string {
	data, err := os.ReadFile(secretsDir + name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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
