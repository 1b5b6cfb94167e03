// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds server configuration.
type Config struct {
	Port        string
	DBPath      string // empty serves the embedded catalog
	DevMode     bool
	FilterDelay time.Duration
	MapWidth    int
	MapHeight   int
	CORSOrigins []string
}

// Defaults.
const (
	DefaultPort        = "8080"
	DefaultFilterDelay = 300 * time.Millisecond
	DefaultMapWidth    = 800
	DefaultMapHeight   = 600
)

// Load reads an optional .env file (the first envPath, or ./.env) and then
// builds a Config from ESTATE_* environment variables. Variables already set
// in the environment win over the file. A missing .env file is not an error.
func Load(envPath ...string) (Config, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env file: %w", err)
	}

	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:        envOrDefault("ESTATE_PORT", DefaultPort),
		DBPath:      os.Getenv("ESTATE_DB"),
		CORSOrigins: splitList(envOrDefault("ESTATE_CORS_ORIGINS", "*")),
	}

	var err error
	if cfg.DevMode, err = envBool("ESTATE_DEV", false); err != nil {
		return Config{}, err
	}
	if cfg.FilterDelay, err = envDuration("ESTATE_FILTER_DELAY", DefaultFilterDelay); err != nil {
		return Config{}, err
	}
	if cfg.MapWidth, err = envPositiveInt("ESTATE_MAP_WIDTH", DefaultMapWidth); err != nil {
		return Config{}, err
	}
	if cfg.MapHeight, err = envPositiveInt("ESTATE_MAP_HEIGHT", DefaultMapHeight); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parsing %s=%q: %w", key, v, err)
	}
	return b, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q: %w", key, v, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", key, v)
	}
	return d, nil
}

func envPositiveInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s=%q: %w", key, v, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, n)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
