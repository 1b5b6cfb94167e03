package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultServerURL is used when no server is configured.
const DefaultServerURL = "http://localhost:8080"

// CLIConfig is the estate section of ~/.config/estate/config.yaml.
type CLIConfig struct {
	ServerURL string `yaml:"server_url,omitempty"`
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "estate", "config.yaml"), nil
}

// loadConfig returns a zero-value config if the file doesn't exist.
func loadConfig() (CLIConfig, error) {
	path, err := configPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return CLIConfig{}, nil
	}
	if err != nil {
		return CLIConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.ServerURL != "" {
		if cfg.ServerURL, err = parseServerURL(cfg.ServerURL); err != nil {
			return CLIConfig{}, fmt.Errorf("config %s: %w", path, err)
		}
	}

	return cfg, nil
}

// saveConfig writes cfg readable by the owner only.
func saveConfig(cfg CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// getServerURL resolves the API server: the --server flag, then
// ESTATE_SERVER_URL, then the config file, then DefaultServerURL.
func getServerURL() string {
	if flagServer != "" {
		return flagServer
	}
	if v := os.Getenv("ESTATE_SERVER_URL"); v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil && cfg.ServerURL != "" {
		return cfg.ServerURL
	}
	return DefaultServerURL
}

// parseServerURL accepts absolute http and https URLs and strips any
// trailing slash.
func parseServerURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid server URL %q: must be http(s)://host[:port]", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	return u.String(), nil
}
