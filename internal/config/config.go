package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds citadel's runtime settings. Env vars override the file.
type Config struct {
	APIBase        string        `env:"CITADEL_API_BASE"`
	LogPath        string        `env:"CITADEL_LOG_PATH"`
	RequestTimeout time.Duration `env:"CITADEL_REQUEST_TIMEOUT"`
	SearchDebounce time.Duration `env:"CITADEL_SEARCH_DEBOUNCE"`
	RetryCooldown  time.Duration `env:"CITADEL_RETRY_COOLDOWN"`
}

const (
	defaultConfigPath     = "~/.config/citadel/config.toml"
	defaultAPIBase        = "https://rickandmortyapi.com/api"
	defaultLogPath        = "~/.local/state/citadel/citadel.log"
	defaultRequestTimeout = 10 * time.Second
	defaultSearchDebounce = 300 * time.Millisecond
	defaultRetryCooldown  = 3 * time.Second
)

// Default returns the settings used when neither file nor env say otherwise.
func Default() Config {
	return Config{
		APIBase:        defaultAPIBase,
		LogPath:        mustExpand(defaultLogPath),
		RequestTimeout: defaultRequestTimeout,
		SearchDebounce: defaultSearchDebounce,
		RetryCooldown:  defaultRetryCooldown,
	}
}

// Load reads the TOML file at path (or the default location), then applies
// CITADEL_* environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := readFile(resolved, &cfg); err != nil {
		return Config{}, err
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg.normalize(), nil
}

// ParseEnv overlays environment variables onto target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func readFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase        string `toml:"api_base"`
		LogPath        string `toml:"log_path"`
		RequestTimeout string `toml:"request_timeout"`
		SearchDebounce string `toml:"search_debounce"`
		RetryCooldown  string `toml:"retry_cooldown"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = v
	}
	durations := []struct {
		key  string
		raw  string
		dest *time.Duration
	}{
		{"request_timeout", raw.RequestTimeout, &cfg.RequestTimeout},
		{"search_debounce", raw.SearchDebounce, &cfg.SearchDebounce},
		{"retry_cooldown", raw.RetryCooldown, &cfg.RetryCooldown},
	}
	for _, d := range durations {
		v := strings.TrimSpace(d.raw)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: %s: %w", d.key, err)
		}
		*d.dest = parsed
	}
	return nil
}

// normalize fills blanks and non-positive durations with defaults and expands
// the log path.
func (c Config) normalize() Config {
	c.APIBase = strings.TrimSpace(c.APIBase)
	if c.APIBase == "" {
		c.APIBase = defaultAPIBase
	}
	c.LogPath = strings.TrimSpace(c.LogPath)
	if c.LogPath == "" {
		c.LogPath = defaultLogPath
	}
	c.LogPath = mustExpand(c.LogPath)
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.SearchDebounce <= 0 {
		c.SearchDebounce = defaultSearchDebounce
	}
	if c.RetryCooldown <= 0 {
		c.RetryCooldown = defaultRetryCooldown
	}
	return c
}

// Dir returns the directory holding citadel's config and prefs files.
func Dir() string {
	return filepath.Dir(mustExpand(defaultConfigPath))
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
