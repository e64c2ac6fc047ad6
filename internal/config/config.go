package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/matheus3301/cmdc/internal/keycode"
	"go.uber.org/zap/zapcore"
)

// Config represents the global ~/.cmdc/config.toml.
type Config struct {
	DefaultProfile string        `toml:"default_profile"`
	Catalog        CatalogConfig `toml:"catalog"`
	Keys           KeysConfig    `toml:"keys"`
	Request        RequestConfig `toml:"request"`
	Metrics        MetricsConfig `toml:"metrics"`
	Log            LogConfig     `toml:"log"`
}

// CatalogConfig points at the user item catalog.
type CatalogConfig struct {
	Path             string   `toml:"path"`
	HistoryLimit     int      `toml:"history_limit"`
	DisabledFeatures []string `toml:"disabled_features"` // hides built-in pages, e.g. "terminal"
}

// KeysConfig controls how keyboard shortcuts are rendered.
type KeysConfig struct {
	Separator         string            `toml:"separator"`
	SequenceSeparator string            `toml:"sequence_separator"`
	Symbols           map[string]string `toml:"symbols"` // key code -> glyph
}

// RequestConfig configures request actions.
type RequestConfig struct {
	NATSURL string `toml:"nats_url"`
	Timeout string `toml:"timeout"`
}

// MetricsConfig configures the optional Prometheus endpoint.
type MetricsConfig struct {
	ListenAddr string `toml:"listen_addr"`
}

// LogConfig configures the log file.
type LogConfig struct {
	Level   string `toml:"level"`
	Console bool   `toml:"console"`
}

const defaultRequestTimeout = 5 * time.Second

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{HistoryLimit: 20},
		Keys: KeysConfig{
			Separator:         "+",
			SequenceSeparator: " / ",
		},
		Request: RequestConfig{Timeout: defaultRequestTimeout.String()},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads config from the given path on top of Default. Returns an error if the file is missing.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

// SymbolTable builds the key symbol table from [keys.symbols].
func (c *Config) SymbolTable() (*keycode.Table, error) {
	overrides := make(map[keycode.Code]string, len(c.Keys.Symbols))
	for k, v := range c.Keys.Symbols {
		n, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("keys.symbols: invalid key code %q", k)
		}
		overrides[keycode.Code(n)] = v
	}
	return keycode.NewTable(overrides), nil
}

// RequestTimeout parses request.timeout, falling back to the default.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.Request.Timeout))
	if err != nil || d <= 0 {
		return defaultRequestTimeout
	}
	return d
}

// LogLevel parses log.level, falling back to info.
func (c *Config) LogLevel() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
