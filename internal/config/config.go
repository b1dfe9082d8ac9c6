package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the branchreview configuration.
type Config struct {
	// Repo and Branch identify a single run and are only ever set from flags.
	Repo   string `json:"-"`
	Branch string `json:"-"`

	Base        string    `json:"base"`
	Model       string    `json:"model"`
	Provider    string    `json:"provider"`
	Format      string    `json:"format"`
	Redact      bool      `json:"redact"`
	Concurrency int       `json:"concurrency,omitempty"`
	Log         LogConfig `json:"log"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// ConfigurationError reports missing or invalid settings.
type ConfigurationError struct {
	Missing []string
	Problem string
}

func (e *ConfigurationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required flags: "+strings.Join(e.Missing, ", "))
	}
	if e.Problem != "" {
		parts = append(parts, e.Problem)
	}
	return strings.Join(parts, "; ")
}

// DotEnvFile is the optional environment file loaded by Load.
var DotEnvFile = ".env"

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Base:     "main",
		Model:    "llama3.2",
		Provider: "ollama",
		Format:   "text",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that a run has everything it needs.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Repo) == "" {
		missing = append(missing, "--repo")
	}
	if strings.TrimSpace(c.Branch) == "" {
		missing = append(missing, "--branch")
	}
	var problem string
	switch c.Format {
	case "text", "json":
	default:
		problem = fmt.Sprintf("unsupported output format: %s", c.Format)
	}
	if len(missing) > 0 || problem != "" {
		return &ConfigurationError{Missing: missing, Problem: problem}
	}
	return nil
}

// ConfigDir returns the platform-appropriate config directory for branchreview.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "branchreview"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "branchreview"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "branchreview"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "branchreview"), nil
	default:
		return filepath.Join(home, ".config", "branchreview"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- .env/env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)

	if err := loadDotEnv(DotEnvFile); err != nil {
		return Config{}, err
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// loadDotEnv populates the process environment from path. Variables already
// set in the environment win. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func mergeFile(dst *Config, src Config) {
	if src.Base != "" {
		dst.Base = src.Base
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.Concurrency > 0 {
		dst.Concurrency = src.Concurrency
	}
	if src.Log.Level != "" {
		dst.Log.Level = src.Log.Level
	}
	if src.Log.Format != "" {
		dst.Log.Format = src.Log.Format
	}
	// Redact defaults to false, so a true in the file is always explicit.
	dst.Redact = dst.Redact || src.Redact
}

func mergeEnv(cfg *Config) error {
	if v := os.Getenv("BRANCHREVIEW_BASE"); v != "" {
		cfg.Base = v
	}
	if v := os.Getenv("BRANCHREVIEW_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("BRANCHREVIEW_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("BRANCHREVIEW_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("BRANCHREVIEW_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("BRANCHREVIEW_REDACT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("BRANCHREVIEW_REDACT must be a boolean: %w", err)
		}
		cfg.Redact = b
	}
	if v := os.Getenv("BRANCHREVIEW_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BRANCHREVIEW_CONCURRENCY must be an integer: %w", err)
		}
		cfg.Concurrency = n
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	if overrides == nil {
		return nil
	}
	if v, ok := overrides["repo"]; ok {
		cfg.Repo = v
	}
	if v, ok := overrides["branch"]; ok {
		cfg.Branch = v
	}
	for key, value := range overrides {
		if key == "repo" || key == "branch" || value == "" {
			continue
		}
		if err := SetField(cfg, key, value); err != nil {
			return err
		}
	}
	return nil
}

// keys lists the names accepted by SetField, in the order they are documented.
var keys = []string{"base", "model", "provider", "format", "redact", "concurrency", "log.level", "log.format"}

// Keys returns the config keys accepted by SetField.
func Keys() []string {
	return append([]string(nil), keys...)
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "base":
		cfg.Base = value
	case "model":
		cfg.Model = value
	case "provider":
		cfg.Provider = value
	case "format":
		cfg.Format = value
	case "redact":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("redact must be a boolean: %w", err)
		}
		cfg.Redact = b
	case "concurrency":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("concurrency must be an integer: %w", err)
		}
		cfg.Concurrency = n
	case "log.level":
		cfg.Log.Level = value
	case "log.format":
		cfg.Log.Format = value
	default:
		return fmt.Errorf("unknown config key: %s (valid keys: %s)", key, strings.Join(keys, ", "))
	}
	return nil
}
