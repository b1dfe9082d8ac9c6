package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points the config file and .env lookup at an empty temp dir and
// clears every BRANCHREVIEW_* variable for the duration of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{
		"BRANCHREVIEW_BASE", "BRANCHREVIEW_MODEL", "BRANCHREVIEW_FORMAT",
		"BRANCHREVIEW_LOG_LEVEL", "BRANCHREVIEW_LOG_FORMAT",
		"BRANCHREVIEW_REDACT", "BRANCHREVIEW_CONCURRENCY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	orig := DotEnvFile
	DotEnvFile = filepath.Join(dir, ".env")
	t.Cleanup(func() { DotEnvFile = orig })
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Base != "main" {
		t.Errorf("Default base = %q, want %q", cfg.Base, "main")
	}
	if cfg.Model != "llama3.2" {
		t.Errorf("Default model = %q, want %q", cfg.Model, "llama3.2")
	}
	if cfg.Provider != "ollama" {
		t.Errorf("Default provider = %q, want %q", cfg.Provider, "ollama")
	}
	if cfg.Format != "text" {
		t.Errorf("Default format = %q, want %q", cfg.Format, "text")
	}
	if cfg.Redact {
		t.Error("Default redact should be false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		repo    string
		branch  string
		format  string
		missing []string
		wantErr bool
	}{
		{"ok", "~/code/app", "feature", "text", nil, false},
		{"json ok", "/r", "b", "json", nil, false},
		{"missing repo", "", "feature", "text", []string{"--repo"}, true},
		{"missing branch", "/r", " ", "text", []string{"--branch"}, true},
		{"missing both", "", "", "text", []string{"--repo", "--branch"}, true},
		{"bad format", "/r", "b", "sarif", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Repo, cfg.Branch, cfg.Format = tt.repo, tt.branch, tt.format
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var ce *ConfigurationError
			if !errors.As(err, &ce) {
				t.Fatalf("error = %T, want *ConfigurationError", err)
			}
			if strings.Join(ce.Missing, ",") != strings.Join(tt.missing, ",") {
				t.Errorf("Missing = %v, want %v", ce.Missing, tt.missing)
			}
		})
	}
}

func TestConfigurationError_Message(t *testing.T) {
	e := &ConfigurationError{Missing: []string{"--repo", "--branch"}}
	if e.Error() != "missing required flags: --repo, --branch" {
		t.Errorf("Error() = %q", e.Error())
	}
	e = &ConfigurationError{Missing: []string{"--repo"}, Problem: "unsupported output format: x"}
	if e.Error() != "missing required flags: --repo; unsupported output format: x" {
		t.Errorf("Error() = %q", e.Error())
	}
}

func TestMergeEnv(t *testing.T) {
	isolate(t)
	t.Setenv("BRANCHREVIEW_BASE", "develop")
	t.Setenv("BRANCHREVIEW_MODEL", "qwen2.5-coder")
	t.Setenv("BRANCHREVIEW_FORMAT", "json")
	t.Setenv("BRANCHREVIEW_REDACT", "true")
	t.Setenv("BRANCHREVIEW_CONCURRENCY", "4")
	t.Setenv("BRANCHREVIEW_LOG_LEVEL", "debug")

	cfg := Default()
	if err := mergeEnv(&cfg); err != nil {
		t.Fatalf("mergeEnv error: %v", err)
	}
	if cfg.Base != "develop" {
		t.Errorf("Base = %q", cfg.Base)
	}
	if cfg.Model != "qwen2.5-coder" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q", cfg.Format)
	}
	if !cfg.Redact {
		t.Error("Redact should be true")
	}
	if cfg.Concurrency != 4 {
		t.Errorf("Concurrency = %d", cfg.Concurrency)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestMergeEnv_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("BRANCHREVIEW_CONCURRENCY", "many")
	cfg := Default()
	if err := mergeEnv(&cfg); err == nil {
		t.Error("expected error for non-integer concurrency")
	}
}

func TestMergeOverrides(t *testing.T) {
	cfg := Default()
	err := mergeOverrides(&cfg, map[string]string{
		"repo":   "~/src/app",
		"branch": "feature/login",
		"base":   "develop",
		"model":  "codellama",
		"format": "json",
		"redact": "true",
	})
	if err != nil {
		t.Fatalf("mergeOverrides error: %v", err)
	}
	if cfg.Repo != "~/src/app" || cfg.Branch != "feature/login" {
		t.Errorf("Repo/Branch = %q/%q", cfg.Repo, cfg.Branch)
	}
	if cfg.Base != "develop" || cfg.Model != "codellama" || cfg.Format != "json" || !cfg.Redact {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestMergeOverrides_Nil(t *testing.T) {
	cfg := Default()
	if err := mergeOverrides(&cfg, nil); err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "llama3.2" {
		t.Errorf("Model changed with nil overrides")
	}
}

func TestMergeOverrides_UnknownKey(t *testing.T) {
	cfg := Default()
	if err := mergeOverrides(&cfg, map[string]string{"bogus": "x"}); err == nil {
		t.Error("expected error for unknown override key")
	}
}

func TestSetField(t *testing.T) {
	cfg := Default()
	tests := []struct {
		key, value string
		wantErr    bool
	}{
		{"base", "trunk", false},
		{"model", "mistral", false},
		{"provider", "ollama", false},
		{"format", "json", false},
		{"redact", "yes", true},
		{"redact", "1", false},
		{"concurrency", "8", false},
		{"concurrency", "x", true},
		{"log.level", "warn", false},
		{"log.format", "json", false},
		{"unknown", "x", true},
	}
	for _, tt := range tests {
		err := SetField(&cfg, tt.key, tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("SetField(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
		}
	}
	if cfg.Base != "trunk" || cfg.Model != "mistral" || cfg.Concurrency != 8 || !cfg.Redact {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestKeys_AllAcceptedBySetField(t *testing.T) {
	for _, key := range Keys() {
		cfg := Default()
		if err := SetField(&cfg, key, "1"); err != nil {
			t.Errorf("SetField(%q) error: %v", key, err)
		}
	}

	err := SetField(&Config{}, "nope", "x")
	if err == nil || !strings.Contains(err.Error(), "log.format") {
		t.Errorf("unknown key error should list valid keys, got %v", err)
	}

	k := Keys()
	k[0] = "mutated"
	if Keys()[0] != "base" {
		t.Error("Keys should return a copy")
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	dir := isolate(t)

	cfg := Default()
	cfg.Model = "deepseek-coder"
	cfg.Base = "develop"
	cfg.Repo = "/should/not/persist"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	path := filepath.Join(dir, "branchreview", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if strings.Contains(string(data), "/should/not/persist") {
		t.Error("repo must not be written to the config file")
	}

	loaded, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if loaded.Model != "deepseek-coder" || loaded.Base != "develop" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	isolate(t)
	cfg, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Model != "" {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "branchreview", "config.json")
	os.MkdirAll(filepath.Dir(path), 0o755)
	os.WriteFile(path, []byte("{not json"), 0o644)
	if _, err := LoadFile(); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	fileCfg := Config{Base: "file-base", Model: "file-model", Format: "json"}
	if err := Save(fileCfg); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(DotEnvFile, []byte("BRANCHREVIEW_MODEL=dotenv-model\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(map[string]string{"format": "text", "repo": "/r", "branch": "b"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Base != "file-base" {
		t.Errorf("Base = %q, want file value", cfg.Base)
	}
	if cfg.Model != "dotenv-model" {
		t.Errorf("Model = %q, want .env value", cfg.Model)
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %q, want flag value", cfg.Format)
	}
	if cfg.Provider != "ollama" {
		t.Errorf("Provider = %q, want default", cfg.Provider)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate error: %v", err)
	}
}

func TestLoad_EnvBeatsDotEnv(t *testing.T) {
	isolate(t)
	os.WriteFile(DotEnvFile, []byte("BRANCHREVIEW_MODEL=dotenv-model\n"), 0o644)
	t.Setenv("BRANCHREVIEW_MODEL", "env-model")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Model != "env-model" {
		t.Errorf("Model = %q, want env-model", cfg.Model)
	}
}
