package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

// isolate points every lookup location at a temp dir so the developer's
// own config and keys never leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, k := range []string{"WORDIZ_DB", "PORT", "WORDIZ_SERVER_PORT", "WORDIZ_LOG_LEVEL",
		"MINIMAX_API_KEY", "ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	return dir
}

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("db", "", "")
	fs.String("content", "./data", "")
	fs.String("log-level", "info", "")
	fs.Int("port", 8082, "")
	fs.Bool("no-audio", false, "")
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if want := filepath.Join(dir, "data", "wordiz", "wordiz.db"); cfg.Data.DB != want {
		t.Errorf("Data.DB = %q, want %q", cfg.Data.DB, want)
	}
	if cfg.Server.Port != 8082 {
		t.Errorf("Server.Port = %d, want 8082", cfg.Server.Port)
	}
	if cfg.RateLimit.RequestsPerHour != 20 || cfg.RateLimit.CooldownSeconds != 5 || cfg.RateLimit.RequestsPerDay != 0 {
		t.Errorf("RateLimit = %+v", cfg.RateLimit)
	}
	if !cfg.Audio.Enabled || cfg.Audio.Accent != "en-GB" || cfg.Audio.Rate != 0.8 {
		t.Errorf("Audio = %+v", cfg.Audio)
	}
	if cfg.LLM.Provider != "minimax" || cfg.LLM.MiniMax.Model != "MiniMax-M2.1" {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
	if cfg.LLM.Timeout != 30*time.Second || cfg.LLM.MaxTokens != 1000 {
		t.Errorf("LLM timeout/max tokens = %v/%d", cfg.LLM.Timeout, cfg.LLM.MaxTokens)
	}
	if cfg.LLM.Configured() {
		t.Error("LLM should not be configured without a key")
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
}

func TestLoadEnvironment(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "custom", "w.db")
	t.Setenv("WORDIZ_DB", db)
	t.Setenv("PORT", "9000")
	t.Setenv("WORDIZ_LOG_LEVEL", "debug")
	t.Setenv("MINIMAX_API_KEY", "sk-test")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.DB != db {
		t.Errorf("Data.DB = %q, want %q", cfg.Data.DB, db)
	}
	if _, err := os.Stat(filepath.Dir(db)); err != nil {
		t.Errorf("data dir not created: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if !cfg.LLM.Configured() {
		t.Error("expected LLM to be configured from MINIMAX_API_KEY")
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "9000")

	cfg, err := Load(testFlags(t, "--port", "7000", "--no-audio"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Audio.Enabled {
		t.Error("--no-audio should disable audio")
	}
}

func TestLoadUnsetFlagsKeepDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(testFlags(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8082 || cfg.Data.ContentDir != "./data" {
		t.Errorf("port=%d content=%q", cfg.Server.Port, cfg.Data.ContentDir)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "wordiz.yaml")
	content := `
log:
  level: warn
  format: json
ratelimit:
  requests_per_hour: 50
  requests_per_day: 200
llm:
  provider: openai
  openai:
    api_key: sk-file
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(testFlags(t, "--config", path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.RateLimit.RequestsPerHour != 50 || cfg.RateLimit.RequestsPerDay != 200 {
		t.Errorf("RateLimit = %+v", cfg.RateLimit)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.OpenAI.APIKey != "sk-file" {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
}

func TestLoadConfigDirFromXDG(t *testing.T) {
	dir := isolate(t)
	cfgDir := filepath.Join(dir, "config", "wordiz")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	toml := "[audio]\naccent = \"en-US\"\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "wordiz.toml"), []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, ".env"), []byte("GEMINI_API_KEY=from-dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("GEMINI_API_KEY") })
	os.Unsetenv("GEMINI_API_KEY")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Audio.Accent != "en-US" {
		t.Errorf("Audio.Accent = %q, want en-US", cfg.Audio.Accent)
	}
	if cfg.LLM.Gemini.APIKey != "from-dotenv" {
		t.Errorf("Gemini key = %q, want from-dotenv", cfg.LLM.Gemini.APIKey)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := Load(testFlags(t, "--config", "/nonexistent/wordiz.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	isolate(t)

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "Level"},
		{"bad accent", func(c *Config) { c.Audio.Accent = "fr-FR" }, "Accent"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "Port"},
		{"negative limit", func(c *Config) { c.RateLimit.RequestsPerHour = -1 }, "RequestsPerHour"},
		{"bad provider", func(c *Config) { c.LLM.Provider = "skynet" }, "Provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(nil)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not mention %s", err, tt.field)
			}
		})
	}
}
