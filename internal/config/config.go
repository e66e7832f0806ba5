// Package config loads wordiz settings from flags, the environment, an
// optional config file and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/wordiz/internal/llm"
	"github.com/abhisek/wordiz/internal/store"
)

// Config holds all configuration for wordiz.
type Config struct {
	Data      Data       `mapstructure:"data"`
	Log       Log        `mapstructure:"log"`
	Audio     Audio      `mapstructure:"audio"`
	Server    Server     `mapstructure:"server"`
	RateLimit RateLimit  `mapstructure:"ratelimit"`
	LLM       llm.Config `mapstructure:"llm"`
}

// Data locates the database and the word content.
type Data struct {
	DB         string `mapstructure:"db"`
	ContentDir string `mapstructure:"content_dir" validate:"required"`
}

// Log configures the logrus logger.
type Log struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
	File   string `mapstructure:"file"`
}

// Audio configures pronunciation playback.
type Audio struct {
	Enabled bool    `mapstructure:"enabled"`
	Command string  `mapstructure:"command"`
	Accent  string  `mapstructure:"accent" validate:"oneof=en-GB en-US"`
	Rate    float64 `mapstructure:"rate" validate:"gt=0,lte=2"`
}

// Server configures the Q&A HTTP server.
type Server struct {
	Port        int      `mapstructure:"port" validate:"min=1,max=65535"`
	StaticDir   string   `mapstructure:"static_dir"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// RateLimit bounds per-client question volume. A zero value disables
// the corresponding window.
type RateLimit struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute" validate:"min=0"`
	RequestsPerHour   int `mapstructure:"requests_per_hour" validate:"min=0"`
	RequestsPerDay    int `mapstructure:"requests_per_day" validate:"min=0"`
	CooldownSeconds   int `mapstructure:"cooldown_seconds" validate:"min=0"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"config":    "",
	"db":        "data.db",
	"content":   "data.content_dir",
	"log-level": "log.level",
	"log-file":  "log.file",
	"port":      "server.port",
	"static":    "server.static_dir",
	"provider":  "llm.provider",
	"no-audio":  "",
}

var validate = validator.New()

// Load builds the configuration. flags may be nil; any flag listed in
// flagKeys that the user set overrides every other source.
func Load(flags *pflag.FlagSet) (*Config, error) {
	loadDotEnv()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("WORDIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PORT is the conventional variable for hosted deployments.
	if err := v.BindEnv("server.port", "WORDIZ_SERVER_PORT", "PORT"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("data.db", "WORDIZ_DATA_DB", "WORDIZ_DB"); err != nil {
		return nil, err
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || key == "" {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if err := readConfigFile(v, flags); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if flags != nil {
		if off, err := flags.GetBool("no-audio"); err == nil && off {
			cfg.Audio.Enabled = false
		}
	}

	cfg.LLM.FillFromEnv()
	if cfg.Data.DB == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.Data.DB = p
	} else if err := store.EnsureDir(cfg.Data.DB); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.db", "")
	v.SetDefault("data.content_dir", "./data")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.command", "")
	v.SetDefault("audio.accent", "en-GB")
	v.SetDefault("audio.rate", 0.8)

	v.SetDefault("server.port", 8082)
	v.SetDefault("server.static_dir", "")
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("ratelimit.requests_per_minute", 0)
	v.SetDefault("ratelimit.requests_per_hour", 20)
	v.SetDefault("ratelimit.requests_per_day", 0)
	v.SetDefault("ratelimit.cooldown_seconds", 5)

	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.temperature", d.Temperature)
	v.SetDefault("llm.max_tokens", d.MaxTokens)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
	for name, p := range map[string]struct{ model, baseURL string }{
		"minimax":    {d.MiniMax.Model, d.MiniMax.BaseURL},
		"anthropic":  {d.Anthropic.Model, ""},
		"openai":     {d.OpenAI.Model, d.OpenAI.BaseURL},
		"gemini":     {d.Gemini.Model, ""},
		"openrouter": {d.OpenRouter.Model, d.OpenRouter.BaseURL},
	} {
		v.SetDefault("llm."+name+".api_key", "")
		v.SetDefault("llm."+name+".model", p.model)
		if p.baseURL != "" || name == "openai" || name == "openrouter" {
			v.SetDefault("llm."+name+".base_url", p.baseURL)
		}
	}
}

func readConfigFile(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags != nil {
		if p, _ := flags.GetString("config"); p != "" {
			v.SetConfigFile(p)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("read config %s: %w", p, err)
			}
			return nil
		}
	}

	v.SetConfigName("wordiz")
	for _, dir := range configDirs() {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func configDirs() []string {
	dirs := []string{"."}
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		dirs = append(dirs, filepath.Join(x, "wordiz"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "wordiz"))
	}
	return dirs
}

// loadDotEnv loads API keys from .env files without overriding variables
// already present in the environment.
func loadDotEnv() {
	for _, dir := range configDirs() {
		p := filepath.Join(dir, ".env")
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}
