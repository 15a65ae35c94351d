// Package config loads LuxeScript settings from the YAML config file, the
// environment, and .env.local/.env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/luxescript/core"
)

// DefaultTemperature keeps formatting output low-variance.
const DefaultTemperature = 0.3

// Config is the full LuxeScript configuration.
type Config struct {
	Provider    string  `yaml:"provider"`
	APIKey      string  `yaml:"api_key,omitempty"`
	Model       string  `yaml:"model,omitempty"`
	BaseURL     string  `yaml:"base_url,omitempty"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens,omitempty"`

	Style           string `yaml:"style"`
	Language        string `yaml:"language"`
	Font            string `yaml:"font"`
	PreserveContent bool   `yaml:"preserve_content"`

	OutputDir string `yaml:"output_dir,omitempty"`
	// FontsDir holds UTF-8 TTF files for the PDF rasterizer. Empty uses the
	// built-in core fonts.
	FontsDir string `yaml:"fonts_dir,omitempty"`

	Metadata core.BookMetadata `yaml:"metadata"`

	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServerConfig controls the HTTP workspace.
type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	AllowedOrigins  []string `yaml:"allowed_origins,omitempty"`
	FormatPerMinute int      `yaml:"format_per_minute"`
	SessionTTL      string   `yaml:"session_ttl"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Provider:        "gemini",
		Temperature:     DefaultTemperature,
		Style:           "standard-premium",
		Language:        string(core.DefaultLanguage),
		Font:            string(core.FontPlayfair),
		PreserveContent: true,
		Metadata:        core.DefaultMetadata(),
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			AllowedOrigins:  []string{"http://localhost:8080"},
			FormatPerMinute: 10,
			SessionTTL:      "24h",
		},
	}
}

// Dir returns ~/.config/luxescript.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "luxescript"), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file at path (the default path when empty), layers
// environment overrides on top, and validates the result. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	loadDotEnv()

	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to path (the default path when empty).
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// Validate checks the config values.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Provider, validation.Required, validation.In(providerIDs()...)),
		validation.Field(&c.Temperature, validation.Min(0.0), validation.Max(2.0)),
		validation.Field(&c.MaxTokens, validation.Min(0)),
		validation.Field(&c.Language, validation.By(func(v interface{}) error {
			_, err := core.ParseLanguage(v.(string))
			return err
		})),
		validation.Field(&c.Font, validation.By(func(v interface{}) error {
			_, err := core.ParseFont(v.(string))
			return err
		})),
		validation.Field(&c.Log),
		validation.Field(&c.Server),
	)
}

// Validate checks the log settings.
func (l LogConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("", "debug", "info", "warn", "error")),
		validation.Field(&l.Format, validation.In("", "text", "json")),
	)
}

// Validate checks the server settings.
func (s ServerConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Addr, validation.Required),
		validation.Field(&s.FormatPerMinute, validation.Min(0)),
	)
}

// LanguageValue returns the parsed default language.
func (c *Config) LanguageValue() core.Language {
	lang, err := core.ParseLanguage(c.Language)
	if err != nil {
		return core.DefaultLanguage
	}
	return lang
}

// FontValue returns the parsed default font.
func (c *Config) FontValue() core.FontChoice {
	font, err := core.ParseFont(c.Font)
	if err != nil {
		return core.FontPlayfair
	}
	return font
}
