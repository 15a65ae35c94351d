package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// dotEnvFiles are loaded in order. godotenv never overrides variables that
// are already set, so the first file wins.
var dotEnvFiles = []string{".env.local", ".env"}

func loadDotEnv() {
	for _, f := range dotEnvFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			slog.Warn("failed to load env file", "file", f, "error", err)
		}
	}
}

func (c *Config) applyEnv() {
	c.Provider = getEnv("LUXESCRIPT_PROVIDER", c.Provider)
	c.Model = getEnv("LUXESCRIPT_MODEL", c.Model)
	c.BaseURL = getEnv("LUXESCRIPT_BASE_URL", c.BaseURL)
	c.Style = getEnv("LUXESCRIPT_STYLE", c.Style)
	c.Language = getEnv("LUXESCRIPT_LANGUAGE", c.Language)
	c.Font = getEnv("LUXESCRIPT_FONT", c.Font)
	c.OutputDir = getEnv("LUXESCRIPT_OUTPUT_DIR", c.OutputDir)
	c.FontsDir = getEnv("LUXESCRIPT_FONTS_DIR", c.FontsDir)
	c.Log.Level = getEnv("LUXESCRIPT_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LUXESCRIPT_LOG_FORMAT", c.Log.Format)
	c.Server.Addr = getEnv("LUXESCRIPT_ADDR", c.Server.Addr)
	if origins := os.Getenv("LUXESCRIPT_ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = splitList(origins)
	}
	if v := os.Getenv("LUXESCRIPT_TEMPERATURE"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = t
		} else {
			slog.Warn("ignoring invalid LUXESCRIPT_TEMPERATURE", "value", v)
		}
	}
}

// ResolveAPIKey returns the key for the configured provider: the config
// file's api_key first, then the provider's environment variables. The
// second result names the variable to set when the key is missing.
func (c *Config) ResolveAPIKey() (key string, envVar string) {
	info := GetProvider(c.Provider)
	if info == nil || !info.NeedsAPIKey {
		return c.APIKey, ""
	}
	if c.APIKey != "" {
		return c.APIKey, info.EnvVars[0]
	}
	for _, name := range info.EnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, name
		}
	}
	return "", info.EnvVars[0]
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
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
