package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/luxescript/core"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"LUXESCRIPT_PROVIDER", "LUXESCRIPT_MODEL", "LUXESCRIPT_BASE_URL", "LUXESCRIPT_STYLE",
		"LUXESCRIPT_LANGUAGE", "LUXESCRIPT_FONT", "LUXESCRIPT_OUTPUT_DIR", "LUXESCRIPT_FONTS_DIR",
		"LUXESCRIPT_LOG_LEVEL", "LUXESCRIPT_LOG_FORMAT", "LUXESCRIPT_ADDR",
		"LUXESCRIPT_ALLOWED_ORIGINS", "LUXESCRIPT_TEMPERATURE",
		"GEMINI_API_KEY", "VITE_API_KEY", "DEEPSEEK_API_KEY", "VITE_DEEPSEEK_API_KEY",
		"OPENAI_API_KEY", "OPENROUTER_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini", cfg.Provider)
	}
	if cfg.Temperature != DefaultTemperature {
		t.Errorf("Temperature = %v, want %v", cfg.Temperature, DefaultTemperature)
	}
	if !cfg.Metadata.ShowPageNumbers || cfg.Metadata.NumberCoverPage {
		t.Errorf("Metadata defaults = %+v", cfg.Metadata)
	}
	if cfg.LanguageValue() != core.LanguagePortuguese {
		t.Errorf("LanguageValue() = %q, want pt", cfg.LanguageValue())
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
provider: openai
model: gpt-4o
language: en
font: garamond
metadata:
  title: Veredas
  author: R. Amaral
  show_page_numbers: false
server:
  addr: ":9000"
`)
	t.Setenv("LUXESCRIPT_PROVIDER", "deepseek")
	t.Setenv("LUXESCRIPT_TEMPERATURE", "0.5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Provider != "deepseek" {
		t.Errorf("Provider = %q, want env override deepseek", cfg.Provider)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("Model = %q, want gpt-4o", cfg.Model)
	}
	if cfg.Temperature != 0.5 {
		t.Errorf("Temperature = %v, want 0.5", cfg.Temperature)
	}
	if cfg.FontValue() != core.FontGaramond {
		t.Errorf("FontValue() = %q, want Garamond", cfg.FontValue())
	}
	if cfg.Metadata.Title != "Veredas" || cfg.Metadata.ShowPageNumbers {
		t.Errorf("Metadata = %+v", cfg.Metadata)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.FormatPerMinute != 10 {
		t.Errorf("Server.FormatPerMinute = %d, want default 10", cfg.Server.FormatPerMinute)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown provider", "provider: skynet\n"},
		{"bad language", "language: fr\n"},
		{"bad font", "font: comic\n"},
		{"temperature out of range", "temperature: 3\n"},
		{"bad log format", "log:\n  format: xml\n"},
		{"malformed yaml", "provider: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("Load() succeeded, want error")
			}
		})
	}
}

func TestResolveAPIKey(t *testing.T) {
	tests := []struct {
		name       string
		provider   string
		fileKey    string
		env        map[string]string
		wantKey    string
		wantEnvVar string
	}{
		{"config file wins", "gemini", "from-file", map[string]string{"GEMINI_API_KEY": "from-env"}, "from-file", "GEMINI_API_KEY"},
		{"preferred env", "gemini", "", map[string]string{"GEMINI_API_KEY": "g"}, "g", "GEMINI_API_KEY"},
		{"legacy env", "gemini", "", map[string]string{"VITE_API_KEY": "v"}, "v", "VITE_API_KEY"},
		{"legacy deepseek env", "deepseek", "", map[string]string{"VITE_DEEPSEEK_API_KEY": "d"}, "d", "VITE_DEEPSEEK_API_KEY"},
		{"missing names preferred var", "anthropic", "", nil, "", "ANTHROPIC_API_KEY"},
		{"keyless provider", "ollama", "", nil, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := DefaultConfig()
			cfg.Provider = tt.provider
			cfg.APIKey = tt.fileKey
			key, envVar := cfg.ResolveAPIKey()
			if key != tt.wantKey || envVar != tt.wantEnvVar {
				t.Errorf("ResolveAPIKey() = (%q, %q), want (%q, %q)", key, envVar, tt.wantKey, tt.wantEnvVar)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Provider = "lorem"
	cfg.Metadata.Publisher = "Editora Pantoja"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Provider != "lorem" || got.Metadata.Publisher != "Editora Pantoja" {
		t.Errorf("round trip lost values: %+v", got)
	}
}

func TestPathUsesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(home, ".config", "luxescript", "config.yaml")
	if got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestInitLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := InitLogger(&buf, "warn", "json")
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record written at warn level")
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("json output missing record: %s", out)
	}
}
