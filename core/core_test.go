package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"pt", LanguagePortuguese, false},
		{"PT-BR", LanguagePortuguese, false},
		{"en", LanguageEnglish, false},
		{" en-US ", LanguageEnglish, false},
		{"fr", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLanguage(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLanguage(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFontCSSFamily(t *testing.T) {
	tests := []struct {
		font FontChoice
		want string
	}{
		{FontPlayfair, "'Playfair Display', serif"},
		{FontGaramond, "'EB Garamond', serif"},
		{FontBodoni, "'Bodoni Moda', serif"},
		{FontTrajan, "'Cinzel', serif"},
		{FontChoice("Comic Sans"), "'Playfair Display', serif"},
	}
	for _, tt := range tests {
		if got := tt.font.CSSFamily(); got != tt.want {
			t.Errorf("%q.CSSFamily() = %q, want %q", tt.font, got, tt.want)
		}
	}
}

func TestParseFont(t *testing.T) {
	tests := []struct {
		in      string
		want    FontChoice
		wantErr bool
	}{
		{"", FontPlayfair, false},
		{"Garamond", FontGaramond, false},
		{"bodoni", FontBodoni, false},
		{"Trajan Pro", FontTrajan, false},
		{"helvetica", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFont(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFont(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFont(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     FormatRequest
		wantErr bool
	}{
		{"valid", FormatRequest{Content: "x", Style: "tech-manual", Language: LanguageEnglish}, false},
		{"missing style", FormatRequest{Content: "x", Language: LanguageEnglish}, true},
		{"bad language", FormatRequest{Content: "x", Style: "standard", Language: "de"}, true},
		{"empty content is not a validation error", FormatRequest{Style: "standard", Language: LanguagePortuguese}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"configuration", &ConfigurationError{StyleID: "x"}, http.StatusBadRequest},
		{"credential", &CredentialError{Provider: "Gemini"}, http.StatusServiceUnavailable},
		{"wrapped provider", fmt.Errorf("formatting: %w", &ProviderError{Provider: "gemini", Message: "quota"}), http.StatusBadGateway},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProviderErrorUnwrap(t *testing.T) {
	cause := errors.New("429 quota exceeded")
	err := &ProviderError{Provider: "deepseek", Message: cause.Error(), Err: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() did not reach the cause")
	}
	if got, want := err.Error(), "deepseek: 429 quota exceeded"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestCredentialErrorMessage(t *testing.T) {
	err := &CredentialError{Provider: "DeepSeek", EnvVar: "DEEPSEEK_API_KEY"}
	want := "DeepSeek API key not found. Please add DEEPSEEK_API_KEY to your environment or .env.local file."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
