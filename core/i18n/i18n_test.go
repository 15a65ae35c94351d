package i18n

import (
	"testing"

	"github.com/gaurav-prasanna/luxescript/core"
)

func TestPageLabel(t *testing.T) {
	tests := []struct {
		lang core.Language
		want string
	}{
		{core.LanguagePortuguese, "Pág"},
		{core.LanguageEnglish, "Page"},
		{core.Language("fr"), "Page"},
	}
	for _, tt := range tests {
		if got := PageLabel(tt.lang); got != tt.want {
			t.Errorf("PageLabel(%q) = %q, want %q", tt.lang, got, tt.want)
		}
	}
}

func TestTMissingKey(t *testing.T) {
	if got := T(core.LanguageEnglish, "nope.missing"); got != "nope.missing" {
		t.Errorf("T() = %q, want key echoed back", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	en := Catalog(core.LanguageEnglish)
	pt := Catalog(core.LanguagePortuguese)
	for k := range en {
		if _, ok := pt[k]; !ok {
			t.Errorf("pt catalog missing %q", k)
		}
	}
	for k := range pt {
		if _, ok := en[k]; !ok {
			t.Errorf("en catalog missing %q", k)
		}
	}
}

func TestSection(t *testing.T) {
	s := Section(core.LanguagePortuguese, "settings")
	if s["author"] != "Autor" {
		t.Errorf("Section(settings)[author] = %q, want %q", s["author"], "Autor")
	}
	if _, ok := s["settings.author"]; ok {
		t.Error("Section() kept the prefix")
	}
}
