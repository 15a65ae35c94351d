package style

import (
	"strings"
	"testing"

	"github.com/gaurav-prasanna/luxescript/core"
)

var languages = []core.Language{core.LanguagePortuguese, core.LanguageEnglish}

func TestDefaultRegistryOrder(t *testing.T) {
	want := []ID{StandardPremium, JuridicalElite, MagazineModern, MinimalistZen, TechManual}
	got := Default().All()
	if len(got) != len(want) {
		t.Fatalf("All() returned %d styles, want %d", len(got), len(want))
	}
	for i, d := range got {
		if d.ID != want[i] {
			t.Errorf("All()[%d].ID = %q, want %q", i, d.ID, want[i])
		}
	}
}

func TestGetIsIdempotent(t *testing.T) {
	r := Default()
	for _, d := range r.All() {
		first, ok := r.Get(d.ID)
		if !ok {
			t.Fatalf("Get(%q) not found", d.ID)
		}
		second, ok := r.Get(first.ID)
		if !ok {
			t.Fatalf("Get(Get(%q).ID) not found", d.ID)
		}
		if first.ID != second.ID || first.Metadata.Name != second.Metadata.Name {
			t.Errorf("Get(%q) is not idempotent: %+v vs %+v", d.ID, first.Metadata, second.Metadata)
		}
	}
}

func TestGetUnknown(t *testing.T) {
	for _, id := range []ID{"", "standard", "baroque"} {
		if _, ok := Default().Get(id); ok {
			t.Errorf("Get(%q) reported found", id)
		}
	}
}

func TestPromptsAreDeterministic(t *testing.T) {
	for _, d := range Default().All() {
		for _, lang := range languages {
			for _, preserve := range []bool{true, false} {
				a := d.Prompt(lang, preserve)
				b := d.Prompt(lang, preserve)
				if a != b {
					t.Errorf("%s prompt(%s, %v) differs between calls", d.ID, lang, preserve)
				}
				if strings.Contains(a, "<no value>") {
					t.Errorf("%s prompt(%s, %v) has an unfilled template field", d.ID, lang, preserve)
				}
			}
		}
	}
}

func TestPromptLanguageAndContentRule(t *testing.T) {
	for _, d := range Default().All() {
		t.Run(string(d.ID), func(t *testing.T) {
			pt := d.Prompt(core.LanguagePortuguese, true)
			if !strings.Contains(pt, "Output everything in Brazilian Portuguese.") {
				t.Error("pt prompt lacks the Portuguese instruction")
			}
			en := d.Prompt(core.LanguageEnglish, true)
			if !strings.Contains(en, "Output everything in English.") {
				t.Error("en prompt lacks the English instruction")
			}
			if !strings.Contains(pt, "(LOCKED)") {
				t.Error("preserve prompt lacks the locked content rule")
			}
			unlocked := d.Prompt(core.LanguagePortuguese, false)
			if !strings.Contains(unlocked, "(UNLOCKED)") || strings.Contains(unlocked, "(LOCKED)") {
				t.Error("enhancement prompt has the wrong content rule")
			}
		})
	}
}

func TestStylePromptMarkers(t *testing.T) {
	tests := []struct {
		id     ID
		marker string
	}{
		{StandardPremium, `class="toc-container"`},
		{JuridicalElite, `class="stat-card"`},
		{MagazineModern, `class="hero-section"`},
		{MinimalistZen, `class="zen-title"`},
		{TechManual, `class="tech-note note-warning"`},
	}
	for _, tt := range tests {
		d, ok := Default().Get(tt.id)
		if !ok {
			t.Fatalf("Get(%q) not found", tt.id)
		}
		if !strings.Contains(d.Prompt(core.LanguageEnglish, true), tt.marker) {
			t.Errorf("%s prompt lacks %s", tt.id, tt.marker)
		}
	}
}

func TestNewRegistryRejectsBadDefinitions(t *testing.T) {
	prompt := func(core.Language, bool) string { return "p" }
	tests := []struct {
		name string
		defs []Definition
	}{
		{"empty id", []Definition{{ID: "", Prompt: prompt}}},
		{"nil prompt", []Definition{{ID: "a"}}},
		{"duplicate", []Definition{{ID: "a", Prompt: prompt}, {ID: "a", Prompt: prompt}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry(tt.defs...); err == nil {
				t.Error("NewRegistry() succeeded, want error")
			}
		})
	}
}

func TestAllReturnsCopy(t *testing.T) {
	r := Default()
	all := r.All()
	all[0].ID = "mutated"
	if r.All()[0].ID != StandardPremium {
		t.Error("mutating All() result changed the registry")
	}
}
