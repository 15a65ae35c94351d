// Package style is the registry of formatting personalities. Each style pairs
// display metadata with a pure prompt builder.
package style

import (
	"fmt"

	"github.com/gaurav-prasanna/luxescript/core"
)

// ID identifies a registered style.
type ID string

const (
	StandardPremium ID = "standard-premium"
	JuridicalElite  ID = "juridical-elite"
	MagazineModern  ID = "magazine-modern"
	MinimalistZen   ID = "minimalist-zen"
	TechManual      ID = "tech-manual"
)

// Metadata is presentation-only information about a style.
type Metadata struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	BestFor     []string `json:"bestFor"`
}

// PromptFunc renders the system instruction for a style. It must be
// deterministic and free of I/O.
type PromptFunc func(lang core.Language, preserve bool) string

// Definition is one formatting personality.
type Definition struct {
	ID       ID         `json:"id"`
	Metadata Metadata   `json:"metadata"`
	Prompt   PromptFunc `json:"-"`
}

// Registry maps style ids to definitions. It is read-only once built and
// safe for concurrent use.
type Registry struct {
	byID    map[ID]Definition
	ordered []Definition
}

// NewRegistry builds a registry in the given order. Empty or duplicate ids
// and missing prompt builders are rejected.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		byID:    make(map[ID]Definition, len(defs)),
		ordered: make([]Definition, 0, len(defs)),
	}
	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("style with empty id")
		}
		if d.Prompt == nil {
			return nil, fmt.Errorf("style %q has no prompt builder", d.ID)
		}
		if _, dup := r.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate style id %q", d.ID)
		}
		d.Metadata.BestFor = append([]string(nil), d.Metadata.BestFor...)
		r.byID[d.ID] = d
		r.ordered = append(r.ordered, d)
	}
	return r, nil
}

// Get looks up a style. A missing id is reported with ok == false.
func (r *Registry) Get(id ID) (Definition, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// All returns every style in registration order.
func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len reports the number of registered styles.
func (r *Registry) Len() int { return len(r.ordered) }

var defaultRegistry = mustRegistry(builtins()...)

// Default returns the registry of built-in styles.
func Default() *Registry { return defaultRegistry }

func mustRegistry(defs ...Definition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

func builtins() []Definition {
	return []Definition{
		{
			ID: StandardPremium,
			Metadata: Metadata{
				Name:        "Standard Premium",
				Description: "Elegant luxury e-book layout with an automatic table of contents",
				Category:    "Premium",
				BestFor:     []string{"Books", "Guides", "General manuscripts"},
			},
			Prompt: templatePrompt("standard_premium.md.tmpl"),
		},
		{
			ID: JuridicalElite,
			Metadata: Metadata{
				Name:        "Juridical Elite",
				Description: "Academic formatting with timelines, stat cards, and Mermaid diagrams",
				Category:    "Academic",
				BestFor:     []string{"Legal documents", "Academic papers", "Technical reports"},
			},
			Prompt: templatePrompt("juridical_elite.md.tmpl"),
		},
		{
			ID: MagazineModern,
			Metadata: Metadata{
				Name:        "Magazine Modern",
				Description: "Contemporary magazine layout with two-column text and bold visuals",
				Category:    "Editorial",
				BestFor:     []string{"Articles", "Features", "Modern content"},
			},
			Prompt: templatePrompt("magazine_modern.md.tmpl"),
		},
		{
			ID: MinimalistZen,
			Metadata: Metadata{
				Name:        "Minimalist Zen",
				Description: "Ultra-clean design with maximum white space and zero decorations",
				Category:    "Minimalist",
				BestFor:     []string{"Essays", "Poetry", "Philosophical content", "Meditation guides"},
			},
			Prompt: templatePrompt("minimalist_zen.md.tmpl"),
		},
		{
			ID: TechManual,
			Metadata: Metadata{
				Name:        "Tech Manual",
				Description: "Technical documentation with code blocks, diagrams, and step-by-step instructions",
				Category:    "Technical",
				BestFor:     []string{"Documentation", "Tutorials", "API guides", "Technical reports"},
			},
			Prompt: templatePrompt("tech_manual.md.tmpl"),
		},
	}
}
