package llm

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"

	loremgen "github.com/bozaro/golorem"
)

// LoremProvider returns placeholder book HTML without any network call. It
// is used for demos and for exercising the export pipeline offline.
type LoremProvider struct {
	mu        sync.Mutex
	generator *loremgen.Lorem
	chapters  int
}

func NewLoremProvider() *LoremProvider {
	return &LoremProvider{
		generator: loremgen.New(),
		chapters:  3,
	}
}

func (p *LoremProvider) Name() string {
	return "lorem"
}

func (p *LoremProvider) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (p *LoremProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The generator is not safe for concurrent use.
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>\n", p.title())

	titles := make([]string, p.chapters)
	for i := range titles {
		titles[i] = p.title()
	}

	b.WriteString(`<div class="toc-container"><h2 class="toc-title">Table of Contents</h2><ul class="toc-list">`)
	for i, t := range titles {
		fmt.Fprintf(&b, `<li><a href="#chapter-%d">%s</a></li>`, i+1, t)
	}
	b.WriteString("</ul></div>\n")

	for i, t := range titles {
		fmt.Fprintf(&b, "<h2 id=\"chapter-%d\">%s</h2>\n", i+1, t)
		for j := 0; j < 3; j++ {
			class := ""
			if j > 0 {
				class = ` class="indented"`
			}
			fmt.Fprintf(&b, "<p%s>%s</p>\n", class, html.EscapeString(p.generator.Paragraph(3, 5)))
		}
		fmt.Fprintf(&b, "<blockquote>%s</blockquote>\n", html.EscapeString(p.generator.Sentence(5, 15)))
		b.WriteString("<div class=\"chapter-end-marker\">***</div>\n")
	}

	return &CompletionResponse{
		Content:      b.String(),
		Model:        "lorem",
		FinishReason: "stop",
	}, nil
}

func (p *LoremProvider) title() string {
	t := strings.TrimRight(p.generator.Sentence(2, 5), ".")
	return html.EscapeString(t)
}
