package assemble

import (
	"strings"
	"testing"

	"github.com/gaurav-prasanna/luxescript/core"
)

func TestAssemble(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		meta     core.BookMetadata
		want     string
	}{
		{
			name:     "no title or author",
			fragment: "<p>Hi</p>",
			meta:     core.BookMetadata{Publisher: "P", Year: "2025", ShowPageNumbers: true},
			want:     "<p>Hi</p>",
		},
		{
			name:     "title and author only",
			fragment: "<p>Body</p>",
			meta:     core.BookMetadata{Title: "T", Author: "A"},
			want:     `<div class="title-page"><h1>T</h1><div class="title-author">A</div><div class="title-imprint"></div></div><p>Body</p>`,
		},
		{
			name:     "full imprint",
			fragment: "<p>Body</p>",
			meta:     core.BookMetadata{Title: "Veredas", Author: "R. Amaral", Publisher: "Editora Pantoja", Year: "2025"},
			want:     `<div class="title-page"><h1>Veredas</h1><div class="title-author">R. Amaral</div><div class="title-imprint"><p>Editora Pantoja</p><p>2025</p></div></div><p>Body</p>`,
		},
		{
			name:     "author without title",
			fragment: "",
			meta:     core.BookMetadata{Author: "A"},
			want:     `<div class="title-page"><h1>Untitled</h1><div class="title-author">A</div><div class="title-imprint"></div></div>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Assemble(tt.fragment, tt.meta); got != tt.want {
				t.Errorf("Assemble()\n got: %s\nwant: %s", got, tt.want)
			}
		})
	}
}

func TestTitleBlockEscapes(t *testing.T) {
	got := TitleBlock(core.BookMetadata{Title: `<script>x</script>`, Author: "Tom & Jerry"})
	if strings.Contains(got, "<script>") {
		t.Errorf("title not escaped: %s", got)
	}
	if !strings.Contains(got, "Tom &amp; Jerry") {
		t.Errorf("author not escaped: %s", got)
	}
}

func TestTitleBlockEmpty(t *testing.T) {
	if got := TitleBlock(core.DefaultMetadata()); got != "" {
		t.Errorf("TitleBlock(default) = %q, want empty", got)
	}
}
