package extract

import (
	"strings"
	"testing"
)

func TestPlainText(t *testing.T) {
	e := New()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \n\t  ", ""},
		{"empty markup", "<p> </p><div><br></div>", ""},
		{"nbsp only", "<p>&nbsp;</p>", ""},
		{"plain text", "Capítulo 1\n\nTexto.", "Capítulo 1\n\nTexto."},
		{"inline markup", "<p>Hello <b>bold</b> <i>world</i></p>", "Hello bold world"},
		{"script dropped", "<p>Hi</p><script>alert(1)</script>", "Hi"},
		{"blocks become lines", "<div>one</div><div>two</div>", "one\ntwo"},
		{"br becomes line", "a<br>b", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.PlainText(tt.in)
			if err != nil {
				t.Fatalf("PlainText() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("PlainText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	e := New()
	blank, err := e.IsBlank("<p>   </p>")
	if err != nil {
		t.Fatal(err)
	}
	if !blank {
		t.Error("IsBlank(<p>   </p>) = false, want true")
	}
	blank, err = e.IsBlank("<u>x</u>")
	if err != nil {
		t.Fatal(err)
	}
	if blank {
		t.Error("IsBlank(<u>x</u>) = true, want false")
	}
}

func TestSanitize(t *testing.T) {
	e := New()
	tests := []struct {
		name        string
		in          string
		contains    []string
		notContains []string
	}{
		{
			name:     "keeps emphasis",
			in:       "<p><b>Bold</b> <i>it</i> <u>under</u></p>",
			contains: []string{"<b>Bold</b>", "<i>it</i>", "<u>under</u>", "<p>"},
		},
		{
			name:        "drops scripts and handlers",
			in:          `<p onclick="x()">Hi</p><script>alert(1)</script>`,
			contains:    []string{"<p>Hi</p>"},
			notContains: []string{"script", "onclick", "alert"},
		},
		{
			name:        "drops inline styles",
			in:          `<span style="font-family:Calibri">Word paste</span>`,
			contains:    []string{"Word paste"},
			notContains: []string{"Calibri", "style="},
		},
		{
			name:     "plain text untouched",
			in:       `  "Quoted" & plain  `,
			contains: []string{`  "Quoted" & plain  `},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Sanitize(tt.in)
			for _, c := range tt.contains {
				if !strings.Contains(got, c) {
					t.Errorf("Sanitize() = %q, missing %q", got, c)
				}
			}
			for _, c := range tt.notContains {
				if strings.Contains(got, c) {
					t.Errorf("Sanitize() = %q, should not contain %q", got, c)
				}
			}
		})
	}
}

func TestSanitizeKeepsAngleBracketText(t *testing.T) {
	e := New()
	for _, in := range []string{
		"Use List<String> to hold names.",
		"Declare Map<K, V> and call get<T>() safely.",
		"If a < b and c > d then stop.",
		"Wrap it in <name> and <value> tags.",
	} {
		if got := e.Sanitize(in); got != in {
			t.Errorf("Sanitize(%q) = %q, want it unchanged", in, got)
		}
	}
}

func TestIsMarkup(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"<p>Hello</p>", true},
		{"a<br>b", true},
		{`<span style="color:red">x</span>`, true},
		{"<BODY><P>Word</P></BODY>", true},
		{"List<String>", false},
		{"a < b > c", false},
		{"<pre>x</pre> is not an editor tag", false},
		{"plain", false},
	}
	for _, tt := range tests {
		if got := IsMarkup(tt.in); got != tt.want {
			t.Errorf("IsMarkup(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
