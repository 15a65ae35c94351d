// Package output handles file naming and writing for LuxeScript exports.
// Filenames are derived from the book title (e.g. Veredas_da_Execução.pdf).
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gaurav-prasanna/luxescript/core"
)

// FallbackName is used when the book has no usable title.
const FallbackName = "LuxeScript_Ebook"

// Writer writes rendered artifacts to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores the artifact under its filename and returns the full path.
func (w *Writer) Write(a *core.Artifact) (string, error) {
	if a == nil {
		return "", fmt.Errorf("nothing to write")
	}
	path := filepath.Join(w.OutputDir, filepath.Base(a.Filename))
	if err := os.WriteFile(path, a.Data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// FileName builds "<title><ext>" with the title sanitized, falling back to
// FallbackName when nothing printable remains.
func FileName(title, ext string) string {
	name := sanitize(strings.TrimSpace(title))
	if strings.Trim(name, "_") == "" {
		name = FallbackName
	}
	return name + ext
}

// sanitize keeps letters and digits in any script and replaces every other
// rune with an underscore, collapsing runs.
func sanitize(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, ch := range s {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '-' {
			b.WriteRune(ch)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}
