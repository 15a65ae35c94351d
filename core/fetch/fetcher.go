// Package fetch loads manuscripts from http(s) URLs, local files or stdin.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/luxescript/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "LuxeScript/1.0 (https://github.com/gaurav-prasanna/luxescript)"

	// maxManuscriptBytes bounds a single manuscript.
	maxManuscriptBytes = 8 << 20
)

// HTTPFetcher fetches manuscripts over HTTP.
type HTTPFetcher struct {
	client *http.Client
}

// New creates an HTTPFetcher with a sensible timeout.
func New() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// Fetch retrieves the manuscript at url.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,text/plain,text/markdown;q=0.9,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := readLimited(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &core.FetchResult{
		Source:      url,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// Loader resolves a manuscript source: "-" reads stdin, an http(s) URL is
// fetched, anything else is read as a file path.
type Loader struct {
	Fetcher core.Fetcher
	Stdin   io.Reader
	// Clean, when set, is applied to the body of complete HTML documents.
	// Plain text and fragments are returned as read.
	Clean func(string) string
}

// NewLoader creates a Loader using the HTTP fetcher and os.Stdin.
func NewLoader() *Loader {
	return &Loader{Fetcher: New(), Stdin: os.Stdin}
}

// Load returns the manuscript content. Full HTML documents are reduced to
// their body.
func (l *Loader) Load(ctx context.Context, source string) (string, error) {
	switch {
	case source == "-":
		body, err := readLimited(l.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return l.body(body)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		res, err := l.Fetcher.Fetch(ctx, source)
		if err != nil {
			return "", err
		}
		return l.body(res.Body)
	default:
		f, err := os.Open(source)
		if err != nil {
			return "", fmt.Errorf("opening manuscript: %w", err)
		}
		defer f.Close()
		body, err := readLimited(f)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", source, err)
		}
		return l.body(body)
	}
}

func (l *Loader) body(content string) (string, error) {
	body, isDocument, err := documentBody(content)
	if err != nil || !isDocument || l.Clean == nil {
		return body, err
	}
	return l.Clean(body), nil
}

func readLimited(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxManuscriptBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > maxManuscriptBytes {
		return "", fmt.Errorf("manuscript exceeds %d bytes", maxManuscriptBytes)
	}
	return string(data), nil
}

// documentBody extracts the <body> of a complete HTML document and returns
// any other content unchanged. isDocument reports which case applied.
func documentBody(content string) (body string, isDocument bool, err error) {
	lower := strings.ToLower(content)
	if !strings.Contains(lower, "<body") && !strings.Contains(lower, "<html") {
		return content, false, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", false, fmt.Errorf("parsing document: %w", err)
	}
	doc.Find("script, style, noscript").Remove()
	body, err = doc.Find("body").Html()
	if err != nil {
		return "", false, fmt.Errorf("reading document body: %w", err)
	}
	return strings.TrimSpace(body), true, nil
}
