// Package format implements the formatting client: it resolves a style,
// builds the instruction, and asks the LLM provider for the book HTML.
package format

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/luxescript/core"
	"github.com/gaurav-prasanna/luxescript/core/extract"
	"github.com/gaurav-prasanna/luxescript/core/llm"
	"github.com/gaurav-prasanna/luxescript/core/style"
)

// Placeholder replaces an empty provider answer.
const Placeholder = "<p>Error: No content generated.</p>"

// DefaultTemperature keeps completions low-variance.
const DefaultTemperature = 0.3

const inputSeparator = "\n\n---\nINPUT CONTENT:\n"

var codeFence = regexp.MustCompile("(?s)^```(?:html)?\\s*\\n(.*?)\\n?```$")

// Client formats manuscripts through an LLM provider.
type Client struct {
	provider    llm.Provider
	styles      *style.Registry
	extractor   *extract.Extractor
	model       string
	temperature float64
	maxTokens   int
	logger      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRegistry replaces the built-in style registry.
func WithRegistry(r *style.Registry) Option {
	return func(c *Client) { c.styles = r }
}

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *Client) { c.temperature = t }
}

// WithMaxTokens caps the completion length. Zero leaves the provider default.
func WithMaxTokens(n int) Option {
	return func(c *Client) { c.maxTokens = n }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client that sends requests to provider.
func NewClient(provider llm.Provider, opts ...Option) *Client {
	c := &Client{
		provider:    provider,
		styles:      style.Default(),
		extractor:   extract.New(),
		temperature: DefaultTemperature,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Styles returns the registry the client resolves against.
func (c *Client) Styles() *style.Registry { return c.styles }

// Format turns req.Content into a book HTML fragment in the requested style.
//
// Content with no visible text returns core.ErrEmptyInput without contacting
// the provider. An unknown style returns *core.ConfigurationError and a
// provider failure returns *core.ProviderError. An empty answer is replaced
// by Placeholder.
func (c *Client) Format(ctx context.Context, req core.FormatRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	blank, err := c.extractor.IsBlank(req.Content)
	if err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}
	if blank {
		return "", core.ErrEmptyInput
	}

	id := style.Canonical(req.Style)
	def, ok := c.styles.Get(id)
	if !ok {
		return "", &core.ConfigurationError{StyleID: string(id)}
	}

	prompt := def.Prompt(req.Language, req.PreserveContent)
	completion := llm.NewRequest(c.model, prompt+inputSeparator+req.Content, c.temperature)
	completion.MaxTokens = c.maxTokens

	c.logger.Info(ProgressMessage(id),
		"provider", c.provider.Name(),
		"style", id,
		"language", req.Language,
		"preserve", req.PreserveContent,
		"content_bytes", len(req.Content),
	)

	resp, err := c.provider.Complete(ctx, completion)
	if err != nil {
		c.logger.Error("formatting failed", "provider", c.provider.Name(), "style", id, "error", err)
		return "", &core.ProviderError{
			Provider: c.provider.Name(),
			Message:  providerMessage(err),
			Err:      err,
		}
	}

	fragment := stripCodeFence(strings.TrimSpace(resp.Content))
	if fragment == "" {
		c.logger.Warn("provider returned no content", "provider", c.provider.Name(), "style", id)
		return Placeholder, nil
	}

	c.logger.Debug("formatting complete", "style", id, "model", resp.Model, "finish_reason", resp.FinishReason, "fragment_bytes", len(fragment))
	return fragment, nil
}

// ProgressMessage is the status line shown while a style is being applied.
func ProgressMessage(id style.ID) string {
	if id == style.JuridicalElite {
		return "Analyzing structure & designing visuals..."
	}
	return "Designing layout..."
}

func providerMessage(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	default:
		return err.Error()
	}
}

// stripCodeFence removes a ```html fence wrapped around the whole answer.
func stripCodeFence(s string) string {
	if m := codeFence.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}
