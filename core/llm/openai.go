package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OpenAIProvider talks to any OpenAI-compatible chat completions API.
// DeepSeek, OpenRouter and OpenAI itself share this adapter.
type OpenAIProvider struct {
	name       string
	apiKey     string
	model      string
	baseURL    string
	headers    map[string]string
	httpClient *http.Client
}

// NewOpenAIProvider targets api.openai.com.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return newOpenAICompatible("openai", "https://api.openai.com/v1", apiKey, model)
}

// NewDeepSeekProvider targets api.deepseek.com.
func NewDeepSeekProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = "deepseek-chat"
	}
	return newOpenAICompatible("deepseek", "https://api.deepseek.com", apiKey, model)
}

// NewOpenRouterProvider targets openrouter.ai.
func NewOpenRouterProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = "anthropic/claude-3.5-sonnet"
	}
	p := newOpenAICompatible("openrouter", "https://openrouter.ai/api/v1", apiKey, model)
	p.headers["HTTP-Referer"] = "https://github.com/gaurav-prasanna/luxescript"
	p.headers["X-Title"] = "LuxeScript"
	return p
}

func newOpenAICompatible(name, baseURL, apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{
		name:    name,
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		headers: map[string]string{},
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

// WithBaseURL points the provider at another endpoint (proxies, tests).
func (o *OpenAIProvider) WithBaseURL(baseURL string) *OpenAIProvider {
	if baseURL != "" {
		o.baseURL = strings.TrimRight(baseURL, "/")
	}
	return o
}

func (o *OpenAIProvider) Name() string {
	return o.name
}

func (o *OpenAIProvider) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/models", nil)
	if err != nil {
		return err
	}
	o.setHeaders(req)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cannot connect to %s API: %w", o.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("invalid API key")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s API error: status %d", o.name, resp.StatusCode)
	}
	return nil
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature"`
	Stream      bool            `json:"stream"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
}

type openAIErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (o *OpenAIProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = o.model
	}

	msgs := make([]openAIMessage, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = openAIMessage{Role: m.Role, Content: m.Content}
	}

	body, err := json.Marshal(openAIRequest{
		Model:       model,
		Messages:    msgs,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	o.setHeaders(httpReq)

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", o.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		var apiErr openAIErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, errors.New(apiErr.Error.Message)
		}
		return nil, fmt.Errorf("%s error (status %d): %s", o.name, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var apiResp openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	out := &CompletionResponse{Model: model}
	if apiResp.Model != "" {
		out.Model = apiResp.Model
	}
	if len(apiResp.Choices) > 0 {
		out.Content = apiResp.Choices[0].Message.Content
		out.FinishReason = apiResp.Choices[0].FinishReason
	}
	return out, nil
}

func (o *OpenAIProvider) setHeaders(req *http.Request) {
	if o.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}
	for k, v := range o.headers {
		req.Header.Set(k, v)
	}
}
