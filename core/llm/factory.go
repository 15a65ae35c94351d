package llm

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/gaurav-prasanna/luxescript/config"
	"github.com/gaurav-prasanna/luxescript/core"
)

// NewProvider builds the configured provider. A missing API key fails here,
// before any request is attempted, with a *core.CredentialError.
func NewProvider(cfg *config.Config) (Provider, error) {
	info := config.GetProvider(cfg.Provider)
	if info == nil {
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}

	apiKey, envVar := cfg.ResolveAPIKey()
	if info.NeedsAPIKey && apiKey == "" {
		return nil, &core.CredentialError{Provider: info.Name, EnvVar: envVar}
	}

	switch info.ID {
	case "gemini":
		return NewGeminiProvider(apiKey, cfg.Model).WithBaseURL(cfg.BaseURL), nil
	case "deepseek":
		return NewDeepSeekProvider(apiKey, cfg.Model).WithBaseURL(cfg.BaseURL), nil
	case "openai":
		return NewOpenAIProvider(apiKey, cfg.Model).WithBaseURL(cfg.BaseURL), nil
	case "openrouter":
		return NewOpenRouterProvider(apiKey, cfg.Model).WithBaseURL(cfg.BaseURL), nil
	case "anthropic":
		var opts []option.RequestOption
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}
		return NewAnthropicProvider(apiKey, cfg.Model, opts...), nil
	case "ollama":
		return NewOllamaProvider(cfg.BaseURL, cfg.Model), nil
	case "lorem":
		return NewLoremProvider(), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
