package config

// ProviderInfo describes a supported LLM provider.
type ProviderInfo struct {
	ID          string
	Name        string
	Description string
	NeedsAPIKey bool
	// EnvVars are checked in order; the first is the preferred name.
	EnvVars      []string
	SignupURL    string
	BaseURL      string
	DefaultModel string
}

var Providers = []ProviderInfo{
	{
		ID:           "gemini",
		Name:         "Gemini",
		Description:  "Google Gemini, fast and inexpensive",
		NeedsAPIKey:  true,
		EnvVars:      []string{"GEMINI_API_KEY", "VITE_API_KEY"},
		SignupURL:    "https://aistudio.google.com/app/apikey",
		BaseURL:      "https://generativelanguage.googleapis.com/v1beta",
		DefaultModel: "gemini-2.5-flash-preview-09-2025",
	},
	{
		ID:           "deepseek",
		Name:         "DeepSeek",
		Description:  "DeepSeek chat, OpenAI-compatible",
		NeedsAPIKey:  true,
		EnvVars:      []string{"DEEPSEEK_API_KEY", "VITE_DEEPSEEK_API_KEY"},
		SignupURL:    "https://platform.deepseek.com/api_keys",
		BaseURL:      "https://api.deepseek.com",
		DefaultModel: "deepseek-chat",
	},
	{
		ID:           "openai",
		Name:         "OpenAI",
		Description:  "GPT-4o family",
		NeedsAPIKey:  true,
		EnvVars:      []string{"OPENAI_API_KEY"},
		SignupURL:    "https://platform.openai.com/api-keys",
		BaseURL:      "https://api.openai.com/v1",
		DefaultModel: "gpt-4o-mini",
	},
	{
		ID:           "openrouter",
		Name:         "OpenRouter",
		Description:  "Access all models",
		NeedsAPIKey:  true,
		EnvVars:      []string{"OPENROUTER_API_KEY"},
		SignupURL:    "https://openrouter.ai/keys",
		BaseURL:      "https://openrouter.ai/api/v1",
		DefaultModel: "anthropic/claude-3.5-sonnet",
	},
	{
		ID:           "anthropic",
		Name:         "Anthropic",
		Description:  "Claude, great long-form writing",
		NeedsAPIKey:  true,
		EnvVars:      []string{"ANTHROPIC_API_KEY"},
		SignupURL:    "https://console.anthropic.com/",
		DefaultModel: "claude-3-5-sonnet-latest",
	},
	{
		ID:           "ollama",
		Name:         "Ollama",
		Description:  "Local models, no key required",
		BaseURL:      "http://localhost:11434",
		DefaultModel: "llama3.1:8b",
	},
	{
		ID:          "lorem",
		Name:        "Lorem",
		Description: "Offline placeholder text for demos and tests",
	},
}

// GetProvider returns the catalogue entry for id, or nil.
func GetProvider(id string) *ProviderInfo {
	for _, p := range Providers {
		if p.ID == id {
			return &p
		}
	}
	return nil
}

func providerIDs() []interface{} {
	ids := make([]interface{}, len(Providers))
	for i, p := range Providers {
		ids[i] = p.ID
	}
	return ids
}
