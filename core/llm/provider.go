// Package llm holds the LLM provider adapters used by the formatting client.
package llm

import "context"

// Provider is the interface every LLM backend implements.
type Provider interface {
	// Name returns the provider id (e.g. "gemini").
	Name() string

	// Complete sends a completion request and returns the full response.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Ping checks that the provider is reachable with the configured credentials.
	Ping(ctx context.Context) error
}

// CompletionRequest is a single non-streaming completion.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Message is one chat message.
type Message struct {
	Role    string
	Content string
}

// CompletionResponse is the provider's full answer.
type CompletionResponse struct {
	Content      string
	Model        string
	FinishReason string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// NewRequest builds a request with a single user message.
func NewRequest(model, prompt string, temperature float64) *CompletionRequest {
	return &CompletionRequest{
		Model:       model,
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		Temperature: temperature,
	}
}

// splitSystem separates system messages from the rest. Providers with a
// dedicated system field use it.
func splitSystem(msgs []Message) (system string, rest []Message) {
	for _, m := range msgs {
		if m.Role == RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		rest = append(rest, m)
	}
	return system, rest
}
