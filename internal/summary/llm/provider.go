package llm

import "context"

// Provider is a remote text generation service.
type Provider interface {
	Generate(ctx context.Context, systemPrompt string, userContent string, maxTokens int64, temperature float64) (string, error)
}
