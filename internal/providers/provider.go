package providers

import (
	"context"
	"fmt"
)

// GenerateRequest is a single non-streaming completion request.
type GenerateRequest struct {
	Prompt string
}

// GenerateResponse contains the raw text produced by the model.
type GenerateResponse struct {
	Text      string
	Model     string
	EvalCount int
}

// Generator is the text-generation backend abstraction.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
	Name() string
}

// New creates a generator by provider name.
func New(provider, model string) (Generator, error) {
	switch provider {
	case "", "ollama":
		return NewOllama(model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
