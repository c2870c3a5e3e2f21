package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers for prompt completion.
type Client interface {
	// Complete returns the raw model response for the prompt.
	Complete(ctx context.Context, prompt string) (string, error)
	// CompleteJSON is Complete with the provider constrained to emit a
	// JSON object.
	CompleteJSON(ctx context.Context, prompt string) (string, error)
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Complete returns ErrNotImplemented.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotImplemented
}

// CompleteJSON returns ErrNotImplemented.
func (PlaceholderClient) CompleteJSON(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotImplemented
}
