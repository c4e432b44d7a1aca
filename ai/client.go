package ai

import "context"

// Client is the generative-model backend used for tutor ranking. Callers
// pass the deadline through ctx; implementations must return as soon as it
// expires.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}
