package domain

import "context"

// EmbeddingResult holds a computed embedding with provider token usage.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// Completer is a text-in/text-out oracle. Implementations own timeouts and
// cancellation; callers own parsing of the raw output.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// HealthChecker is implemented by oracles that can probe their backend.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
