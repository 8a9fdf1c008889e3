package classify

import "context"

// Completer is the classification oracle transport.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
