package structured

import (
	"context"

	"github.com/urbanatlas/bdnbq/internal/domain"
)

// Querier executes SQL against the relational snapshot.
type Querier interface {
	Query(ctx context.Context, query string) (domain.ResultSet, error)
}

// Completer is the formatting oracle transport.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
