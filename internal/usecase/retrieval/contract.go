package retrieval

import (
	"context"

	"github.com/urbanatlas/bdnbq/internal/db"
	"github.com/urbanatlas/bdnbq/internal/domain"
	"github.com/urbanatlas/bdnbq/internal/registry"
)

// Embedder vectorizes the question text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Completer is the synthesis oracle transport.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ShardResolver selects and verifies shards of the semantic index.
type ShardResolver interface {
	Resolve(ctx context.Context, key string) (registry.Shard, error)
	Keys(ctx context.Context) ([]string, error)
	ResolveAny(ctx context.Context, keys []string) (registry.Shard, error)
}

// Searcher runs KNN queries against the search backend.
type Searcher interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}
