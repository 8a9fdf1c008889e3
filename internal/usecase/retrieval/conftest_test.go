package retrieval

import (
	"context"

	"github.com/urbanatlas/bdnbq/internal/db"
	"github.com/urbanatlas/bdnbq/internal/docstore"
	"github.com/urbanatlas/bdnbq/internal/domain"
	"github.com/urbanatlas/bdnbq/internal/registry"
)

// mockShards implements ShardResolver for tests.
type mockShards struct {
	resolveFn    func(ctx context.Context, key string) (registry.Shard, error)
	keysFn       func(ctx context.Context) ([]string, error)
	resolveAnyFn func(ctx context.Context, keys []string) (registry.Shard, error)
}

func (m *mockShards) Resolve(ctx context.Context, key string) (registry.Shard, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, key)
	}
	return registry.Shard{}, domain.ErrShardUnavailable
}

func (m *mockShards) Keys(ctx context.Context) ([]string, error) {
	if m.keysFn != nil {
		return m.keysFn(ctx)
	}
	return nil, nil
}

func (m *mockShards) ResolveAny(ctx context.Context, keys []string) (registry.Shard, error) {
	if m.resolveAnyFn != nil {
		return m.resolveAnyFn(ctx, keys)
	}
	return registry.Shard{}, domain.ErrShardUnavailable
}

// mockSearcher implements Searcher for tests.
type mockSearcher struct {
	searchKNNFn func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

func (m *mockSearcher) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if m.searchKNNFn != nil {
		return m.searchKNNFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

// mockEmbedder implements Embedder for tests.
type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}, nil
}

// mockCompleter implements Completer for tests.
type mockCompleter struct {
	completeFn func(ctx context.Context, prompt string) (string, error)
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, prompt)
	}
	return "Réponse.", nil
}

// testShard builds a shard with an in-memory docstore.
func testShard(key string, rows []docstore.Row) registry.Shard {
	base := "bdnbq:bdnb_buildings_" + key
	return registry.Shard{
		Descriptor: domain.ShardDescriptor{
			Key:          key,
			IndexName:    base + ":idx",
			DocPrefix:    base + ":",
			DocstorePath: "/storage/" + key + "/docstore.parquet",
		},
		Docs: docstore.NewFromRows(rows),
	}
}
