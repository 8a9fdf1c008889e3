// Package retrieval answers descriptive questions by semantic search: pick a
// shard, embed the question, run a filtered KNN query, hydrate the hits from
// the shard docstore and synthesize a grounded French answer.
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/urbanatlas/bdnbq/internal/db"
	"github.com/urbanatlas/bdnbq/internal/domain"
	"github.com/urbanatlas/bdnbq/internal/domain/filter"
	"github.com/urbanatlas/bdnbq/internal/prompt"
	"github.com/urbanatlas/bdnbq/internal/registry"
)

// Service runs the semantic retrieval path.
type Service struct {
	shards   ShardResolver
	searcher Searcher
	embedder Embedder
	llm      Completer
	topK     int
	log      *zap.Logger
}

// New creates a retrieval service.
func New(shards ShardResolver, searcher Searcher, embedder Embedder, llm Completer, topK int, log *zap.Logger) *Service {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	return &Service{
		shards:   shards,
		searcher: searcher,
		embedder: embedder,
		llm:      llm,
		topK:     topK,
		log:      log,
	}
}

// Answer retrieves the topK closest documents for the question and
// synthesizes a grounded answer over them.
func (s *Service) Answer(ctx context.Context, question string) (string, []domain.RetrievedDocument, error) {
	shard, err := s.selectShard(ctx, question)
	if err != nil {
		return "", nil, err
	}

	emb, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return "", nil, fmt.Errorf("embed question: %w", err)
	}

	result, err := s.searcher.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    shard.Descriptor.IndexName,
		Filters:      filter.Build(question),
		Vector:       emb.Embedding,
		K:            s.topK,
		ReturnFields: []string{"batiment_groupe_id", "__vector_score"},
	})
	if err != nil {
		return "", nil, fmt.Errorf("search shard %s: %w", shard.Descriptor.Key, err)
	}

	docs := s.hydrate(shard, result.Entries)

	prose, err := s.llm.Complete(ctx, prompt.Synthesize(question, renderDocuments(docs)))
	if err != nil {
		return "", nil, fmt.Errorf("synthesis oracle: %w", err)
	}

	return strings.TrimSpace(prose), docs, nil
}

// selectShard maps an explicit département mention to its shard; without one,
// the first usable shard serves as fallback scope.
func (s *Service) selectShard(ctx context.Context, question string) (registry.Shard, error) {
	if key, ok := filter.ShardKey(question); ok {
		shard, err := s.shards.Resolve(ctx, key)
		if err != nil {
			return registry.Shard{}, fmt.Errorf("resolve shard: %w", err)
		}
		return shard, nil
	}

	keys, err := s.shards.Keys(ctx)
	if err != nil {
		return registry.Shard{}, fmt.Errorf("list shards: %w", err)
	}
	shard, err := s.shards.ResolveAny(ctx, keys)
	if err != nil {
		return registry.Shard{}, fmt.Errorf("resolve fallback shard: %w", err)
	}
	s.log.Debug("no département in question, using fallback shard",
		zap.String("shard", shard.Descriptor.Key))
	return shard, nil
}

// hydrate joins search hits with the shard docstore. Hits missing from the
// docstore are dropped with a warning; ids and vectors must come from the
// same ingestion run.
func (s *Service) hydrate(shard registry.Shard, entries []db.SearchEntry) []domain.RetrievedDocument {
	docs := make([]domain.RetrievedDocument, 0, len(entries))
	for _, entry := range entries {
		id := entry.Fields["batiment_groupe_id"]
		if id == "" {
			id = strings.TrimPrefix(entry.Key, shard.Descriptor.DocPrefix)
		}

		doc, ok := shard.Docs.Get(id)
		if !ok {
			s.log.Warn("search hit missing from docstore",
				zap.String("shard", shard.Descriptor.Key),
				zap.String("id", id))
			continue
		}

		docs = append(docs, domain.RetrievedDocument{
			EntityID: id,
			Text:     doc.Text,
			Score:    entry.Score,
			Metadata: doc.Metadata,
		})
	}
	return docs
}

// renderDocuments flattens retrieved texts into the synthesis prompt context.
func renderDocuments(docs []domain.RetrievedDocument) string {
	if len(docs) == 0 {
		return "Aucun document trouvé."
	}
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		parts = append(parts, d.Text)
	}
	return strings.Join(parts, "\n\n")
}
