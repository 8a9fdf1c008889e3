// Package registry discovers and verifies the per-département shards of the
// semantic index. A shard is usable when its FT index exists in the search
// backend and its on-disk docstore artifact loads.
package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/urbanatlas/bdnbq/internal/docstore"
	"github.com/urbanatlas/bdnbq/internal/domain"
)

// store is the consumer interface for shard discovery (ISP).
type store interface {
	IndexExists(ctx context.Context, name string) (bool, error)
	ListIndexes(ctx context.Context, prefix string) ([]string, error)
}

// Shard is a resolved, verified shard: its descriptor plus the loaded docstore.
type Shard struct {
	Descriptor domain.ShardDescriptor
	Docs       *docstore.Store
}

// Registry resolves département keys to usable shards. Docstores are loaded
// lazily and cached for the process lifetime; shard artifacts are immutable
// once published by the ingestion pipeline.
type Registry struct {
	store      store
	storageDir string
	collection string
	log        *zap.Logger

	mu        sync.Mutex
	docstores map[string]*docstore.Store
}

// New creates a shard registry over the given search backend and storage dir.
func New(s store, storageDir, collection string, log *zap.Logger) *Registry {
	if collection == "" {
		collection = domain.DefaultCollection
	}
	return &Registry{
		store:      s,
		storageDir: storageDir,
		collection: collection,
		log:        log,
		docstores:  make(map[string]*docstore.Store),
	}
}

// Resolve returns the shard for a département key, verifying both the FT
// index and the docstore artifact. Any missing piece yields
// domain.ErrShardUnavailable.
func (r *Registry) Resolve(ctx context.Context, key string) (Shard, error) {
	desc := r.describe(key)

	exists, err := r.store.IndexExists(ctx, desc.IndexName)
	if err != nil {
		return Shard{}, fmt.Errorf("check index %s: %w", desc.IndexName, err)
	}
	if !exists {
		return Shard{}, fmt.Errorf("shard %s: index missing: %w", key, domain.ErrShardUnavailable)
	}

	docs, err := r.loadDocstore(key, desc.DocstorePath)
	if err != nil {
		r.log.Warn("shard docstore unusable",
			zap.String("shard", key),
			zap.String("path", desc.DocstorePath),
			zap.Error(err))
		return Shard{}, fmt.Errorf("shard %s: docstore: %w", key, domain.ErrShardUnavailable)
	}

	return Shard{Descriptor: desc, Docs: docs}, nil
}

// Keys enumerates the département keys whose FT indexes exist in the backend,
// sorted. Docstore verification happens in Resolve.
func (r *Registry) Keys(ctx context.Context) ([]string, error) {
	prefix := r.namePrefix()
	names, err := r.store.ListIndexes(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list indexes: %w", err)
	}

	keys := make([]string, 0, len(names))
	for _, name := range names {
		key := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ":idx")
		if key == "" || strings.Contains(key, ":") {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// ResolveAny returns the first usable shard among the given keys, skipping
// shards whose artifacts are missing or unreadable.
func (r *Registry) ResolveAny(ctx context.Context, keys []string) (Shard, error) {
	for _, key := range keys {
		shard, err := r.Resolve(ctx, key)
		if err == nil {
			return shard, nil
		}
		r.log.Debug("skipping shard", zap.String("shard", key), zap.Error(err))
	}
	return Shard{}, fmt.Errorf("no usable shard among %d candidates: %w", len(keys), domain.ErrShardUnavailable)
}

func (r *Registry) describe(key string) domain.ShardDescriptor {
	base := fmt.Sprintf("%s%s_%s", domain.KeyPrefix, r.collection, key)
	return domain.ShardDescriptor{
		Key:          key,
		IndexName:    base + ":idx",
		DocPrefix:    base + ":",
		DocstorePath: filepath.Join(r.storageDir, key, "docstore.parquet"),
	}
}

func (r *Registry) namePrefix() string {
	return fmt.Sprintf("%s%s_", domain.KeyPrefix, r.collection)
}

func (r *Registry) loadDocstore(key, path string) (*docstore.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if docs, ok := r.docstores[key]; ok {
		return docs, nil
	}
	docs, err := docstore.Open(path)
	if err != nil {
		return nil, err
	}
	r.docstores[key] = docs
	return docs, nil
}
