package domain

// ShardDescriptor identifies one région-scoped partition of the semantic index.
type ShardDescriptor struct {
	// Key is the département code (e.g. "69", "2a").
	Key string
	// IndexName is the vector index name in the search backend.
	IndexName string
	// DocPrefix is the hash key prefix for documents in this shard.
	DocPrefix string
	// DocstorePath is the companion on-disk document store artifact.
	DocstorePath string
}
