package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"

	"github.com/urbanatlas/bdnbq/internal/docstore"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	indexExistsFn func(ctx context.Context, name string) (bool, error)
	listIndexesFn func(ctx context.Context, prefix string) ([]string, error)
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) ListIndexes(ctx context.Context, prefix string) ([]string, error) {
	if m.listIndexesFn != nil {
		return m.listIndexesFn(ctx, prefix)
	}
	return nil, nil
}

func newTestRegistry(t *testing.T, ms *mockStore) (*Registry, string) {
	t.Helper()
	dir := t.TempDir()
	return New(ms, dir, "bdnb_buildings", zap.NewNop()), dir
}

// writeDocstore creates a shard directory with a valid docstore.parquet.
func writeDocstore(t *testing.T, storageDir, key string) {
	t.Helper()
	shardDir := filepath.Join(storageDir, key)
	if err := os.MkdirAll(shardDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	rows := []docstore.Row{
		{
			BatimentGroupeID: "bg-" + key + "-0001",
			Text:             "Bâtiment test du département " + key + ".",
			CodeDepartement:  key,
			LibelleCommune:   "Testville",
			UsagePrincipal:   "Résidentiel",
			ClasseBilanDPE:   "D",
		},
	}
	if err := parquet.WriteFile(filepath.Join(shardDir, "docstore.parquet"), rows); err != nil {
		t.Fatalf("write docstore: %v", err)
	}
}
