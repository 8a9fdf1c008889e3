package structured

import (
	"context"

	"github.com/urbanatlas/bdnbq/internal/domain"
)

// mockQuerier implements the consumer interface for tests.
type mockQuerier struct {
	queryFn func(ctx context.Context, query string) (domain.ResultSet, error)
}

func (m *mockQuerier) Query(ctx context.Context, query string) (domain.ResultSet, error) {
	if m.queryFn != nil {
		return m.queryFn(ctx, query)
	}
	return domain.ResultSet{}, nil
}

// mockCompleter implements the consumer interface for tests.
type mockCompleter struct {
	completeFn func(ctx context.Context, prompt string) (string, error)
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, prompt)
	}
	return "", nil
}
