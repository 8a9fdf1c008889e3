package router

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/urbanatlas/bdnbq/internal/domain"
)

type mockCache struct {
	getFn    func(ctx context.Context, question string) (domain.CachedResponse, bool)
	setCalls []domain.CachedResponse
	setKeys  []string
}

func (m *mockCache) Get(ctx context.Context, question string) (domain.CachedResponse, bool) {
	if m.getFn != nil {
		return m.getFn(ctx, question)
	}
	return domain.CachedResponse{}, false
}

func (m *mockCache) Set(_ context.Context, question string, resp domain.CachedResponse) {
	m.setKeys = append(m.setKeys, question)
	m.setCalls = append(m.setCalls, resp)
}

type mockClassifier struct {
	verdict domain.Classification
	err     error
	calls   int
}

func (m *mockClassifier) Classify(_ context.Context, _ string) (domain.Classification, error) {
	m.calls++
	return m.verdict, m.err
}

type mockStructured struct {
	result domain.ResultSet
	prose  string
	err    error
	calls  int
	gotSQL string
}

func (m *mockStructured) Execute(_ context.Context, _, sqlQuery string) (domain.ResultSet, string, error) {
	m.calls++
	m.gotSQL = sqlQuery
	return m.result, m.prose, m.err
}

type mockRetriever struct {
	prose string
	docs  []domain.RetrievedDocument
	err   error
	calls int
}

func (m *mockRetriever) Answer(_ context.Context, _ string) (string, []domain.RetrievedDocument, error) {
	m.calls++
	return m.prose, m.docs, m.err
}

type fixture struct {
	svc        *Service
	cache      *mockCache
	classifier *mockClassifier
	structured *mockStructured
	retriever  *mockRetriever
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		cache:      &mockCache{},
		classifier: &mockClassifier{},
		structured: &mockStructured{},
		retriever:  &mockRetriever{},
	}
	f.svc = New(f.cache, f.classifier, f.structured, f.retriever, nil, zap.NewNop())
	return f
}
