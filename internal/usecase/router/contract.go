package router

import (
	"context"

	"github.com/urbanatlas/bdnbq/internal/domain"
)

// ResponseCache is the best-effort answer cache.
type ResponseCache interface {
	Get(ctx context.Context, question string) (domain.CachedResponse, bool)
	Set(ctx context.Context, question string, resp domain.CachedResponse)
}

// Classifier decides whether a question is quantitative and, if so, supplies
// the SQL to run.
type Classifier interface {
	Classify(ctx context.Context, question string) (domain.Classification, error)
}

// StructuredExecutor answers quantitative questions over the relational
// backend.
type StructuredExecutor interface {
	Execute(ctx context.Context, question, sqlQuery string) (domain.ResultSet, string, error)
}

// Retriever answers descriptive questions by semantic retrieval.
type Retriever interface {
	Answer(ctx context.Context, question string) (string, []domain.RetrievedDocument, error)
}
