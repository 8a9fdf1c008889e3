// Package structured answers quantitative questions: run the oracle-generated
// SQL, then have the formatting oracle turn the rows into French prose. Every
// failure wraps domain.ErrStructuredQuery so the router can fall back to
// semantic retrieval.
package structured

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/urbanatlas/bdnbq/internal/domain"
	"github.com/urbanatlas/bdnbq/internal/prompt"
)

// Service runs the structured execution path.
type Service struct {
	db  Querier
	llm Completer
	log *zap.Logger
}

// New creates a structured query service.
func New(db Querier, llm Completer, log *zap.Logger) *Service {
	return &Service{db: db, llm: llm, log: log}
}

// Execute runs sqlQuery and formats the rows into a prose answer for the
// original question.
func (s *Service) Execute(ctx context.Context, question, sqlQuery string) (domain.ResultSet, string, error) {
	result, err := s.db.Query(ctx, sqlQuery)
	if err != nil {
		s.log.Warn("structured query failed",
			zap.String("sql", sqlQuery),
			zap.Error(err))
		return domain.ResultSet{}, "", fmt.Errorf("execute sql: %w: %w", err, domain.ErrStructuredQuery)
	}

	rowsJSON, err := json.Marshal(result.Rows)
	if err != nil {
		return domain.ResultSet{}, "", fmt.Errorf("encode rows: %w: %w", err, domain.ErrStructuredQuery)
	}

	prose, err := s.llm.Complete(ctx, prompt.FormatResults(question, string(rowsJSON)))
	if err != nil {
		s.log.Warn("formatting oracle failed", zap.Error(err))
		return domain.ResultSet{}, "", fmt.Errorf("format results: %w: %w", err, domain.ErrStructuredQuery)
	}
	prose = strings.TrimSpace(prose)
	if prose == "" {
		return domain.ResultSet{}, "", fmt.Errorf("formatting oracle returned no text: %w", domain.ErrStructuredQuery)
	}

	return result, prose, nil
}
