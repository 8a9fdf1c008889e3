// Package classify decides whether a question is quantitative (answerable by
// SQL over the relational backend) or descriptive (routed to semantic
// retrieval), by asking an LLM oracle for a JSON verdict.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/urbanatlas/bdnbq/internal/domain"
	"github.com/urbanatlas/bdnbq/internal/prompt"
)

// jsonObjectPattern finds the first JSON object embedded in surrounding prose.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*?\}`)

// Service runs the classification oracle.
type Service struct {
	llm Completer
	log *zap.Logger
}

// New creates a classification service.
func New(llm Completer, log *zap.Logger) *Service {
	return &Service{llm: llm, log: log}
}

// Classify asks the oracle for a verdict on the question. Oracle transport
// errors are returned as-is; unparseable output yields
// domain.ErrClassificationParse.
func (s *Service) Classify(ctx context.Context, question string) (domain.Classification, error) {
	raw, err := s.llm.Complete(ctx, prompt.Classify(question))
	if err != nil {
		return domain.Classification{}, fmt.Errorf("classification oracle: %w", err)
	}

	verdict, err := parseVerdict(raw)
	if err != nil {
		s.log.Warn("classification output unparseable",
			zap.String("output", truncate(raw, 200)),
			zap.Error(err))
		return domain.Classification{}, err
	}
	return verdict, nil
}

// parseVerdict extracts the JSON verdict from raw oracle output. Models often
// wrap JSON in markdown fences or prose despite instructions; strip fences
// first, then fall back to scanning for the first embedded object.
func parseVerdict(raw string) (domain.Classification, error) {
	cleaned := stripFences(strings.TrimSpace(raw))

	var verdict domain.Classification
	if err := json.Unmarshal([]byte(cleaned), &verdict); err == nil {
		return verdict, nil
	}

	if m := jsonObjectPattern.FindString(cleaned); m != "" {
		if err := json.Unmarshal([]byte(m), &verdict); err == nil {
			return verdict, nil
		}
	}

	return domain.Classification{}, fmt.Errorf("no JSON verdict in oracle output: %w", domain.ErrClassificationParse)
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 && !strings.ContainsAny(s[:idx], "{}") {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
