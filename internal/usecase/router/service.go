// Package router is the answering pipeline: response cache, classification,
// then the structured path with silent fallback to semantic retrieval. A
// caller only ever sees a complete answer or a terminal error; classification
// and structured failures are absorbed by routing.
package router

import (
	"context"
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/urbanatlas/bdnbq/internal/domain"
)

// Service routes a question through the answering pipeline.
type Service struct {
	cache      ResponseCache
	classifier Classifier
	structured StructuredExecutor
	retriever  Retriever
	pathTotal  *prometheus.CounterVec
	log        *zap.Logger
}

// New creates a router. pathTotal is a counter vec with label "path"
// ("cache"/"structured"/"retrieval"); nil disables it.
func New(cache ResponseCache, classifier Classifier, structured StructuredExecutor, retriever Retriever, pathTotal *prometheus.CounterVec, log *zap.Logger) *Service {
	return &Service{
		cache:      cache,
		classifier: classifier,
		structured: structured,
		retriever:  retriever,
		pathTotal:  pathTotal,
		log:        log,
	}
}

// Answer produces the response for a raw user question.
func (s *Service) Answer(ctx context.Context, query string) (domain.CachedResponse, error) {
	if strings.TrimSpace(query) == "" {
		return domain.CachedResponse{}, domain.ErrEmptyQuery
	}

	if resp, ok := s.cache.Get(ctx, query); ok {
		s.log.Debug("cache hit", zap.String("query", query))
		s.incPath("cache")
		return resp, nil
	}

	verdict := s.classify(ctx, query)

	if verdict.IsQuantitative && verdict.SQLQuery != "" {
		resp, err := s.answerStructured(ctx, query, verdict.SQLQuery)
		if err == nil {
			s.incPath("structured")
			s.cache.Set(ctx, query, resp)
			return resp, nil
		}
		if !errors.Is(err, domain.ErrStructuredQuery) {
			return domain.CachedResponse{}, err
		}
		s.log.Warn("structured path failed, falling back to retrieval",
			zap.String("query", query),
			zap.Error(err))
	}

	resp, err := s.answerRetrieval(ctx, query)
	if err != nil {
		return domain.CachedResponse{}, err
	}
	s.incPath("retrieval")
	s.cache.Set(ctx, query, resp)
	return resp, nil
}

// classify asks the oracle for a verdict. Any failure, transport or parse,
// degrades to descriptive so the question still gets answered.
func (s *Service) classify(ctx context.Context, query string) domain.Classification {
	verdict, err := s.classifier.Classify(ctx, query)
	if err != nil {
		s.log.Warn("classification failed, treating question as descriptive",
			zap.String("query", query),
			zap.Error(err))
		return domain.Classification{}
	}
	return verdict
}

func (s *Service) answerStructured(ctx context.Context, query, sqlQuery string) (domain.CachedResponse, error) {
	result, prose, err := s.structured.Execute(ctx, query, sqlQuery)
	if err != nil {
		return domain.CachedResponse{}, err
	}
	return domain.CachedResponse{
		Response:       prose,
		RawData:        result.Rows,
		RetrievedNodes: []domain.RetrievedDocument{},
	}, nil
}

func (s *Service) answerRetrieval(ctx context.Context, query string) (domain.CachedResponse, error) {
	prose, docs, err := s.retriever.Answer(ctx, query)
	if err != nil {
		return domain.CachedResponse{}, err
	}
	if docs == nil {
		docs = []domain.RetrievedDocument{}
	}
	return domain.CachedResponse{
		Response:       prose,
		RawData:        nil,
		RetrievedNodes: docs,
	}, nil
}

func (s *Service) incPath(path string) {
	if s.pathTotal != nil {
		s.pathTotal.WithLabelValues(path).Inc()
	}
}
