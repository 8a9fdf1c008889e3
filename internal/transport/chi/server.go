// Package chi exposes the question-answering pipeline over HTTP: POST /chat
// for answers, GET /health for readiness, GET /metrics for Prometheus.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/urbanatlas/bdnbq/internal/domain"
	healthuc "github.com/urbanatlas/bdnbq/internal/usecase/health"
)

// Answerer runs the answering pipeline for a raw user question.
type Answerer interface {
	Answer(ctx context.Context, query string) (domain.CachedResponse, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server is the HTTP API server.
type Server struct {
	answerer      Answerer
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(answerer Answerer, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		answerer: answerer,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeEmptyQuery),
		sentinelHandler(domain.ErrShardUnavailable, http.StatusServiceUnavailable, codeShardUnavailable),
		sentinelHandler(domain.ErrOracleTimeout, http.StatusGatewayTimeout, codeOracleTimeout),
		sentinelHandler(domain.ErrOracleUnavailable, http.StatusBadGateway, codeOracleUnavailable),
	}
	return s
}

// Routes mounts the API on a chi router.
func (s *Server) Routes(r chirouter.Router) {
	r.Post("/chat", s.Chat)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// chatRequest is the POST /chat request body.
type chatRequest struct {
	Message string `json:"message"`
}

// chatResponse is the POST /chat response body.
type chatResponse struct {
	Response       string                     `json:"response"`
	RawData        []domain.Row               `json:"raw_data"`
	RetrievedNodes []domain.RetrievedDocument `json:"retrieved_nodes"`
}

// Chat handles POST /chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	answer, err := s.answerer.Answer(r.Context(), req.Message)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Response:       answer.Response,
		RawData:        answer.RawData,
		RetrievedNodes: answer.RetrievedNodes,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

type errorCode string

const (
	codeBadRequest        errorCode = "bad_request"
	codeEmptyQuery        errorCode = "empty_query"
	codeShardUnavailable  errorCode = "shard_unavailable"
	codeOracleTimeout     errorCode = "oracle_timeout"
	codeOracleUnavailable errorCode = "oracle_unavailable"
	codeInternalError     errorCode = "internal_error"
)

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrShardUnavailable,
		domain.ErrOracleTimeout,
		domain.ErrOracleUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, safeDomainMessage(err))
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
