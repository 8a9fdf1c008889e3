package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service-level Prometheus metrics: oracle calls, embeddings, caches and
// answer routing.
var (
	OracleRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bdnbq",
			Name:      "oracle_requests_total",
			Help:      "Total number of LLM oracle requests",
		},
		[]string{"oracle", "model", "status"},
	)

	OracleRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bdnbq",
			Name:      "oracle_request_duration_seconds",
			Help:      "LLM oracle request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"oracle", "model"},
	)

	OracleErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bdnbq",
			Name:      "oracle_errors_total",
			Help:      "Total LLM oracle errors",
		},
		[]string{"oracle", "model", "error_type"},
	)

	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bdnbq",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"provider", "model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bdnbq",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bdnbq",
			Name:      "embedding_tokens_total",
			Help:      "Total embedding tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	EmbeddingErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bdnbq",
			Name:      "embedding_errors_total",
			Help:      "Total embedding errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bdnbq",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	ResponseCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bdnbq",
			Name:      "response_cache_total",
			Help:      "Response cache hits, misses and errors",
		},
		[]string{"result"}, // "hit" / "miss" / "error"
	)

	AnswerPathTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bdnbq",
			Name:      "answer_path_total",
			Help:      "Answers produced, by execution path",
		},
		[]string{"path"}, // "cache" / "structured" / "retrieval"
	)
)

var serviceMetricsRegistered bool

// RegisterServiceMetrics registers service-level Prometheus metrics.
// Must be called once from main.
func RegisterServiceMetrics() {
	if serviceMetricsRegistered {
		return
	}
	prometheus.MustRegister(OracleRequestsTotal)
	prometheus.MustRegister(OracleRequestDuration)
	prometheus.MustRegister(OracleErrorsTotal)
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingTokensTotal)
	prometheus.MustRegister(EmbeddingErrorsTotal)
	prometheus.MustRegister(EmbeddingCacheTotal)
	prometheus.MustRegister(ResponseCacheTotal)
	prometheus.MustRegister(AnswerPathTotal)
	serviceMetricsRegistered = true
}
