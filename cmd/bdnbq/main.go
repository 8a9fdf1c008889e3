package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/urbanatlas/bdnbq/internal/config"
	dbRedis "github.com/urbanatlas/bdnbq/internal/db/redis"
	logpkg "github.com/urbanatlas/bdnbq/internal/logger"
	"github.com/urbanatlas/bdnbq/internal/metrics"
	"github.com/urbanatlas/bdnbq/internal/registry"
	"github.com/urbanatlas/bdnbq/internal/repository/buildings"
	"github.com/urbanatlas/bdnbq/internal/repository/embcache"
	"github.com/urbanatlas/bdnbq/internal/repository/respcache"
	chiTransport "github.com/urbanatlas/bdnbq/internal/transport/chi"
	openaiTransport "github.com/urbanatlas/bdnbq/internal/transport/openai"
	classifyuc "github.com/urbanatlas/bdnbq/internal/usecase/classify"
	healthuc "github.com/urbanatlas/bdnbq/internal/usecase/health"
	retrievaluc "github.com/urbanatlas/bdnbq/internal/usecase/retrieval"
	routeruc "github.com/urbanatlas/bdnbq/internal/usecase/router"
	structureduc "github.com/urbanatlas/bdnbq/internal/usecase/structured"
	"github.com/urbanatlas/bdnbq/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting bdnbq API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("sqlite_path", cfg.Relational.SQLitePath),
	)

	// Vector store
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create vector store", zap.Error(err))
	}
	defer store.Close()

	// Wait for the store to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Vector store not ready", zap.Error(err))
	}
	logger.Info("Connected to vector store")

	// Register service metrics explicitly (no init())
	metrics.RegisterServiceMetrics()

	// Relational backend (read-only sqlite snapshot)
	buildingsRepo, err := buildings.Open(cfg.Relational.SQLitePath)
	if err != nil {
		logger.Fatal("Failed to open buildings database", zap.Error(err))
	}
	defer buildingsRepo.Close()

	// Embedder chain: OpenAI -> Cached
	baseEmbedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   "openai",
		Logger:     logger,
	})
	embedder := embcache.New(baseEmbedder, store, metrics.EmbeddingCacheTotal, logger)
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	// One completer per oracle role so metrics stay per-role
	oracleTimeout := time.Duration(cfg.Oracle.TimeoutSec) * time.Second
	newCompleter := func(role string) *openaiTransport.Completer {
		return openaiTransport.NewCompleter(&openaiTransport.CompleterConfig{
			APIKey:  cfg.Oracle.APIKey,
			BaseURL: cfg.Oracle.BaseURL,
			Model:   cfg.Oracle.Model,
			Oracle:  role,
			Timeout: oracleTimeout,
			Logger:  logger,
		})
	}
	classifyOracle := newCompleter("classification")
	formatOracle := newCompleter("formatting")
	synthesisOracle := newCompleter("synthesis")

	// Shard registry over the vector store and on-disk docstores
	shards := registry.New(store, cfg.Storage.Dir, cfg.Storage.Collection, logger)

	// Use case services
	classifySvc := classifyuc.New(classifyOracle, logger)
	structuredSvc := structureduc.New(buildingsRepo, formatOracle, logger)
	retrievalSvc := retrievaluc.New(shards, store, embedder, synthesisOracle, cfg.Retrieval.TopK, logger)

	cache := respcache.New(
		store,
		time.Duration(cfg.Cache.TTLSec)*time.Second,
		time.Duration(cfg.Cache.OpTimeoutMS)*time.Millisecond,
		metrics.ResponseCacheTotal,
		logger,
	)

	routerSvc := routeruc.New(cache, classifySvc, structuredSvc, retrievalSvc, metrics.AnswerPathTotal, logger)

	// Health service
	healthSvc := healthuc.New(store, buildingsRepo, classifyOracle)

	// HTTP server
	server := chiTransport.NewServer(routerSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
