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

	"github.com/menulens/menulens/internal/category"
	"github.com/menulens/menulens/internal/config"
	dbRedis "github.com/menulens/menulens/internal/db/redis"
	"github.com/menulens/menulens/internal/domain"
	logpkg "github.com/menulens/menulens/internal/logger"
	"github.com/menulens/menulens/internal/metrics"
	catalogrepo "github.com/menulens/menulens/internal/repository/catalog"
	"github.com/menulens/menulens/internal/repository/embcache"
	vectorrepo "github.com/menulens/menulens/internal/repository/vector"
	chiTransport "github.com/menulens/menulens/internal/transport/chi"
	openaiEmb "github.com/menulens/menulens/internal/transport/openai"
	healthuc "github.com/menulens/menulens/internal/usecase/health"
	matchuc "github.com/menulens/menulens/internal/usecase/match"
	"github.com/menulens/menulens/internal/version"
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

	logger.Info("Starting menulens API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("catalog_path", cfg.Catalog.Path),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterMatchMetrics()

	// Read-only catalog, loaded once; an empty or broken catalog is fatal
	catalog, err := catalogrepo.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	logger.Info("Catalog loaded", zap.Int("entries", catalog.Len()))

	vectors := vectorrepo.New(store)
	if meta, err := vectors.Meta(ctx); err == nil && len(meta) > 0 {
		logger.Info("Vector index metadata",
			zap.String("model", meta["model"]),
			zap.String("built_at", meta["built_at"]),
		)
	}

	embedder, baseEmbedder := buildEmbedder(cfg.Embedding, store, logger)
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	matchSvc := matchuc.New(
		catalog, vectors, embedder,
		category.DefaultRules(),
		matchConfig(cfg.Matching),
		logger,
	)

	healthSvc := healthuc.New(store, newEmbeddingHealthChecker(baseEmbedder), catalog, vectors)

	server := chiTransport.NewServer(matchSvc, healthSvc, cfg.Matching.MinQueryLen, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Mount("/", server.Router(cfg.Auth.APIKeys))

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

// matchConfig maps the YAML knobs onto the pipeline config, falling back
// to the tuned defaults for anything left zero.
func matchConfig(mc config.MatchingConfig) matchuc.Config {
	c := matchuc.DefaultConfig()

	if mc.MinQueryLen > 0 {
		c.MinQueryLen = mc.MinQueryLen
	}
	if mc.LexicalTopN > 0 {
		c.LexicalTopN = mc.LexicalTopN
	}
	if mc.LexicalCutoff > 0 {
		c.LexicalCutoff = mc.LexicalCutoff
	}
	if mc.ResultTopK > 0 {
		c.ResultTopK = mc.ResultTopK
	}
	if mc.ConfirmThreshold > 0 {
		c.ConfirmThreshold = mc.ConfirmThreshold
	}
	if mc.ShortQueryThreshold > 0 {
		c.ShortQueryThreshold = mc.ShortQueryThreshold
	}
	if mc.ThreeCharThreshold > 0 {
		c.ThreeCharThreshold = mc.ThreeCharThreshold
	}
	if mc.MarginThreshold > 0 {
		c.MarginThreshold = mc.MarginThreshold
	}
	if mc.JamoFloor > 0 {
		c.JamoFloor = mc.JamoFloor
	}
	if mc.CategoryMinConfidence > 0 {
		c.CategoryMinConfidence = mc.CategoryMinConfidence
	}
	if mc.CategoryMinKeep > 0 {
		c.CategoryMinKeep = mc.CategoryMinKeep
	}

	w := mc.Weights
	if w.Vector > 0 {
		c.Weights.Vector = w.Vector
	}
	if w.Exact > 0 {
		c.Weights.Exact = w.Exact
	}
	if w.Contain > 0 {
		c.Weights.Contain = w.Contain
	}
	if w.Sequence > 0 {
		c.Weights.Sequence = w.Sequence
	}
	if w.Jamo > 0 {
		c.Weights.Jamo = w.Jamo
	}
	if w.Detail > 0 {
		c.Weights.Detail = w.Detail
	}
	if w.Set > 0 {
		c.Weights.Set = w.Set
	}
	if w.Category > 0 {
		c.Weights.Category = w.Category
	}
	if w.GenericPenalty > 0 {
		c.Weights.GenericPenalty = w.GenericPenalty
	}
	if w.TooShortPenalty > 0 {
		c.Weights.TooShortPenalty = w.TooShortPenalty
	}

	return c
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached. The base
// provider is returned separately because the cache decorator hides its
// health check.
func buildEmbedder(
	ec config.EmbeddingConfig, store *dbRedis.Store, logger *zap.Logger,
) (domain.Embedder, domain.Embedder) {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     ec.APIKey,
		BaseURL:    ec.BaseURL,
		Model:      ec.Model,
		Dimensions: ec.Dimensions,
		Timeout:    time.Duration(ec.TimeoutSec) * time.Second,
		Logger:     logger,
	})

	if store == nil {
		return base, base
	}
	return embcache.New(base, store, embcache.DefaultTTL, metrics.EmbeddingCacheTotal, logger), base
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

			// Canonical log line, one per request
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
