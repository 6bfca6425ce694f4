// forumdex is the forum content retrieval and ranking API server.
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

	"github.com/kaverma/forumdex/internal/config"
	dbRedis "github.com/kaverma/forumdex/internal/db/redis"
	logpkg "github.com/kaverma/forumdex/internal/logger"
	"github.com/kaverma/forumdex/internal/metrics"
	"github.com/kaverma/forumdex/internal/repository/embcache"
	"github.com/kaverma/forumdex/internal/repository/postgres"
	"github.com/kaverma/forumdex/internal/transport/httpapi"
	openaiTransport "github.com/kaverma/forumdex/internal/transport/openai"
	answeruc "github.com/kaverma/forumdex/internal/usecase/answer"
	browseuc "github.com/kaverma/forumdex/internal/usecase/browse"
	healthuc "github.com/kaverma/forumdex/internal/usecase/health"
	searchuc "github.com/kaverma/forumdex/internal/usecase/search"
	trendinguc "github.com/kaverma/forumdex/internal/usecase/trending"
	"github.com/kaverma/forumdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting forumdex API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
	)

	// Forum store (Postgres + pgvector)
	sqlDB, err := postgres.Connect(postgres.Config{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifeMin) * time.Minute,
	})
	if err != nil {
		logger.Fatal("Failed to open forum store", zap.Error(err))
	}
	repo := postgres.New(sqlDB, logger)
	defer func() { _ = repo.Close() }()

	ctx := context.Background()
	if err := repo.WaitForReady(ctx, time.Duration(cfg.Postgres.ReadinessSec)*time.Second); err != nil {
		logger.Fatal("Forum store not ready", zap.Error(err))
	}
	logger.Info("Connected to forum store")

	// Embedding cache (optional)
	var cacheStore *dbRedis.Store
	if len(cfg.Cache.Addrs) > 0 {
		cacheStore, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create embedding cache", zap.Error(err))
		}
		defer cacheStore.Close()

		if err := cacheStore.WaitForReady(ctx, 10*time.Second); err != nil {
			logger.Fatal("Embedding cache not ready", zap.Error(err))
		}
		logger.Info("Connected to embedding cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	// Embedder chain assembled here in the composition root
	baseEmbedder := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})
	var queryEmbedder searchuc.Embedder = baseEmbedder
	if cacheStore != nil {
		queryEmbedder = embcache.New(
			baseEmbedder, cacheStore,
			time.Duration(cfg.Cache.TTLHours)*time.Hour,
			metrics.EmbeddingCacheTotal, logger,
		)
	}
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.Bool("cached", cacheStore != nil),
	)

	chatClient := openaiTransport.NewChatClient(&openaiTransport.ChatConfig{
		APIKey:    cfg.Embedding.APIKey,
		BaseURL:   cfg.Embedding.BaseURL,
		Model:     cfg.Answer.Model,
		MaxTokens: cfg.Answer.MaxTokens,
		Logger:    logger,
	})

	// Create use case services
	searchSvc := searchuc.New(repo, queryEmbedder, searchuc.Config{
		TextWeight:      cfg.Search.TextWeight,
		SemanticWeight:  cfg.Search.SemanticWeight,
		FanOut:          cfg.Search.FanOut,
		SubqueryTimeout: time.Duration(cfg.Search.SubqueryTimeoutMs) * time.Millisecond,
		TechnicalTerms:  cfg.Search.TechnicalTerms,
	}, logger)
	trendingSvc := trendinguc.New(repo, logger)
	answerSvc := answeruc.New(searchSvc, chatClient, answeruc.Config{
		ContextSize:  cfg.Answer.ContextSize,
		ForumBaseURL: cfg.Answer.ForumBaseURL,
	}, logger)
	browseSvc := browseuc.New(repo)

	// Pass nil interface (not typed nil pointer!) when the cache is absent.
	var cachePinger healthuc.CachePinger
	if cacheStore != nil {
		cachePinger = cacheStore
	}
	healthSvc := healthuc.New(repo, cachePinger, baseEmbedder)

	// Create HTTP server
	server := httpapi.NewServer(searchSvc, trendingSvc, answerSvc, browseSvc, healthSvc, httpapi.Config{
		MinSimilarity: cfg.Search.MinSimilarity,
		NeighborFloor: cfg.Search.NeighborFloor,
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(httpapi.BearerAuthMiddleware(cfg.Auth.APIKeys))
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

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
			)
		})
	}
}
