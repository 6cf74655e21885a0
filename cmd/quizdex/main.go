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

	"github.com/quizdex/quizdex/internal/config"
	dbRedis "github.com/quizdex/quizdex/internal/db/redis"
	logpkg "github.com/quizdex/quizdex/internal/logger"
	"github.com/quizdex/quizdex/internal/metrics"
	"github.com/quizdex/quizdex/internal/repository/admincache"
	"github.com/quizdex/quizdex/internal/repository/postgres"
	chiTransport "github.com/quizdex/quizdex/internal/transport/chi"
	cataloguc "github.com/quizdex/quizdex/internal/usecase/catalog"
	healthuc "github.com/quizdex/quizdex/internal/usecase/health"
	searchuc "github.com/quizdex/quizdex/internal/usecase/search"
	"github.com/quizdex/quizdex/internal/version"
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

	logger.Info("Starting quizdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("cache_addrs", cfg.Cache.Addrs),
	)

	ctx := context.Background()

	// Postgres
	sqlDB, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to postgres", zap.Error(err))
	}
	defer func() { _ = sqlDB.Close() }()
	logger.Info("Connected to postgres")

	// Redis cache (optional; admin checks fall back to Postgres without it)
	var cache *dbRedis.Store
	if len(cfg.Cache.Addrs) > 0 {
		cache, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer cache.Close()

		readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := cache.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to cache")
	}

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Repositories
	testRepo := postgres.NewTestRepo(sqlDB)
	profileRepo := postgres.NewProfileRepo(sqlDB)
	adminRepo := postgres.NewAdminRepo(sqlDB)

	// Admin check, cached when Redis is available
	var adminChecker searchuc.AdminChecker = adminRepo
	if cache != nil {
		adminChecker = admincache.New(
			adminRepo, cache, cfg.Cache.KeyPrefix,
			time.Duration(cfg.Auth.AdminCacheTTLSec)*time.Second,
			metrics.AdminCacheTotal, logger,
		)
	}

	// Use case services
	searchSvc := searchuc.New(testRepo, adminChecker)
	catalogSvc := cataloguc.New(testRepo, profileRepo).
		WithPagination(cfg.Catalog.DefaultPageSize, cfg.Catalog.MaxPageSize)

	var cachePinger healthuc.CachePinger
	if cache != nil {
		cachePinger = cache
	}
	healthSvc := healthuc.New(testRepo, cachePinger)

	// Chi server
	server := chiTransport.NewServer(searchSvc, catalogSvc, healthSvc, logger).
		WithSearchBounds(cfg.Search.DefaultLimit, cfg.Search.MaxLimit, cfg.Search.DefaultMinScore)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

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
