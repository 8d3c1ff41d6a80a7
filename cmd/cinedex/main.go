package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/config"
	"github.com/kailas-cloud/cinedex/internal/index"
	logpkg "github.com/kailas-cloud/cinedex/internal/logger"
	"github.com/kailas-cloud/cinedex/internal/metrics"
	chiTransport "github.com/kailas-cloud/cinedex/internal/transport/chi"
	browseuc "github.com/kailas-cloud/cinedex/internal/usecase/browse"
	healthuc "github.com/kailas-cloud/cinedex/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/cinedex/internal/usecase/recommend"
	"github.com/kailas-cloud/cinedex/internal/version"
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

	logger.Info("Starting cinedex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("snapshot", cfg.Catalog.SnapshotPath),
		zap.Int("max_features", cfg.Index.MaxFeatures),
	)

	// Build the similarity index once, before serving. A failed load
	// starts the server degraded: every catalog query answers 503
	// until a SIGHUP reload succeeds or the process restarts.
	store := index.NewStore()
	loadIndex(store, cfg, logger)

	recommendSvc := recommenduc.New(store)
	browseSvc := browseuc.New(store).
		WithPagination(cfg.Browse.DefaultPageSize, cfg.Browse.MaxPageSize).
		WithSearchLimit(cfg.Browse.SearchLimit)
	healthSvc := healthuc.New(store)

	server := chiTransport.NewServer(recommendSvc, browseSvc, healthSvc, chiTransport.PosterResolver{
		BaseURL:     cfg.Posters.BaseURL,
		Size:        cfg.Posters.Size,
		Placeholder: cfg.Posters.Placeholder,
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	r.Mount("/", server.Routes())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// SIGHUP rebuilds the index off-line and swaps it in atomically;
	// the old index keeps serving until the new one is ready.
	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

loop:
	for {
		select {
		case <-reload:
			logger.Info("Received SIGHUP, reloading snapshot")
			loadIndex(store, cfg, logger)
		case <-quit:
			logger.Info("Received shutdown signal")
			break loop
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// loadIndex builds the index from the configured snapshot and swaps it
// into the store. On failure the previous index (possibly none) keeps
// serving; the error is logged, never fatal.
func loadIndex(store *index.Store, cfg config.Config, logger *zap.Logger) {
	start := time.Now()
	ix, stats, err := index.Load(cfg.Catalog.SnapshotPath, cfg.Index.MaxFeatures)
	if err != nil {
		logger.Error("Snapshot load failed, serving degraded",
			zap.String("snapshot", cfg.Catalog.SnapshotPath),
			zap.Error(err),
		)
		return
	}

	store.Swap(ix)
	logger.Info("Similarity index ready",
		zap.Int("rows_read", stats.Total),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("rejected", stats.Rejected),
		zap.Int("items", stats.Kept),
		zap.Int("vocab_size", ix.VocabSize),
		zap.Duration("took", time.Since(start)),
	)
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

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
