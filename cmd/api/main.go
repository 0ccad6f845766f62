// @title        storex API
// @version      1.0
// @description  Catalog, checkout and payments for the storex storefront.
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MikeMC777/storex/internal/api"
	"github.com/MikeMC777/storex/internal/auth"
	"github.com/MikeMC777/storex/internal/config"
	"github.com/MikeMC777/storex/internal/logging"
	"github.com/MikeMC777/storex/internal/storage"
	"github.com/MikeMC777/storex/internal/telemetry"
)

func main() {
	cfg := config.Load()

	logger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("config_invalid", zap.Error(err))
	}
	logger.Info("config_loaded", cfg.Fields()...)

	shutdownTracing, err := telemetry.SetupTracing(cfg.TracesExporter)
	if err != nil {
		logger.Fatal("tracing_setup_failed", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := telemetry.NewMetrics("storex", reg)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := storage.Open(startCtx, cfg)
	cancelStart()
	if err != nil {
		logger.Fatal("store_open_failed", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	logger.Info("store_ready", zap.String("driver", cfg.DBDriver))

	var verifier auth.Verifier = auth.NewProviderClient(cfg.AuthProviderURL, cfg.AuthSecretKey)
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("redis_url_invalid", zap.Error(err))
		}
		rdb = redis.NewClient(opt)
		verifier = auth.NewCachedVerifier(verifier, rdb, cfg.AuthCacheTTL)
		logger.Info("session_cache_enabled", zap.Duration("ttl", cfg.AuthCacheTTL))
	}

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Deps{
		Store:      store,
		Verifier:   verifier,
		AdminRole:  cfg.AuthAdminRole,
		CORSOrigin: cfg.CORSOrigin,
		Logger:     logger,
		Metrics:    metrics,
		Gatherer:   reg,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http_server_start", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error", zap.Error(err))
	} else {
		logger.Info("http_server_stopped")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Error("store_close_error", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing_shutdown_error", zap.Error(err))
	}
}
