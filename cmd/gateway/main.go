package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andinpos/site-gateway/internal/config"
	"github.com/andinpos/site-gateway/internal/handler"
	"github.com/andinpos/site-gateway/internal/infra/cache"
	"github.com/andinpos/site-gateway/internal/infra/leadstore"
	"github.com/andinpos/site-gateway/internal/infra/observability"
	"github.com/andinpos/site-gateway/internal/infra/resilience"
	"github.com/andinpos/site-gateway/internal/infra/session"
	"github.com/andinpos/site-gateway/internal/infra/supabase"
	"github.com/andinpos/site-gateway/internal/infra/tenantstore"
	"github.com/andinpos/site-gateway/internal/infra/upstream"
	"github.com/andinpos/site-gateway/internal/port"
	"github.com/andinpos/site-gateway/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("pos_api_url", cfg.POSAPIURL),
		zap.String("data_dir", cfg.DataDir),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Bool("use_supabase", cfg.UseSupabase),
		zap.Bool("admin_auth", cfg.AdminJWTSecret != ""),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "andinpos-site-gateway")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Durable stores ---
	sessions := session.NewFileStore(cfg.DataDir, logger)

	tenantStore := tenantstore.NewFileStore(cfg.DataDir, logger)
	if err := tenantStore.Ensure(); err != nil {
		logger.Fatal("failed to initialize tenant config store", zap.Error(err))
	}

	// --- Clients ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	upstreamClient := upstream.NewClient(httpClient, cfg.POSAPIURL, logger)

	var leadStore port.LeadStore
	if cfg.UseSupabase && cfg.SupabaseURL != "" {
		logger.Info("using Supabase as lead backend", zap.String("supabase_url", cfg.SupabaseURL))
		leadStore = supabase.NewLeadStore(
			httpClient,
			cfg.SupabaseURL,
			cfg.SupabaseAnonKey,
			cfg.SupabaseServiceKey,
			resilience.NewCircuitBreaker("supabase-leads"),
			resilience.Config{MaxRetries: cfg.MaxRetries, InitialBackoff: cfg.InitialBackoff},
			logger,
		)
	} else {
		logger.Info("using local file store as lead backend")
		leadStore = leadstore.NewFileStore(cfg.DataDir, logger)
	}

	// --- Cache ---
	images := cache.NewImageCache()

	// --- Services ---
	resolver := service.NewResolver(sessions, cfg.POSAPIToken, cfg.POSCompanyID, cfg.POSAPIURL, logger)
	proxySvc := service.NewProxyService(upstreamClient, metrics, logger)
	tenantSvc := service.NewTenantConfigService(tenantStore, logger)
	leadSvc := service.NewLeadService(leadStore, metrics, logger)

	// --- Router ---
	router := handler.NewRouter(
		resolver, proxySvc, tenantSvc, leadSvc,
		images, sessions, metrics, logger,
		cfg.AdminJWTSecret, cfg.AllowedOrigin,
	)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
