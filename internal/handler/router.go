package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/andinpos/site-gateway/internal/infra/observability"
	"github.com/andinpos/site-gateway/internal/port"
	"github.com/andinpos/site-gateway/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware.
// Routes follow the API contract of the AndinPOS site frontend.
func NewRouter(
	resolver *service.Resolver,
	proxySvc *service.ProxyService,
	tenantSvc *service.TenantConfigService,
	leadSvc *service.LeadService,
	images port.ImageCache,
	sessions port.SessionStore,
	metrics *observability.Metrics,
	logger *zap.Logger,
	adminSecret string,
	allowedOrigin string,
) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{allowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(tenantSvc, sessions, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- Site API ---
	r.Route("/api", func(r chi.Router) {
		// Pass-through proxy to the POS backend
		r.Get("/proxy", proxyGetHandler(proxySvc, logger))
		r.Post("/proxy", proxyPostHandler(proxySvc, logger))

		// Resolved endpoint map (never exposes the token)
		r.Get("/endpoints", endpointsHandler(resolver))

		// Tenant image/activity configuration
		r.Get("/image-config", imageConfigGetHandler(tenantSvc, logger))

		// Demo-request lead intake
		r.Get("/demo-request", demoRequestLivenessHandler())
		r.Post("/demo-request", demoRequestHandler(leadSvc, logger))

		// Image fetch-through cache
		r.Get("/images", imageGetHandler(proxySvc, resolver, images, metrics, logger))
		r.Get("/image-cache/stats", cacheStatsHandler(images))

		// Gateway counters snapshot
		r.Get("/metrics/gateway", gatewayMetricsHandler(metrics))

		// Admin surface (open when no secret is configured)
		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminSecret, logger))
			r.Post("/image-config", imageConfigPostHandler(tenantSvc, logger))
			r.Delete("/image-cache", cacheClearHandler(images, logger))
			r.Put("/session", sessionPutHandler(sessions, resolver, logger))
			r.Delete("/session", sessionDeleteHandler(sessions, logger))
		})
	})

	return r
}

// ============================================================
// Health
// ============================================================

func healthzHandler(tenantSvc *service.TenantConfigService, sessions port.SessionStore, logger *zap.Logger) http.HandlerFunc {
	type serviceHealth struct {
		Name      string `json:"name"`
		Status    string `json:"status"`
		LatencyMs int64  `json:"latency_ms"`
	}

	probe := func(name string, fn func() error) serviceHealth {
		start := time.Now()
		status := "healthy"
		if err := fn(); err != nil {
			status = "degraded"
			logger.Warn("healthz: probe failed", zap.String("probe", name), zap.Error(err))
		}
		return serviceHealth{Name: name, Status: status, LatencyMs: time.Since(start).Milliseconds()}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		var tenantHealth, sessionHealth serviceHealth

		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			tenantHealth = probe("tenant-config-store", func() error {
				_, err := tenantSvc.Get(gCtx, "healthcheck")
				return err
			})
			return nil
		})
		g.Go(func() error {
			sessionHealth = probe("session-store", func() error {
				_, _, err := sessions.Get("user")
				return err
			})
			return nil
		})
		g.Wait()

		services := []serviceHealth{
			{Name: "site-gateway", Status: "healthy"},
			tenantHealth,
			sessionHealth,
		}

		overall := "healthy"
		for _, s := range services {
			if s.Status != "healthy" {
				overall = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"status":   overall,
			"services": services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func gatewayMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetGatewaySnapshot())
	}
}
