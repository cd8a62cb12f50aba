package handler

import (
	"net/http"

	"github.com/andinpos/site-gateway/internal/infra/observability"
	"github.com/andinpos/site-gateway/internal/port"
	"github.com/andinpos/site-gateway/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Image cache: GET /api/images, GET /api/image-cache/stats,
//               DELETE /api/image-cache
// ============================================================

// imageGetHandler serves tenant images through the cache: a hit returns the
// cached payload, a miss fetches the image record from the POS backend with
// the resolved token and stores it.
func imageGetHandler(proxySvc *service.ProxyService, resolver *service.Resolver, images port.ImageCache, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/images")
		defer span.End()

		q := r.URL.Query()
		key := q.Get("key")
		if key == "" {
			writeError(w, http.StatusBadRequest, "key query parameter is required")
			return
		}

		cfg := resolver.Resolve()
		companyID := q.Get("companyId")
		if companyID == "" {
			companyID = cfg.CompanyID
		}
		span.SetAttributes(
			attribute.String("company.id", companyID),
			attribute.String("image.key", key),
		)

		if payload, ok := images.Get(companyID, key); ok {
			metrics.IncrCacheHit("images")
			writeRaw(w, http.StatusOK, payload)
			return
		}
		metrics.IncrCacheMiss("images")

		res, err := proxySvc.ForwardGet(ctx, "images/"+key, cfg.Token, "")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if res.Status == http.StatusOK {
			images.Set(companyID, key, res.Body)
		}

		writeRaw(w, res.Status, res.Body)
	}
}

func cacheStatsHandler(images port.ImageCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, images.Stats())
	}
}

// cacheClearHandler removes one tenant's entries when companyId is given,
// or every image entry otherwise, and returns the refreshed stats.
func cacheClearHandler(images port.ImageCache, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID := r.URL.Query().Get("companyId")

		var removed int
		if companyID == "" {
			removed = images.ClearAll()
		} else {
			removed = images.Clear(companyID)
		}

		logger.Info("image cache cleared",
			zap.String("company_id", companyID),
			zap.Int("removed", removed),
		)

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"removed": removed,
			"stats":   images.Stats(),
		})
	}
}
