package handler

import (
	"encoding/json"
	"net/http"

	"github.com/andinpos/site-gateway/internal/domain"
	"github.com/andinpos/site-gateway/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Tenant config store: GET/POST /api/image-config
// ============================================================

func imageConfigGetHandler(svc *service.TenantConfigService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/image-config")
		defer span.End()

		companyID := r.URL.Query().Get("companyId")
		span.SetAttributes(attribute.String("company.id", companyID))

		entry, err := svc.Get(ctx, companyID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"companyId": companyID,
			"config":    entry, // nil for an unknown tenant
		})
	}
}

func imageConfigPostHandler(svc *service.TenantConfigService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/image-config")
		defer span.End()

		var req struct {
			CompanyID   domain.FlexibleID `json:"companyId"`
			Activities  []json.RawMessage `json:"activities"`
			Images      []json.RawMessage `json:"images"`
			LastUpdated int64             `json:"lastUpdated,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		span.SetAttributes(attribute.String("company.id", req.CompanyID.String()))

		saved, err := svc.Put(ctx, req.CompanyID.String(), req.Activities, req.Images, req.LastUpdated)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"companyId": saved.CompanyID,
			"saved":     saved,
		})
	}
}
