package handler

import (
	"encoding/json"
	"net/http"

	"github.com/andinpos/site-gateway/internal/domain"
	"github.com/andinpos/site-gateway/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Contact intake: GET/POST /api/demo-request
// ============================================================

func demoRequestLivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "demo-request endpoint is up",
		})
	}
}

func demoRequestHandler(svc *service.LeadService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/demo-request")
		defer span.End()

		var req domain.DemoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		stored, err := svc.Submit(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"message": "demo request received",
			"data":    stored,
		})
	}
}
