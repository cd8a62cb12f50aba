package handler

import (
	"encoding/json"
	"net/http"

	"github.com/andinpos/site-gateway/internal/infra/session"
	"github.com/andinpos/site-gateway/internal/port"
	"github.com/andinpos/site-gateway/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Session and resolver: PUT/DELETE /api/session, GET /api/endpoints
// ============================================================

// endpointsHandler exposes the resolved endpoint map. The token is never
// included here; it only ever travels in outbound upstream headers.
func endpointsHandler(resolver *service.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID := r.URL.Query().Get("companyId")
		cfg := resolver.Resolve()
		if companyID == "" {
			companyID = cfg.CompanyID
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"companyId": companyID,
			"source":    cfg.Source,
			"endpoints": resolver.Endpoints(companyID),
		})
	}
}

// sessionPutHandler stores the user and company records the resolver reads.
// Both must be present: the resolver only trusts a complete pair.
func sessionPutHandler(sessions port.SessionStore, resolver *service.Resolver, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			User    json.RawMessage `json:"user"`
			Company json.RawMessage `json:"company"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(req.User) == 0 || len(req.Company) == 0 {
			writeError(w, http.StatusBadRequest, "user and company records are both required")
			return
		}

		if err := sessions.Put(session.KeyUser, req.User); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if err := sessions.Put(session.KeyCompany, req.Company); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		cfg := resolver.Resolve()
		logger.Info("session updated", zap.String("company_id", cfg.CompanyID), zap.String("source", string(cfg.Source)))

		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"companyId": cfg.CompanyID,
			"source":    cfg.Source,
		})
	}
}

func sessionDeleteHandler(sessions port.SessionStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sessions.Clear(); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		logger.Info("session cleared")
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
