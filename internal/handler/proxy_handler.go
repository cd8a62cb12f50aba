package handler

import (
	"io"
	"net/http"

	"github.com/andinpos/site-gateway/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Proxy gateway: GET/POST /api/proxy
// ============================================================
//
// The proxy is deliberately dumb pass-through: URL assembly and auth-header
// injection, nothing more. Its correctness property is transparency: the
// upstream's status and JSON body are relayed bit for bit, and local
// failures use a body the upstream would never produce.

func proxyGetHandler(svc *service.ProxyService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/proxy")
		defer span.End()

		q := r.URL.Query()
		endpoint := q.Get("endpoint")
		if endpoint == "" {
			writeError(w, http.StatusBadRequest, "endpoint query parameter is required")
			return
		}
		span.SetAttributes(attribute.String("proxy.endpoint", endpoint))

		res, err := svc.ForwardGet(ctx, endpoint, q.Get("token"), q.Get("search"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeRaw(w, res.Status, res.Body)
	}
}

func proxyPostHandler(svc *service.ProxyService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/proxy")
		defer span.End()

		q := r.URL.Query()
		endpoint := q.Get("endpoint")
		if endpoint == "" {
			writeError(w, http.StatusBadRequest, "endpoint query parameter is required")
			return
		}
		span.SetAttributes(attribute.String("proxy.endpoint", endpoint))

		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		res, err := svc.ForwardPost(ctx, endpoint, q.Get("token"), body)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeRaw(w, res.Status, res.Body)
	}
}
