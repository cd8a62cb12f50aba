package service

import (
	"context"
	"net/http"
	"time"

	"github.com/andinpos/site-gateway/internal/domain"
	"github.com/andinpos/site-gateway/internal/infra/observability"
	"github.com/andinpos/site-gateway/internal/port"

	"go.uber.org/zap"
)

// ProxyService forwards browser-originated requests to the POS backend and
// relays the response untouched, recording metrics around the round trip.
type ProxyService struct {
	upstream port.Forwarder
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewProxyService creates the proxy service.
func NewProxyService(upstream port.Forwarder, metrics *observability.Metrics, logger *zap.Logger) *ProxyService {
	return &ProxyService{
		upstream: upstream,
		metrics:  metrics,
		logger:   logger,
	}
}

// ForwardGet relays a GET round trip. The endpoint must already be
// validated as non-empty by the handler.
func (s *ProxyService) ForwardGet(ctx context.Context, endpoint, token, search string) (*domain.UpstreamResult, error) {
	start := time.Now()
	res, err := s.upstream.Get(ctx, endpoint, token, search)
	s.observe(http.MethodGet, endpoint, start, res, err)
	return res, err
}

// ForwardPost relays a POST round trip with the caller's body verbatim.
func (s *ProxyService) ForwardPost(ctx context.Context, endpoint, token string, body []byte) (*domain.UpstreamResult, error) {
	start := time.Now()
	res, err := s.upstream.Post(ctx, endpoint, token, body)
	s.observe(http.MethodPost, endpoint, start, res, err)
	return res, err
}

func (s *ProxyService) observe(method, endpoint string, start time.Time, res *domain.UpstreamResult, err error) {
	s.metrics.RecordProxyDuration(method, time.Since(start))
	if err != nil {
		s.metrics.IncrRequest("failed")
		s.metrics.IncrUpstreamError("round_trip")
		return
	}
	s.metrics.IncrRequest("relayed")
	s.logger.Debug("proxy: relayed",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("upstream_status", res.Status),
		zap.Duration("latency", time.Since(start)),
	)
}
