package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the gateway.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	proxyDuration  *prometheus.HistogramVec
	upstreamErrors *prometheus.CounterVec
	cacheHits      *prometheus.CounterVec
	cacheMisses    *prometheus.CounterVec
	leadsTotal     *prometheus.CounterVec
	requestsTotal  *prometheus.CounterVec
}

// GatewaySnapshot is a plain-JSON view of the gateway counters for the
// GET /api/metrics/gateway endpoint.
type GatewaySnapshot struct {
	ProxyRequests  int64   `json:"proxyRequests"`
	UpstreamErrors int64   `json:"upstreamErrors"`
	ErrorRate      float64 `json:"errorRate"`
	CacheHitRate   float64 `json:"cacheHitRate"`
	LeadsAccepted  int64   `json:"leadsAccepted"`
	LeadsRejected  int64   `json:"leadsRejected"`
	Period         string  `json:"period"`
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		proxyDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_proxy_duration_seconds",
				Help:    "Duration of proxied upstream round trips by method.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		upstreamErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_upstream_errors_total",
				Help: "Total failed round trips to the POS backend.",
			},
			[]string{"reason"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_cache_hits_total",
				Help: "Total image cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_cache_misses_total",
				Help: "Total image cache misses.",
			},
			[]string{"cache"},
		),
		leadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_leads_total",
				Help: "Demo-request leads by outcome.",
			},
			[]string{"outcome"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_requests_total",
				Help: "Total proxy requests processed.",
			},
			[]string{"status"},
		),
	}
}

// RecordProxyDuration records the duration of a proxied round trip.
func (m *Metrics) RecordProxyDuration(method string, d time.Duration) {
	m.proxyDuration.WithLabelValues(method).Observe(d.Seconds())
}

// IncrUpstreamError increments the upstream failure counter.
func (m *Metrics) IncrUpstreamError(reason string) {
	m.upstreamErrors.WithLabelValues(reason).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrLead increments the lead counter with an outcome label.
func (m *Metrics) IncrLead(outcome string) {
	m.leadsTotal.WithLabelValues(outcome).Inc()
}

// IncrRequest increments the proxy request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// GetGatewaySnapshot returns current counter values for the
// GET /api/metrics/gateway endpoint.
// Note: Prometheus counters expose cumulative values.
func (m *Metrics) GetGatewaySnapshot() *GatewaySnapshot {
	relayed := getCounterValue(m.requestsTotal, "relayed")
	failed := getCounterValue(m.requestsTotal, "failed")
	total := relayed + failed

	hits := getCounterValue(m.cacheHits, "images")
	misses := getCounterValue(m.cacheMisses, "images")

	errorRate := float64(0)
	if total > 0 {
		errorRate = failed / total
	}
	cacheHitRate := float64(0)
	if hits+misses > 0 {
		cacheHitRate = hits / (hits + misses)
	}

	return &GatewaySnapshot{
		ProxyRequests:  int64(total),
		UpstreamErrors: int64(failed),
		ErrorRate:      errorRate,
		CacheHitRate:   cacheHitRate,
		LeadsAccepted:  int64(getCounterValue(m.leadsTotal, "accepted")),
		LeadsRejected:  int64(getCounterValue(m.leadsTotal, "rejected")),
		Period:         "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
