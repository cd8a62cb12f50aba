// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"
	"encoding/json"

	"github.com/andinpos/site-gateway/internal/domain"
)

// SessionStore is a typed key-value store for the persisted client session.
// Keys live in a single "session" namespace; values are opaque JSON. A
// missing key is reported via the ok flag, not an error.
type SessionStore interface {
	Get(key string) (json.RawMessage, bool, error)
	Put(key string, value json.RawMessage) error
	Delete(key string) error
	Clear() error
}

// Forwarder performs a single pass-through round trip to the POS backend.
// It returns the upstream's status and JSON body verbatim; an error means
// the round trip itself failed, never that the upstream reported a failure.
type Forwarder interface {
	Get(ctx context.Context, endpoint, token, search string) (*domain.UpstreamResult, error)
	Post(ctx context.Context, endpoint, token string, body []byte) (*domain.UpstreamResult, error)
}

// TenantConfigStore persists per-tenant image/activity configuration.
// Get returns nil (no error) for an unknown tenant.
type TenantConfigStore interface {
	Get(ctx context.Context, tenantID string) (*domain.TenantConfigEntry, error)
	Put(ctx context.Context, entry domain.TenantConfigEntry) (*domain.TenantConfigEntry, error)
}

// LeadStore persists validated demo-request leads. The implementation
// assigns id, created_at and status.
type LeadStore interface {
	SaveLead(ctx context.Context, lead *domain.DemoRequest) (*domain.StoredLead, error)
}

// ImageCache is the tenant-scoped image cache the inspector operates on.
type ImageCache interface {
	Get(tenantID, key string) (json.RawMessage, bool)
	Set(tenantID, key string, payload json.RawMessage)
	Stats() domain.CacheStats
	Clear(tenantID string) int
	ClearAll() int
}
