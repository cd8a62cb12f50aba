package domain

import "encoding/json"

// TenantConfigEntry is the per-tenant image/activity configuration. The
// activities and images payloads are opaque to this service: they are
// validated for array shape at the boundary and otherwise passed through
// untouched.
type TenantConfigEntry struct {
	CompanyID   string            `json:"companyId"`
	Activities  []json.RawMessage `json:"activities"`
	Images      []json.RawMessage `json:"images"`
	LastUpdated int64             `json:"lastUpdated"` // unix milliseconds
}

// TenantConfigDocument is the on-disk shape of the tenant config store:
// one flat mapping from tenant id to entry, rewritten wholesale on every put.
type TenantConfigDocument struct {
	Companies map[string]TenantConfigEntry `json:"companies"`
}
