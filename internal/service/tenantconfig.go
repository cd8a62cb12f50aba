package service

import (
	"context"
	"encoding/json"

	"github.com/andinpos/site-gateway/internal/domain"
	"github.com/andinpos/site-gateway/internal/port"

	"go.uber.org/zap"
)

// TenantConfigService validates tenant config requests and delegates
// persistence to the store.
type TenantConfigService struct {
	store  port.TenantConfigStore
	logger *zap.Logger
}

// NewTenantConfigService creates the tenant config service.
func NewTenantConfigService(store port.TenantConfigStore, logger *zap.Logger) *TenantConfigService {
	return &TenantConfigService{store: store, logger: logger}
}

// Get returns the config entry for a tenant, or nil for an unknown tenant.
func (s *TenantConfigService) Get(ctx context.Context, tenantID string) (*domain.TenantConfigEntry, error) {
	if tenantID == "" {
		return nil, &domain.ErrValidation{Field: "companyId", Message: "companyId is required"}
	}
	return s.store.Get(ctx, tenantID)
}

// Put validates shape (companyId present, activities/images are arrays) and
// replaces the tenant's entry wholesale. activities and images arrive as
// decoded JSON arrays of opaque values; nil means the field was absent or
// not an array.
func (s *TenantConfigService) Put(ctx context.Context, tenantID string, activities, images []json.RawMessage, lastUpdated int64) (*domain.TenantConfigEntry, error) {
	if tenantID == "" {
		return nil, &domain.ErrValidation{Field: "companyId", Message: "companyId is required"}
	}
	if activities == nil {
		return nil, &domain.ErrValidation{Field: "activities", Message: "activities must be an array"}
	}
	if images == nil {
		return nil, &domain.ErrValidation{Field: "images", Message: "images must be an array"}
	}

	return s.store.Put(ctx, domain.TenantConfigEntry{
		CompanyID:   tenantID,
		Activities:  activities,
		Images:      images,
		LastUpdated: lastUpdated,
	})
}
