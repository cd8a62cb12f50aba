package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/andinpos/site-gateway/internal/domain"
	"github.com/andinpos/site-gateway/internal/infra/observability"
	"github.com/andinpos/site-gateway/internal/port"

	"go.uber.org/zap"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// National mobile format: nine digits starting with 9.
	phonePattern = regexp.MustCompile(`^9\d{8}$`)
)

// LeadService validates demo-request leads and forwards them to the
// persistence collaborator.
type LeadService struct {
	store   port.LeadStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewLeadService creates the lead service.
func NewLeadService(store port.LeadStore, metrics *observability.Metrics, logger *zap.Logger) *LeadService {
	return &LeadService{store: store, metrics: metrics, logger: logger}
}

// Submit validates, normalizes, and persists a lead. Validation is
// fail-fast in a fixed order: required fields, then email shape, then
// phone shape. The store is never called for an invalid lead.
func (s *LeadService) Submit(ctx context.Context, req *domain.DemoRequest) (*domain.StoredLead, error) {
	lead := domain.DemoRequest{
		Name:     strings.TrimSpace(req.Name),
		Company:  strings.TrimSpace(req.Company),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    strings.TrimSpace(req.Phone),
		Interest: strings.TrimSpace(req.Interest),
	}

	if lead.Name == "" || lead.Company == "" || lead.Email == "" || lead.Phone == "" || lead.Interest == "" {
		s.metrics.IncrLead("rejected")
		return nil, &domain.ErrValidation{Message: "all fields are required"}
	}
	if !emailPattern.MatchString(lead.Email) {
		s.metrics.IncrLead("rejected")
		return nil, &domain.ErrValidation{Field: "email", Message: "invalid email format"}
	}
	if !phonePattern.MatchString(lead.Phone) {
		s.metrics.IncrLead("rejected")
		return nil, &domain.ErrValidation{Field: "phone", Message: "invalid phone format, expected 9XXXXXXXX"}
	}

	stored, err := s.store.SaveLead(ctx, &lead)
	if err != nil {
		s.metrics.IncrLead("failed")
		s.logger.Error("lead: persistence failed",
			zap.String("company", lead.Company),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.IncrLead("accepted")
	s.logger.Info("lead: accepted",
		zap.String("lead_id", stored.ID),
		zap.String("company", stored.Company),
	)
	return stored, nil
}
