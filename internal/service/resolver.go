package service

import (
	"encoding/json"
	"fmt"

	"github.com/andinpos/site-gateway/internal/domain"
	"github.com/andinpos/site-gateway/internal/infra/session"
	"github.com/andinpos/site-gateway/internal/port"

	"go.uber.org/zap"
)

// Resolver computes the effective {token, companyId, baseUrl} triple for
// outbound POS calls. Precedence: persisted session state first, environment
// defaults second. Resolve never fails: absence or corruption of session
// state silently degrades to defaults, and the chosen path is reported in
// AuthConfig.Source.
type Resolver struct {
	sessions port.SessionStore
	defaults domain.AuthConfig
	logger   *zap.Logger
}

// NewResolver creates a resolver with the given default triple.
func NewResolver(sessions port.SessionStore, token, companyID, baseURL string, logger *zap.Logger) *Resolver {
	return &Resolver{
		sessions: sessions,
		defaults: domain.AuthConfig{
			Token:     token,
			CompanyID: companyID,
			BaseURL:   baseURL,
			Source:    domain.SourceDefaults,
		},
		logger: logger,
	}
}

// Resolve returns the effective auth configuration. The session triple is
// used only when both the user and company records are present and parse;
// any failure falls through to the defaults.
func (r *Resolver) Resolve() domain.AuthConfig {
	user, company, err := r.readSession()
	if err != nil {
		r.logger.Debug("resolver: falling back to defaults", zap.Error(err))
		return r.defaults
	}

	return domain.AuthConfig{
		Token:     user.Token,
		CompanyID: company.ID.String(),
		BaseURL:   r.defaults.BaseURL,
		Source:    domain.SourceSession,
	}
}

func (r *Resolver) readSession() (*domain.SessionUser, *domain.SessionCompany, error) {
	rawUser, ok, err := r.sessions.Get(session.KeyUser)
	if err != nil || !ok {
		return nil, nil, fmt.Errorf("user record unavailable: ok=%v err=%w", ok, err)
	}
	rawCompany, ok, err := r.sessions.Get(session.KeyCompany)
	if err != nil || !ok {
		return nil, nil, fmt.Errorf("company record unavailable: ok=%v err=%w", ok, err)
	}

	var user domain.SessionUser
	if err := json.Unmarshal(rawUser, &user); err != nil {
		return nil, nil, fmt.Errorf("user record unparsable: %w", err)
	}
	var company domain.SessionCompany
	if err := json.Unmarshal(rawCompany, &company); err != nil {
		return nil, nil, fmt.Errorf("company record unparsable: %w", err)
	}

	if user.Token == "" || company.ID.String() == "" {
		return nil, nil, fmt.Errorf("session records incomplete")
	}
	return &user, &company, nil
}

// Headers returns the outbound header set for a POS call. An explicitly
// supplied token takes precedence over the resolved one.
func (r *Resolver) Headers(token string) map[string]string {
	if token == "" {
		token = r.Resolve().Token
	}
	return map[string]string{
		"Content-Type":  "application/json",
		"Accept":        "application/json",
		"Authorization": "Bearer " + token,
	}
}

// Endpoints returns the URL set the frontend uses. Products and Clients go
// through the proxy with no tenant in the path; Documents and Invoices
// embed the effective company id; PDF points straight at the POS backend
// because PDF generation is public and needs no CORS workaround.
func (r *Resolver) Endpoints(companyID string) domain.Endpoints {
	if companyID == "" {
		companyID = r.Resolve().CompanyID
	}
	return domain.Endpoints{
		Products:  "/api/proxy?endpoint=products",
		Clients:   "/api/proxy?endpoint=persons",
		Documents: "/api/proxy?endpoint=documents/company/" + companyID,
		Invoices:  "/api/proxy?endpoint=invoices/company/" + companyID,
		PDF:       r.defaults.BaseURL + "/documents/pdf",
	}
}
