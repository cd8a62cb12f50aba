// Package supabase persists demo-request leads through the Supabase
// PostgREST API. It is the production lead store; the server assigns id,
// created_at and status on insert.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/andinpos/site-gateway/internal/domain"
	"github.com/andinpos/site-gateway/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("supabase")

const leadsTable = "demo_requests"

// LeadStore wraps HTTP calls to the Supabase PostgREST API.
type LeadStore struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	serviceRoleKey string
	cb             *gobreaker.CircuitBreaker
	cfg            resilience.Config
	logger         *zap.Logger
}

// NewLeadStore creates a Supabase-backed lead store.
func NewLeadStore(httpClient *http.Client, baseURL, apiKey, serviceRoleKey string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *LeadStore {
	return &LeadStore{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         apiKey,
		serviceRoleKey: serviceRoleKey,
		cb:             cb,
		cfg:            cfg,
		logger:         logger,
	}
}

// SaveLead inserts a validated lead into the demo_requests table with retry,
// circuit breaker, and tracing, and returns the stored row.
func (s *LeadStore) SaveLead(ctx context.Context, lead *domain.DemoRequest) (*domain.StoredLead, error) {
	ctx, span := tracer.Start(ctx, "Supabase.SaveLead")
	defer span.End()
	span.SetAttributes(attribute.String("lead.company", lead.Company))

	var stored *domain.StoredLead

	_, err := s.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, s.cfg, func() error {
			body, err := s.doPost(ctx, leadsTable, map[string]any{
				"name":     lead.Name,
				"company":  lead.Company,
				"email":    lead.Email,
				"phone":    lead.Phone,
				"interest": lead.Interest,
			})
			if err != nil {
				return err
			}

			// PostgREST returns the inserted rows as an array.
			var rows []domain.StoredLead
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("failed to decode inserted lead: %w", err)
			}
			if len(rows) == 0 {
				return fmt.Errorf("insert returned no rows")
			}

			stored = &rows[0]
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/leads", Err: err}
	}

	return stored, nil
}

func (s *LeadStore) doPost(ctx context.Context, table string, data map[string]any) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", s.baseURL, table)
	jsonBody, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.serviceRoleKey))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("supabase: POST request failed",
			zap.String("table", table),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn("supabase: POST non-2xx",
			zap.String("table", table),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, fmt.Errorf("supabase POST %s returned %d: %s", table, resp.StatusCode, string(body))
	}

	s.logger.Debug("supabase: POST OK", zap.String("table", table), zap.Int("status", resp.StatusCode))
	return body, nil
}
