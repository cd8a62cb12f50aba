package supabase_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andinpos/site-gateway/internal/domain"
	"github.com/andinpos/site-gateway/internal/infra/resilience"
	"github.com/andinpos/site-gateway/internal/infra/supabase"

	"go.uber.org/zap"
)

func newStore(t *testing.T, srv *httptest.Server, maxRetries int) *supabase.LeadStore {
	t.Helper()
	return supabase.NewLeadStore(
		srv.Client(),
		srv.URL,
		"anon-key",
		"service-role-key",
		resilience.NewCircuitBreaker("test-leads"),
		resilience.Config{MaxRetries: maxRetries, InitialBackoff: time.Millisecond},
		zap.NewNop(),
	)
}

func TestSaveLeadInsertsAndReturnsRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/demo_requests" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("apikey") != "anon-key" {
			t.Errorf("missing apikey header")
		}
		if r.Header.Get("Authorization") != "Bearer service-role-key" {
			t.Errorf("missing service role bearer")
		}
		if r.Header.Get("Prefer") != "return=representation" {
			t.Errorf("missing Prefer header")
		}

		body, _ := io.ReadAll(r.Body)
		var row map[string]any
		if err := json.Unmarshal(body, &row); err != nil {
			t.Fatalf("request body not JSON: %v", err)
		}
		if row["email"] != "ana@sol.pe" {
			t.Errorf("unexpected insert payload: %v", row)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[{"id":"lead-1","name":"Ana Quispe","company":"Bodega El Sol","email":"ana@sol.pe","phone":"987654321","interest":"pos","created_at":"2025-03-01T12:00:00Z","status":"new"}]`))
	}))
	defer srv.Close()

	store := newStore(t, srv, 0)

	stored, err := store.SaveLead(context.Background(), &domain.DemoRequest{
		Name:     "Ana Quispe",
		Company:  "Bodega El Sol",
		Email:    "ana@sol.pe",
		Phone:    "987654321",
		Interest: "pos",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.ID != "lead-1" {
		t.Errorf("expected id from server, got %q", stored.ID)
	}
	if stored.Status != "new" {
		t.Errorf("expected status new, got %q", stored.Status)
	}
}

func TestSaveLeadRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[{"id":"lead-2","status":"new"}]`))
	}))
	defer srv.Close()

	store := newStore(t, srv, 2)

	stored, err := store.SaveLead(context.Background(), &domain.DemoRequest{
		Name: "Ana", Company: "Sol", Email: "a@b.pe", Phone: "987654321", Interest: "pos",
	})
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if stored.ID != "lead-2" {
		t.Errorf("unexpected row: %+v", stored)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestSaveLeadWrapsPersistentFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"permission denied"}`))
	}))
	defer srv.Close()

	store := newStore(t, srv, 1)

	_, err := store.SaveLead(context.Background(), &domain.DemoRequest{
		Name: "Ana", Company: "Sol", Email: "a@b.pe", Phone: "987654321", Interest: "pos",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var external *domain.ErrExternalService
	if !errors.As(err, &external) {
		t.Fatalf("expected ErrExternalService, got %T: %v", err, err)
	}
	if external.Service != "supabase/leads" {
		t.Errorf("unexpected service tag %q", external.Service)
	}
}

func TestSaveLeadRejectsEmptyInsertResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	store := newStore(t, srv, 0)

	_, err := store.SaveLead(context.Background(), &domain.DemoRequest{
		Name: "Ana", Company: "Sol", Email: "a@b.pe", Phone: "987654321", Interest: "pos",
	})
	if err == nil {
		t.Fatal("expected error for empty insert response")
	}
}
