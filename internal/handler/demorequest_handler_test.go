package handler_test

import (
	"net/http"
	"testing"
)

func TestDemoRequestLiveness(t *testing.T) {
	e := newEnv(t, nil, "")

	rec := e.do(http.MethodGet, "/api/demo-request", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("expected success=true, got %v", body["success"])
	}
}

func TestDemoRequestAccepted(t *testing.T) {
	e := newEnv(t, nil, "")

	payload := `{
		"name": "  Ana Quispe ",
		"company": "Bodega El Sol",
		"email": "Ana@Sol.PE",
		"phone": "987654321",
		"interest": "facturacion"
	}`
	rec := e.do(http.MethodPost, "/api/demo-request", payload)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected stored lead in data, got %v", body["data"])
	}
	if data["name"] != "Ana Quispe" {
		t.Errorf("expected trimmed name, got %v", data["name"])
	}
	if data["email"] != "ana@sol.pe" {
		t.Errorf("expected lowercased email, got %v", data["email"])
	}
	if data["id"] == nil || data["id"] == "" {
		t.Errorf("expected assigned lead id, got %v", data["id"])
	}
}

func TestDemoRequestMissingFields(t *testing.T) {
	e := newEnv(t, nil, "")

	rec := e.do(http.MethodPost, "/api/demo-request", `{"name":"Ana","email":"a@b.pe"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestDemoRequestInvalidEmail(t *testing.T) {
	e := newEnv(t, nil, "")

	payload := `{"name":"Ana","company":"Sol","email":"not-an-email","phone":"987654321","interest":"pos"}`
	rec := e.do(http.MethodPost, "/api/demo-request", payload)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDemoRequestInvalidPhone(t *testing.T) {
	e := newEnv(t, nil, "")

	payload := `{"name":"Ana","company":"Sol","email":"ana@sol.pe","phone":"12345678","interest":"pos"}`
	rec := e.do(http.MethodPost, "/api/demo-request", payload)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDemoRequestMalformedBody(t *testing.T) {
	e := newEnv(t, nil, "")

	rec := e.do(http.MethodPost, "/api/demo-request", `{"name":`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
