package handler_test

import (
	"net/http"
	"testing"
)

func TestImageConfigGetUnknownTenant(t *testing.T) {
	e := newEnv(t, nil, "")

	rec := e.do(http.MethodGet, "/api/image-config?companyId=999", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Errorf("expected success=true, got %v", body["success"])
	}
	if body["config"] != nil {
		t.Errorf("expected null config for unknown tenant, got %v", body["config"])
	}
}

func TestImageConfigGetRequiresCompanyID(t *testing.T) {
	e := newEnv(t, nil, "")

	rec := e.do(http.MethodGet, "/api/image-config", "")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestImageConfigPostThenGetRoundTrip(t *testing.T) {
	e := newEnv(t, nil, "")

	payload := `{
		"companyId": 7,
		"activities": [{"id":"act-1","title":"Inventario"}],
		"images": [{"key":"hero","url":"https://cdn.andinpos.com/hero.webp"}]
	}`
	rec := e.do(http.MethodPost, "/api/image-config", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["companyId"] != "7" {
		t.Errorf("numeric companyId should normalize to string, got %v", body["companyId"])
	}

	rec = e.do(http.MethodGet, "/api/image-config?companyId=7", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body = decodeBody(t, rec)
	cfg, ok := body["config"].(map[string]any)
	if !ok {
		t.Fatalf("expected stored config, got %v", body["config"])
	}
	images, ok := cfg["images"].([]any)
	if !ok || len(images) != 1 {
		t.Errorf("expected 1 stored image, got %v", cfg["images"])
	}
	if lu, ok := cfg["lastUpdated"].(float64); !ok || lu <= 0 {
		t.Errorf("expected lastUpdated to be stamped, got %v", cfg["lastUpdated"])
	}
}

func TestImageConfigPostRejectsMissingArrays(t *testing.T) {
	e := newEnv(t, nil, "")

	rec := e.do(http.MethodPost, "/api/image-config", `{"companyId":"7","images":[]}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] == nil || body["error"] == "" {
		t.Errorf("expected validation message, got %v", body["error"])
	}
}

func TestImageConfigPostRejectsMalformedBody(t *testing.T) {
	e := newEnv(t, nil, "")

	rec := e.do(http.MethodPost, "/api/image-config", `{"companyId":`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
