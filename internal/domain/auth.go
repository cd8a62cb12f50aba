package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// AuthConfig is the effective auth/endpoint triple used for outbound POS
// calls. It is recomputed on every resolution and never persisted as a unit.
type AuthConfig struct {
	Token     string `json:"token"`
	CompanyID string `json:"companyId"`
	BaseURL   string `json:"baseUrl"`

	// Source records which path produced the triple, so callers can tell a
	// real session apart from the configured defaults.
	Source ConfigSource `json:"source"`
}

// ConfigSource identifies where a resolved AuthConfig came from.
type ConfigSource string

const (
	SourceSession  ConfigSource = "session"
	SourceDefaults ConfigSource = "defaults"
)

// Endpoints holds the URL set the site frontend uses for POS API calls.
// Products and Clients are tenant-independent proxy paths; Documents and
// Invoices embed the effective company id. PDF is the one endpoint that
// bypasses the proxy: PDF generation is public and needs no auth header,
// so there is no CORS problem to route around.
type Endpoints struct {
	Products  string `json:"PRODUCTS"`
	Clients   string `json:"CLIENTS"`
	Documents string `json:"DOCUMENTS"`
	Invoices  string `json:"INVOICES"`
	PDF       string `json:"PDF"`
}

// SessionUser is the persisted "user" record. Only the token is inspected;
// anything else the frontend stored alongside it is ignored.
type SessionUser struct {
	Token string `json:"token"`
}

// SessionCompany is the persisted "company" record. The id may arrive as a
// JSON number or string depending on which client wrote it.
type SessionCompany struct {
	ID FlexibleID `json:"id"`
}

// FlexibleID decodes a JSON string or number into its string form.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		*f = FlexibleID(strings.TrimSpace(s))
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err == nil {
		*f = FlexibleID(num.String())
		return nil
	}

	return fmt.Errorf("id: expected string or number, got %s", string(data))
}

func (f FlexibleID) String() string {
	return string(f)
}
