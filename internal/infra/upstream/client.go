// Package upstream is the pass-through client for the POS backend. It does
// URL assembly and auth-header injection, nothing else: the upstream's
// status and JSON body are handed back untouched. There is no retry and no
// circuit breaker on this path; a failed round trip fails the request.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/andinpos/site-gateway/internal/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("upstream")

// Client forwards requests to the single fixed POS backend origin.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates an upstream client. The http.Client carries the
// per-call deadline; context cancellation is honored on top of it.
func NewClient(httpClient *http.Client, baseURL string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// Get forwards a GET to endpoint, optionally appending an encoded search
// term as an extra path segment.
func (c *Client) Get(ctx context.Context, endpoint, token, search string) (*domain.UpstreamResult, error) {
	ctx, span := tracer.Start(ctx, "Upstream.Get")
	defer span.End()
	span.SetAttributes(attribute.String("upstream.endpoint", endpoint))

	return c.do(ctx, http.MethodGet, c.buildURL(endpoint, search), token, nil)
}

// Post forwards a POST with the caller's JSON body passed through verbatim.
func (c *Client) Post(ctx context.Context, endpoint, token string, body []byte) (*domain.UpstreamResult, error) {
	ctx, span := tracer.Start(ctx, "Upstream.Post")
	defer span.End()
	span.SetAttributes(attribute.String("upstream.endpoint", endpoint))

	return c.do(ctx, http.MethodPost, c.buildURL(endpoint, ""), token, body)
}

func (c *Client) buildURL(endpoint, search string) string {
	u := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if search != "" {
		u += "/" + url.PathEscape(search)
	}
	return u
}

func (c *Client) do(ctx context.Context, method, rawURL, token string, body []byte) (*domain.UpstreamResult, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, &domain.ErrUpstreamUnreachable{Endpoint: rawURL, Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("upstream: request failed",
			zap.String("method", method),
			zap.String("url", rawURL),
			zap.Error(err),
		)
		return nil, &domain.ErrUpstreamUnreachable{Endpoint: rawURL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ErrUpstreamUnreachable{Endpoint: rawURL, Err: err}
	}

	// An empty body relays as JSON null so the response stays a valid
	// JSON document (some upstream endpoints answer 204).
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("null")
	}
	if !json.Valid(raw) {
		c.logger.Warn("upstream: non-JSON response",
			zap.String("method", method),
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &domain.ErrUpstreamUnreachable{
			Endpoint: rawURL,
			Err:      fmt.Errorf("non-JSON response (status %d)", resp.StatusCode),
		}
	}

	c.logger.Debug("upstream: request OK",
		zap.String("method", method),
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Int("body_bytes", len(raw)),
	)

	return &domain.UpstreamResult{Status: resp.StatusCode, Body: raw}, nil
}
