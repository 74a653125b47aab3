// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperr "pgassist/cli/internal/errors"
	"pgassist/cli/internal/logging"
	"pgassist/cli/internal/payload"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
)

var _ API = (*HTTP)(nil)

// HTTP implements API over the service's JSON endpoints.
type HTTP struct {
	// baseURL is the service root (e.g., "http://127.0.0.1:8000")
	baseURL   string
	endpoints Endpoints
	client    *http.Client
	tokens    TokenSink
	log       *pterm.Logger
}

func newHTTP(opts Options) *HTTP {
	eps := opts.Endpoints
	def := DefaultEndpoints()
	if eps.Connect == "" {
		eps.Connect = def.Connect
	}
	if eps.Translate == "" {
		eps.Translate = def.Translate
	}
	if eps.Execute == "" {
		eps.Execute = def.Execute
	}
	if eps.Ping == "" {
		eps.Ping = def.Ping
	}
	return &HTTP{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		endpoints: eps,
		client:    &http.Client{Timeout: opts.Timeout},
		tokens:    opts.Tokens,
		log:       logging.OrDiscard(opts.Logger),
	}
}

func (h *HTTP) url(endpoint string) string {
	if strings.HasPrefix(endpoint, "http") {
		return endpoint
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return h.baseURL + endpoint
}

// Post sends body as JSON to endpoint and returns the decoded response body
// along with the HTTP status. The Authorization header is set only when
// token is non-empty.
func (h *HTTP) Post(ctx context.Context, endpoint string, body any, token string) (any, int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("encode request: %w", err)
	}
	return h.do(ctx, http.MethodPost, endpoint, bytes.NewReader(data), token)
}

func (h *HTTP) do(ctx context.Context, method, endpoint string, body io.Reader, token string) (any, int, error) {
	target := h.url(endpoint)
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	h.log.Debug("request", h.log.Args("method", method, "url", target, "request_id", reqID, "auth", token != ""))

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, 0, apperr.Transport(target, err)
	}
	defer resp.Body.Close()

	// Read the whole body as text first; error bodies are often not JSON.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, apperr.Transport(target, err)
	}
	parsed := payload.Parse(raw)

	h.log.Debug("response", h.log.Args("status", resp.StatusCode, "request_id", reqID, "bytes", len(raw), "duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, apperr.RemoteStatus(resp.StatusCode, errorMessage(parsed))
	}
	return parsed, resp.StatusCode, nil
}

// errorMessage picks the most readable text out of an error body: detail,
// then message, then the whole payload rendered back to text.
func errorMessage(v any) string {
	obj, ok := v.(*payload.Object)
	if !ok {
		return payload.Text(v)
	}
	for _, key := range []string{"detail", "message"} {
		if m, ok := obj.Get(key); ok && m != nil {
			return payload.Text(m)
		}
	}
	return payload.Text(obj)
}

// Translate posts body to the translate endpoint.
func (h *HTTP) Translate(ctx context.Context, body any, token string) (any, error) {
	v, _, err := h.Post(ctx, h.endpoints.Translate, body, token)
	return v, err
}

// Execute posts body to the execute endpoint.
func (h *HTTP) Execute(ctx context.Context, body any, token string) (any, error) {
	v, _, err := h.Post(ctx, h.endpoints.Execute, body, token)
	return v, err
}

// Ping calls the ping endpoint. The service answers {"message": "..."};
// any other body is returned as text.
func (h *HTTP) Ping(ctx context.Context) (string, error) {
	v, _, err := h.do(ctx, http.MethodGet, h.endpoints.Ping, nil, "")
	if err != nil {
		return "", err
	}
	if obj, ok := v.(*payload.Object); ok {
		if m, ok := obj.Get("message"); ok {
			return payload.Text(m), nil
		}
	}
	return payload.Text(v), nil
}
