// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"fmt"

	"pgassist/cli/internal/payload"
	"pgassist/cli/internal/profile"
)

// Connect validates every profile field before any network traffic, then
// posts the profile to the connect endpoint. When the acknowledgment has a
// truthy status and carries a token, the token is handed to the TokenSink
// before Connect returns. A rejected connect never replaces the stored token.
func (h *HTTP) Connect(ctx context.Context, p profile.Profile) (ConnectResponse, error) {
	if err := p.Validate(); err != nil {
		return ConnectResponse{}, err
	}

	body := payload.NewObject(
		"host", p.Host,
		"port", p.Port,
		"user", p.User,
		"password", p.Password,
		"database", p.Database,
	)
	v, status, err := h.Post(ctx, h.endpoints.Connect, body, "")
	if err != nil {
		return ConnectResponse{}, err
	}

	out := parseConnect(v)
	out.HTTPStatus = status

	if out.OK && out.Token != "" && h.tokens != nil {
		if err := h.tokens.Set(out.Token); err != nil {
			return out, fmt.Errorf("store session token: %w", err)
		}
	}
	h.log.Debug("connect acknowledged", h.log.Args("ok", out.OK, "token", out.Token != "", "expires_in", out.ExpiresIn))
	return out, nil
}

func parseConnect(v any) ConnectResponse {
	var out ConnectResponse
	obj, ok := v.(*payload.Object)
	if !ok {
		return out
	}
	if s, ok := obj.Get("status"); ok {
		out.OK = payload.Truthy(s)
		if str, ok := s.(string); ok {
			out.Status = str
		}
	}
	if t, ok := obj.Get("token"); ok {
		if str, ok := t.(string); ok {
			out.Token = str
		}
	}
	if n, ok := obj.Get("expires_in"); ok {
		if f, ok := n.(float64); ok {
			out.ExpiresIn = int(f)
		}
	}
	if m, ok := obj.Get("message"); ok && m != nil {
		out.Message = payload.Text(m)
	}
	return out
}
