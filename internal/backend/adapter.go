// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend is the gateway to the remote translation service.
// It serializes request bodies, attaches the bearer token when one is
// supplied, and turns transport and HTTP failures into typed errors.
// Successful bodies are returned as opaque payload values; interpreting
// their shape is left to the normalize package.
package backend

import (
	"context"

	"pgassist/cli/internal/profile"
)

// API defines the remote operations the CLI depends on.
// Implementations may call the real HTTP service or provide fakes for tests.
type API interface {
	// Connect validates p, registers it with the service and adopts the
	// returned session token.
	Connect(ctx context.Context, p profile.Profile) (ConnectResponse, error)
	// Translate posts body to the translate endpoint. token may be empty.
	Translate(ctx context.Context, body any, token string) (any, error)
	// Execute posts body to the execute endpoint with token.
	Execute(ctx context.Context, body any, token string) (any, error)
	// Ping checks the service is reachable and returns its greeting.
	Ping(ctx context.Context) (string, error)
}

// ConnectResponse is the connect acknowledgment.
type ConnectResponse struct {
	// HTTPStatus is the status code of the response.
	HTTPStatus int
	// OK reports whether the status field was truthy.
	OK        bool
	Status    string
	Token     string
	ExpiresIn int
	Message   string
}

// TokenSink receives the token issued by a successful connect.
type TokenSink interface {
	Set(token string) error
}
