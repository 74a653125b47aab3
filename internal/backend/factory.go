// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"time"

	"github.com/pterm/pterm"
)

// Endpoints are the service paths. A value starting with "http" is used as
// an absolute URL instead of being joined to the base URL.
type Endpoints struct {
	Connect   string
	Translate string
	Execute   string
	Ping      string
}

// DefaultEndpoints returns the paths served by the translation service.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Connect:   "/api/connect",
		Translate: "/api/nl2sql",
		Execute:   "/api/run-sql",
		Ping:      "/api/ping",
	}
}

// Options configures New.
type Options struct {
	BaseURL   string
	Endpoints Endpoints
	// Tokens adopts the token returned by Connect.
	Tokens TokenSink
	Logger *pterm.Logger
	// Timeout bounds each request. Zero means no limit.
	Timeout time.Duration
}

// New creates the HTTP implementation of API.
func New(opts Options) *HTTP {
	return newHTTP(opts)
}
