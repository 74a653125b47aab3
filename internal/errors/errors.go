// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure produced by the session and request layer carries a machine-readable
// Kind so callers can decide how to present it without inspecting message text.
//
// None of the kinds are retried internally; they are always propagated to the caller.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Validation indicates a required field was missing before any network call.
	Validation Kind = "validation"
	// Remote indicates the service answered with a non-success status.
	Remote Kind = "remote"
	// Auth indicates an operation needed a session token and none was stored.
	Auth Kind = "auth"
	// Network indicates the transport failed before any response was received.
	Network Kind = "network"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	// Field names the missing input for Validation errors.
	Field string
	// Status is the HTTP status code for Remote errors.
	Status int
	Err    error
}

func (e *E) Error() string {
	switch {
	case e.Kind == Remote && e.Status > 0:
		return fmt.Sprintf("(%d) %s", e.Status, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	default:
		return e.Message
	}
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// Required reports a missing field. The message is shown to the user verbatim.
func Required(field, msg string) *E {
	return &E{Kind: Validation, Field: field, Message: msg}
}

// RemoteStatus builds a Remote error for a non-success HTTP response.
func RemoteStatus(status int, msg string) *E {
	return &E{Kind: Remote, Status: status, Message: msg}
}

// Transport wraps a failure that happened before a response arrived.
func Transport(target string, err error) *E {
	return &E{Kind: Network, Message: "request to " + target + " failed", Err: err}
}

// KindOf returns the Kind of the first *E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusOf returns the HTTP status of a Remote error, or 0.
func StatusOf(err error) int {
	var e *E
	if stderrors.As(err, &e) && e.Kind == Remote {
		return e.Status
	}
	return 0
}
