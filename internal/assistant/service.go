// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package assistant ties the connection state, the session token and the
// backend gateway together. It owns flow selection: with a session token a
// question is sent on its own, without one the full connection profile
// travels with every request.
package assistant

import (
	"context"
	"strings"

	"pgassist/cli/internal/backend"
	apperr "pgassist/cli/internal/errors"
	"pgassist/cli/internal/logging"
	"pgassist/cli/internal/normalize"
	"pgassist/cli/internal/payload"
	"pgassist/cli/internal/profile"
	"pgassist/cli/internal/session"
	"pgassist/cli/internal/state"

	"github.com/pterm/pterm"
	"golang.org/x/sync/singleflight"
)

// Flow names the request mode a translation used.
type Flow string

const (
	FlowSession Flow = "session"
	FlowLegacy  Flow = "legacy"
)

// Translation is a translated question.
type Translation struct {
	normalize.Result `yaml:",inline"`
	Flow             Flow `json:"flow" yaml:"flow"`
}

// Execution is the outcome of running SQL on the service.
type Execution struct {
	normalize.Result `yaml:",inline"`
	Status           string `json:"status" yaml:"status"`
}

// Service is the core the commands talk to.
type Service struct {
	api    backend.API
	tokens *session.Holder
	state  *state.Store
	log    *pterm.Logger

	connects singleflight.Group
}

// New builds a Service. The token holder passed here must be the same one
// the backend adopts connect tokens into.
func New(api backend.API, tokens *session.Holder, st *state.Store, log *pterm.Logger) *Service {
	return &Service{api: api, tokens: tokens, state: st, log: logging.OrDiscard(log)}
}

// State returns the current connection snapshot.
func (s *Service) State() state.Connection { return s.state.Current() }

// HasSession reports whether a session token is stored.
func (s *Service) HasSession() bool {
	_, ok := s.tokens.Get()
	return ok
}

// Connect registers p with the service. Concurrent calls for the same profile
// share one request, which runs on the first caller's ctx: if that caller is
// cancelled, every joined caller gets the same NetworkError and may retry.
// On success the profile is merged into the state and the connection is
// marked live; on any failure it is marked disconnected and the stored token
// is left as it was.
func (s *Service) Connect(ctx context.Context, p profile.Profile) (backend.ConnectResponse, error) {
	v, err, shared := s.connects.Do(p.String()+"|"+p.Password, func() (any, error) {
		return s.connect(ctx, p)
	})
	if shared {
		s.log.Debug("joined in-flight connect", s.log.Args("profile", p.String()))
	}
	res, _ := v.(backend.ConnectResponse)
	return res, err
}

func (s *Service) connect(ctx context.Context, p profile.Profile) (backend.ConnectResponse, error) {
	res, err := s.api.Connect(ctx, p)
	if err != nil {
		s.state.Update(state.Patch{}.WithConnected(false))
		return res, err
	}
	if !res.OK {
		s.state.Update(state.Patch{}.WithConnected(false))
		msg := res.Message
		if msg == "" {
			msg = "Connection failed"
		}
		return res, apperr.RemoteStatus(res.HTTPStatus, msg)
	}
	s.state.Update(state.PatchOf(p).WithConnected(true))
	s.log.Debug("connected", s.log.Args("profile", p.String()))
	return res, nil
}

// Disconnect is local only: the state returns to the built-in profile and the
// token is cleared. No request is sent.
func (s *Service) Disconnect() error {
	return s.state.Reset()
}

// ForgetSession drops the token so the next translation uses the legacy flow.
// The connection state is not touched.
func (s *Service) ForgetSession() error {
	return s.tokens.Clear()
}

// SaveDefaults persists p as the connection defaults and drops the live
// connection marker.
func (s *Service) SaveDefaults(p profile.Profile) error {
	return s.state.SetDefaults(p)
}

// Translate turns a natural-language question into SQL. With a session token
// only the question is sent. Without one, fallback must hold a complete
// profile, which is sent along with the question.
func (s *Service) Translate(ctx context.Context, question string, fallback *profile.Profile) (Translation, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Translation{}, apperr.Required("nl_query", "nl_query is required")
	}

	if token, ok := s.tokens.Get(); ok {
		v, err := s.api.Translate(ctx, payload.NewObject("nl_query", question), token)
		if err != nil {
			return Translation{}, err
		}
		return Translation{Result: normalize.Session(v), Flow: FlowSession}, nil
	}

	if fallback == nil {
		return Translation{}, apperr.New(apperr.Validation, "No session token and no connection provided")
	}
	if err := fallback.Validate(); err != nil {
		return Translation{}, err
	}
	body := payload.NewObject(
		"host", fallback.Host,
		"port", fallback.Port,
		"user", fallback.User,
		"password", fallback.Password,
		"database", fallback.Database,
		"nl_query", question,
	)
	v, err := s.api.Translate(ctx, body, "")
	if err != nil {
		return Translation{}, err
	}
	return Translation{Result: normalize.Legacy(v), Flow: FlowLegacy}, nil
}

// Execute runs sql through the service. It needs a session token; there is
// no legacy fallback.
func (s *Service) Execute(ctx context.Context, sql string) (Execution, error) {
	sql = strings.TrimSpace(sql)
	if sql == "" {
		return Execution{}, apperr.Required("sql_query", "sql_query is required")
	}
	token, ok := s.tokens.Get()
	if !ok {
		return Execution{}, apperr.New(apperr.Auth, "No session token found, run 'pgassist connect' first")
	}

	v, err := s.api.Execute(ctx, payload.NewObject("sql_query", sql), token)
	if err != nil {
		return Execution{}, err
	}
	res, status := normalize.Execution(v, sql)
	return Execution{Result: res, Status: status}, nil
}

// Ping checks the service is reachable.
func (s *Service) Ping(ctx context.Context) (string, error) {
	return s.api.Ping(ctx)
}
