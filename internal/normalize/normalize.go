// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package normalize reshapes the service's successful payloads into one
// canonical Result. Each known payload shape is handled by a Matcher; matchers
// run in a fixed order and the first match wins.
package normalize

import (
	"pgassist/cli/internal/payload"
)

// Result is the canonical tabular shape. Every row has exactly len(Columns)
// cells in column order, except for rows the service supplied as arrays,
// which are passed through untouched.
type Result struct {
	Query   string   `json:"query" yaml:"query"`
	Columns []string `json:"columns" yaml:"columns"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

// Empty reports whether the result carries no rows. A result may have rows
// without column names when the service sent a bare matrix.
func (r Result) Empty() bool { return len(r.Rows) == 0 }

// Matcher recognizes one payload shape. ok is false when the shape does not
// apply.
type Matcher func(obj *payload.Object) (res Result, ok bool)

// Field names searched for the translated query.
var (
	sessionQueryKeys = []string{"sql_query", "sql", "query"}
	legacyQueryKeys  = []string{"sql_query", "sql", "generated_sql", "query"}
)

// LegacyMatchers is the precedence used for legacy translate responses.
var LegacyMatchers = []Matcher{
	ColumnsWithResults,
	ColumnsWithRows,
	ObjectRows,
	MatrixRows,
}

// ExecutionMatchers is the precedence used for execute responses. The last
// matcher accepts any object, so columns survive without results.
var ExecutionMatchers = []Matcher{
	ColumnsWithResults,
	ObjectRows,
	MatrixRows,
	ColumnsOrResults,
}

func empty() Result {
	return Result{Columns: []string{}, Rows: [][]any{}}
}

// Session normalizes a session-flow translate response. The session flow
// only translates, so columns and rows are always empty.
func Session(v any) Result {
	res := empty()
	res.Query = queryOf(v, sessionQueryKeys)
	return res
}

// Legacy normalizes a legacy-flow translate response. Unrecognized shapes
// produce empty columns and rows rather than an error.
func Legacy(v any) Result {
	res := Match(v, LegacyMatchers)
	res.Query = queryOf(v, legacyQueryKeys)
	return res
}

// Execution normalizes an execute response. status defaults to "success" and
// the query defaults to the submitted SQL when the service omits them.
func Execution(v any, submitted string) (res Result, status string) {
	res = Match(v, ExecutionMatchers)
	res.Query = submitted
	status = "success"

	obj, ok := v.(*payload.Object)
	if !ok {
		return res, status
	}
	if q, ok := obj.Get("sql_query"); ok && q != nil {
		res.Query = payload.Text(q)
	}
	if s, ok := obj.Get("status"); ok && s != nil {
		status = payload.Text(s)
	}
	return res, status
}

// Match runs matchers in order against v and returns the first match, or an
// empty result when v is not an object or nothing matches.
func Match(v any, matchers []Matcher) Result {
	obj, ok := v.(*payload.Object)
	if !ok {
		return empty()
	}
	for _, m := range matchers {
		if res, ok := m(obj); ok {
			return res
		}
	}
	return empty()
}

func queryOf(v any, keys []string) string {
	obj, ok := v.(*payload.Object)
	if !ok {
		return ""
	}
	for _, k := range keys {
		if q, ok := obj.Get(k); ok && q != nil {
			return payload.Text(q)
		}
	}
	return ""
}
