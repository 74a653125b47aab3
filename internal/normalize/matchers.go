// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package normalize

import "pgassist/cli/internal/payload"

// ColumnsWithResults matches {columns: [...], results: [...]}.
func ColumnsWithResults(obj *payload.Object) (Result, bool) {
	return columnsAnd(obj, "results")
}

// ColumnsWithRows matches {columns: [...], rows: [...]}.
func ColumnsWithRows(obj *payload.Object) (Result, bool) {
	return columnsAnd(obj, "rows")
}

func columnsAnd(obj *payload.Object, rowsKey string) (Result, bool) {
	cols, ok := array(obj, "columns")
	if !ok {
		return Result{}, false
	}
	rows, ok := array(obj, rowsKey)
	if !ok {
		return Result{}, false
	}
	names := columnNames(cols)
	return Result{Columns: names, Rows: toRows(rows, names)}, true
}

// ObjectRows matches a non-empty results array whose first element is an
// object. Columns are the union of all row keys in first-seen order and
// every row is projected onto them; absent keys become nil.
func ObjectRows(obj *payload.Object) (Result, bool) {
	rows, ok := array(obj, "results")
	if !ok || len(rows) == 0 {
		return Result{}, false
	}
	if _, ok := rows[0].(*payload.Object); !ok {
		return Result{}, false
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, r := range rows {
		ro, ok := r.(*payload.Object)
		if !ok {
			continue
		}
		for _, k := range ro.Keys() {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	return Result{Columns: names, Rows: toRows(rows, names)}, true
}

// MatrixRows matches a non-empty results array whose first element is an
// array. Columns come from the payload when present.
func MatrixRows(obj *payload.Object) (Result, bool) {
	rows, ok := array(obj, "results")
	if !ok || len(rows) == 0 {
		return Result{}, false
	}
	if _, ok := rows[0].([]any); !ok {
		return Result{}, false
	}
	names := []string{}
	if cols, ok := array(obj, "columns"); ok {
		names = columnNames(cols)
	}
	return Result{Columns: names, Rows: toRows(rows, names)}, true
}

// ColumnsOrResults matches any object. columns and results each default to
// an empty array when absent or not an array.
func ColumnsOrResults(obj *payload.Object) (Result, bool) {
	names := []string{}
	if cols, ok := array(obj, "columns"); ok {
		names = columnNames(cols)
	}
	rows, _ := array(obj, "results")
	return Result{Columns: names, Rows: toRows(rows, names)}, true
}

func array(obj *payload.Object, key string) ([]any, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return nil, false
	}
	arr, ok := v.([]any)
	return arr, ok
}

func columnNames(cols []any) []string {
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, payload.Text(c))
	}
	return names
}

// toRows converts payload rows. Arrays pass through as-is, objects are
// projected onto names, and a bare scalar becomes a one-cell row.
func toRows(rows []any, names []string) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		switch v := r.(type) {
		case []any:
			out = append(out, v)
		case *payload.Object:
			cells := make([]any, len(names))
			for i, n := range names {
				cells[i], _ = v.Get(n)
			}
			out = append(out, cells)
		default:
			out = append(out, []any{v})
		}
	}
	return out
}
