// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"pgassist/cli/internal/normalize"
	"pgassist/cli/internal/payload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sample() normalize.Result {
	return normalize.Result{
		Query:   "SELECT id, name FROM users",
		Columns: []string{"id", "name"},
		Rows:    [][]any{{float64(1), "ada"}, {float64(2), nil}},
	}
}

func TestResult_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Result(&buf, sample(), Table))
	out := buf.String()
	assert.Contains(t, out, "ada")
	assert.Contains(t, out, "NULL")
	assert.Contains(t, out, "(2 rows)")
}

func TestResult_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Result(&buf, sample(), CSV))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1,ada", lines[1])
}

func TestResult_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Result(&buf, sample(), Markdown))
	assert.Contains(t, buf.String(), "| 1 | ada |")
}

func TestResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Result(&buf, sample(), JSON))
	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "SELECT id, name FROM users", got["query"])
	assert.Equal(t, []any{"id", "name"}, got["columns"])
}

func TestResult_YAMLKeepsColumnOrder(t *testing.T) {
	res := normalize.Result{Columns: []string{"z", "a"}, Rows: [][]any{{float64(1), payload.NewObject("k", true)}}}
	var buf bytes.Buffer
	require.NoError(t, Result(&buf, res, YAML))
	out := buf.String()
	assert.Less(t, strings.Index(out, "z: 1"), strings.Index(out, "a:"))

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, []any{"z", "a"}, back["columns"])
}

func TestResult_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Result(&buf, normalize.Result{Query: "SELECT 1"}, Table))
	assert.Equal(t, "No rows returned\n", buf.String())
}

func TestResult_ColumnsWithoutRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Result(&buf, normalize.Result{Columns: []string{"a", "b"}, Rows: [][]any{}}, Table))
	assert.Equal(t, "No rows returned\n", buf.String())
}

func TestResult_RowsWithoutColumns(t *testing.T) {
	res := normalize.Result{Columns: []string{}, Rows: [][]any{{float64(1), float64(2)}, {float64(3), float64(4)}}}

	var buf bytes.Buffer
	require.NoError(t, Result(&buf, res, Table))
	out := buf.String()
	assert.NotContains(t, out, "No rows returned")
	assert.Contains(t, out, "?column?")
	assert.Contains(t, out, "4")
	assert.Contains(t, out, "(2 rows)")

	buf.Reset()
	require.NoError(t, Result(&buf, res, CSV))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "?column?")
	assert.Equal(t, "1,2", lines[1])
}

func TestResult_UnknownFormat(t *testing.T) {
	assert.Error(t, Result(&bytes.Buffer{}, sample(), "xml"))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "NULL", FormatValue(nil))
	assert.Equal(t, "1500000", FormatValue(float64(1500000)))
	assert.Equal(t, "2.5", FormatValue(2.5))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, `{"a":1}`, FormatValue(payload.NewObject("a", float64(1))))
	assert.Equal(t, `[1,2]`, FormatValue([]any{float64(1), float64(2)}))
}

func TestQuery(t *testing.T) {
	var buf bytes.Buffer
	Query(&buf, "SELECT 1")
	assert.Contains(t, buf.String(), "SELECT 1")
	assert.Contains(t, buf.String(), "SQL")
}
