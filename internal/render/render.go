// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package render prints translated queries and result sets.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"pgassist/cli/internal/normalize"
	"pgassist/cli/internal/payload"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// Formats understood by Result.
const (
	Table    = "table"
	CSV      = "csv"
	Markdown = "markdown"
	JSON     = "json"
	YAML     = "yaml"
)

// Query prints the SQL inside a titled box.
func Query(w io.Writer, sql string) {
	if sql == "" {
		sql = "(no query returned)"
	}
	_, _ = fmt.Fprintln(w, pterm.DefaultBox.WithTitle("SQL").Sprint(sql))
}

// Result writes res in the given format. Machine formats (json, yaml) include
// the query; human formats print rows only.
func Result(w io.Writer, res normalize.Result, format string) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case YAML:
		return renderYAML(w, res)
	case CSV, Markdown, Table, "":
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	if res.Empty() {
		_, _ = fmt.Fprintln(w, "No rows returned")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(header(res))
	for _, r := range res.Rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = FormatValue(v)
		}
		t.AppendRow(row)
	}

	switch format {
	case CSV:
		t.RenderCSV()
	case Markdown:
		t.RenderMarkdown()
	default:
		t.Render()
		_, _ = fmt.Fprintf(w, "(%d rows)\n", len(res.Rows))
	}
	return nil
}

// unnamedColumn labels cells the service sent without a column name.
const unnamedColumn = "?column?"

// header names every cell position in res. Positions past the named columns
// get unnamedColumn.
func header(res normalize.Result) table.Row {
	width := len(res.Columns)
	for _, r := range res.Rows {
		if len(r) > width {
			width = len(r)
		}
	}
	h := make(table.Row, width)
	for i := range h {
		h[i] = unnamedColumn
		if i < len(res.Columns) {
			h[i] = res.Columns[i]
		}
	}
	return h
}

// FormatValue renders one cell for display.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return payload.Text(t)
	}
}

// renderYAML writes {query, columns, rows} with each row as a mapping in
// column order.
func renderYAML(w io.Writer, res normalize.Result) error {
	rows := &yaml.Node{Kind: yaml.SequenceNode}
	for _, r := range res.Rows {
		if len(r) != len(res.Columns) {
			rows.Content = append(rows.Content, valueNode(r))
			continue
		}
		m := &yaml.Node{Kind: yaml.MappingNode}
		for i, c := range res.Columns {
			m.Content = append(m.Content, scalar(c), valueNode(r[i]))
		}
		rows.Content = append(rows.Content, m)
	}

	cols := &yaml.Node{Kind: yaml.SequenceNode}
	for _, c := range res.Columns {
		cols.Content = append(cols.Content, scalar(c))
	}

	doc := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		scalar("query"), scalar(res.Query),
		scalar("columns"), cols,
		scalar("rows"), rows,
	}}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func valueNode(v any) *yaml.Node {
	switch t := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case string:
		return scalar(t)
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t)}
	case float64:
		tag := "!!float"
		if t == float64(int64(t)) {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: strconv.FormatFloat(t, 'f', -1, 64)}
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range t {
			n.Content = append(n.Content, valueNode(e))
		}
		return n
	case *payload.Object:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range t.Keys() {
			e, _ := t.Get(k)
			n.Content = append(n.Content, scalar(k), valueNode(e))
		}
		return n
	default:
		return scalar(fmt.Sprint(t))
	}
}
