// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export stages extracted rows in an ordered table and writes them
// to disk as CSV, JSON, or YAML.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scoreid-export/pkg/types"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat validates a format name. An empty name selects CSV.
func ParseFormat(name string) (types.ExportFormat, error) {
	switch f := types.ExportFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return types.FormatCSV, nil
	case types.FormatCSV, types.FormatJSON, types.FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Table is an ordered set of rows under a fixed header. Cells are stored
// as rendered text; rows keep insertion order.
type Table struct {
	columns []string
	rows    [][]string
}

// NewTable creates an empty table with the given header.
func NewTable(columns ...string) *Table {
	return &Table{columns: columns}
}

// Append adds one row. Missing trailing cells are left empty and extra
// values are dropped so every row matches the header width.
func (t *Table) Append(values ...any) {
	row := make([]string, len(t.columns))
	for i := range row {
		if i < len(values) {
			row[i] = FormatValue(values[i])
		}
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns the header.
func (t *Table) Columns() []string { return t.columns }

// Rows returns the rendered rows.
func (t *Table) Rows() [][]string { return t.rows }

// WriteFile writes the table to path in the given format, replacing any
// existing file.
func (t *Table) WriteFile(path string, format types.ExportFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := t.Write(f, format); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// Write serializes the table to w.
func (t *Table) Write(w io.Writer, format types.ExportFormat) error {
	switch format {
	case types.FormatCSV, "":
		return t.writeCSV(w)
	case types.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t.records())
	case types.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(t.records()); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func (t *Table) writeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.rows); err != nil {
		return err
	}
	return cw.Error()
}

// records returns the rows as documents whose keys follow header order.
func (t *Table) records() []record {
	out := make([]record, len(t.rows))
	for i, row := range t.rows {
		out[i] = record{columns: t.columns, values: row}
	}
	return out
}

type record struct {
	columns []string
	values  []string
}

func (r record) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, c := range r.columns {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

func (r record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i, c := range r.columns {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.values[i]},
		)
	}
	return node, nil
}
