// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scoreid-export/pkg/types"
)

// YAMLSource serves documents from a fixture file holding a YAML list of
// mappings. The file is read once at open time and filtered in memory.
type YAMLSource struct {
	path  string
	items []any
}

// OpenYAML reads the fixture at path.
func OpenYAML(path string) (*YAMLSource, error) {
	if path == "" {
		return nil, fmt.Errorf("yaml store requires a path")
	}
	items, err := ReadFixture(path)
	if err != nil {
		return nil, err
	}
	return &YAMLSource{path: path, items: items}, nil
}

// ReadFixture parses a YAML list. Entries are returned undecoded so that a
// malformed entry only fails when it is reached.
func ReadFixture(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	var items []any
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
	}
	return items, nil
}

// FixtureDocument converts one fixture entry into a Document.
func FixtureDocument(item any, index int) (types.Document, error) {
	m, ok := item.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("fixture entry %d is %T, not a mapping", index, item)
	}
	return types.Document(m), nil
}

// Find returns the entries matching f in file order. Entries that are not
// mappings are passed through so the caller sees their decode error.
func (s *YAMLSource) Find(_ context.Context, f Filter) (Cursor, error) {
	var matched []yamlEntry
	for i, item := range s.items {
		doc, err := FixtureDocument(item, i)
		if err != nil {
			matched = append(matched, yamlEntry{err: err})
			continue
		}
		if got, ok := doc.Lookup(f.Path); ok && valuesEqual(got, f.Value) {
			matched = append(matched, yamlEntry{doc: doc})
		}
	}
	return &yamlCursor{entries: matched, pos: -1}, nil
}

// Insert is not supported; fixtures are edited by hand.
func (s *YAMLSource) Insert(context.Context, []types.Document) (int, error) {
	return 0, fmt.Errorf("%s: %w", s.path, ErrReadOnly)
}

// Close is a no-op.
func (s *YAMLSource) Close(context.Context) error { return nil }

type yamlEntry struct {
	doc types.Document
	err error
}

type yamlCursor struct {
	entries []yamlEntry
	pos     int
}

func (c *yamlCursor) Next(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	c.pos++
	return c.pos < len(c.entries)
}

func (c *yamlCursor) Decode() (types.Document, error) {
	e := c.entries[c.pos]
	return e.doc, e.err
}

func (c *yamlCursor) Err() error { return nil }
func (c *yamlCursor) Close(context.Context) error { return nil }

// valuesEqual compares like MongoDB equality: numbers match across
// integer and float types, everything else must be deeply equal.
func valuesEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
