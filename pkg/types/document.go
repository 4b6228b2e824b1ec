// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Document field names read by the exporter.
const (
	FieldScoreID        = "score_id"
	FieldStatusResponse = "status_response_json"
)

// Document is an untyped record as returned by the document store.
// Nested documents are map[string]any and arrays are []any.
type Document map[string]any

// Lookup resolves a dotted path (e.g. "status_response_json.result.status")
// through nested documents. It reports false if any segment is missing or
// traverses a non-document value.
func (d Document) Lookup(path string) (any, bool) {
	var cur any = map[string]any(d)
	for _, key := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Document:
		return m, true
	default:
		return nil, false
	}
}

// ExtractedRecord is the single-field row produced for each matching
// document that carries a score_id.
type ExtractedRecord struct {
	ScoreID any `json:"score_id" yaml:"score_id"`
}
