// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scoreid-export/pkg/types"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    types.ExportFormat
		wantErr bool
	}{
		{"", types.FormatCSV, false},
		{"csv", types.FormatCSV, false},
		{" JSON ", types.FormatJSON, false},
		{"yaml", types.FormatYAML, false},
		{"parquet", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAppendPadsAndTruncates(t *testing.T) {
	tbl := NewTable("a", "b")
	tbl.Append("1")
	tbl.Append("1", 2, "extra")

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, [][]string{{"1", ""}, {"1", "2"}}, tbl.Rows())
	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
}

func TestWriteCSV(t *testing.T) {
	tbl := NewTable(types.FieldScoreID)
	tbl.Append("A1")
	tbl.Append(int64(42))
	tbl.Append("has,comma")

	var b strings.Builder
	require.NoError(t, tbl.Write(&b, types.FormatCSV))
	assert.Equal(t, "score_id\nA1\n42\n\"has,comma\"\n", b.String())
}

func TestWriteCSVHeaderOnly(t *testing.T) {
	var b strings.Builder
	require.NoError(t, NewTable(types.FieldScoreID).Write(&b, ""))
	assert.Equal(t, "score_id\n", b.String())
}

func TestWriteJSON(t *testing.T) {
	tbl := NewTable("score_id", "note")
	tbl.Append("A1", "x")

	var b strings.Builder
	require.NoError(t, tbl.Write(&b, types.FormatJSON))
	assert.JSONEq(t, `[{"score_id":"A1","note":"x"}]`, b.String())
	assert.Less(t, strings.Index(b.String(), "score_id"), strings.Index(b.String(), "note"),
		"keys follow header order")
}

func TestWriteJSONEmpty(t *testing.T) {
	var b strings.Builder
	require.NoError(t, NewTable("score_id").Write(&b, types.FormatJSON))
	assert.Equal(t, "[]\n", b.String())
}

func TestWriteYAML(t *testing.T) {
	tbl := NewTable("score_id")
	tbl.Append("A1")
	tbl.Append(7)

	var b strings.Builder
	require.NoError(t, tbl.Write(&b, types.FormatYAML))
	assert.Equal(t, "- score_id: A1\n- score_id: \"7\"\n", b.String())
}

func TestWriteUnknownFormat(t *testing.T) {
	var b strings.Builder
	err := NewTable("score_id").Write(&b, "xml")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "score_ids.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale\ncontent\nmore\n"), 0o644))

	tbl := NewTable("score_id")
	tbl.Append("A1")
	require.NoError(t, tbl.WriteFile(path, types.FormatCSV))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "score_id\nA1\n", string(data))
}

func TestWriteFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "score_ids.csv")
	err := NewTable("score_id").WriteFile(path, types.FormatCSV)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating")
}
