// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scoreid-export/pkg/types"
)

var statusFilter = Filter{Path: "status_response_json.result.status", Value: 1}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), types.StoreConfig{Driver: "postgres"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDriver))
	assert.Contains(t, err.Error(), "postgres")
}

func TestOpenDispatchesToFileBackends(t *testing.T) {
	dir := t.TempDir()

	src, err := Open(context.Background(), types.StoreConfig{
		Driver: types.DriverSQLite,
		Path:   dir + "/docs.db",
	})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteSource{}, src)
	require.NoError(t, src.Close(context.Background()))

	path := writeFixture(t, dir, "[]\n")
	src, err = Open(context.Background(), types.StoreConfig{Driver: types.DriverYAML, Path: path})
	require.NoError(t, err)
	assert.IsType(t, &YAMLSource{}, src)
}

func TestFilterString(t *testing.T) {
	assert.Equal(t, "status_response_json.result.status == 1", statusFilter.String())
}

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"int and int", 1, 1, true},
		{"int and int64", int64(1), 1, true},
		{"int32 and float64", int32(1), float64(1), true},
		{"json number", json.Number("1"), 1, true},
		{"different numbers", 2, 1, false},
		{"string vs number", "1", 1, false},
		{"strings", "A1", "A1", true},
		{"bools", true, true, true},
		{"nil and number", nil, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, valuesEqual(tt.a, tt.b))
		})
	}
}

// collect drains a cursor, returning decoded documents and decode errors.
func collect(t *testing.T, cur Cursor) ([]types.Document, []error) {
	t.Helper()
	ctx := context.Background()
	defer cur.Close(ctx)

	var (
		docs []types.Document
		errs []error
	)
	for cur.Next(ctx) {
		doc, err := cur.Decode()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		docs = append(docs, doc)
	}
	require.NoError(t, cur.Err())
	return docs, errs
}
