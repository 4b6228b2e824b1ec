// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFormatValue(t *testing.T) {
	id, _ := primitive.ObjectIDFromHex("65a1b2c3d4e5f60718293a4b")
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "A1", "A1"},
		{"bool", true, "true"},
		{"int", 12, "12"},
		{"int32", int32(-3), "-3"},
		{"int64", int64(9007199254740993), "9007199254740993"},
		{"whole float", 5.0, "5"},
		{"fraction", 0.25, "0.25"},
		{"nan", math.NaN(), "NaN"},
		{"json number", json.Number("123456789012345678"), "123456789012345678"},
		{"time", ts, "2024-01-02T03:04:05Z"},
		{"object id", id, "65a1b2c3d4e5f60718293a4b"},
		{"bson datetime", primitive.NewDateTimeFromTime(ts), "2024-01-02T03:04:05Z"},
		{"document", map[string]any{"k": "v"}, `{"k":"v"}`},
		{"array", []any{"a", 1}, `["a",1]`},
		{"other", uint8(7), "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}
