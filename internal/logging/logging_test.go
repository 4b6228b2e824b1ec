// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesConsoleEntries(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{NoColor: true})

	log.Infow("Connected to store", "driver", "mongo")
	log.Warnw("Error processing document", "error", "invalid character")
	log.Sync()

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "INFO")
	assert.Contains(t, lines[0], "Connected to store")
	assert.Contains(t, lines[0], `{"driver": "mongo"}`)
	assert.Contains(t, lines[1], "WARN")
	assert.Contains(t, lines[1], "invalid character")
	assert.Contains(t, lines[1], "logging_test.go:")
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Level: zapcore.WarnLevel, NoColor: true})

	log.Debug("hidden")
	log.Info("hidden")
	log.Error("shown")
	log.Sync()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "ERROR")
	assert.Contains(t, buf.String(), "shown")
}

func TestColoredLevel(t *testing.T) {
	assert.Contains(t, coloredLevel(zapcore.DebugLevel), "DEBUG")
	assert.Contains(t, coloredLevel(zapcore.FatalLevel), "FATAL")
}

func TestNop(t *testing.T) {
	Nop().Errorw("dropped", "k", "v")
}
