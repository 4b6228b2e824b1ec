// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the console logger used by the CLI: a zap core
// with a colored, space-separated console encoding.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func coloredLevel(level zapcore.Level) string {
	switch level {
	case zapcore.DebugLevel:
		return color.BlueString("DEBUG")
	case zapcore.InfoLevel:
		return color.GreenString("INFO ")
	case zapcore.WarnLevel:
		return color.YellowString("WARN ")
	case zapcore.ErrorLevel:
		return color.RedString("ERROR")
	default:
		return level.CapitalString()
	}
}

func encodeTime(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(color.CyanString(t.Format("15:04:05.000")))
}

func encodeLevel(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(coloredLevel(level))
}

// encodeCaller pads short line numbers so messages line up.
func encodeCaller(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
	path := caller.TrimmedPath()
	if i := strings.LastIndexByte(path, ':'); i >= 0 {
		if pad := 4 - len(path[i+1:]); pad > 0 {
			path += strings.Repeat(" ", pad)
		}
	}
	enc.AppendString(color.MagentaString(path))
}

// Options configure New.
type Options struct {
	// Level is the minimum enabled level (zero value is info).
	Level zapcore.Level

	// NoColor disables ANSI colors regardless of terminal detection.
	NoColor bool
}

// New returns a sugared logger writing console-encoded entries to w.
func New(w io.Writer, opts Options) *zap.SugaredLogger {
	if opts.NoColor {
		color.NoColor = true
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = encodeTime
	cfg.EncodeLevel = encodeLevel
	cfg.EncodeCaller = encodeCaller
	cfg.ConsoleSeparator = " "

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), opts.Level)
	return zap.New(core, zap.AddCaller()).Sugar()
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
