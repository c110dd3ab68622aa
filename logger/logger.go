// Package logger builds the zap loggers used across the app.
//
// The TUI owns the terminal, so in interactive mode logs go to a file in
// the profile directory. Headless mode logs to stderr.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFormat selects the encoder.
type LogFormat string

const (
	// FormatConsole is a human-readable line format.
	FormatConsole LogFormat = "CONSOLE"
	// FormatJSON is one JSON object per line.
	FormatJSON LogFormat = "JSON"
)

// Component names for named loggers.
const (
	ComponentApp       = "App"
	ComponentViewModel = "ViewModel"
	ComponentCompute   = "Compute"
	ComponentHeadless  = "Headless"
)

// Filename is the log file written inside the profile directory.
const Filename = "launch.log"

// ParseLevel maps a level name to zapcore.Level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseFormat maps a format name to LogFormat, falling back to def.
func ParseFormat(format string, def LogFormat) LogFormat {
	switch LogFormat(strings.ToUpper(format)) {
	case FormatConsole:
		return FormatConsole
	case FormatJSON:
		return FormatJSON
	default:
		return def
	}
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05 MST"))
}

// New creates a logger writing to w at the given level and format.
func New(w io.Writer, level string, format LogFormat) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "component",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if format == FormatJSON {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfig.EncodeTime = timeEncoder
		encoderConfig.ConsoleSeparator = " | "
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(ParseLevel(level)))
	return zap.New(core, zap.AddCaller())
}

// NewFile opens (appending) <dir>/launch.log and returns a logger on it
// plus a close func. If the file cannot be opened a no-op logger is
// returned together with the error.
func NewFile(dir, level string, format LogFormat) (*zap.Logger, func() error, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zap.NewNop(), func() error { return nil }, err
	}
	f, err := os.OpenFile(filepath.Join(dir, Filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zap.NewNop(), func() error { return nil }, err
	}
	l := New(f, level, format)
	return l, func() error {
		_ = l.Sync()
		return f.Close()
	}, nil
}

// For returns a sugared logger named after component.
func For(l *zap.Logger, component string) *zap.SugaredLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return l.Sugar().Named(component)
}
