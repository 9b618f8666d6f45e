// Package logging builds the zap logger used by the CLI driver.
package logging

import (
	"bytes"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	// File, when set, receives JSON logs through a rotating writer.
	// Otherwise logs go to Stderr as console text.
	File    string
	Verbose bool
	Stderr  io.Writer
	// Hold buffers console output until the close func runs, so it does
	// not interleave with a full-screen UI.
	Hold bool
}

type heldWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (h *heldWriter) Write(p []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.buf.Write(p)
}

func (h *heldWriter) flushTo(w io.Writer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, _ = h.buf.WriteTo(w)
}

// New returns the logger and a func that flushes it and closes the file sink.
func New(cfg Config) (*zap.Logger, func()) {
	level := zapcore.WarnLevel
	if cfg.Verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var (
		core    zapcore.Core
		closeFn = func() {}
	)
	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    5, // MB
			MaxBackups: 10,
			MaxAge:     30, // days
			Compress:   true,
		}
		// the file always gets debug detail; Verbose only affects the console
		core = zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotating), zapcore.DebugLevel)
		closeFn = func() { rotating.Close() }
	} else {
		w := cfg.Stderr
		if w == nil {
			w = os.Stderr
		}
		if cfg.Hold {
			held, dst := &heldWriter{}, w
			closeFn = func() { held.flushTo(dst) }
			w = held
		}
		core = zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level)
	}

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return logger, func() {
		_ = logger.Sync()
		closeFn()
	}
}
