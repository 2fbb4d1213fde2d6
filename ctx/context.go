// Package ctx provides an explicit, passed-by-reference Context carrying a
// logger and run-wide options. Every phase constructor takes a *Context
// instead of reaching for package-level state.
package ctx

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Context bundles the collaborators a compilation phase needs: a logger
// and run-wide options. It holds
// no symbol table or TAC generator itself -- those are per-compilation-unit
// and are constructed by the driver and threaded explicitly into the
// parser, which is the only phase that mutates them.
type Context struct {
	Log   *zap.SugaredLogger
	Debug bool

	// StopOnError mirrors the source's stop_on_error flag: when true, the
	// driver builds its lexer with stopOnError set and its parser with
	// WithStopOnError, so lexing stops at the first lexical error and the
	// first syntax error is fatal.
	StopOnError bool

	closeLog func() error
}

// New builds a Context with a zap logger that writes warnings and above to
// stderr and everything (debug included when debug is true) to a per-run
// log file under logDir, named with a timestamp.
func New(logDir string, debug bool, stopOnError bool) (*Context, error) {
	if logDir == "" {
		logDir = "./logs"
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory %q: %w", logDir, err)
	}

	logPath := filepath.Join(logDir, fmt.Sprintf("run-%s.log", time.Now().Format("20060102-150405")))
	f, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("creating log file %q: %w", logPath, err)
	}

	fileLevel := zapcore.InfoLevel
	if debug {
		fileLevel = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), zapcore.WarnLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), fileLevel),
	)
	logger := zap.New(core)

	return &Context{
		Log:         logger.Sugar(),
		Debug:       debug,
		StopOnError: stopOnError,
		closeLog:    func() error { _ = logger.Sync(); return f.Close() },
	}, nil
}

// Close flushes and closes the run's log file. Callers should defer it
// from the driver's entry point.
func (c *Context) Close() error {
	if c == nil || c.closeLog == nil {
		return nil
	}
	return c.closeLog()
}

// Discard returns a Context whose logger discards everything; used by unit
// tests that exercise a single phase without wanting log file side effects.
func Discard() *Context {
	return &Context{Log: zap.NewNop().Sugar()}
}
