// Package logging adapts go.uber.org/zap to the renderer's Logger
// interface (pkg/core/interfaces.go), the way the teacher's codebase
// ultimately just wraps a Printf-shaped logger. Configuration mirrors
// the CLI's --logtostderr/--logdir/--minloglevel/--verbosity flags.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/quantplane/photon/pkg/core"
)

// Options configures a Logger. Zero value logs info-and-above to stderr.
type Options struct {
	ToStderr  bool
	Dir       string
	MinLevel  string // "info", "warn", "error", "fatal"
	Verbosity int    // >0 enables debug-level output, glog-style
}

// Logger wraps a *zap.SugaredLogger behind core.Logger so the rest of
// the renderer never imports zap directly.
type Logger struct {
	sugar *zap.SugaredLogger
}

var _ core.Logger = (*Logger)(nil)

// New builds a Logger from opts. If opts.Dir is set, a timestamped log
// file is created there in addition to (or instead of) stderr.
func New(opts Options) (*Logger, error) {
	level, err := parseLevel(opts.MinLevel)
	if err != nil {
		return nil, err
	}
	if opts.Verbosity > 0 && level > zapcore.DebugLevel {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encoderCfg)

	var cores []zapcore.Core
	if opts.ToStderr || opts.Dir == "" {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), level))
	}
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("logging: create log dir %q: %w", opts.Dir, err)
		}
		path := filepath.Join(opts.Dir, fmt.Sprintf("photon.%s.log", time.Now().Format("20060102-150405")))
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logging: open log file %q: %w", path, err)
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(file), level))
	}

	tee := zapcore.NewTee(cores...)
	zl := zap.New(tee)
	return &Logger{sugar: zl.Sugar()}, nil
}

// Nop returns a Logger that discards everything, for tests and library
// callers that don't want output.
func Nop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// Printf implements core.Logger at info level.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warnf logs at warn level.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// RadianceInvalid logs a §7-item-4 radiance invalidity event with
// structured pixel coordinates.
func (l *Logger) RadianceInvalid(x, y int, reason string) {
	l.sugar.Warnw("invalid radiance, pixel clamped to black",
		"pixel_x", x, "pixel_y", y, "reason", reason)
}

// Sync flushes buffered log entries; callers should defer this after New.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

func parseLevel(name string) (zapcore.Level, error) {
	switch name {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "fatal":
		return zapcore.FatalLevel, nil
	default:
		return 0, fmt.Errorf("logging: unknown minloglevel %q", name)
	}
}
