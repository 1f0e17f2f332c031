// Package logger provides a simple, clean logging interface.
package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Constants for logging operations.
const (
	callerSkipFrames = 1 // skip the wrapper method so the caller of Info/Error/... is reported
)

// Logger defines the logging interface.
type Logger interface {
	// Context-aware variants
	Info(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Debug(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Fatal(ctx context.Context, msg string, fields ...Field)

	Named(name string) Logger
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// Field constructors.
func String(key, val string) Field                 { return Field{Key: key, Value: val} }
func Int(key string, val int) Field                { return Field{Key: key, Value: val} }
func Float64(key string, val float64) Field        { return Field{Key: key, Value: val} }
func Duration(key string, val time.Duration) Field { return Field{Key: key, Value: val} }
func Any(key string, val interface{}) Field        { return Field{Key: key, Value: val} }
func Error(err error) Field                        { return Field{Key: "error", Value: err} }

// zapLogger implements Logger on top of zap.
type zapLogger struct {
	z *zap.Logger
}

func (l *zapLogger) Named(name string) Logger {
	return &zapLogger{z: l.z.Named(name)}
}

func (l *zapLogger) Info(_ context.Context, msg string, fields ...Field) {
	l.z.Info(msg, convertFields(fields)...)
}

func (l *zapLogger) Error(_ context.Context, msg string, fields ...Field) {
	l.z.Error(msg, convertFields(fields)...)
}

func (l *zapLogger) Debug(_ context.Context, msg string, fields ...Field) {
	l.z.Debug(msg, convertFields(fields)...)
}

func (l *zapLogger) Warn(_ context.Context, msg string, fields ...Field) {
	l.z.Warn(msg, convertFields(fields)...)
}

func (l *zapLogger) Fatal(_ context.Context, msg string, fields ...Field) {
	l.z.Fatal(msg, convertFields(fields)...)
}

// convertFields converts our Field type to zap fields.
func convertFields(fields []Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		if err, ok := f.Value.(error); ok && f.Key == "error" {
			out[i] = zap.Error(err)
			continue
		}
		out[i] = zap.Any(f.Key, f.Value)
	}
	return out
}

var (
	mu     sync.RWMutex
	global Logger
	base   *zap.Logger
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Init initializes the global logger.
func Init() error {
	// Default to info; can be changed with SetLevel*/SetLevelString.
	level.SetLevel(zapcore.InfoLevel)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stdout), level)

	z := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(callerSkipFrames))

	mu.Lock()
	defer mu.Unlock()
	base = z
	global = &zapLogger{z: z}
	return nil
}

// Get returns the global logger. Until Init is called it returns a no-op logger.
func Get() Logger {
	mu.RLock()
	defer mu.RUnlock()
	if global == nil {
		return &zapLogger{z: zap.NewNop()}
	}
	return global
}

// Named creates a named logger.
func Named(name string) Logger {
	return Get().Named(name)
}

// Sync flushes buffered log entries.
func Sync() error {
	mu.RLock()
	z := base
	mu.RUnlock()
	if z == nil {
		return nil
	}
	err := z.Sync()
	// stdout is not syncable on most terminals and pipes.
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}

// SetLevel updates the current logging level for the global logger.
func SetLevel(l zapcore.Level) { level.SetLevel(l) }

// SetLevelString parses and sets the logging level.
// Accepts: debug, info, warn/warning, error (case-insensitive).
func SetLevelString(lvl string) error {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		SetLevel(zapcore.DebugLevel)
	case "", "info":
		SetLevel(zapcore.InfoLevel)
	case "warn", "warning":
		SetLevel(zapcore.WarnLevel)
	case "error":
		SetLevel(zapcore.ErrorLevel)
	default:
		return fmt.Errorf("unknown log level: %s", lvl)
	}
	return nil
}

// Level reports the current global level name.
func Level() string {
	return level.Level().String()
}
