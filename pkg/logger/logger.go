// Package logger provides the structured JSON logger used across figpie:
// a zap core wrapped by zapr into a logr.Logger, carried through context.
package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/oakwood-commons/figpie/pkg/settings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// loggerContextKey is unexported so no other package can collide with it.
type loggerContextKey struct{}

// Field names written on log entries.
const (
	RootCommandKey = "root_command"
	SubCommandKey  = "sub_command"
	SessionKey     = "session"
	CommitKey      = "commit"
	VersionKey     = "version"
	BuildTimeKey   = "build_time"
	GoVersionKey   = "go_version"
	TimeStampKey   = "timestamp"
	MessageKey     = "message"
)

var (
	once sync.Once

	// globalZapLogger backs Sync. Package-private so only Get sets it.
	globalZapLogger *zap.Logger

	globalLogrLogger *logr.Logger

	defaultNoopLogger logr.Logger = logr.Discard()
)

// Get initializes the global logger writing JSON to stderr. Only the first
// call has an effect; later calls return the same instance.
// logLevel is a zap level: -1 is debug, 0 is info. Larger V() levels need
// more negative values. Every entry carries the build fields.
func Get(logLevel int8) *logr.Logger {
	once.Do(func() {
		globalZapLogger = newZap(logLevel, zapcore.Lock(os.Stderr))
		gl := zapr.NewLogger(globalZapLogger)
		globalLogrLogger = &gl
	})
	if globalLogrLogger == nil {
		return &defaultNoopLogger
	}
	return globalLogrLogger
}

// New builds a standalone logger writing JSON to w. The interactive UI owns
// the terminal, so its logs go to a Sink rather than the global stderr
// logger.
func New(logLevel int8, w zapcore.WriteSyncer) logr.Logger {
	return zapr.NewLogger(newZap(logLevel, w))
}

func newZap(logLevel int8, w zapcore.WriteSyncer) *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	goVersion := "unknown"
	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		goVersion = buildInfo.GoVersion
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		w,
		zap.NewAtomicLevelAt(zapcore.Level(logLevel)),
	).With(
		[]zapcore.Field{
			zap.String(CommitKey, settings.VersionInformation.Commit),
			zap.String(VersionKey, settings.VersionInformation.BuildVersion),
			zap.String(BuildTimeKey, settings.VersionInformation.BuildTime),
			zap.String(GoVersionKey, goVersion),
		},
	)

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
		zap.WithFatalHook(zapcore.WriteThenPanic),
	)
}

// Sink is a file-backed log destination owned by the caller. It satisfies
// zapcore.WriteSyncer, so it can be passed to New.
type Sink struct {
	zapcore.WriteSyncer
	file *os.File
}

// OpenSink opens path for appending. The caller must Close it.
func OpenSink(path string) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log sink: %w", err)
	}
	return &Sink{WriteSyncer: zapcore.Lock(f), file: f}, nil
}

// Path returns the file the sink writes to.
func (s *Sink) Path() string { return s.file.Name() }

// Close flushes and closes the underlying file.
func (s *Sink) Close() error {
	if err := s.Sync(); err != nil && !isIgnorableSyncError(err) {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}

// NewSession returns an identifier attached to every entry of one run.
// It is a time-ordered UUIDv7, so sessions sort by start time.
func NewSession() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// WithLogger returns a context carrying log. If the context already holds
// the same instance the original context is returned.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if lp, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		if lp == log {
			return ctx
		}
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext retrieves the logger from the context, falling back to the
// global logger and then to a no-op logger, so it never returns nil.
func FromContext(ctx context.Context) *logr.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		return log
	} else if log := globalLogrLogger; log != nil {
		return log
	}
	return &defaultNoopLogger
}

// Sync flushes the global logger. Call it via defer in main. Sync errors
// from terminals and pipes are ignored; others are reported on stderr.
func Sync() {
	if globalZapLogger != nil {
		if err := globalZapLogger.Sync(); err != nil {
			if isIgnorableSyncError(err) {
				return
			}
			fmt.Fprintf(os.Stderr, "WARNING: failed to sync zap logger: %v\n", err)
		}
	}
}

// isIgnorableSyncError returns true for common Sync errors on pipes/TTYs.
// Windows consoles can return ERROR_INVALID_HANDLE wrapped in *os.PathError,
// which does not compare equal to syscall.EINVAL, so we also string-match.
func isIgnorableSyncError(err error) bool {
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF) {
		return true
	}
	return strings.Contains(err.Error(), "The handle is invalid")
}

// GetNoopLogger returns a logger that discards everything. Useful in tests
// and for callers that want logging switched off.
func GetNoopLogger() *logr.Logger {
	return &defaultNoopLogger
}

// WithValues returns a new logger with additional key-value pairs.
// keysAndValues alternate between string keys and arbitrary values.
func WithValues(lgr *logr.Logger, keysAndValues ...any) *logr.Logger {
	nlgr := lgr.WithValues(keysAndValues...)
	return &nlgr
}
