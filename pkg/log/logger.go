package log

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
)

const defaultBufferSize = 1000

// Logger writes leveled, structured entries through an async Buffer.
// Child loggers created with With share the parent's buffer and level.
type Logger struct {
	level      *atomic.Int32
	buffer     *Buffer
	baseFields map[string]any
}

// New creates a logger emitting entries at level and above.
func New(level Level, transporters ...Transporter) *Logger {
	l := &Logger{
		level:      new(atomic.Int32),
		buffer:     NewBuffer(defaultBufferSize, transporters...),
		baseFields: map[string]any{},
	}
	l.level.Store(int32(level))
	return l
}

// SetLevel changes the minimum level for this logger and all its children.
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// Level returns the current minimum level.
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// With returns a child logger that adds the given fields to every entry.
func (l *Logger) With(keysAndValues ...any) *Logger {
	fields := make(map[string]any, len(l.baseFields)+len(keysAndValues)/2)
	for k, v := range l.baseFields {
		fields[k] = v
	}
	mergePairs(fields, keysAndValues)
	return &Logger{level: l.level, buffer: l.buffer, baseFields: fields}
}

// Close flushes pending entries and closes the transporters.
func (l *Logger) Close() {
	l.buffer.Close()
}

// log builds the entry. Field precedence, lowest first: base fields,
// context fields, call-site fields.
func (l *Logger) log(ctx context.Context, level Level, msg string, keysAndValues []any) {
	if !l.Level().Enables(level) {
		return
	}

	entry := NewEntry(level, msg)
	entry.Caller = caller(3)
	for k, v := range l.baseFields {
		entry.Fields[k] = v
	}
	if ctx != nil {
		entry.RequestID = RequestIDFromContext(ctx)
		for k, v := range FieldsFromContext(ctx) {
			entry.Fields[k] = v
		}
	}
	mergePairs(entry.Fields, keysAndValues)

	l.buffer.Send(*entry)
}

func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// Trace logs at Trace level.
func (l *Logger) Trace(msg string, keysAndValues ...any) { l.log(nil, Trace, msg, keysAndValues) }

// Debug logs at Debug level.
func (l *Logger) Debug(msg string, keysAndValues ...any) { l.log(nil, Debug, msg, keysAndValues) }

// Info logs at Info level.
func (l *Logger) Info(msg string, keysAndValues ...any) { l.log(nil, Info, msg, keysAndValues) }

// Warn logs at Warn level.
func (l *Logger) Warn(msg string, keysAndValues ...any) { l.log(nil, Warn, msg, keysAndValues) }

// Error logs at Error level.
func (l *Logger) Error(msg string, keysAndValues ...any) { l.log(nil, Error, msg, keysAndValues) }

// Fatal logs at Fatal level. Exiting is left to the caller.
func (l *Logger) Fatal(msg string, keysAndValues ...any) { l.log(nil, Fatal, msg, keysAndValues) }

// DebugCtx logs at Debug level with request-scoped context.
func (l *Logger) DebugCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, Debug, msg, keysAndValues)
}

// InfoCtx logs at Info level with request-scoped context.
func (l *Logger) InfoCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, Info, msg, keysAndValues)
}

// WarnCtx logs at Warn level with request-scoped context.
func (l *Logger) WarnCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, Warn, msg, keysAndValues)
}

// ErrorCtx logs at Error level with request-scoped context.
func (l *Logger) ErrorCtx(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, Error, msg, keysAndValues)
}

// --- Global Logger ---

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
	discard      = &Logger{
		level:      levelFrom(Fatal + 1),
		buffer:     NewBuffer(1),
		baseFields: map[string]any{},
	}
)

func levelFrom(l Level) *atomic.Int32 {
	v := new(atomic.Int32)
	v.Store(int32(l))
	return v
}

// SetDefault installs the process-wide logger used by the Global helpers.
func SetDefault(l *Logger) {
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

// Default returns the process-wide logger, or a logger that discards
// everything when none has been installed.
func Default() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger == nil {
		return discard
	}
	return globalLogger
}

// GlobalDebug logs at Debug level with the default logger.
func GlobalDebug(msg string, keysAndValues ...any) { Default().log(nil, Debug, msg, keysAndValues) }

// GlobalInfo logs at Info level with the default logger.
func GlobalInfo(msg string, keysAndValues ...any) { Default().log(nil, Info, msg, keysAndValues) }

// GlobalWarn logs at Warn level with the default logger.
func GlobalWarn(msg string, keysAndValues ...any) { Default().log(nil, Warn, msg, keysAndValues) }

// GlobalError logs at Error level with the default logger.
func GlobalError(msg string, keysAndValues ...any) { Default().log(nil, Error, msg, keysAndValues) }

// GlobalFatal logs at Fatal level with the default logger.
func GlobalFatal(msg string, keysAndValues ...any) { Default().log(nil, Fatal, msg, keysAndValues) }

// GlobalDebugCtx logs at Debug level with context using the default logger.
func GlobalDebugCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().log(ctx, Debug, msg, keysAndValues)
}

// GlobalInfoCtx logs at Info level with context using the default logger.
func GlobalInfoCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().log(ctx, Info, msg, keysAndValues)
}

// GlobalWarnCtx logs at Warn level with context using the default logger.
func GlobalWarnCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().log(ctx, Warn, msg, keysAndValues)
}

// GlobalErrorCtx logs at Error level with context using the default logger.
func GlobalErrorCtx(ctx context.Context, msg string, keysAndValues ...any) {
	Default().log(ctx, Error, msg, keysAndValues)
}
