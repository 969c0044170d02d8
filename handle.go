package logtree

import (
	"go.uber.org/zap"
)

// Logger is a named, leveled emitter bound to a delegate sink child. Handles
// are created by a Manager and registered under their qualified name; the
// threshold is held in a zap.AtomicLevel so concurrent emits read it without
// touching the registry lock, and later SetLevel / SetChildrenLevel calls
// take effect immediately.
type Logger struct {
	name  string
	level zap.AtomicLevel
	sink  Sink
}

func newLogger(name string, level Severity, sink Sink) *Logger {
	return &Logger{
		name:  name,
		level: zap.NewAtomicLevelAt(level),
		sink:  sink,
	}
}

// Name returns the fully qualified logger name.
func (l *Logger) Name() string { return l.name }

// Level returns the current effective severity threshold.
func (l *Logger) Level() Severity { return l.level.Level() }

// Enabled reports whether a message at sev would be emitted.
func (l *Logger) Enabled(sev Severity) bool { return l.level.Enabled(sev) }

// setLevel mutates the effective threshold. Mutations flow through the
// Manager so the registry's mapping table stays authoritative.
func (l *Logger) setLevel(sev Severity) { l.level.SetLevel(sev) }

// Emit methods accept an optional structured payload as the first argument,
// then an optional message template and its interpolation arguments:
//
//	log.Info("listening on %s", addr)
//	log.Warn(map[string]any{"attempt": n}, "retrying")
//
// Calls below the threshold return before any payload or formatting work.

func (l *Logger) Trace(args ...any) { l.emit(TraceLevel, args) }
func (l *Logger) Debug(args ...any) { l.emit(DebugLevel, args) }
func (l *Logger) Info(args ...any)  { l.emit(InfoLevel, args) }
func (l *Logger) Warn(args ...any)  { l.emit(WarnLevel, args) }
func (l *Logger) Error(args ...any) { l.emit(ErrorLevel, args) }

func (l *Logger) emit(sev Severity, args []any) {
	if !l.level.Enabled(sev) {
		return
	}
	var payload map[string]any
	if len(args) > 0 {
		if p, ok := args[0].(map[string]any); ok {
			payload = p
			args = args[1:]
		}
	}
	msg := ""
	if len(args) > 0 {
		if s, ok := args[0].(string); ok {
			msg = s
			args = args[1:]
		}
	}
	l.sink.Emit(sev, payload, msg, args...)
}

// Flush forces the delegate sink to drain buffered output synchronously.
func (l *Logger) Flush() error { return l.sink.Flush() }
