package logtree

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Severity is the ordered level set shared by loggers and sinks. It aliases
// zapcore.Level so zap fields and cores can be used without conversion.
type Severity = zapcore.Level

// TraceLevel is a custom level below Debug for ultra-verbose logging.
// Value: -2 (Debug is -1, Info is 0)
const TraceLevel = zapcore.Level(-2)

// Remaining levels re-exported for callers that don't import zapcore.
const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

// DefaultLevel is the process default severity when neither configuration
// nor a level mapping says otherwise.
const DefaultLevel = zapcore.InfoLevel

// ParseSeverity parses a severity string, supporting "trace".
// Unknown strings fail with ErrConfiguration.
func ParseSeverity(s string) (Severity, error) {
	if s == "trace" {
		return TraceLevel, nil
	}
	// zapcore treats "" as Info; an empty level is a config mistake here.
	if s == "" {
		return DefaultLevel, fmt.Errorf("%w: empty severity", ErrConfiguration)
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel, fmt.Errorf("%w: unknown severity %q", ErrConfiguration, s)
	}
	return l, nil
}

// SeverityName renders a severity, giving the custom trace level its name.
func SeverityName(s Severity) string {
	if s == TraceLevel {
		return "trace"
	}
	return s.String()
}
