package logtree

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sink is the delegate that formats and writes log records. The registry
// treats it as opaque: it hands over a severity, an optional structured
// payload and an optional message, and asks for children bound to a name
// and a redaction spec. Implementations must never panic the caller.
type Sink interface {
	Child(name string, opts ChildOptions) Sink
	Emit(sev Severity, payload map[string]any, msg string, args ...any)
	Flush() error
}

// ChildOptions configures a child sink at logger-creation time.
type ChildOptions struct {
	// Redact lists field paths to elide from emitted payloads.
	// Matched fields are removed, not masked.
	Redact []string
}

// SinkConfig describes the root sink destination and rendering.
type SinkConfig struct {
	// Destination is "stdout", "stderr", or a file path. Empty means stdout.
	Destination string
	// Encoding selects the record format: "json", "console", or "gcloud".
	Encoding string
	// Caller enables source-location enrichment on every record.
	Caller bool
}

// NewSink builds the root zap-backed sink. The underlying core is wide open
// (trace and above); severity filtering happens in the Logger handle so that
// emit paths never touch the registry lock.
func NewSink(cfg SinkConfig) (Sink, error) {
	w, tty, err := openDestination(cfg.Destination)
	if err != nil {
		return nil, err
	}

	enc, err := newEncoder(cfg.Encoding, tty)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), TraceLevel)

	opts := []zap.Option{}
	if cfg.Caller {
		// Skip Emit -> (*Logger).emit -> the per-severity method so the
		// recorded location is the logging call site.
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(3))
	}

	return &zapSink{logger: zap.New(core, opts...)}, nil
}

func openDestination(dest string) (*os.File, bool, error) {
	switch dest {
	case "", "stdout":
		return os.Stdout, isatty.IsTerminal(os.Stdout.Fd()), nil
	case "stderr":
		return os.Stderr, isatty.IsTerminal(os.Stderr.Fd()), nil
	}
	f, err := os.OpenFile(dest, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open log destination %q: %w", dest, err)
	}
	return f, false, nil
}

// zapSink implements Sink on a zap.Logger.
type zapSink struct {
	logger *zap.Logger
	redact *redactor
}

func (s *zapSink) Child(name string, opts ChildOptions) Sink {
	child := &zapSink{logger: s.logger, redact: s.redact}
	if name != "" {
		child.logger = s.logger.Named(name)
	}
	if len(opts.Redact) > 0 {
		child.redact = s.redact.extend(opts.Redact)
	}
	return child
}

func (s *zapSink) Emit(sev Severity, payload map[string]any, msg string, args ...any) {
	// Logging must never crash the logging caller.
	defer func() { _ = recover() }()

	switch {
	case len(args) > 0 && msg != "":
		msg = fmt.Sprintf(msg, args...)
	case len(args) > 0:
		msg = fmt.Sprint(args...)
	}

	var fields []zap.Field
	if len(payload) > 0 {
		pruned := s.redact.apply(payload)
		fields = make([]zap.Field, 0, len(pruned))
		for k, v := range pruned {
			fields = append(fields, zap.Any(k, v))
		}
	}
	s.logger.Log(sev, msg, fields...)
}

func (s *zapSink) Flush() error {
	err := s.logger.Sync()
	// Ignore sync errors on stdout/stderr (common on Linux)
	if err != nil && isStdoutSyncError(err) {
		return nil
	}
	return err
}

// isStdoutSyncError checks if error is harmless stdout/stderr sync error.
// On Linux, syncing stdout/stderr returns EINVAL or ENOTTY.
func isStdoutSyncError(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EINVAL || errno == syscall.ENOTTY
	}
	return false
}
