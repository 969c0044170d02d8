package logtree

import (
	"sync"
)

// Manager creates named loggers and governs their effective levels. Two
// variants exist: the development manager supports level mappings, runtime
// mutation and namespace auto-prefixing; the production manager hands out
// fixed-level loggers and rejects every mutation with a diagnostic warning.
// The variant is chosen once at process start and never changes.
type Manager interface {
	// Create builds (or rebuilds) the logger registered under name,
	// optionally namespace-prefixed. Re-creating a name replaces the
	// prior handle.
	Create(name string, opts ...Option) *Logger

	// AddLevelMapping appends a durable level rule for an exact name or a
	// prefix pattern (trailing "*"), and immediately applies it to
	// matching existing loggers.
	AddLevelMapping(pattern string, sev Severity)

	// SetLevel mutates the level of the logger with that exact name, or
	// delegates to SetChildrenLevel when given a prefix pattern. Unknown
	// names are accepted no-ops.
	SetLevel(pattern string, sev Severity)

	// SetChildrenLevel mutates every registered logger under prefix and
	// returns the number affected, or -1 when the variant does not
	// support mutation.
	SetChildrenLevel(prefix string, sev Severity) int

	// Lookup returns the registered logger for a qualified name, if any.
	Lookup(name string) (*Logger, bool)

	// Flush drains buffered output on the underlying sink.
	Flush() error
}

// Option configures a logger at creation time.
type Option func(*createOptions)

type createOptions struct {
	level  *Severity
	redact []string
}

// WithLevel pins the logger's effective level, overriding any mapping.
func WithLevel(sev Severity) Option {
	return func(o *createOptions) { o.level = &sev }
}

// WithRedact attaches field-path elision rules for the life of the logger.
func WithRedact(paths ...string) Option {
	return func(o *createOptions) { o.redact = append(o.redact, paths...) }
}

func applyOptions(opts []Option) createOptions {
	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// productionManager hands out loggers fixed at the default severity on a
// platform-oriented sink. Mutations never alter state and never panic; they
// warn through the manager's own sink, and the cascading form answers -1.
type productionManager struct {
	mu      sync.Mutex
	root    Sink
	level   Severity
	loggers map[string]*Logger
}

// NewProductionManager builds the fixed-level manager variant.
func NewProductionManager(root Sink, defaultLevel Severity) Manager {
	return &productionManager{
		root:    root,
		level:   defaultLevel,
		loggers: make(map[string]*Logger),
	}
}

func (p *productionManager) Create(name string, opts ...Option) *Logger {
	o := applyOptions(opts)

	p.mu.Lock()
	defer p.mu.Unlock()
	lg := newLogger(name, p.level, p.root.Child(name, ChildOptions{Redact: o.redact}))
	p.loggers[name] = lg
	return lg
}

func (p *productionManager) AddLevelMapping(pattern string, sev Severity) {
	p.warnFixed("addLevelMapping", pattern, sev)
}

func (p *productionManager) SetLevel(pattern string, sev Severity) {
	p.warnFixed("setLevel", pattern, sev)
}

func (p *productionManager) SetChildrenLevel(prefix string, sev Severity) int {
	p.warnFixed("setChildrenLevel", prefix, sev)
	return -1
}

func (p *productionManager) warnFixed(op, pattern string, sev Severity) {
	p.root.Emit(WarnLevel, map[string]any{
		"op":      op,
		"pattern": pattern,
		"level":   SeverityName(sev),
	}, "log levels are fixed outside development mode; ignoring")
}

func (p *productionManager) Lookup(name string) (*Logger, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	lg, ok := p.loggers[name]
	return lg, ok
}

func (p *productionManager) Flush() error {
	// Children share the root's core, one sync drains them all.
	return p.root.Flush()
}
