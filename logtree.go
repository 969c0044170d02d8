package logtree

import (
	"fmt"
	"sync"
)

// Process-wide default manager, lazily constructed on first use and never
// torn down. Everything below delegates to it; tests and embedding programs
// can construct managers directly with NewManager / NewDevelopmentManager /
// NewProductionManager instead.
var (
	defaultMu      sync.Mutex
	defaultManager Manager
	defaultConfig  *Config
)

// Default returns the process manager, building it from the environment on
// first use. Configuration errors fall back to production defaults and are
// reported once through the fresh manager itself.
func Default() Manager {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	ensureDefaultLocked()
	return defaultManager
}

func ensureDefaultLocked() {
	if defaultManager != nil {
		return
	}

	cfg, loadErr := LoadConfig()
	if loadErr != nil {
		cfg = NewDefaultConfig()
	}

	m, err := NewManager(cfg)
	if err != nil {
		// Destination may be unwritable; defaults (stdout, json) cannot fail.
		cfg = NewDefaultConfig()
		m, _ = NewManager(cfg)
		loadErr = err
	}

	defaultConfig = cfg
	defaultManager = m

	if loadErr != nil {
		m.Create("logtree").Warn("falling back to default logging configuration: %v", loadErr)
	}
}

// NewManager builds the manager variant selected by cfg: a mutable
// development manager with the configured enrichments, or a fixed production
// manager on the cloud-oriented sink.
func NewManager(cfg *Config) (Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, err := cfg.DefaultSeverity()
	if err != nil {
		return nil, err
	}

	if cfg.Development() {
		encoding := EncodingJSON
		if cfg.Pretty {
			encoding = EncodingConsole
		}
		sink, err := NewSink(SinkConfig{
			Destination: cfg.Output,
			Encoding:    encoding,
			Caller:      cfg.Caller,
		})
		if err != nil {
			return nil, err
		}
		var resolver NamespaceResolver
		if cfg.Namespace {
			resolver = newRuntimeResolver()
		}
		return NewDevelopmentManager(sink, level, resolver), nil
	}

	sink, err := NewSink(SinkConfig{
		Destination: cfg.Output,
		Encoding:    EncodingGCloud,
	})
	if err != nil {
		return nil, err
	}
	return NewProductionManager(sink, level), nil
}

// InstallManager replaces the process manager. Allowed only while the
// process runs in development mode; elsewhere it fails with
// ErrConfiguration and leaves the active manager untouched.
func InstallManager(m Manager) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	ensureDefaultLocked()
	if !defaultConfig.Development() {
		return fmt.Errorf("%w: custom managers may only be installed in development mode", ErrConfiguration)
	}
	defaultManager = m
	return nil
}

// Create requests a logger from the process manager.
func Create(name string, opts ...Option) *Logger {
	return Default().Create(name, opts...)
}

// AddLevelMapping registers a durable level rule on the process manager.
func AddLevelMapping(pattern string, sev Severity) {
	Default().AddLevelMapping(pattern, sev)
}

// SetLevel mutates a single logger's level on the process manager.
func SetLevel(pattern string, sev Severity) {
	Default().SetLevel(pattern, sev)
}

// SetChildrenLevel cascades a level over a prefix on the process manager.
func SetChildrenLevel(prefix string, sev Severity) int {
	return Default().SetChildrenLevel(prefix, sev)
}

// Flush drains buffered output on the process manager's sink.
func Flush() error {
	return Default().Flush()
}
