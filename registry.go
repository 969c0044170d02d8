package logtree

import (
	"strings"
	"sync"
)

// levelMapping is a durable level rule: an exact qualified name, or a prefix
// pattern ending in "*" covering everything nested under the prefix.
// Mappings are append-only and scanned linearly; for prefix rules the most
// recently registered match wins, not the longest prefix.
type levelMapping struct {
	pattern string
	level   Severity
}

// registry is the mutable development-mode manager. One mutex guards the
// three tables (loggers, mappings, namespace sinks); emit paths never take
// it because each Logger carries its threshold in an atomic level.
type registry struct {
	mu           sync.Mutex
	root         Sink
	defaultLevel Severity
	resolver     NamespaceResolver

	loggers    map[string]*Logger
	mappings   []levelMapping
	namespaces map[string]Sink
}

// NewDevelopmentManager builds the mutable manager variant. A nil resolver
// disables namespace auto-prefixing.
func NewDevelopmentManager(root Sink, defaultLevel Severity, resolver NamespaceResolver) Manager {
	return &registry{
		root:         root,
		defaultLevel: defaultLevel,
		resolver:     resolver,
		loggers:      make(map[string]*Logger),
		namespaces:   make(map[string]Sink),
	}
}

func (r *registry) Create(name string, opts ...Option) *Logger {
	o := applyOptions(opts)

	r.mu.Lock()
	defer r.mu.Unlock()

	qualified := name
	parent := r.root
	if r.resolver != nil {
		if ns, ok := r.resolver.ResolveCallerNamespace(); ok && ns != "" {
			qualified = ns + "/" + name
			parent = r.namespaceSinkLocked(ns)
		}
	}

	// Precedence: explicit option, exact mapping, latest matching prefix
	// mapping, process default.
	level := r.defaultLevel
	if mapped, ok := r.mappedLevelLocked(qualified); ok {
		level = mapped
	}
	if o.level != nil {
		level = *o.level
	}

	lg := newLogger(qualified, level, parent.Child(name, ChildOptions{Redact: o.redact}))
	r.loggers[qualified] = lg
	return lg
}

// namespaceSinkLocked returns the cached root sink for a caller package,
// creating it on first use. At most one root sink exists per namespace, so
// loggers from the same package share one sink lineage.
func (r *registry) namespaceSinkLocked(ns string) Sink {
	if s, ok := r.namespaces[ns]; ok {
		return s
	}
	s := r.root.Child(ns, ChildOptions{})
	r.namespaces[ns] = s
	return s
}

func (r *registry) mappedLevelLocked(name string) (Severity, bool) {
	// Exact rules beat prefix rules regardless of registration order.
	for i := len(r.mappings) - 1; i >= 0; i-- {
		m := r.mappings[i]
		if !isPrefixPattern(m.pattern) && m.pattern == name {
			return m.level, true
		}
	}
	for i := len(r.mappings) - 1; i >= 0; i-- {
		m := r.mappings[i]
		if isPrefixPattern(m.pattern) && strings.HasPrefix(name, normalizePrefix(m.pattern)) {
			return m.level, true
		}
	}
	return 0, false
}

func (r *registry) AddLevelMapping(pattern string, sev Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mappings = append(r.mappings, levelMapping{pattern: pattern, level: sev})

	// A new rule takes effect immediately on existing loggers; the table
	// entry keeps it durable for loggers created later.
	if isPrefixPattern(pattern) {
		r.cascadeLocked(normalizePrefix(pattern), sev)
		return
	}
	if lg, ok := r.loggers[pattern]; ok {
		lg.setLevel(sev)
	}
}

func (r *registry) SetLevel(pattern string, sev Severity) {
	if isPrefixPattern(pattern) {
		r.SetChildrenLevel(pattern, sev)
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if lg, ok := r.loggers[pattern]; ok {
		lg.setLevel(sev)
	}
}

func (r *registry) SetChildrenLevel(prefix string, sev Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cascadeLocked(normalizePrefix(prefix), sev)
}

func (r *registry) cascadeLocked(prefix string, sev Severity) int {
	n := 0
	for name, lg := range r.loggers {
		if strings.HasPrefix(name, prefix) {
			lg.setLevel(sev)
			n++
		}
	}
	return n
}

func (r *registry) Lookup(name string) (*Logger, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lg, ok := r.loggers[name]
	return lg, ok
}

func (r *registry) Flush() error {
	// Children share the root's core, one sync drains them all.
	return r.root.Flush()
}

func isPrefixPattern(p string) bool {
	return strings.HasSuffix(p, "*")
}

// normalizePrefix strips the wildcard suffix and ensures a trailing
// separator: "svc/*", "svc/" and "svc" all normalize to "svc/".
func normalizePrefix(p string) string {
	p = strings.TrimSuffix(p, "*")
	p = strings.TrimSuffix(p, "/")
	return p + "/"
}
