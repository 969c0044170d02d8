package logtree

import (
	"sync"
)

// Record is one captured emit, as the delegate sink saw it.
type Record struct {
	Sink     string
	Severity Severity
	Payload  map[string]any
	Message  string
	Args     []any
}

// RecordingSink is a Sink that captures records instead of writing them.
// Children share the parent's record store, so a single root observes the
// whole sink lineage. Redaction specs are honored, letting tests assert
// that elided fields never reach a record.
type RecordingSink struct {
	name   string
	redact *redactor
	shared *recordStore
}

type recordStore struct {
	mu      sync.Mutex
	records []Record
	flushes int
}

// NewRecordingSink creates an observing root sink for tests.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{shared: &recordStore{}}
}

func (s *RecordingSink) Child(name string, opts ChildOptions) Sink {
	child := &RecordingSink{name: s.name, redact: s.redact, shared: s.shared}
	if name != "" {
		if child.name != "" {
			child.name += "."
		}
		child.name += name
	}
	if len(opts.Redact) > 0 {
		child.redact = s.redact.extend(opts.Redact)
	}
	return child
}

func (s *RecordingSink) Emit(sev Severity, payload map[string]any, msg string, args ...any) {
	rec := Record{
		Sink:     s.name,
		Severity: sev,
		Payload:  s.redact.apply(payload),
		Message:  msg,
		Args:     args,
	}
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	s.shared.records = append(s.shared.records, rec)
}

func (s *RecordingSink) Flush() error {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	s.shared.flushes++
	return nil
}

// Records returns a snapshot of everything captured so far.
func (s *RecordingSink) Records() []Record {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	return append([]Record(nil), s.shared.records...)
}

// Flushes returns how many times Flush was called.
func (s *RecordingSink) Flushes() int {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	return s.shared.flushes
}

// Reset clears captured records.
func (s *RecordingSink) Reset() {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	s.shared.records = nil
}
