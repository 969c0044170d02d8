// Package logtree is a structured-logging factory: it hands out named,
// independently leveled logger handles backed by a shared zap sink, and lets
// log levels be retargeted at runtime with prefix ("cascading") semantics.
//
// # Overview
//
// The package provides:
//   - Hierarchical named loggers ("svc/worker") with one registry entry per
//     qualified name
//   - Runtime level mappings, exact or prefix ("svc/*"), applied to existing
//     and future loggers alike
//   - Automatic namespace prefixing from the calling package's go.mod
//     (development mode)
//   - Creation-time field redaction with remove-not-mask semantics
//   - A development/production manager split selected once per process
//
// # Usage
//
// Grab a logger and emit:
//
//	log := logtree.Create("worker")
//	log.Info("started")
//	log.Debug(map[string]any{"queue": q}, "polling")
//	defer logtree.Flush()
//
// Retarget levels at runtime (development mode):
//
//	logtree.AddLevelMapping("svc/*", logtree.WarnLevel)
//	logtree.SetLevel("svc/worker", logtree.TraceLevel)
//
// Redact sensitive payload fields for the life of a logger:
//
//	log := logtree.Create("auth", logtree.WithRedact("req.headers.authorization", "*.password"))
//
// # Level resolution
//
// A logger's effective level is decided at creation, highest precedence
// first: explicit WithLevel option, exact-name mapping, most recently
// registered matching prefix mapping, process default. Later SetLevel,
// SetChildrenLevel and AddLevelMapping calls mutate it in place.
//
// # Modes
//
// LOGTREE_MODE=development selects the mutable manager: optional pretty
// console output, caller enrichment and namespace auto-prefixing. Any other
// mode selects the production manager: loggers fixed at the default level on
// a Cloud Logging style JSON sink, with every mutation attempt rejected by a
// diagnostic warning (SetChildrenLevel answers -1).
//
// # Concurrency
//
// Managers serialize creation and level mutation behind one mutex. Emits on
// a handle never take that lock; the threshold is an atomic level read.
//
// # Errors
//
// Logging never crashes the logging caller: emit errors are contained, and
// level mutations on unknown names are accepted no-ops. Configuration
// problems (bad severity strings, manager installs outside development mode)
// surface as errors wrapping ErrConfiguration.
package logtree
