package logtree

import (
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/mod/modfile"
)

// NamespaceResolver derives the calling component's logical package name so
// the registry can auto-prefix logger names. Implementations may inspect the
// call stack, or return a statically configured name; the registry depends
// only on this capability.
type NamespaceResolver interface {
	// ResolveCallerNamespace returns the namespace of the first caller
	// outside this module, or ok=false when it cannot be determined.
	ResolveCallerNamespace() (ns string, ok bool)
}

const modulePath = "github.com/fyrsmithlabs/logtree"

// runtimeResolver walks the call stack to the first frame outside this
// module, then walks that file's parent directories to the nearest go.mod
// and takes the last element of the declared module path. Results are
// memoized per caller directory; repeated logger creation from the same
// package never re-walks the filesystem.
type runtimeResolver struct {
	mu    sync.Mutex
	cache map[string]string // caller dir -> namespace ("" when unresolved)
}

func newRuntimeResolver() *runtimeResolver {
	return &runtimeResolver{cache: make(map[string]string)}
}

func (r *runtimeResolver) ResolveCallerNamespace() (string, bool) {
	file, ok := callerFileOutsideModule()
	if !ok {
		return "", false
	}
	dir := filepath.Dir(file)

	r.mu.Lock()
	defer r.mu.Unlock()
	if ns, hit := r.cache[dir]; hit {
		return ns, ns != ""
	}
	ns := moduleNameForDir(dir)
	r.cache[dir] = ns
	return ns, ns != ""
}

// callerFileOutsideModule finds the source file of the first stack frame
// that does not belong to this module.
func callerFileOutsideModule() (string, bool) {
	pc := make([]uintptr, 32)
	n := runtime.Callers(2, pc)
	if n == 0 {
		return "", false
	}
	frames := runtime.CallersFrames(pc[:n])
	for {
		f, more := frames.Next()
		if f.File != "" && !ownFrame(f.Function) {
			return f.File, true
		}
		if !more {
			return "", false
		}
	}
}

// ownFrame reports whether a function belongs to this module. A bare prefix
// check would also skip sibling modules like ".../logtree-x", so the prefix
// must be followed by a package or symbol separator.
func ownFrame(fn string) bool {
	if !strings.HasPrefix(fn, modulePath) {
		return false
	}
	rest := fn[len(modulePath):]
	return rest == "" || rest[0] == '.' || rest[0] == '/'
}

// moduleNameForDir walks upward from dir until a go.mod is found and returns
// the base element of its module path. Falls back to the directory's base
// name when the file is unreadable or lacks a module line; returns "" when
// no go.mod exists all the way to the filesystem root.
func moduleNameForDir(dir string) string {
	for {
		manifest := filepath.Join(dir, "go.mod")
		if data, err := os.ReadFile(manifest); err == nil {
			if f, perr := modfile.ParseLax(manifest, data, nil); perr == nil && f.Module != nil {
				return path.Base(f.Module.Mod.Path)
			}
			return filepath.Base(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
