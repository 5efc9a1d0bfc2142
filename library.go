package rtss

import (
	"fmt"
	"strings"
	"sync"
)

// LibraryPool holds the shader library sources that generated programs
// include by name. The pool is process-wide and copy-on-read; resolved
// concatenations are memoized per dependency list.
type LibraryPool struct {
	mu       sync.RWMutex
	sources  map[string]string
	resolved map[string]string
}

// NewLibraryPool returns an empty pool.
func NewLibraryPool() *LibraryPool {
	return &LibraryPool{
		sources:  make(map[string]string),
		resolved: make(map[string]string),
	}
}

// Register stores the source blob for a library name, replacing any
// previous registration and dropping memoized concatenations that may
// reference it.
func (p *LibraryPool) Register(name, source string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sources[name] = source
	p.resolved = make(map[string]string)
}

// Source returns the blob for one library name.
func (p *LibraryPool) Source(name string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	src, ok := p.sources[name]
	if !ok {
		return "", fmt.Errorf("library %q: %w", name, ErrDependencyMissing)
	}
	return src, nil
}

// Resolve concatenates the sources for a program's dependency list, in
// declaration order. The result is memoized against the joined list.
func (p *LibraryPool) Resolve(deps []string) (string, error) {
	key := strings.Join(deps, ";")

	p.mu.RLock()
	if src, ok := p.resolved[key]; ok {
		p.mu.RUnlock()
		return src, nil
	}
	p.mu.RUnlock()

	var b strings.Builder
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, dep := range deps {
		src, ok := p.sources[dep]
		if !ok {
			return "", fmt.Errorf("library %q: %w", dep, ErrDependencyMissing)
		}
		b.WriteString(src)
		if !strings.HasSuffix(src, "\n") {
			b.WriteByte('\n')
		}
	}
	p.resolved[key] = b.String()
	return p.resolved[key], nil
}
