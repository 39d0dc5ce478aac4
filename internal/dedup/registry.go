// Package dedup tracks icon content digests seen during a run.
package dedup

import "sync"

// Registry records which pixel digests have been admitted. The first caller
// to admit a digest wins; later callers learn the content is a duplicate.
// All methods are goroutine-safe.
type Registry struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewRegistry creates a ready-to-use registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// Admit records digest and reports whether it was new. Exactly one caller
// per digest observes true, no matter how many workers race on it.
func (r *Registry) Admit(digest string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.seen[digest]; dup {
		return false
	}
	r.seen[digest] = struct{}{}
	return true
}

// Len returns the number of unique digests admitted so far.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}
