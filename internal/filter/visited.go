package filter

import "sync"

// Visited is the set of paths already emitted by one operation. It is shared
// by every task so overlapping tasks report each path once.
type Visited struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewVisited creates an empty set.
func NewVisited() *Visited {
	return &Visited{seen: make(map[string]struct{})}
}

// Add records p and reports whether it was not yet present.
func (v *Visited) Add(p string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.seen[p]; ok {
		return false
	}
	v.seen[p] = struct{}{}
	return true
}

// Len returns the number of recorded paths.
func (v *Visited) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.seen)
}
