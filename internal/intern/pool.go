// Package intern provides a string interning pool mapping normalized terms
// to small stable handles.
package intern

import (
	"fmt"
	"sync"
)

// Term is a handle for an interned string. Equal handles mean equal text.
// Handles are stable for the lifetime of the pool that issued them; they are
// never persisted as numbers, so they may differ across restarts.
type Term uint32

// Pool is an append-only bidirectional mapping between strings and Terms.
// Entries are never removed: the vocabulary is bounded and the pool lives as
// long as the process, so the arena only grows.
//
// A Pool is safe for concurrent use. Lookups of already-interned strings
// take only a read lock; inserting a new string takes the write lock for the
// duration of the insert.
type Pool struct {
	mu     sync.RWMutex
	arena  []string
	byText map[string]Term
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{byText: make(map[string]Term)}
}

// Intern returns the handle for s, allocating the next handle if s has not
// been seen before.
func (p *Pool) Intern(s string) Term {
	p.mu.RLock()
	id, ok := p.byText[s]
	p.mu.RUnlock()
	if ok {
		return id
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// Another writer may have inserted s between the two locks.
	if id, ok := p.byText[s]; ok {
		return id
	}
	id = Term(len(p.arena))
	p.arena = append(p.arena, s)
	p.byText[s] = id
	return id
}

// Resolve returns the text for a previously issued handle. It fails only for
// handles this pool never issued, which is unreachable through the public
// contract.
func (p *Pool) Resolve(t Term) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if int(t) >= len(p.arena) {
		return "", fmt.Errorf("intern: handle %d was never issued (pool size %d)", t, len(p.arena))
	}
	return p.arena[t], nil
}

// Size returns the number of distinct strings interned so far.
func (p *Pool) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.arena)
}
