package catalog

import "sync"

// Store holds the active catalog and lets a watcher replace it while other
// goroutines read it.
type Store struct {
	mu        sync.RWMutex
	catalog   *Catalog
	listeners []func(*Catalog)
}

// NewStore creates a store holding c.
func NewStore(c *Catalog) *Store {
	return &Store{catalog: c}
}

// Load returns the active catalog.
func (s *Store) Load() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Swap replaces the active catalog and notifies listeners.
func (s *Store) Swap(c *Catalog) {
	s.mu.Lock()
	s.catalog = c
	listeners := make([]func(*Catalog), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(c)
	}
}

// OnSwap registers fn to be called after every Swap.
func (s *Store) OnSwap(fn func(*Catalog)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
