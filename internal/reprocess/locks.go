package reprocess

import "sync"

// productLocks serializes work per product ID. Entries are reference
// counted and removed once the last holder releases, so the map does not
// grow with catalog size.
type productLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newProductLocks() *productLocks {
	return &productLocks{entries: make(map[string]*lockEntry)}
}

// lock blocks until the product's lock is held and returns the release
// function.
func (l *productLocks) lock(productID string) func() {
	l.mu.Lock()
	e, ok := l.entries[productID]
	if !ok {
		e = &lockEntry{}
		l.entries[productID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, productID)
		}
		l.mu.Unlock()
	}
}
