package dnscache

import (
	"sync"

	"github.com/apfw/dpicore/netaddr"
)

// Locked wraps a Cache with a mutex for embedders that cannot
// otherwise guarantee writes are serialized through a single owning
// interaction. Most callers should prefer serializing through their
// interaction's own mutex and using a bare Cache; Locked exists for
// the remaining case where that discipline can't be guaranteed.
type Locked struct {
	mu sync.Mutex
	c  *Cache
}

// NewLocked wraps c (allocated with New or NewSize).
func NewLocked(c *Cache) *Locked { return &Locked{c: c} }

func (l *Locked) Add(name string, addrs []netaddr.Addr) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.c.Add(name, addrs)
}

func (l *Locked) Remove(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.c.Remove(name)
}

// Get returns a copy of the entry's address list, since the
// underlying *Entry pointer would otherwise escape the lock.
func (l *Locked) Get(name string) (addrs []netaddr.Addr, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.c.Get(name)
	if !ok {
		return nil, false
	}
	return append([]netaddr.Addr(nil), e.Addrs...), true
}

func (l *Locked) Pop(name string) (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.c.Pop(name)
	if !ok {
		return Entry{}, false
	}
	return *e, true
}
