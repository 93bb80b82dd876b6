// Package dnscache implements the DNS domain-name-to-address cache
// that binds symbolic policy destinations to runtime IP addresses.
// Entries are appended to, never evicted by TTL: the cache's lifetime
// is the process lifetime, and addition of an already-present name
// appends to, rather than replaces, its address list.
package dnscache

import (
	"math/rand/v2"

	"github.com/apfw/dpicore/netaddr"
)

// DefaultBuckets is the bucket count a zero-value Cache is sized to by
// New.
const DefaultBuckets = 16

// Entry is a single cache record: a fully-qualified domain name and
// every address observed for it, in observation order.
type Entry struct {
	Name  string
	Addrs []netaddr.Addr
}

// Cache is a bucketed hash table keyed by domain name, hashed with a
// two-seed multiplicative scheme so bucket assignment is not
// predictable from the name alone. It carries no internal lock: see
// [Locked] for the concurrency contract.
type Cache struct {
	buckets [][]*Entry
	seed0   uint64
	seed1   uint64
}

// New allocates a Cache with DefaultBuckets buckets and two random
// seeds.
func New() *Cache { return NewSize(DefaultBuckets) }

// NewSize allocates a Cache with the given bucket count (coerced to
// DefaultBuckets if non-positive) and two random seeds.
func NewSize(numBuckets int) *Cache {
	if numBuckets <= 0 {
		numBuckets = DefaultBuckets
	}
	return &Cache{
		buckets: make([][]*Entry, numBuckets),
		seed0:   rand.Uint64(),
		seed1:   rand.Uint64() | 1, // odd multiplier mixes every bit of the hash state
	}
}

func (c *Cache) hash(name string) uint64 {
	h := c.seed0
	for i := 0; i < len(name); i++ {
		h = h*c.seed1 + uint64(name[i])
	}
	return h
}

func (c *Cache) bucketIndex(name string) int {
	return int(c.hash(name) % uint64(len(c.buckets)))
}

func (c *Cache) find(name string) (bucket int, idx int) {
	b := c.bucketIndex(name)
	for i, e := range c.buckets[b] {
		if e.Name == name {
			return b, i
		}
	}
	return b, -1
}

// Add stores addrs under name. If name is already present, addrs is
// appended after the existing list, preserving prior order; if
// absent, a new entry is created. Duplicates are not deduplicated.
func (c *Cache) Add(name string, addrs []netaddr.Addr) {
	b, idx := c.find(name)
	if idx >= 0 {
		c.buckets[b][idx].Addrs = append(c.buckets[b][idx].Addrs, addrs...)
		return
	}
	owned := append([]netaddr.Addr(nil), addrs...)
	c.buckets[b] = append(c.buckets[b], &Entry{Name: name, Addrs: owned})
}

// Len returns the number of distinct names currently held, across all
// buckets.
func (c *Cache) Len() int {
	n := 0
	for _, b := range c.buckets {
		n += len(b)
	}
	return n
}

// Remove deletes the entry for name, if present. No-op otherwise.
func (c *Cache) Remove(name string) {
	b, idx := c.find(name)
	if idx < 0 {
		return
	}
	bucket := c.buckets[b]
	c.buckets[b] = append(bucket[:idx], bucket[idx+1:]...)
}

// Get borrows the entry for name without detaching it from the cache.
func (c *Cache) Get(name string) (*Entry, bool) {
	b, idx := c.find(name)
	if idx < 0 {
		return nil, false
	}
	return c.buckets[b][idx], true
}

// Pop detaches and returns the entry for name, removing it from the
// cache. The caller owns the returned entry.
func (c *Cache) Pop(name string) (*Entry, bool) {
	b, idx := c.find(name)
	if idx < 0 {
		return nil, false
	}
	e := c.buckets[b][idx]
	bucket := c.buckets[b]
	c.buckets[b] = append(bucket[:idx], bucket[idx+1:]...)
	return e, true
}

// Contains reports whether ip is present in entry's address list.
func Contains(entry *Entry, ip netaddr.Addr) bool {
	if entry == nil {
		return false
	}
	for _, a := range entry.Addrs {
		if a.Equal(ip) {
			return true
		}
	}
	return false
}
