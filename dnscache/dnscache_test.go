package dnscache

import (
	"testing"

	"github.com/apfw/dpicore/netaddr"
)

func addrs(suffixes ...byte) []netaddr.Addr {
	out := make([]netaddr.Addr, len(suffixes))
	for i, s := range suffixes {
		out[i] = netaddr.AddrFromV4([4]byte{10, 0, 0, s})
	}
	return out
}

func TestAddAppendsInOrder(t *testing.T) {
	c := New()
	c.Add("example.com", addrs(1, 2))
	c.Add("example.com", addrs(3))

	e, ok := c.Get("example.com")
	if !ok {
		t.Fatal("expected entry present")
	}
	want := addrs(1, 2, 3)
	if len(e.Addrs) != len(want) {
		t.Fatalf("got %v want %v", e.Addrs, want)
	}
	for i := range want {
		if !e.Addrs[i].Equal(want[i]) {
			t.Fatalf("index %d: got %v want %v", i, e.Addrs[i], want[i])
		}
	}
}

func TestGetAbsentReturnsFalse(t *testing.T) {
	c := New()
	if _, ok := c.Get("nowhere.example.com"); ok {
		t.Fatal("expected absent entry")
	}
}

func TestRemoveThenGetIsAbsent(t *testing.T) {
	c := New()
	c.Add("example.com", addrs(1))
	c.Remove("example.com")
	if _, ok := c.Get("example.com"); ok {
		t.Fatal("expected entry removed")
	}
	c.Remove("example.com") // no-op, must not panic
}

func TestPopDetachesEntry(t *testing.T) {
	c := New()
	c.Add("example.com", addrs(1, 2))
	e, ok := c.Pop("example.com")
	if !ok || len(e.Addrs) != 2 {
		t.Fatalf("pop: %+v ok=%v", e, ok)
	}
	if _, ok := c.Get("example.com"); ok {
		t.Fatal("expected entry gone after pop")
	}
}

func TestContains(t *testing.T) {
	c := New()
	c.Add("example.com", addrs(1, 2))
	e, _ := c.Get("example.com")
	if !Contains(e, netaddr.AddrFromV4([4]byte{10, 0, 0, 1})) {
		t.Fatal("expected membership")
	}
	if Contains(e, netaddr.AddrFromV4([4]byte{10, 0, 0, 99})) {
		t.Fatal("unexpected membership")
	}
}

func TestManyNamesDistributeAcrossBuckets(t *testing.T) {
	c := NewSize(16)
	for i := 0; i < 64; i++ {
		name := string(rune('a'+i%26)) + string(rune('0'+i%10)) + ".example.com"
		c.Add(name, addrs(byte(i)))
	}
	used := map[int]bool{}
	for b := range c.buckets {
		if len(c.buckets[b]) > 0 {
			used[b] = true
		}
	}
	if len(used) < 2 {
		t.Fatalf("expected entries spread across multiple buckets, got %d used", len(used))
	}
}

// referenceCache is a simple map-backed model used to differentially
// test Cache's add/get/remove/pop semantics.
type referenceCache struct {
	m map[string][]netaddr.Addr
}

func newReferenceCache() *referenceCache { return &referenceCache{m: map[string][]netaddr.Addr{}} }

func (r *referenceCache) Add(name string, a []netaddr.Addr) {
	r.m[name] = append(r.m[name], a...)
}
func (r *referenceCache) Get(name string) ([]netaddr.Addr, bool) {
	v, ok := r.m[name]
	return v, ok
}
func (r *referenceCache) Remove(name string) { delete(r.m, name) }

func FuzzAddGetRemove(f *testing.F) {
	f.Add([]byte{0x01, 'a', 0x01, 'a', 0x02})
	f.Add([]byte{0x01, 'x', 0x02, 0x00, 'y'})

	f.Fuzz(func(t *testing.T, ops []byte) {
		c := New()
		r := newReferenceCache()
		names := []string{"a.example.com", "b.example.com", "c.example.com"}

		next := func() (byte, bool) {
			if len(ops) == 0 {
				return 0, false
			}
			b := ops[0]
			ops = ops[1:]
			return b, true
		}

		for {
			opB, ok := next()
			if !ok {
				return
			}
			name := names[int(opB>>6)%len(names)]
			switch (opB >> 4) & 0b11 {
			case 0: // add
				valB, ok := next()
				if !ok {
					return
				}
				a := addrs(valB)
				c.Add(name, a)
				r.Add(name, a)
			case 1: // get
				got, gotOK := c.Get(name)
				want, wantOK := r.Get(name)
				if gotOK != wantOK {
					t.Fatalf("get %q: presence mismatch got=%v want=%v", name, gotOK, wantOK)
				}
				if gotOK && len(got.Addrs) != len(want) {
					t.Fatalf("get %q: length mismatch got=%d want=%d", name, len(got.Addrs), len(want))
				}
				if gotOK {
					for i := range want {
						if !got.Addrs[i].Equal(want[i]) {
							t.Fatalf("get %q[%d]: got=%v want=%v", name, i, got.Addrs[i], want[i])
						}
					}
				}
			case 2: // remove
				c.Remove(name)
				r.Remove(name)
			}
		}
	})
}
