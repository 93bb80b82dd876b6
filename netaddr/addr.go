// Package netaddr implements the byte-level conversions the DPI core needs
// for MAC and IP addresses: parsing, canonical rendering, and ownership of
// the resulting buffers. See [RFC791], [RFC4291].
//
// [RFC791]: https://tools.ietf.org/html/rfc791
// [RFC4291]: https://tools.ietf.org/html/rfc4291
package netaddr

import (
	"errors"
	"strconv"
	"strings"
)

var (
	errBadMAC      = errors.New("netaddr: malformed MAC address")
	errBadIPv4     = errors.New("netaddr: malformed IPv4 address")
	errBadIPv6     = errors.New("netaddr: malformed IPv6 address")
	errVersionMiss = errors.New("netaddr: version mismatch")
)

// Addr is a version-tagged IP address. The zero value is not a valid
// address; use [AddrFromV4] or [AddrFromV6] or one of the parsing
// functions to construct one.
type Addr struct {
	v6   [16]byte
	isV6 bool
	set  bool
}

// AddrFromV4 returns an IPv4 Addr over the 4 network-order bytes in b.
func AddrFromV4(b [4]byte) Addr {
	var a Addr
	copy(a.v6[12:], b[:])
	a.set = true
	return a
}

// AddrFromV6 returns an IPv6 Addr over the 16 network-order bytes in b.
func AddrFromV6(b [16]byte) Addr {
	return Addr{v6: b, isV6: true, set: true}
}

// IsV4 reports whether a is an IPv4 address.
func (a Addr) IsV4() bool { return a.set && !a.isV6 }

// IsV6 reports whether a is an IPv6 address.
func (a Addr) IsV6() bool { return a.set && a.isV6 }

// IsValid reports whether a was constructed through one of this package's
// constructors, as opposed to being the zero value.
func (a Addr) IsValid() bool { return a.set }

// As4 returns the 4-byte network-order form of a. Panics if a is not IPv4.
func (a Addr) As4() [4]byte {
	if a.isV6 {
		panic("netaddr: As4 called on IPv6 address")
	}
	var b [4]byte
	copy(b[:], a.v6[12:])
	return b
}

// As16 returns the 16-byte network-order form of a, expanding IPv4
// addresses into their IPv4-in-IPv6 representation.
func (a Addr) As16() [16]byte { return a.v6 }

// Equal reports whether a and b represent the same address. Equality is
// version-sensitive: an IPv4 address is never equal to an IPv6 address,
// even if one encodes the other's bit pattern.
func (a Addr) Equal(b Addr) bool {
	if !a.set || !b.set || a.isV6 != b.isV6 {
		return false
	}
	return a.v6 == b.v6
}

// String renders a in its customary canonical textual form: dotted-quad
// for IPv4, compressed colon-hex for IPv6. Returns "" for an invalid Addr.
func (a Addr) String() string {
	if !a.set {
		return ""
	}
	if !a.isV6 {
		b := a.As4()
		return ipv4ToString(b)
	}
	return ipv6ToString(a.v6)
}

// ParseIPv4 parses a dotted-quad string into an Addr. Malformed input
// reports errBadIPv4 and returns the zero Addr.
func ParseIPv4(s string) (Addr, error) {
	var out [4]byte
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return Addr{}, errBadIPv4
	}
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return Addr{}, errBadIPv4
		}
		out[i] = byte(n)
	}
	return AddrFromV4(out), nil
}

// MustParseIPv4 is like ParseIPv4 but panics on malformed input. Meant
// for package-level well-known-address initialization, not untrusted
// input.
func MustParseIPv4(s string) Addr {
	a, err := ParseIPv4(s)
	if err != nil {
		panic(err)
	}
	return a
}

func ipv4ToString(b [4]byte) string {
	var sb strings.Builder
	sb.Grow(15)
	for i, v := range b {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	return sb.String()
}

// ParseIPv6 parses a colon-hex (optionally compressed) IPv6 string into an
// Addr. Does not support zone identifiers or embedded IPv4 tails.
func ParseIPv6(s string) (Addr, error) {
	var groups [8]uint16
	halves := strings.SplitN(s, "::", 2)
	switch len(halves) {
	case 1:
		parts := strings.Split(s, ":")
		if len(parts) != 8 {
			return Addr{}, errBadIPv6
		}
		for i, p := range parts {
			g, err := strconv.ParseUint(p, 16, 16)
			if err != nil {
				return Addr{}, errBadIPv6
			}
			groups[i] = uint16(g)
		}
	case 2:
		var head, tail []string
		if halves[0] != "" {
			head = strings.Split(halves[0], ":")
		}
		if halves[1] != "" {
			tail = strings.Split(halves[1], ":")
		}
		if len(head)+len(tail) > 8 {
			return Addr{}, errBadIPv6
		}
		for i, p := range head {
			g, err := strconv.ParseUint(p, 16, 16)
			if err != nil {
				return Addr{}, errBadIPv6
			}
			groups[i] = uint16(g)
		}
		tailStart := 8 - len(tail)
		for i, p := range tail {
			g, err := strconv.ParseUint(p, 16, 16)
			if err != nil {
				return Addr{}, errBadIPv6
			}
			groups[tailStart+i] = uint16(g)
		}
	default:
		return Addr{}, errBadIPv6
	}
	var buf [16]byte
	for i, g := range groups {
		buf[i*2] = byte(g >> 8)
		buf[i*2+1] = byte(g)
	}
	return AddrFromV6(buf), nil
}

// ipv6ToString renders b in RFC 5952 canonical form: lowercase hex,
// longest run of zero groups compressed to "::" (first run wins on ties).
func ipv6ToString(b [16]byte) string {
	var groups [8]uint16
	for i := range groups {
		groups[i] = uint16(b[i*2])<<8 | uint16(b[i*2+1])
	}
	// Find the longest run of zero groups, length >= 2, first on ties.
	bestStart, bestLen := -1, 0
	curStart, curLen := -1, 0
	for i, g := range groups {
		if g == 0 {
			if curStart < 0 {
				curStart = i
			}
			curLen++
			if curLen > bestLen {
				bestStart, bestLen = curStart, curLen
			}
		} else {
			curStart, curLen = -1, 0
		}
	}
	if bestLen < 2 {
		bestStart = -1
	}
	var sb strings.Builder
	sb.Grow(39)
	i := 0
	needColon := false
	for i < 8 {
		if i == bestStart {
			sb.WriteString("::")
			i += bestLen
			needColon = false
			continue
		}
		if needColon {
			sb.WriteByte(':')
		}
		sb.WriteString(strconv.FormatUint(uint64(groups[i]), 16))
		needColon = true
		i++
	}
	return sb.String()
}
