// Package l3l4 implements layer-3 (IPv4/IPv6) and layer-4 (TCP/UDP) header
// field extraction for the DPI core. Each Frame type is a thin read-only
// view over caller-owned bytes: no allocation, no ownership of the
// underlying buffer.
package l3l4

import (
	"encoding/binary"
	"errors"

	"github.com/apfw/dpicore/netaddr"
)

const (
	SizeHeaderIPv4 = 20
	SizeHeaderIPv6 = 40
	SizeHeaderTCP  = 20
	SizeHeaderUDP  = 8
)

var (
	errShortIPv4 = errors.New("l3l4: IPv4 buffer shorter than header")
	errShortIPv6 = errors.New("l3l4: IPv6 buffer shorter than header")
	errShortTCP  = errors.New("l3l4: TCP buffer shorter than header")
	errShortUDP  = errors.New("l3l4: UDP buffer shorter than header")
)

// IPProto is an IP protocol number (the IPv4 Protocol / IPv6 Next Header
// field).
type IPProto uint8

const (
	IPProtoICMP IPProto = 1
	IPProtoIGMP IPProto = 2
	IPProtoTCP  IPProto = 6
	IPProtoUDP  IPProto = 17
	IPProtoICMPv6 IPProto = 58
)

// IPv4Frame is a read-only view over an IPv4 header and payload. See
// [RFC791].
//
// [RFC791]: https://tools.ietf.org/html/rfc791
type IPv4Frame struct{ buf []byte }

// NewIPv4Frame returns a view over buf, which must be at least
// SizeHeaderIPv4 bytes long.
func NewIPv4Frame(buf []byte) (IPv4Frame, error) {
	if len(buf) < SizeHeaderIPv4 {
		return IPv4Frame{}, errShortIPv4
	}
	return IPv4Frame{buf: buf}, nil
}

// HeaderLength returns the header length in bytes, computed as the IHL
// nibble (low nibble of byte 0) times 4.
func (f IPv4Frame) HeaderLength() int { return int(f.buf[0]&0xf) * 4 }

// Version returns the high nibble of byte 0; should be 4.
func (f IPv4Frame) Version() uint8 { return f.buf[0] >> 4 }

// TotalLength returns the IPv4 total length field (header + payload).
func (f IPv4Frame) TotalLength() uint16 { return binary.BigEndian.Uint16(f.buf[2:4]) }

// Protocol returns the protocol byte at offset 9.
func (f IPv4Frame) Protocol() IPProto { return IPProto(f.buf[9]) }

// SourceAddr returns the source address at offset 12.
func (f IPv4Frame) SourceAddr() netaddr.Addr {
	var b [4]byte
	copy(b[:], f.buf[12:16])
	return netaddr.AddrFromV4(b)
}

// DestinationAddr returns the destination address at offset 16.
func (f IPv4Frame) DestinationAddr() netaddr.Addr {
	var b [4]byte
	copy(b[:], f.buf[16:20])
	return netaddr.AddrFromV4(b)
}

// Payload returns the bytes following the IPv4 header, bounded by
// TotalLength when it is consistent with the buffer length.
func (f IPv4Frame) Payload() []byte {
	hl := f.HeaderLength()
	if hl > len(f.buf) {
		return nil
	}
	tl := int(f.TotalLength())
	if tl < hl || tl > len(f.buf) {
		tl = len(f.buf)
	}
	return f.buf[hl:tl]
}

// RawData returns the underlying buffer this frame was constructed over.
func (f IPv4Frame) RawData() []byte { return f.buf }
