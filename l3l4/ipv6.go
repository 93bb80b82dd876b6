package l3l4

import (
	"encoding/binary"

	"github.com/apfw/dpicore/netaddr"
)

// IPv6Frame is a read-only view over the fixed 40-byte IPv6 main header.
// Extension header chains beyond the main header are out of scope. See
// [RFC8200].
//
// [RFC8200]: https://tools.ietf.org/html/rfc8200
type IPv6Frame struct{ buf []byte }

// NewIPv6Frame returns a view over buf, which must be at least
// SizeHeaderIPv6 bytes long.
func NewIPv6Frame(buf []byte) (IPv6Frame, error) {
	if len(buf) < SizeHeaderIPv6 {
		return IPv6Frame{}, errShortIPv6
	}
	return IPv6Frame{buf: buf}, nil
}

// HeaderLength is always 40 for the fixed IPv6 main header.
func (f IPv6Frame) HeaderLength() int { return SizeHeaderIPv6 }

// Version returns the high nibble of byte 0; should be 6.
func (f IPv6Frame) Version() uint8 { return f.buf[0] >> 4 }

// PayloadLength returns the 16-bit payload length field at offset 4.
func (f IPv6Frame) PayloadLength() uint16 { return binary.BigEndian.Uint16(f.buf[4:6]) }

// NextHeader returns the next-header byte at offset 6.
func (f IPv6Frame) NextHeader() IPProto { return IPProto(f.buf[6]) }

// SourceAddr returns the 16-byte source address at offset 8.
func (f IPv6Frame) SourceAddr() netaddr.Addr {
	var b [16]byte
	copy(b[:], f.buf[8:24])
	return netaddr.AddrFromV6(b)
}

// DestinationAddr returns the 16-byte destination address at offset 24.
func (f IPv6Frame) DestinationAddr() netaddr.Addr {
	var b [16]byte
	copy(b[:], f.buf[24:40])
	return netaddr.AddrFromV6(b)
}

// Payload returns the bytes following the fixed IPv6 header.
func (f IPv6Frame) Payload() []byte {
	if SizeHeaderIPv6 > len(f.buf) {
		return nil
	}
	end := SizeHeaderIPv6 + int(f.PayloadLength())
	if end > len(f.buf) || end < SizeHeaderIPv6 {
		end = len(f.buf)
	}
	return f.buf[SizeHeaderIPv6:end]
}

// RawData returns the underlying buffer this frame was constructed over.
func (f IPv6Frame) RawData() []byte { return f.buf }
