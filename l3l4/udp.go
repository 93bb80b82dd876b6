package l3l4

import "encoding/binary"

// UDPFrame is a read-only view over a UDP datagram header. See [RFC768].
//
// [RFC768]: https://tools.ietf.org/html/rfc768
type UDPFrame struct{ buf []byte }

// NewUDPFrame returns a view over buf, which must be at least
// SizeHeaderUDP bytes long.
func NewUDPFrame(buf []byte) (UDPFrame, error) {
	if len(buf) < SizeHeaderUDP {
		return UDPFrame{}, errShortUDP
	}
	return UDPFrame{buf: buf}, nil
}

// SourcePort returns the source port at offset 0.
func (f UDPFrame) SourcePort() uint16 { return binary.BigEndian.Uint16(f.buf[0:2]) }

// DestinationPort returns the destination port at offset 2.
func (f UDPFrame) DestinationPort() uint16 { return binary.BigEndian.Uint16(f.buf[2:4]) }

// Length returns the UDP length field at offset 4 (header + payload).
func (f UDPFrame) Length() uint16 { return binary.BigEndian.Uint16(f.buf[4:6]) }

// HeaderLength is always 8 for UDP.
func (f UDPFrame) HeaderLength() int { return SizeHeaderUDP }

// Payload returns the payload bytes: Length minus the 8-byte header.
func (f UDPFrame) Payload() []byte {
	l := int(f.Length())
	if l < SizeHeaderUDP || l > len(f.buf) {
		l = len(f.buf)
	}
	return f.buf[SizeHeaderUDP:l]
}

// RawData returns the underlying buffer this frame was constructed over.
func (f UDPFrame) RawData() []byte { return f.buf }
