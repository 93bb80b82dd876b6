package l3l4

import "encoding/binary"

// TCPFrame is a read-only view over a TCP segment header. Only the fields
// the DPI core needs (ports, header length) are exposed; stateful
// reassembly is out of scope. See [RFC9293].
//
// [RFC9293]: https://tools.ietf.org/html/rfc9293
type TCPFrame struct{ buf []byte }

// NewTCPFrame returns a view over buf, which must be at least
// SizeHeaderTCP bytes long.
func NewTCPFrame(buf []byte) (TCPFrame, error) {
	if len(buf) < SizeHeaderTCP {
		return TCPFrame{}, errShortTCP
	}
	return TCPFrame{buf: buf}, nil
}

// SourcePort returns the source port at offset 0.
func (f TCPFrame) SourcePort() uint16 { return binary.BigEndian.Uint16(f.buf[0:2]) }

// DestinationPort returns the destination port at offset 2.
func (f TCPFrame) DestinationPort() uint16 { return binary.BigEndian.Uint16(f.buf[2:4]) }

// HeaderLength returns the data offset field (high nibble of byte 12)
// times 4.
func (f TCPFrame) HeaderLength() int { return int(f.buf[12]>>4) * 4 }

// Payload returns the bytes following the TCP header.
func (f TCPFrame) Payload() []byte {
	hl := f.HeaderLength()
	if hl > len(f.buf) {
		return nil
	}
	return f.buf[hl:]
}

// RawData returns the underlying buffer this frame was constructed over.
func (f TCPFrame) RawData() []byte { return f.buf }
