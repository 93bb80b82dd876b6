package l3l4

import (
	"encoding/binary"
	"errors"
)

// SizeHeaderEthernet is the length of an untagged Ethernet II header.
const SizeHeaderEthernet = 14

var errShortEthernet = errors.New("l3l4: ethernet buffer shorter than header")

// EtherType identifies the payload protocol of an Ethernet frame.
type EtherType uint16

const (
	EtherTypeIPv4 EtherType = 0x0800
	EtherTypeARP  EtherType = 0x0806
	EtherTypeIPv6 EtherType = 0x86DD
	EtherTypeVLAN EtherType = 0x8100
)

// EthernetFrame is a read-only view over an Ethernet II header. The
// queue runtime and cmd/apfwd do not construct one: they treat every
// queued payload as a bare IP datagram.
type EthernetFrame struct{ buf []byte }

// NewEthernetFrame returns a view over buf, which must be at least
// SizeHeaderEthernet bytes long.
func NewEthernetFrame(buf []byte) (EthernetFrame, error) {
	if len(buf) < SizeHeaderEthernet {
		return EthernetFrame{}, errShortEthernet
	}
	return EthernetFrame{buf: buf}, nil
}

// IsVLAN reports whether the frame carries an 802.1Q VLAN tag.
func (f EthernetFrame) IsVLAN() bool {
	return EtherType(binary.BigEndian.Uint16(f.buf[12:14])) == EtherTypeVLAN
}

// HeaderLength returns 14, or 18 when a VLAN tag is present.
func (f EthernetFrame) HeaderLength() int {
	if f.IsVLAN() {
		return 18
	}
	return SizeHeaderEthernet
}

// EtherType returns the EtherType field, accounting for a VLAN tag.
func (f EthernetFrame) EtherType() EtherType {
	if f.IsVLAN() && len(f.buf) >= 18 {
		return EtherType(binary.BigEndian.Uint16(f.buf[16:18]))
	}
	return EtherType(binary.BigEndian.Uint16(f.buf[12:14]))
}

// Payload returns the bytes following the Ethernet header.
func (f EthernetFrame) Payload() []byte {
	hl := f.HeaderLength()
	if hl > len(f.buf) {
		return nil
	}
	return f.buf[hl:]
}
