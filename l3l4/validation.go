package l3l4

import "errors"

var (
	errBadIPv4TotalLen = errors.New("l3l4: IPv4 total length invalid")
	errShortIPv4Buf    = errors.New("l3l4: IPv4 total length exceeds buffer")
	errBadIPv6Len      = errors.New("l3l4: IPv6 payload length exceeds buffer")
	errBadTCPOffset    = errors.New("l3l4: TCP data offset invalid")
	errShortTCPBuf     = errors.New("l3l4: TCP data offset exceeds buffer")
	errBadUDPLen       = errors.New("l3l4: UDP length invalid")
	errShortUDPBuf     = errors.New("l3l4: UDP length exceeds buffer")
)

// ValidateSize checks the IPv4 total-length field against the buffer it
// was parsed from.
func (f IPv4Frame) ValidateSize() error {
	tl := f.TotalLength()
	if int(tl) < SizeHeaderIPv4 {
		return errBadIPv4TotalLen
	}
	if int(tl) > len(f.buf) {
		return errShortIPv4Buf
	}
	return nil
}

// ValidateSize checks the IPv6 payload-length field against the buffer.
func (f IPv6Frame) ValidateSize() error {
	if SizeHeaderIPv6+int(f.PayloadLength()) > len(f.buf) {
		return errBadIPv6Len
	}
	return nil
}

// ValidateSize checks the TCP data-offset field against the buffer.
func (f TCPFrame) ValidateSize() error {
	hl := f.HeaderLength()
	if hl < SizeHeaderTCP {
		return errBadTCPOffset
	}
	if hl > len(f.buf) {
		return errShortTCPBuf
	}
	return nil
}

// ValidateSize checks the UDP length field against the buffer.
func (f UDPFrame) ValidateSize() error {
	l := f.Length()
	if int(l) < SizeHeaderUDP {
		return errBadUDPLen
	}
	if int(l) > len(f.buf) {
		return errShortUDPBuf
	}
	return nil
}
