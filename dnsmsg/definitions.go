// Package dnsmsg implements wire-format DNS message parsing for the DPI
// core: the 12-byte header, questions, and answers (authority and
// additional sections are parsed-and-skipped, never retained, per the
// core's scope cut). Label decoding supports RFC 1035 compression. See
// [RFC1035].
//
// [RFC1035]: https://tools.ietf.org/html/rfc1035
package dnsmsg

import "encoding/binary"

// SizeHeader is the length in bytes of a DNS header: six uint16 fields.
const SizeHeader = 12

// HeaderFrame is a read-only view over the fixed 12-byte DNS header.
type HeaderFrame struct{ buf []byte }

// NewHeaderFrame returns a view over buf, which must be at least
// SizeHeader bytes long.
func NewHeaderFrame(buf []byte) (HeaderFrame, bool) {
	if len(buf) < SizeHeader {
		return HeaderFrame{}, false
	}
	return HeaderFrame{buf: buf}, true
}

func (h HeaderFrame) ID() uint16      { return binary.BigEndian.Uint16(h.buf[0:2]) }
func (h HeaderFrame) Flags() HeaderFlags { return HeaderFlags(binary.BigEndian.Uint16(h.buf[2:4])) }
func (h HeaderFrame) QDCount() uint16 { return binary.BigEndian.Uint16(h.buf[4:6]) }
func (h HeaderFrame) ANCount() uint16 { return binary.BigEndian.Uint16(h.buf[6:8]) }
func (h HeaderFrame) NSCount() uint16 { return binary.BigEndian.Uint16(h.buf[8:10]) }
func (h HeaderFrame) ARCount() uint16 { return binary.BigEndian.Uint16(h.buf[10:12]) }

// HeaderFlags gathers the QR bit, opcode, and response code bits of the
// header's second 16-bit word.
type HeaderFlags uint16

// IsResponse reports the QR bit: 0 for query, 1 for response.
func (f HeaderFlags) IsResponse() bool { return f&(1<<15) != 0 }

// OpCode returns the 4-bit opcode.
func (f HeaderFlags) OpCode() OpCode { return OpCode(f>>11) & 0b1111 }

// ResponseCode returns the 4-bit response code.
func (f HeaderFlags) ResponseCode() RCode { return RCode(f & 0b1111) }

// Type is a DNS resource record / question type.
type Type uint16

const (
	TypeA     Type = 1
	TypeNS    Type = 2
	TypeCNAME Type = 5
	TypeSOA   Type = 6
	TypePTR   Type = 12
	TypeMX    Type = 15
	TypeTXT   Type = 16
	TypeAAAA  Type = 28
	TypeSRV   Type = 33
)

// Class is a DNS question/record class.
type Class uint16

const (
	ClassINET Class = 1
	ClassANY  Class = 255
)

// OpCode is a DNS operation code.
type OpCode uint16

const (
	OpCodeQuery        OpCode = 0
	OpCodeInverseQuery OpCode = 1
	OpCodeStatus       OpCode = 2
)

// RCode is a DNS response status code.
type RCode uint16

const (
	RCodeSuccess     RCode = 0
	RCodeFormatError RCode = 1
	RCodeServerFail  RCode = 2
	RCodeNameError   RCode = 3
	RCodeNotImpl     RCode = 4
	RCodeRefused     RCode = 5
)
