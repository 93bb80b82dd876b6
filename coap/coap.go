// Package coap implements minimal CoAP (RFC 7252) message decoding:
// the fixed 4-byte header, the token, the option sequence via
// delta/length encoding, and URI reconstruction from Uri-Path and
// Uri-Query options.
package coap

import (
	"errors"
	"strconv"

	"github.com/apfw/dpicore/httpfw"
)

const sizeHeader = 4

var (
	errShort       = errors.New("coap: buffer shorter than fixed header")
	errBadToken    = errors.New("coap: token length exceeds buffer")
	errBadOption   = errors.New("coap: option extension bytes exceed buffer")
	errReservedOpt = errors.New("coap: reserved option delta/length nibble 15")
)

// Type is the CoAP message type.
type Type uint8

const (
	TypeCON Type = 0
	TypeNON Type = 1
	TypeACK Type = 2
	TypeRST Type = 3
)

func (t Type) String() string {
	switch t {
	case TypeCON:
		return "CON"
	case TypeNON:
		return "NON"
	case TypeACK:
		return "ACK"
	case TypeRST:
		return "RST"
	default:
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
}

const (
	optUriPath  = 11
	optUriQuery = 15
)

// Message is a decoded CoAP message: type, method (projected onto the
// shared HTTP method enum for codes 1..4), and reconstructed URI.
type Message struct {
	Type   Type
	Method httpfw.Method
	URI    string
}

func codeToMethod(code uint8) httpfw.Method {
	switch code {
	case 1:
		return httpfw.MethodGET
	case 2:
		return httpfw.MethodPOST
	case 3:
		return httpfw.MethodPUT
	case 4:
		return httpfw.MethodDELETE
	default:
		return httpfw.MethodUnknown
	}
}

// Decode parses buf into a Message.
func Decode(buf []byte) (Message, error) {
	if len(buf) < sizeHeader {
		return Message{}, errShort
	}
	typ := Type((buf[0] >> 4) & 0b11)
	tokenLen := int(buf[0] & 0b1111)
	code := buf[1]

	ptr := sizeHeader + tokenLen
	if ptr > len(buf) {
		return Message{}, errBadToken
	}

	msg := Message{
		Type:   typ,
		Method: codeToMethod(code),
	}

	var uri []byte
	optNum := 0
	for ptr < len(buf) {
		b := buf[ptr]
		if b == 0xFF {
			break // payload marker
		}
		ptr++
		delta := int(b >> 4)
		length := int(b & 0b1111)

		if delta == 15 || length == 15 {
			return msg, errReservedOpt
		}
		var err error
		delta, ptr, err = extendOptionValue(buf, ptr, delta)
		if err != nil {
			return msg, err
		}
		length, ptr, err = extendOptionValue(buf, ptr, length)
		if err != nil {
			return msg, err
		}
		if ptr+length > len(buf) {
			return msg, errBadOption
		}
		optNum += delta
		value := buf[ptr : ptr+length]
		ptr += length

		switch optNum {
		case optUriPath:
			uri = append(uri, '/')
			uri = append(uri, value...)
		case optUriQuery:
			uri = append(uri, '?')
			uri = append(uri, value...)
		}
	}
	msg.URI = string(uri)
	return msg, nil
}

// extendOptionValue applies the 13/14 extension-byte bias rule to a
// raw 4-bit nibble value, consuming 0, 1, or 2 additional bytes from
// buf starting at ptr.
func extendOptionValue(buf []byte, ptr int, nibble int) (value int, newPtr int, err error) {
	switch nibble {
	case 13:
		if ptr >= len(buf) {
			return 0, ptr, errBadOption
		}
		return int(buf[ptr]) + 13, ptr + 1, nil
	case 14:
		if ptr+1 >= len(buf) {
			return 0, ptr, errBadOption
		}
		return (int(buf[ptr])<<8 | int(buf[ptr+1])) + 269, ptr + 2, nil
	default:
		return nibble, ptr, nil
	}
}
