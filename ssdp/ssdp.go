// Package ssdp classifies SSDP messages: HTTP-like requests sent over
// UDP to the multicast group 239.255.255.250:1900.
package ssdp

import "github.com/apfw/dpicore/netaddr"

// MulticastGroup is the well-known SSDP multicast address.
var MulticastGroup = netaddr.MustParseIPv4("239.255.255.250")

// Method is the SSDP request method.
type Method uint8

const (
	MethodUnknown Method = iota
	MethodMSearch
	MethodNotify
)

func (m Method) String() string {
	switch m {
	case MethodMSearch:
		return "M-SEARCH"
	case MethodNotify:
		return "NOTIFY"
	default:
		return "UNKNOWN"
	}
}

// Message is a classified SSDP payload.
type Message struct {
	IsRequest bool
	Method    Method
}

// Decode classifies payload by its first byte and reports a request
// iff destAddr equals MulticastGroup.
func Decode(payload []byte, destAddr netaddr.Addr) Message {
	var method Method
	if len(payload) > 0 {
		switch payload[0] {
		case 'M':
			method = MethodMSearch
		case 'N':
			method = MethodNotify
		default:
			method = MethodUnknown
		}
	}
	return Message{
		IsRequest: destAddr.IsV4() && destAddr == MulticastGroup,
		Method:    method,
	}
}
