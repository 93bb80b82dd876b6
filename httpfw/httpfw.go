// Package httpfw implements minimal classification of HTTP/1.1 request
// lines (RFC 9112): the method token and request URI only, enough for
// deep-packet-inspection policy matching. It is not a header parser.
package httpfw

import "bytes"

// Method is an HTTP request method, restricted to the tokens the core
// cares about classifying.
type Method uint8

const (
	MethodUnknown Method = iota
	MethodGET
	MethodHEAD
	MethodPOST
	MethodPUT
	MethodDELETE
	MethodCONNECT
	MethodOPTIONS
	MethodTRACE
)

func (m Method) String() string {
	switch m {
	case MethodGET:
		return "GET"
	case MethodHEAD:
		return "HEAD"
	case MethodPOST:
		return "POST"
	case MethodPUT:
		return "PUT"
	case MethodDELETE:
		return "DELETE"
	case MethodCONNECT:
		return "CONNECT"
	case MethodOPTIONS:
		return "OPTIONS"
	case MethodTRACE:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

var methodTokens = map[string]Method{
	"GET":     MethodGET,
	"HEAD":    MethodHEAD,
	"POST":    MethodPOST,
	"PUT":     MethodPUT,
	"DELETE":  MethodDELETE,
	"CONNECT": MethodCONNECT,
	"OPTIONS": MethodOPTIONS,
	"TRACE":   MethodTRACE,
}

// Message is a classified HTTP payload: either a request with a
// recognized method and URI, or a response (method UNKNOWN, URI
// unset).
type Message struct {
	IsRequest bool
	Method    Method
	URI       string
}

// classifyMethod reads the token preceding the first space in payload
// and maps it to a Method, or MethodUnknown if absent/unrecognized.
func classifyMethod(payload []byte) (Method, int) {
	sp := bytes.IndexByte(payload, ' ')
	if sp <= 0 {
		return MethodUnknown, -1
	}
	m, ok := methodTokens[string(payload[:sp])]
	if !ok {
		return MethodUnknown, -1
	}
	return m, sp
}

// Decode classifies payload as a request iff destPort is 80 and the
// leading token is a recognized method; the URI is the bytes between
// the method token and the next space. Otherwise the message is a
// response with Method UNKNOWN and no URI.
func Decode(payload []byte, destPort uint16) Message {
	if destPort != 80 {
		return Message{}
	}
	method, sp := classifyMethod(payload)
	if method == MethodUnknown {
		return Message{}
	}
	rest := payload[sp+1:]
	uriEnd := bytes.IndexByte(rest, ' ')
	if uriEnd < 0 {
		uriEnd = len(rest)
	}
	return Message{
		IsRequest: true,
		Method:    method,
		URI:       string(rest[:uriEnd]),
	}
}
