// Package ntppoll recognizes NTP client/server request-response
// exchanges on the wire. It reads only the flags and stratum bytes of
// the fixed header; it does not parse, validate, or render timestamps
// and is not a general-purpose NTP codec.
package ntppoll

import "github.com/apfw/dpicore/ntp"

// minHeader is the shortest prefix needed to read mode and stratum:
// byte 0 (flags) and byte 1 (stratum).
const minHeader = 2

// Exchange classifies one NTP datagram's direction from its header
// flags.
type Exchange uint8

const (
	ExchangeUnknown Exchange = iota
	ExchangeRequest
	ExchangeResponse
)

func (e Exchange) String() string {
	switch e {
	case ExchangeRequest:
		return "request"
	case ExchangeResponse:
		return "response"
	default:
		return "unknown"
	}
}

// Recognize inspects the leading bytes of payload and reports whether
// it looks like an NTP client request or server response, along with
// the reported stratum.
func Recognize(payload []byte) (exchange Exchange, stratum ntp.Stratum, ok bool) {
	if len(payload) < minHeader {
		return ExchangeUnknown, 0, false
	}
	mode := ntp.Mode(payload[0] & 0b111)
	stratum = ntp.Stratum(payload[1])
	switch mode {
	case ntp.ModeClient:
		return ExchangeRequest, stratum, true
	case ntp.ModeServer:
		return ExchangeResponse, stratum, true
	default:
		return ExchangeUnknown, stratum, true
	}
}

// IsWellKnownPort reports whether port matches the NTP server port
// used to recognize candidate NTP traffic ahead of a full Recognize.
func IsWellKnownPort(port uint16) bool {
	return port == ntp.ServerPort
}
