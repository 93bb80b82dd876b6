package ssdp

import (
	"testing"

	"github.com/apfw/dpicore/netaddr"
)

func TestDecodeMSearchRequest(t *testing.T) {
	payload := []byte("M-SEARCH * HTTP/1.1\r\n")
	msg := Decode(payload, MulticastGroup)
	if !msg.IsRequest || msg.Method != MethodMSearch {
		t.Fatalf("got %+v", msg)
	}
}

func TestDecodeNotifyIsNotRequestOffGroup(t *testing.T) {
	other := netaddr.MustParseIPv4("192.168.1.1")
	payload := []byte("NOTIFY * HTTP/1.1\r\n")
	msg := Decode(payload, other)
	if msg.IsRequest {
		t.Fatalf("expected non-request, got %+v", msg)
	}
	if msg.Method != MethodNotify {
		t.Fatalf("method: got %v want NOTIFY", msg.Method)
	}
}

func TestDecodeUnknownFirstByte(t *testing.T) {
	msg := Decode([]byte("XYZ"), MulticastGroup)
	if msg.Method != MethodUnknown {
		t.Fatalf("method: got %v want UNKNOWN", msg.Method)
	}
}
