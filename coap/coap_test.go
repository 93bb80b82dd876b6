package coap

import (
	"testing"

	"github.com/apfw/dpicore/httpfw"
)

// buildGET constructs a synthetic non-confirmable GET carrying
// Uri-Path "oic"/"res" and Uri-Query "rt=x.com.samsung.provisioninginfo",
// matching the "CoAP non-confirmable GET" end-to-end scenario.
func buildGET() []byte {
	buf := []byte{
		byte(TypeNON)<<4 | 0, // version nibble omitted (not modeled), type=NON, token length=0
		1,                    // code 1 = GET
		0x12, 0x34,           // message id
	}
	// Option 11 (Uri-Path) "oic": delta=11, length=3
	buf = append(buf, 0xB3)
	buf = append(buf, "oic"...)
	// Option 11 (Uri-Path) "res": delta=0, length=3
	buf = append(buf, 0x03)
	buf = append(buf, "res"...)
	// Option 15 (Uri-Query) "rt=x.com.samsung.provisioninginfo": delta=4, length=33
	query := "rt=x.com.samsung.provisioninginfo"
	buf = append(buf, byte(4<<4)|13, byte(len(query)-13))
	buf = append(buf, query...)
	return buf
}

func TestDecodeNonConfirmableGET(t *testing.T) {
	buf := buildGET()
	msg, err := Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if msg.Type != TypeNON {
		t.Errorf("type: got %v want NON", msg.Type)
	}
	if msg.Method != httpfw.MethodGET {
		t.Errorf("method: got %v want GET", msg.Method)
	}
	const want = "/oic/res?rt=x.com.samsung.provisioninginfo"
	if msg.URI != want {
		t.Errorf("uri: got %q want %q", msg.URI, want)
	}
}

func TestDecodeOptionLengthExtension14(t *testing.T) {
	big := make([]byte, 300)
	for i := range big {
		big[i] = 'a'
	}
	buf := []byte{byte(TypeCON) << 4, 1, 0, 0}
	// delta 11 (Uri-Path), length nibble 14 -> 2 extension bytes, bias 269.
	extra := len(big) - 269
	buf = append(buf, byte(optUriPath<<4)|14, byte(extra>>8), byte(extra))
	buf = append(buf, big...)
	msg, err := Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(msg.URI) != len(big)+1 {
		t.Fatalf("uri length: got %d want %d", len(msg.URI), len(big)+1)
	}
}

func TestDecodeStopsAtPayloadMarker(t *testing.T) {
	buf := []byte{byte(TypeCON) << 4, 1, 0, 0, 0xFF, 'p', 'a', 'y', 'l', 'o', 'a', 'd'}
	msg, err := Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if msg.URI != "" {
		t.Fatalf("expected empty uri, got %q", msg.URI)
	}
}
