package httpfw

import "testing"

func TestDecodeGETRequest(t *testing.T) {
	payload := []byte("GET /gslb?tver=2&id=369215617&sub=1 HTTP/1.1\r\nHost: example.com\r\n\r\n")
	msg := Decode(payload, 80)
	if !msg.IsRequest {
		t.Fatal("expected request")
	}
	if msg.Method != MethodGET {
		t.Fatalf("method: got %v want GET", msg.Method)
	}
	const want = "/gslb?tver=2&id=369215617&sub=1"
	if msg.URI != want {
		t.Fatalf("uri: got %q want %q", msg.URI, want)
	}
}

func TestDecodeWrongPortIsResponse(t *testing.T) {
	payload := []byte("GET / HTTP/1.1\r\n\r\n")
	msg := Decode(payload, 8080)
	if msg.IsRequest || msg.Method != MethodUnknown {
		t.Fatalf("expected response classification, got %+v", msg)
	}
}

func TestDecodeUnrecognizedMethodIsResponse(t *testing.T) {
	payload := []byte("HTTP/1.1 200 OK\r\n\r\n")
	msg := Decode(payload, 80)
	if msg.IsRequest {
		t.Fatalf("expected response classification, got %+v", msg)
	}
}

func TestAllMethodTokensRecognized(t *testing.T) {
	for tok, want := range methodTokens {
		payload := []byte(tok + " / HTTP/1.1\r\n\r\n")
		msg := Decode(payload, 80)
		if msg.Method != want {
			t.Fatalf("%s: got %v want %v", tok, msg.Method, want)
		}
	}
}
