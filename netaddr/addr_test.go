package netaddr

import "testing"

func TestIPv4RoundTrip(t *testing.T) {
	cases := []string{"0.0.0.0", "255.255.255.255", "192.168.1.1", "20.47.97.231"}
	for _, s := range cases {
		a, err := ParseIPv4(s)
		if err != nil {
			t.Fatalf("ParseIPv4(%q): %v", s, err)
		}
		if got := a.String(); got != s {
			t.Errorf("round trip %q got %q", s, got)
		}
		b := a.As4()
		a2 := AddrFromV4(b)
		if a2.As4() != b {
			t.Errorf("byte round trip mismatch for %q", s)
		}
	}
}

func TestIPv6RoundTrip(t *testing.T) {
	cases := []string{"::", "::1", "2001:db8::1", "fe80::788b:2aff:feb2:20ea"}
	for _, s := range cases {
		a, err := ParseIPv6(s)
		if err != nil {
			t.Fatalf("ParseIPv6(%q): %v", s, err)
		}
		if got := a.String(); got != s {
			t.Errorf("round trip %q got %q", s, got)
		}
	}
}

func TestAddrEqualityIsVersionSensitive(t *testing.T) {
	v4, _ := ParseIPv4("0.0.0.1")
	v6, _ := ParseIPv6("::1")
	if v4.Equal(v6) || v6.Equal(v4) {
		t.Fatal("cross-version addresses must never compare equal")
	}
}

func TestMACRoundTrip(t *testing.T) {
	const s = "78:8b:2a:b2:20:ea"
	mac, err := ParseMAC(s)
	if err != nil {
		t.Fatal(err)
	}
	if got := MACString(mac); got != s {
		t.Errorf("got %q want %q", got, s)
	}
}

func TestHexToBytes(t *testing.T) {
	b, err := HexToBytes("01ff7a")
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x01, 0xff, 0x7a}
	if len(b) != len(want) {
		t.Fatalf("len mismatch: %d", len(b))
	}
	for i := range want {
		if b[i] != want[i] {
			t.Fatalf("byte %d: got %x want %x", i, b[i], want[i])
		}
	}
}

func TestHexToBytesOddLength(t *testing.T) {
	_, err := HexToBytes("abc")
	if err == nil {
		t.Fatal("expected error for odd-length hex string")
	}
}

func TestSHA256KnownVector(t *testing.T) {
	sum := SHA256([]byte("abc"))
	got := hexEncode(sum[:])
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func hexEncode(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hexDigits[v>>4]
		out[i*2+1] = hexDigits[v&0xf]
	}
	return string(out)
}
