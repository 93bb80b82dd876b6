package dhcp

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildDiscover constructs a synthetic DHCP Discover matching the
// "DHCP Discover parse" end-to-end scenario: BOOTREQUEST, the given
// xid and client MAC, a message-type=Discover option, and a 12-byte
// vendor-class-identifier option.
func buildDiscover(xid uint32, mac [6]byte) []byte {
	buf := make([]byte, OptionsOffset)
	buf[0] = byte(OpBootRequest)
	buf[1] = 1 // htype: Ethernet
	buf[2] = 6 // hlen
	binary.BigEndian.PutUint32(buf[4:8], xid)
	copy(buf[28:34], mac[:])
	binary.BigEndian.PutUint32(buf[magicCookieOffset:OptionsOffset], MagicCookie)

	buf = append(buf, byte(OptMessageType), 1, byte(MsgDiscover))
	vendor := []byte("udhcp 1.28.1")
	buf = append(buf, byte(OptVendorClassID), byte(len(vendor)))
	buf = append(buf, vendor...)
	buf = append(buf, byte(OptEnd))
	return buf
}

func TestDecodeDiscover(t *testing.T) {
	mac := [6]byte{0x78, 0x8b, 0x2a, 0xb2, 0x20, 0xea}
	buf := buildDiscover(0x6617ca54, mac)

	msg, err := Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if msg.Op != OpBootRequest {
		t.Errorf("op: got %v want BOOTREQUEST", msg.Op)
	}
	if msg.XID != 0x6617ca54 {
		t.Errorf("xid: got %#x", msg.XID)
	}
	if gotMAC := [6]byte(msg.CHAddr[:6]); gotMAC != mac {
		t.Errorf("chaddr prefix: got %x want %x", gotMAC, mac)
	}
	if msg.MsgType != MsgDiscover {
		t.Errorf("msgtype: got %v want Discover", msg.MsgType)
	}
	vendor, ok := GetOption(msg.Options, OptVendorClassID)
	if !ok || len(vendor.Data) != 12 || !bytes.Equal(vendor.Data, []byte("udhcp 1.28.1")) {
		t.Errorf("vendor class: %+v ok=%v", vendor, ok)
	}
}

func TestDecodeBadMagicCookieYieldsEmptyOptions(t *testing.T) {
	buf := buildDiscover(1, [6]byte{1, 2, 3, 4, 5, 6})
	binary.BigEndian.PutUint32(buf[magicCookieOffset:OptionsOffset], 0xdeadbeef)

	msg, err := Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(msg.Options) != 0 {
		t.Errorf("expected empty options, got %d", len(msg.Options))
	}
	if msg.MsgType != MsgUnset {
		t.Errorf("expected uninitialized message type, got %v", msg.MsgType)
	}
}

func TestValidateSizeRejectsTruncatedOption(t *testing.T) {
	buf := buildDiscover(1, [6]byte{1, 2, 3, 4, 5, 6})
	buf = buf[:len(buf)-5] // truncate mid vendor-class value, dropping the End marker too
	f, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.ValidateSize(); err == nil {
		t.Fatal("expected error for truncated option")
	}
}
