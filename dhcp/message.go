package dhcp

// Option is a single parsed DHCP option: its code and raw value bytes
// (which alias the decoded message's buffer).
type Option struct {
	Code OptNum
	Data []byte
}

// Message is a fully decoded DHCP message: the fixed header fields,
// the message-type option denormalized onto its own field for
// convenience, and the full insertion-ordered option list.
type Message struct {
	Op      Op
	HType   uint8
	HLen    uint8
	Hops    uint8
	XID     uint32
	Secs    uint16
	Flags   uint16
	CIAddr  [4]byte
	YIAddr  [4]byte
	SIAddr  [4]byte
	GIAddr  [4]byte
	CHAddr  [16]byte
	MsgType MessageType
	Options []Option
}

// Decode parses buf into a Message. A magic-cookie mismatch is not
// fatal: it yields a Message with an empty Options list and MsgType
// left at MsgUnset, matching the wire-format contract that a
// non-DHCP(v4) BOOTP payload still decodes to something inspectable.
func Decode(buf []byte) (Message, error) {
	frm, err := NewFrame(buf)
	if err != nil {
		return Message{}, err
	}
	msg := Message{
		Op:     frm.Op(),
		HType:  frm.HType(),
		HLen:   frm.HLen(),
		Hops:   frm.Hops(),
		XID:    frm.XID(),
		Secs:   frm.Secs(),
		Flags:  frm.FlagsRaw(),
		CIAddr: frm.CIAddr(),
		YIAddr: frm.YIAddr(),
		SIAddr: frm.SIAddr(),
		GIAddr: frm.GIAddr(),
		CHAddr: frm.CHAddr(),
	}
	if !frm.hasMagicCookie() {
		return msg, nil
	}

	opts := make([]Option, 0, optionsInitialCap)
	ptr := OptionsOffset
	for ptr < len(buf) {
		code := OptNum(buf[ptr])
		if code == OptEnd {
			break
		}
		if code == OptPad {
			ptr++
			continue
		}
		if ptr+1 >= len(buf) {
			return msg, errBadOption
		}
		length := int(buf[ptr+1])
		dataStart := ptr + 2
		if dataStart+length > len(buf) {
			return msg, errBadOption
		}
		data := buf[dataStart : dataStart+length]
		opts = append(opts, Option{Code: code, Data: data})
		if code == OptMessageType && length == 1 {
			msg.MsgType = MessageType(data[0])
		}
		ptr = dataStart + length
	}
	msg.Options = opts
	return msg, nil
}

// GetOption returns the first option with the given code, and whether
// one was found.
func GetOption(opts []Option, code OptNum) (Option, bool) {
	for _, o := range opts {
		if o.Code == code {
			return o, true
		}
	}
	return Option{}, false
}
