package dhcp

import "strconv"

func (op Op) String() string {
	switch op {
	case OpBootRequest:
		return "BOOTREQUEST"
	case OpBootReply:
		return "BOOTREPLY"
	default:
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}
}

func (mt MessageType) String() string {
	switch mt {
	case MsgUnset:
		return "UNSET"
	case MsgDiscover:
		return "DISCOVER"
	case MsgOffer:
		return "OFFER"
	case MsgRequest:
		return "REQUEST"
	case MsgDecline:
		return "DECLINE"
	case MsgAck:
		return "ACK"
	case MsgNak:
		return "NAK"
	case MsgRelease:
		return "RELEASE"
	case MsgInform:
		return "INFORM"
	default:
		return "MessageType(" + strconv.Itoa(int(mt)) + ")"
	}
}
