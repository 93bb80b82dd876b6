// Package igmp implements IGMPv2 (RFC 2236) and IGMPv3 membership
// report (RFC 3376) decoding. IGMPv3 membership queries are out of
// scope and are reported via ErrV3QueryUnsupported.
package igmp

import (
	"encoding/binary"
	"errors"

	"github.com/apfw/dpicore/netaddr"
)

var (
	errShort               = errors.New("igmp: buffer shorter than fixed body")
	errBadGroupRecord      = errors.New("igmp: group record exceeds buffer")
	ErrV3QueryUnsupported  = errors.New("igmp: v3 membership queries are not decoded")
	errUnknownType         = errors.New("igmp: unrecognized message type")
)

// Type is the IGMP message type byte.
type Type uint8

const (
	TypeMembershipQuery  Type = 0x11
	TypeV1Report         Type = 0x12
	TypeV2Report         Type = 0x16
	TypeLeaveGroup       Type = 0x17
	TypeV3MembershipRept Type = 0x22
)

// Version is the IGMP protocol version a message was classified into.
type Version uint8

const (
	VersionUnknown Version = iota
	Version2
	Version3
)

// V2Body is the body of an IGMPv1/v2-family message.
type V2Body struct {
	MaxRespTime uint8
	Checksum    uint16
	GroupAddr   netaddr.Addr
}

// GroupRecord is a single IGMPv3 membership-report group record.
type GroupRecord struct {
	Type       uint8
	AuxDataLen uint8
	GroupAddr  netaddr.Addr
	Sources    []netaddr.Addr
}

// V3Report is the body of an IGMPv3 membership report.
type V3Report struct {
	Checksum uint16
	Groups   []GroupRecord
}

// Message is a decoded IGMP message.
type Message struct {
	Version Version
	Type    Type
	V2      V2Body
	V3      V3Report
}

// Decode dispatches on the leading type byte and parses the
// appropriate body.
func Decode(buf []byte) (Message, error) {
	if len(buf) < 1 {
		return Message{}, errShort
	}
	typ := Type(buf[0])
	switch typ {
	case TypeMembershipQuery:
		// An 8-byte query is IGMPv2; 12 bytes or more is IGMPv3 (RFC 3376 §7.1).
		if len(buf) >= 12 {
			return Message{}, ErrV3QueryUnsupported
		}
		body, err := decodeV2Body(buf)
		return Message{Version: Version2, Type: typ, V2: body}, err
	case TypeV1Report, TypeV2Report, TypeLeaveGroup:
		body, err := decodeV2Body(buf)
		return Message{Version: Version2, Type: typ, V2: body}, err
	case TypeV3MembershipRept:
		body, err := decodeV3Report(buf)
		return Message{Version: Version3, Type: typ, V3: body}, err
	default:
		return Message{}, errUnknownType
	}
}

func decodeV2Body(buf []byte) (V2Body, error) {
	if len(buf) < 8 {
		return V2Body{}, errShort
	}
	return V2Body{
		MaxRespTime: buf[1],
		Checksum:    binary.BigEndian.Uint16(buf[2:4]),
		GroupAddr:   netaddr.AddrFromV4([4]byte(buf[4:8])),
	}, nil
}

func decodeV3Report(buf []byte) (V3Report, error) {
	if len(buf) < 8 {
		return V3Report{}, errShort
	}
	rep := V3Report{
		Checksum: binary.BigEndian.Uint16(buf[2:4]),
	}
	numGroups := binary.BigEndian.Uint16(buf[6:8])
	ptr := 8
	for i := 0; i < int(numGroups); i++ {
		if ptr+8 > len(buf) {
			return rep, errBadGroupRecord
		}
		recType := buf[ptr]
		auxLen := buf[ptr+1]
		numSources := binary.BigEndian.Uint16(buf[ptr+2 : ptr+4])
		groupAddr := netaddr.AddrFromV4([4]byte(buf[ptr+4 : ptr+8]))
		ptr += 8
		sourcesEnd := ptr + 4*int(numSources)
		if sourcesEnd > len(buf) {
			return rep, errBadGroupRecord
		}
		sources := make([]netaddr.Addr, numSources)
		for s := 0; s < int(numSources); s++ {
			sources[s] = netaddr.AddrFromV4([4]byte(buf[ptr+4*s : ptr+4*s+4]))
		}
		ptr = sourcesEnd
		auxEnd := ptr + 4*int(auxLen)
		if auxEnd > len(buf) {
			return rep, errBadGroupRecord
		}
		ptr = auxEnd
		rep.Groups = append(rep.Groups, GroupRecord{
			Type:       recType,
			AuxDataLen: auxLen,
			GroupAddr:  groupAddr,
			Sources:    sources,
		})
	}
	return rep, nil
}
