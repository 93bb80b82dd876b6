package dnsmsg

import "github.com/apfw/dpicore/netaddr"

// RDataKind discriminates the RData variant.
type RDataKind uint8

const (
	RDataAddr  RDataKind = iota // A / AAAA: Addr is valid
	RDataName                   // NS / CNAME / PTR: Name is valid
	RDataBytes                  // anything else: Raw is valid
	RDataNull                   // rdlength == 0
)

// RData is a tagged variant over the resource-record payload shapes the
// core cares about: an address for A/AAAA, a decoded domain name for
// NS/CNAME/PTR, or an opaque byte blob otherwise.
type RData struct {
	Kind RDataKind
	Addr netaddr.Addr
	Name string
	Raw  []byte
}

// decodeRData interprets rdata (the rdlength bytes already sliced out of
// msg) according to typ. Name-bearing record types are decoded against
// msg (not rdata) since a name inside rdata may itself carry a
// compression pointer referring to an earlier offset in the full
// message; rdataOff is rdata's offset within msg.
func decodeRData(msg []byte, rdataOff int, rdata []byte, typ Type) (RData, error) {
	if len(rdata) == 0 {
		return RData{Kind: RDataNull}, nil
	}
	switch typ {
	case TypeA:
		if len(rdata) != 4 {
			return RData{Kind: RDataBytes, Raw: rdata}, nil
		}
		return RData{Kind: RDataAddr, Addr: netaddr.AddrFromV4([4]byte(rdata))}, nil
	case TypeAAAA:
		if len(rdata) != 16 {
			return RData{Kind: RDataBytes, Raw: rdata}, nil
		}
		return RData{Kind: RDataAddr, Addr: netaddr.AddrFromV6([16]byte(rdata))}, nil
	case TypeNS, TypeCNAME, TypePTR:
		name, _, err := decodeName(msg, rdataOff)
		if err != nil {
			return RData{Kind: RDataBytes, Raw: rdata}, nil
		}
		return RData{Kind: RDataName, Name: name}, nil
	default:
		return RData{Kind: RDataBytes, Raw: rdata}, nil
	}
}
