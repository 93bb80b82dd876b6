package main

import (
	"github.com/apfw/dpicore/coap"
	"github.com/apfw/dpicore/dnscache"
	"github.com/apfw/dpicore/dnsmsg"
	"github.com/apfw/dpicore/httpfw"
	"github.com/apfw/dpicore/igmp"
	"github.com/apfw/dpicore/interaction"
	"github.com/apfw/dpicore/l3l4"
	"github.com/apfw/dpicore/policy"
	"github.com/apfw/dpicore/ssdp"
)

const (
	portDNS  = 53
	portHTTP = 80
	portCoAP = 5683
	portSSDP = 1900
)

// newInspectPolicy builds the default policy.Func for one binding: it
// classifies the queued packet's protocol, feeds DNS answers into
// cache, and accepts everything it cannot positively classify as
// disallowed. Real deployments replace this with generated per-device
// verdict code; this is the runtime's fallback.
func newInspectPolicy(cache *dnscache.Locked) policy.Func {
	return func(pkt policy.Packet, data *interaction.Data) policy.Verdict {
		ip, err := l3l4.NewIPv4Frame(pkt.Payload)
		if err != nil {
			return policy.Accept
		}
		l4payload := ip.Payload()

		switch ip.Protocol() {
		case l3l4.IPProtoUDP:
			udp, err := l3l4.NewUDPFrame(l4payload)
			if err != nil {
				return policy.Accept
			}
			inspectUDP(udp, ip, cache, data)
		case l3l4.IPProtoTCP:
			tcp, err := l3l4.NewTCPFrame(l4payload)
			if err != nil {
				return policy.Accept
			}
			inspectTCP(tcp)
		case l3l4.IPProtoIGMP:
			igmp.Decode(l4payload)
		}
		return policy.Accept
	}
}

func inspectUDP(udp l3l4.UDPFrame, ip l3l4.IPv4Frame, cache *dnscache.Locked, data *interaction.Data) {
	payload := udp.Payload()
	switch {
	case udp.SourcePort() == portDNS || udp.DestinationPort() == portDNS:
		msg, err := dnsmsg.Decode(payload)
		if err != nil {
			return
		}
		if len(msg.Question) == 0 {
			return
		}
		qname := msg.Question[0].Name
		addrs := dnsmsg.AddressesForName(msg.Answer, qname)
		if len(addrs) == 0 {
			return
		}
		cache.Add(qname, addrs)
		if data != nil {
			data.SetCachedIP(addrs[0])
		}
	case udp.DestinationPort() == portCoAP:
		coap.Decode(payload)
	case ip.DestinationAddr().Equal(ssdp.MulticastGroup):
		ssdp.Decode(payload, ip.DestinationAddr())
	}
}

func inspectTCP(tcp l3l4.TCPFrame) {
	if tcp.DestinationPort() != portHTTP {
		return
	}
	httpfw.Decode(tcp.Payload(), tcp.DestinationPort())
}
