package dnsmsg

import (
	"strings"

	"github.com/apfw/dpicore/netaddr"
)

// ContainsSuffix reports whether any question's name ends with suffix
// (byte-wise, case-sensitive — DNS names here are compared as decoded).
func ContainsSuffix(qs []Question, suffix string) bool {
	for _, q := range qs {
		if strings.HasSuffix(q.Name, suffix) {
			return true
		}
	}
	return false
}

// ContainsFull reports whether any question's name exactly equals name.
func ContainsFull(qs []Question, name string) bool {
	for _, q := range qs {
		if q.Name == name {
			return true
		}
	}
	return false
}

// GetQuestion returns the first question matching name exactly, and
// whether one was found.
func GetQuestion(qs []Question, name string) (Question, bool) {
	for _, q := range qs {
		if q.Name == name {
			return q, true
		}
	}
	return Question{}, false
}

// AddressesForName follows CNAME chains within answers starting from
// name and collects every A/AAAA address reached along the chain, in
// answer order. Chain following only considers records present in
// answers; it returns an empty slice if name is absent or resolves to
// nothing.
func AddressesForName(answers []Resource, name string) []netaddr.Addr {
	var out []netaddr.Addr
	visited := map[string]bool{}
	target := name
	for !visited[target] {
		visited[target] = true
		var nextTarget string
		haveNext := false
		for _, a := range answers {
			if a.Name != target {
				continue
			}
			switch {
			case a.Type == TypeA || a.Type == TypeAAAA:
				if a.RData.Kind == RDataAddr {
					out = append(out, a.RData.Addr)
				}
			case a.Type == TypeCNAME:
				if a.RData.Kind == RDataName && !haveNext {
					nextTarget = a.RData.Name
					haveNext = true
				}
			}
		}
		if !haveNext {
			break
		}
		target = nextTarget
	}
	return out
}
