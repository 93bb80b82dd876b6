// Package policy defines the contract between the queue runtime and
// generated per-device verdict code: a single callback signature
// (replacing the historical pair of logging/non-logging signatures)
// plus an optional observer hook for the logging feature.
package policy

import "github.com/apfw/dpicore/interaction"

// Verdict is the outcome of inspecting one packet.
type Verdict uint8

const (
	Accept Verdict = iota
	Drop
)

func (v Verdict) String() string {
	if v == Accept {
		return "ACCEPT"
	}
	return "DROP"
}

// Packet is what the queue runtime hands to a generated policy
// callback for each queued packet.
type Packet struct {
	ID      uint32
	Payload []byte
}

// Func is the single generated-verdict-callback signature: given a
// packet and its interaction's shared state, return a verdict. It
// must never block beyond the queue's timeout budget.
type Func func(pkt Packet, data *interaction.Data) Verdict

// Observer is invoked after a verdict is produced, when the logging
// feature is enabled; it replaces the historical second,
// logging-aware callback signature. obs may be nil.
type Observer func(policyName string, state int, verdict Verdict)

// Wrap adapts fn into a Func that additionally reports through obs
// when non-nil, carrying policyName/state forward from the
// interaction's current state at call time.
func Wrap(policyName string, fn Func, obs Observer) Func {
	if obs == nil {
		return fn
	}
	return func(pkt Packet, data *interaction.Data) Verdict {
		v := fn(pkt, data)
		obs(policyName, data.CurrentState(), v)
		return v
	}
}
