// Package interaction implements the per-interaction state machine:
// current-state tracking, per-policy counters, a cached resolved
// address, activity-period gating, and request-timeout gating. All
// mutable fields of a Data are protected by its own mutex; two
// interactions may progress concurrently without coordination.
package interaction

import (
	"sync"
	"time"

	"github.com/apfw/dpicore/netaddr"
)

// DefaultTimeoutSeconds is the timeout applied when Data.TimeoutSec is
// zero.
const DefaultTimeoutSeconds = 3600

// PacketCount is an initialize-on-first-match counter.
type PacketCount struct {
	Initialized bool
	Value       int64
}

// Inc marks the counter initialized and increments it.
func (p *PacketCount) Inc() {
	p.Initialized = true
	p.Value++
}

// Counters is the per-policy accounting pair: a match count and the
// duration since the first match in the current state.
type Counters struct {
	PacketCount PacketCount
	Duration    CounterDuration
}

// CounterDuration is an initialize-once microsecond timestamp, recorded
// by Init on its first use.
type CounterDuration struct {
	Initialized bool
	Micros      int64
}

// Init records now (in microseconds) if not already initialized.
func (d *CounterDuration) Init(nowMicros int64) {
	if d.Initialized {
		return
	}
	d.Micros = nowMicros
	d.Initialized = true
}

// Data is one interaction's shared, mutex-guarded state: the
// instance the generated per-device verdict code reads and writes on
// every queued packet for this interaction.
type Data struct {
	QueueIDBase      uint32
	NumPolicies      int
	NumStates        int
	ActivityPeriod   *ActivityPeriod // nil disables the gate
	TimeoutSec       int64           // 0 => DefaultTimeoutSeconds; <0 => disabled

	mu              sync.Mutex
	currentState    int
	counters        []Counters
	cachedIP        netaddr.Addr
	timeOfLastReq   int64 // unix seconds; 0 => none
	inLoop          bool
}

// New allocates a Data for numPolicies policies across numStates
// states. State 0 is initial.
func New(queueIDBase uint32, numPolicies, numStates int) *Data {
	return &Data{
		QueueIDBase: queueIDBase,
		NumPolicies: numPolicies,
		NumStates:   numStates,
		counters:    make([]Counters, numPolicies),
	}
}

// CurrentState returns the interaction's current state index.
func (d *Data) CurrentState() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.currentState
}

// SetState transitions to state, which must be within
// [0, NumStates).
func (d *Data) SetState(state int) {
	if state < 0 || state >= d.NumStates {
		panic("interaction: state index out of range")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.currentState = state
}

// RecordMatch increments policy's packet count and, on the first match
// since entering the current state, initializes its duration.
func (d *Data) RecordMatch(policy int, nowMicros int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := &d.counters[policy]
	first := !c.PacketCount.Initialized
	c.PacketCount.Inc()
	if first {
		c.Duration.Init(nowMicros)
	}
}

// Counters returns a copy of policy's counters.
func (d *Data) Counters(policy int) Counters {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counters[policy]
}

// ResetCounters clears every policy's counters, used on a state
// transition.
func (d *Data) ResetCounters() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.counters {
		d.counters[i] = Counters{}
	}
}

// CachedIP returns the interaction's cached resolved address.
func (d *Data) CachedIP() netaddr.Addr {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cachedIP
}

// SetCachedIP stores ip as the interaction's cached resolved address.
func (d *Data) SetCachedIP(ip netaddr.Addr) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cachedIP = ip
}

// TouchRequest records now (unix seconds) as the time of the latest
// request.
func (d *Data) TouchRequest(nowUnixSec int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timeOfLastReq = nowUnixSec
}

// InLoop reports and SetInLoop sets the interaction's in-loop flag,
// used to detect re-entrant processing of the same interaction.
func (d *Data) InLoop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inLoop
}

func (d *Data) SetInLoop(v bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inLoop = v
}

// IsTimedOut reports whether the interaction has exceeded its request
// timeout as of nowUnixSec. An unset last-request time never times
// out.
func (d *Data) IsTimedOut(nowUnixSec int64) bool {
	d.mu.Lock()
	last := d.timeOfLastReq
	threshold := d.TimeoutSec
	d.mu.Unlock()

	if last == 0 {
		return false
	}
	if threshold < 0 {
		return false
	}
	if threshold == 0 {
		threshold = DefaultTimeoutSeconds
	}
	return nowUnixSec-last > threshold
}

// IsInActivityPeriod reports whether now falls within the
// interaction's activity period. An interaction with no configured
// period is always considered in-period.
func (d *Data) IsInActivityPeriod(now time.Time) bool {
	if d.ActivityPeriod == nil {
		return true
	}
	return d.ActivityPeriod.InPeriod(now)
}
