// Package rulectl is a thin command-line bridge to the kernel-filter
// userspace tool: it installs and removes rules by handle, reads
// packet/byte counters, and exposes a monotonic microsecond clock. It
// performs synchronous external calls and never retries; failures are
// reported via boolean returns and a -1 sentinel for integer reads.
package rulectl

import (
	"bufio"
	"os/exec"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// Binary is the kernel-filter command-line tool invoked for every
// operation in this package. Overridable for testing.
var Binary = "nft"

// Run executes binary(args...) and discards its output, reporting
// success.
func Run(args ...string) bool {
	return exec.Command(Binary, args...).Run() == nil
}

// RunCapture executes binary(args...) and returns its combined
// stdout and stderr, along with whether the command exited successfully.
func RunCapture(args ...string) (string, bool) {
	out, err := exec.Command(Binary, args...).CombinedOutput()
	return string(out), err == nil
}

// ParseHandle extracts the integer following the first "handle" token
// in output, as emitted after a successful rule addition.
func ParseHandle(output string) (int64, bool) {
	return parseLabeledInt(output, "handle")
}

func parseLabeledInt(output, label string) (int64, bool) {
	fields := strings.Fields(output)
	for i, f := range fields {
		if f == label && i+1 < len(fields) {
			n, err := strconv.ParseInt(strings.TrimRight(fields[i+1], ",;"), 10, 64)
			if err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// AddRule adds rule to table/chain and returns the handle assigned by
// the kernel filter, if the add and the handle extraction both
// succeed.
func AddRule(table, chain, rule string) (handle int64, ok bool) {
	args := append([]string{"add", "rule", table, chain}, strings.Fields(rule)...)
	out, ran := RunCapture(args...)
	if !ran {
		return 0, false
	}
	return ParseHandle(out)
}

// DeleteByHandle removes the rule identified by handle from
// table/chain.
func DeleteByHandle(table, chain string, handle int64) bool {
	return Run("delete", "rule", table, chain, "handle", strconv.FormatInt(handle, 10))
}

// DeleteByText lists table/chain, locates the first line containing
// ruleText, extracts its handle, and deletes it by handle. Reports
// false if the rule is not found or any step fails.
func DeleteByText(table, chain, ruleText string) bool {
	out, ok := RunCapture("list", "chain", table, chain)
	if !ok {
		return false
	}
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if !strings.Contains(line, ruleText) {
			continue
		}
		handle, found := ParseHandle(line)
		if !found {
			return false
		}
		return DeleteByHandle(table, chain, handle)
	}
	return false
}

// ReadCounterPackets reads the packets counter of a named counter
// object in table, or -1 on any failure.
func ReadCounterPackets(table, name string) int64 {
	return readCounter(table, name, "packets")
}

// ReadCounterBytes reads the bytes counter of a named counter object
// in table, or -1 on any failure.
func ReadCounterBytes(table, name string) int64 {
	return readCounter(table, name, "bytes")
}

func readCounter(table, name, label string) int64 {
	out, ok := RunCapture("list", "counter", table, name)
	if !ok {
		return -1
	}
	n, found := parseLabeledInt(out, label)
	if !found {
		return -1
	}
	return n
}

// MonotonicMicros returns a monotonic clock reading as
// seconds*1e6 + microseconds, using CLOCK_MONOTONIC.
func MonotonicMicros() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return -1
	}
	return ts.Sec*1_000_000 + ts.Nsec/1_000
}

// Duration tracks an initialize-once microsecond span, latched to the
// first time a counter is touched. Init captures "now" exactly once;
// repeat calls after the first are no-ops.
type Duration struct {
	Initialized bool
	Micros      int64
}

// Init records now() into d if d has not already been initialized.
func (d *Duration) Init() {
	if d.Initialized {
		return
	}
	d.Micros = MonotonicMicros()
	d.Initialized = true
}
