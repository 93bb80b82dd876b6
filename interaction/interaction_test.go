package interaction

import (
	"testing"
	"time"
)

func mustActivityPeriod(t *testing.T, start, duration string) *ActivityPeriod {
	t.Helper()
	ap, err := ParseActivityPeriod(start, duration)
	if err != nil {
		t.Fatal(err)
	}
	return &ap
}

func TestActivityPeriodGateScenario(t *testing.T) {
	ap := mustActivityPeriod(t, "0 9 * *", "0 1 * *")
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	inPeriod := day.Add(9*time.Hour + 30*time.Minute)
	if !ap.InPeriod(inPeriod) {
		t.Errorf("expected in-period at %v", inPeriod)
	}

	outOfPeriod := day.Add(10*time.Hour + 30*time.Minute)
	if ap.InPeriod(outOfPeriod) {
		t.Errorf("expected out-of-period at %v", outOfPeriod)
	}
}

func TestActivityPeriodWithConcreteDayOfWeek(t *testing.T) {
	// Monday (dow=1) 08:00 for 2 hours.
	ap := mustActivityPeriod(t, "0 8 * 1", "0 2 * *")
	monday := time.Date(2026, time.March, 9, 9, 0, 0, 0, time.UTC) // a Monday
	if monday.Weekday() != time.Monday {
		t.Fatalf("test fixture bug: %v is not a Monday", monday)
	}
	if !ap.InPeriod(monday) {
		t.Errorf("expected in-period at %v", monday)
	}

	tuesday := monday.AddDate(0, 0, 1)
	if ap.InPeriod(tuesday) {
		t.Errorf("expected out-of-period at %v (wrong weekday)", tuesday)
	}
}

func TestIsTimedOut(t *testing.T) {
	d := New(1, 2, 3)
	d.TimeoutSec = 60
	d.TouchRequest(1000)
	if d.IsTimedOut(1030) {
		t.Error("30s elapsed, threshold 60s: expected not timed out")
	}
	if !d.IsTimedOut(1061) {
		t.Error("61s elapsed, threshold 60s: expected timed out")
	}
}

func TestIsTimedOutDefaultThreshold(t *testing.T) {
	d := New(1, 2, 3)
	d.TouchRequest(1000)
	if d.IsTimedOut(1000 + DefaultTimeoutSeconds) {
		t.Error("exactly at default threshold: expected not timed out")
	}
	if !d.IsTimedOut(1000 + DefaultTimeoutSeconds + 1) {
		t.Error("past default threshold: expected timed out")
	}
}

func TestIsTimedOutDisabled(t *testing.T) {
	d := New(1, 2, 3)
	d.TimeoutSec = -1
	d.TouchRequest(1000)
	if d.IsTimedOut(1_000_000_000) {
		t.Error("negative threshold must disable timeout")
	}
}

func TestIsTimedOutUnsetNeverTimesOut(t *testing.T) {
	d := New(1, 2, 3)
	d.TimeoutSec = 1
	if d.IsTimedOut(1_000_000_000) {
		t.Error("no request recorded yet: expected not timed out")
	}
}

func TestRecordMatchInitializesDurationOnce(t *testing.T) {
	d := New(1, 1, 1)
	d.RecordMatch(0, 500)
	d.RecordMatch(0, 600)
	c := d.Counters(0)
	if c.PacketCount.Value != 2 {
		t.Errorf("packet count: got %d want 2", c.PacketCount.Value)
	}
	if c.Duration.Micros != 500 {
		t.Errorf("duration should latch first match time: got %d want 500", c.Duration.Micros)
	}
}

func TestSetStateOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range state")
		}
	}()
	d := New(1, 1, 2)
	d.SetState(5)
}
