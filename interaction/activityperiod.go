package interaction

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var errBadCronField = errors.New("interaction: malformed activity-period field")

// CronField is one field of a cron-like specification: either a
// wildcard or a concrete non-negative integer.
type CronField struct {
	Wildcard bool
	Value    int
}

func parseCronField(s string) (CronField, error) {
	if s == "*" {
		return CronField{Wildcard: true}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return CronField{}, errBadCronField
	}
	return CronField{Value: n}, nil
}

// CronSpec is the four-field (minute, hour, day-of-month, day-of-week)
// specification shared by an ActivityPeriod's start and duration.
type CronSpec struct {
	Minute     CronField
	Hour       CronField
	DayOfMonth CronField
	DayOfWeek  CronField
}

// ParseCronSpec parses a whitespace-separated "minute hour dom dow"
// string.
func ParseCronSpec(s string) (CronSpec, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return CronSpec{}, errBadCronField
	}
	var cs CronSpec
	var err error
	if cs.Minute, err = parseCronField(fields[0]); err != nil {
		return CronSpec{}, err
	}
	if cs.Hour, err = parseCronField(fields[1]); err != nil {
		return CronSpec{}, err
	}
	if cs.DayOfMonth, err = parseCronField(fields[2]); err != nil {
		return CronSpec{}, err
	}
	if cs.DayOfWeek, err = parseCronField(fields[3]); err != nil {
		return CronSpec{}, err
	}
	return cs, nil
}

// ActivityPeriod gates policy acceptance to the half-open interval
// [start, start+duration). Wildcard fields in Start match any value of
// that component; wildcard fields in Duration contribute zero.
type ActivityPeriod struct {
	Start    CronSpec
	Duration CronSpec
}

// ParseActivityPeriod parses the start and duration cron strings.
func ParseActivityPeriod(start, duration string) (ActivityPeriod, error) {
	s, err := ParseCronSpec(start)
	if err != nil {
		return ActivityPeriod{}, err
	}
	d, err := ParseCronSpec(duration)
	if err != nil {
		return ActivityPeriod{}, err
	}
	return ActivityPeriod{Start: s, Duration: d}, nil
}

// previousTrigger returns the most recent instant at or before now
// whose minute/hour/day-of-month/day-of-week match ap.Start, treating
// wildcard fields as inherited from now rather than constrained.
func (ap ActivityPeriod) previousTrigger(now time.Time) time.Time {
	minute := now.Minute()
	if !ap.Start.Minute.Wildcard {
		minute = ap.Start.Minute.Value
	}
	hour := now.Hour()
	if !ap.Start.Hour.Wildcard {
		hour = ap.Start.Hour.Value
	}

	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	for day := 0; day < 8; day++ {
		c := candidate.AddDate(0, 0, -day)
		domOK := ap.Start.DayOfMonth.Wildcard || c.Day() == ap.Start.DayOfMonth.Value
		dowOK := ap.Start.DayOfWeek.Wildcard || int(c.Weekday()) == ap.Start.DayOfWeek.Value
		if domOK && dowOK && !c.After(now) {
			return c
		}
	}
	// No matching day found within a week: fields are unsatisfiable.
	return candidate.AddDate(0, 0, -8)
}

// durationSpan converts ap.Duration into a time.Duration: minute and
// hour fields contribute their unit directly, day-of-month contributes
// whole days, and wildcard fields contribute zero. day-of-week has no
// meaningful span contribution and is ignored.
func (ap ActivityPeriod) durationSpan() time.Duration {
	var d time.Duration
	if !ap.Duration.Minute.Wildcard {
		d += time.Duration(ap.Duration.Minute.Value) * time.Minute
	}
	if !ap.Duration.Hour.Wildcard {
		d += time.Duration(ap.Duration.Hour.Value) * time.Hour
	}
	if !ap.Duration.DayOfMonth.Wildcard {
		d += time.Duration(ap.Duration.DayOfMonth.Value) * 24 * time.Hour
	}
	return d
}

// InPeriod reports whether now falls within [start, start+duration)
// for the most recent trigger at or before now.
func (ap ActivityPeriod) InPeriod(now time.Time) bool {
	start := ap.previousTrigger(now)
	end := start.Add(ap.durationSpan())
	return !now.Before(start) && now.Before(end)
}
