package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	ClockLayout   = "15:04"
	DueDateLayout = "02/01/2006"
)

// Clock is a time of day with minute precision and no date component.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) minutes() int {
	return c.Hour*60 + c.Minute
}

// ClockOf returns the wall-clock time of t.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// ParseClock parses "HH:MM" or "HH:MM:SS" (24h). Seconds are dropped.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{ClockLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return Clock{}, fmt.Errorf("invalid time %q (expected HH:MM)", s)
}

// WorkDuration is end minus start. It is negative when end precedes start.
func WorkDuration(start, end Clock) time.Duration {
	return time.Duration(end.minutes()-start.minutes()) * time.Minute
}

// FormatHHMM renders d as zero-padded hours and minutes. Both components carry
// the sign of a negative duration, so -15m renders "00:-15" and -75m "-1:-15".
func FormatHHMM(d time.Duration) string {
	total := int64(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ParseHHMM returns the total minutes of a non-negative "HH:MM" string.
// Hours may exceed 23.
func ParseHHMM(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid duration %q (expected HH:MM)", s)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("invalid duration %q (expected HH:MM)", s)
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 || mins > 59 || len(m) != 2 {
		return 0, fmt.Errorf("invalid duration %q (expected HH:MM)", s)
	}
	return hours*60 + mins, nil
}

// ParseDueDate parses a day/month/year date in loc.
func ParseDueDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DueDateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected dd/mm/yyyy)", s)
	}
	return t, nil
}

func FormatDueDate(t time.Time) string {
	return t.Format(DueDateLayout)
}

// DefaultDueClock is one hour after now.
func DefaultDueClock(now time.Time) Clock {
	return ClockOf(now.Add(time.Hour))
}

// CombineDateClock places c on the calendar date of date, seconds forced to zero.
func CombineDateClock(date time.Time, c Clock) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, date.Location())
}

// ShiftDate moves a dd/mm/yyyy string by days. Unparseable input is returned unchanged.
func ShiftDate(s string, days int) string {
	t, err := ParseDueDate(s, time.UTC)
	if err != nil {
		return s
	}
	return FormatDueDate(t.AddDate(0, 0, days))
}
