// Package dates holds the calendar arithmetic shared by the schedule, yard
// and KPI services. Everything here is pure: callers pass "now" explicitly
// so derived values stay reproducible in tests.
package dates

import (
	"strconv"
	"strings"
	"time"
)

const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

// ParseFlexible parses the date spellings that occur in the feeds:
// dd/mm/yyyy (two- or four-digit year, two-digit years pivot below 100 to
// 2000+), yyyy-mm-dd, and RFC3339 timestamps. Returns nil for empty or
// unparseable input; it never errors. Out-of-range day numbers normalize the
// way time.Date does (31/02 rolls into March).
func ParseFlexible(text string) *time.Time {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}

	if d := parseSlashed(s); d != nil {
		return d
	}
	if t, err := time.ParseInLocation(DayLayout, s, time.Local); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		local := t.Local()
		return &local
	}
	return nil
}

func parseSlashed(s string) *time.Time {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return nil
	}
	day, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 {
		return nil
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	return &t
}

// Midnight truncates t to local midnight.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay normalizes t to 23:59:59.999 local, the inclusive upper bound of
// a date window.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// DaysFrom is the signed whole-day difference between date and now, both
// truncated to their calendar date. Future dates are positive. The
// difference is taken between the dates rebuilt in UTC so a 23-hour DST
// spring-forward day still counts as one day.
func DaysFrom(date, now time.Time) int {
	a := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b) / (24 * time.Hour))
}

// DaysFromToday applies DaysFrom against now; nil in, nil out.
func DaysFromToday(date *time.Time, now time.Time) *int {
	if date == nil {
		return nil
	}
	d := DaysFrom(*date, now)
	return &d
}

// WeeksUntil parses text with ParseFlexible and returns the fractional week
// distance from now. Past dates are negative; unparseable input is nil.
func WeeksUntil(text string, now time.Time) *float64 {
	date := ParseFlexible(text)
	if date == nil {
		return nil
	}
	weeks := float64(DaysFrom(*date, now)) / 7
	return &weeks
}

// DaysSince returns whole days elapsed since an RFC3339 timestamp, clamped
// to zero. Malformed input also yields zero; a future timestamp (clock skew)
// must not produce a negative age.
func DaysSince(iso string, now time.Time) int {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return 0
	}
	d := DaysFrom(now, t.Local())
	if d < 0 {
		return 0
	}
	return d
}

// MonthKey formats t as its YYYY-MM calendar bucket key.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// MonthLabel is the human label for a YYYY-MM key ("Jan 2024"); the key
// itself comes back unchanged when it does not parse.
func MonthLabel(key string) string {
	t, err := time.Parse(MonthLayout, key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

// MondayOfWeek returns the Monday of t's ISO week, at local midnight.
func MondayOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // ISO: Sunday = 7
	}
	return Midnight(t.AddDate(0, 0, -(weekday - 1)))
}

// InRange reports whether t falls inside [from, to] where to has already
// been normalized to end of day.
func InRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
