package timezone

import (
	"time"
	_ "time/tzdata"
)

const (
	DefaultTimezone = "Asia/Kolkata"
	DateLayout      = "2006-01-02"
)

// Clock returns the current instant; use cases take one so tests can pin "today".
type Clock func() time.Time

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func SystemClock(tz string) Clock {
	loc := Location(tz)
	return func() time.Time {
		return time.Now().In(loc)
	}
}

func FixedClock(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}

// DateOf strips the clock part of t, keeping the calendar day t has in its own
// location. Calendar dates are always carried as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(d), nil
}

// DayRange returns the UTC instants bounding the calendar day of date as
// observed in loc: [start, end).
func DayRange(date time.Time, loc *time.Location) (start, end time.Time) {
	y, m, d := date.Date()
	local := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return local.UTC(), local.AddDate(0, 0, 1).UTC()
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
