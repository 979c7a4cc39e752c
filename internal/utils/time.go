package utils

import (
	"fmt"
	"time"
)

// DateLayout is the fixed-width calendar date format used for drink logs and
// goals. Dates in this format compare correctly as strings.
const DateLayout = "2006-01-02"

// FormatDate renders t as YYYY-MM-DD in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// Weekday returns the day of week of a YYYY-MM-DD date.
func Weekday(date string) (time.Weekday, error) {
	t, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

// WeekRange returns the Sunday that starts the week containing now, and now's
// own date, both as YYYY-MM-DD.
func WeekRange(now time.Time) (start, end string) {
	startOfWeek := now.AddDate(0, 0, -int(now.Weekday()))
	return FormatDate(startOfWeek), FormatDate(now)
}

// MonthRange returns the first and last date of a calendar month.
func MonthRange(year int, month time.Month) (start, end string, err error) {
	if month < time.January || month > time.December {
		return "", "", fmt.Errorf("invalid month %d", month)
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return FormatDate(first), FormatDate(last), nil
}

// DaysBetween counts calendar days from start to end inclusive. It returns 0
// when end is before start.
func DaysBetween(start, end string) (int, error) {
	s, err := ParseDate(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return 0, err
	}
	if e.Before(s) {
		return 0, nil
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}
