// Package timeutil provides calendar-day helpers for streak tracking.
// All comparisons are by calendar date in the device's local timezone, not by
// elapsed hours: a completion at 23:59 followed by one at 00:01 the next day
// counts as two consecutive days.
// No external dependencies - uses only standard library.
package timeutil

import (
	"time"
)

// FormatDate is the canonical date format (YYYY-MM-DD) used in persisted
// streak records.
const FormatDate = "2006-01-02"

// FormatTimestamp is the ISO 8601 format used for envelope write timestamps.
const FormatTimestamp = "2006-01-02T15:04:05.000Z"

// Timestamp returns the current time as an ISO 8601 UTC string, e.g.
// "2024-05-01T12:30:45.123Z". Matches the format stored alongside persisted
// envelopes.
func Timestamp() string {
	return time.Now().UTC().Format(FormatTimestamp)
}

// DateString formats t as a calendar-date string in t's location.
func DateString(t time.Time) string {
	return t.Format(FormatDate)
}

// TodayString returns today's date string in the local timezone.
func TodayString() string {
	return DateString(time.Now())
}

// YesterdayString returns yesterday's date string in the local timezone.
func YesterdayString() string {
	return DateString(time.Now().AddDate(0, 0, -1))
}

// PreviousDay returns the date string of the day before the given date
// string. Malformed input is returned unchanged so that comparisons against
// it simply fail.
func PreviousDay(date string) string {
	t, err := time.ParseInLocation(FormatDate, date, time.Local)
	if err != nil {
		return date
	}
	return DateString(t.AddDate(0, 0, -1))
}

// ParseDate parses a YYYY-MM-DD date string in the local timezone.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(FormatDate, value, time.Local)
}

// StartOfDay returns the start of the day (00:00:00) in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsSameDay checks if two times fall on the same calendar day.
func IsSameDay(t1, t2 time.Time) bool {
	return DateString(t1) == DateString(t2)
}

// IsConsecutiveDay checks if t2 is the calendar day after t1.
func IsConsecutiveDay(t1, t2 time.Time) bool {
	return IsSameDay(t1.AddDate(0, 0, 1), t2)
}

// DaysBetween calculates the number of whole calendar days between two times.
func DaysBetween(t1, t2 time.Time) int {
	d1 := StartOfDay(t1)
	d2 := StartOfDay(t2)
	days := int(d2.Sub(d1).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}
