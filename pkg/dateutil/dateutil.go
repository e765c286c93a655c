package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date layout used for exception days and seasons
const DateLayout = "2006-01-02"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// EndOfDay returns the end of the day (23:59:59.999) for the given date
func EndOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 999999999, date.Location())
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// DateCode returns the day-granularity timestamp of the calendar date of t:
// the Unix seconds of that date's midnight in UTC. The wall-clock date of t
// is used as is, so the code does not depend on t's location.
func DateCode(t time.Time) int {
	return int(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix())
}

// FromDateCode returns the calendar date (UTC midnight) for a date code
func FromDateCode(code int) time.Time {
	return time.Unix(int64(code), 0).UTC()
}

// AddDays shifts a date code by n calendar days
func AddDays(code, n int) int {
	return DateCode(FromDateCode(code).AddDate(0, 0, n))
}

// PackedClock returns the wall-clock time of t as packed HHMM (18:30 -> 1830)
func PackedClock(t time.Time) int {
	return t.Hour()*100 + t.Minute()
}

// ParseClock parses "HH:MM", "HH:MM:SS" or "HHMM" into packed HHMM
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05", "1504"} {
		if t, err := time.Parse(layout, s); err == nil {
			return PackedClock(t), nil
		}
	}
	// 24:00 is a common way to say "until midnight".
	if s == "24:00" || s == "2400" {
		return 0, nil
	}
	return 0, fmt.Errorf("invalid time of day: %q", s)
}

// FormatClock formats packed HHMM as "HH:MM"
func FormatClock(hhmm int) string {
	return fmt.Sprintf("%02d:%02d", hhmm/100, hhmm%100)
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		DateLayout,
		"02.01.2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05-0700",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", dateStr)
}

// Yesterday returns the start of the day before the given date
func Yesterday(date time.Time) time.Time {
	return StartOfDay(date.AddDate(0, 0, -1))
}
