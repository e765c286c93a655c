package officehours

import (
	"strconv"
	"time"

	"github.com/username/office-hours/pkg/dateutil"
)

const (
	// SeasonIDFactor separates season ids; season 300 owns day codes 301..307
	SeasonIDFactor = 100

	// ExceptionHeaderCode is the day code of the exceptions caption row.
	// Every real exception date code is either above it or negative.
	ExceptionHeaderCode = 1_000_000

	// DaysPerWeek is the number of weekdays in a regular or seasonal week
	DaysPerWeek = 7
)

// DayKind discriminates what a day code stands for
type DayKind int

const (
	DayKindNone DayKind = iota // new, empty row without a day
	DayKindWeekday
	DayKindSeasonHeader
	DayKindSeasonWeekday
	DayKindExceptionHeader
	DayKindExceptionDate
)

var dayKindNames = map[DayKind]string{
	DayKindNone:            "none",
	DayKindWeekday:         "weekday",
	DayKindSeasonHeader:    "season_header",
	DayKindSeasonWeekday:   "season_weekday",
	DayKindExceptionHeader: "exception_header",
	DayKindExceptionDate:   "exception_date",
}

func (k DayKind) String() string {
	if name, ok := dayKindNames[k]; ok {
		return name
	}
	return "DayKind(" + strconv.Itoa(int(k)) + ")"
}

// Day is a classified day code. Build it with Classify (or NoDay for an
// empty row); the kind is fixed at construction and never re-derived.
type Day struct {
	kind DayKind
	code int
}

// NoDay is the day of a new, empty row
func NoDay() Day {
	return Day{kind: DayKindNone}
}

// Classify interprets a day code. It is total: every integer maps to
// exactly one kind.
func Classify(code int) Day {
	switch {
	case code >= 0 && code < DaysPerWeek:
		return Day{kind: DayKindWeekday, code: code}
	case code == ExceptionHeaderCode:
		return Day{kind: DayKindExceptionHeader, code: code}
	case code >= SeasonIDFactor && code < ExceptionHeaderCode:
		if code%SeasonIDFactor == 0 {
			return Day{kind: DayKindSeasonHeader, code: code}
		}
		return Day{kind: DayKindSeasonWeekday, code: code}
	default:
		return Day{kind: DayKindExceptionDate, code: code}
	}
}

// Weekday returns the day for a regular weekday (0=Sunday .. 6=Saturday)
func Weekday(wd time.Weekday) Day {
	return Classify(int(wd))
}

// SeasonDay returns the day code of a weekday inside a season.
// Sunday is stored as offset 7 so it never collides with the season header.
func SeasonDay(seasonID int, wd time.Weekday) Day {
	offset := int(wd)
	if offset == 0 {
		offset = DaysPerWeek
	}
	return Classify(seasonID + offset)
}

// SeasonHeader returns the header day of a season
func SeasonHeader(seasonID int) Day {
	return Classify(seasonID)
}

// ExceptionHeader returns the exceptions caption day
func ExceptionHeader() Day {
	return Classify(ExceptionHeaderCode)
}

// ExceptionDate returns the day for the calendar date of t
func ExceptionDate(t time.Time) Day {
	return Classify(dateutil.DateCode(t))
}

func (d Day) Kind() DayKind { return d.kind }

// Code returns the raw day code. Only storage and sorting should need it.
func (d Day) Code() int { return d.code }

// IsSet reports whether the day carries a code at all
func (d Day) IsSet() bool { return d.kind != DayKindNone }

func (d Day) IsWeekday() bool         { return d.kind == DayKindWeekday }
func (d Day) IsSeasonHeader() bool    { return d.kind == DayKindSeasonHeader }
func (d Day) IsSeasonDay() bool       { return d.kind == DayKindSeasonWeekday }
func (d Day) IsExceptionHeader() bool { return d.kind == DayKindExceptionHeader }
func (d Day) IsExceptionDate() bool   { return d.kind == DayKindExceptionDate }

// IsException reports whether the day belongs to the exceptions block
func (d Day) IsException() bool {
	return d.kind == DayKindExceptionHeader || d.kind == DayKindExceptionDate
}

// SeasonID returns the owning season: 0 for regular weekdays and empty rows,
// the season id for season headers and seasonal weekdays, and -1 for
// exception rows, which belong to no season.
func (d Day) SeasonID() int {
	switch d.kind {
	case DayKindSeasonHeader, DayKindSeasonWeekday:
		return d.code - d.code%SeasonIDFactor
	case DayKindExceptionHeader, DayKindExceptionDate:
		return -1
	default:
		return 0
	}
}

// WeekdayNumber strips season and exception encoding down to 0..6.
// Headers and empty rows have no weekday and return -1.
func (d Day) WeekdayNumber() int {
	switch d.kind {
	case DayKindWeekday:
		return d.code
	case DayKindSeasonWeekday:
		return (d.code % SeasonIDFactor) % DaysPerWeek
	case DayKindExceptionDate:
		return int(dateutil.FromDateCode(d.code).Weekday())
	default:
		return -1
	}
}

// Date returns the calendar date of an exception day (UTC midnight)
func (d Day) Date() (time.Time, bool) {
	if d.kind != DayKindExceptionDate {
		return time.Time{}, false
	}
	return dateutil.FromDateCode(d.code), true
}

// Label returns a plain, untranslated label: the weekday name, the ISO date
// of an exception, "Exceptions" for the caption row or "Season <id>".
func (d Day) Label() string {
	switch d.kind {
	case DayKindWeekday, DayKindSeasonWeekday:
		return time.Weekday(d.WeekdayNumber()).String()
	case DayKindExceptionDate:
		date, _ := d.Date()
		return date.Format(dateutil.DateLayout)
	case DayKindExceptionHeader:
		return "Exceptions"
	case DayKindSeasonHeader:
		return "Season " + strconv.Itoa(d.code)
	default:
		return ""
	}
}

func (d Day) String() string {
	if d.kind == DayKindNone {
		return ""
	}
	return strconv.Itoa(d.code)
}
