package officehours

import (
	"time"

	"github.com/username/office-hours/pkg/dateutil"
)

// Season is a named, date-ranged week that overrides the regular week.
// ID 0 is the regular week itself.
type Season struct {
	ID   int
	Name string
	// From and To are calendar dates (UTC midnight); zero when not set
	From time.Time
	To   time.Time
}

// RegularWeek returns the pseudo-season holding the plain weekdays
func RegularWeek() Season {
	return Season{ID: 0}
}

// NewSeason reads a season from its header slot: the name is in the
// comment, the date range in the hours fields as date codes.
func NewSeason(header TimeSlot) Season {
	season := Season{
		ID:   header.Day.SeasonID(),
		Name: header.Comment,
	}
	if v, ok := header.Start.Get(); ok && v != 0 {
		season.From = dateutil.FromDateCode(v)
	}
	if v, ok := header.End.Get(); ok && v != 0 {
		season.To = dateutil.FromDateCode(v)
	}
	return season
}

// Header returns the header slot that stores the season
func (s Season) Header() TimeSlot {
	header := TimeSlot{Day: SeasonHeader(s.ID), Comment: s.Name}
	if !s.From.IsZero() {
		header.Start = At(dateutil.DateCode(s.From))
	}
	if !s.To.IsZero() {
		header.End = At(dateutil.DateCode(s.To))
	}
	return header
}

func (s Season) IsRegularWeek() bool { return s.ID == 0 }

// HasDates reports whether both ends of the date range are set
func (s Season) HasDates() bool {
	return !s.From.IsZero() && !s.To.IsZero()
}

// Covers reports whether the calendar date of t lies inside the season
func (s Season) Covers(t time.Time) bool {
	if !s.HasDates() {
		return false
	}
	day := dateutil.DateCode(t)
	return day >= dateutil.DateCode(s.From) && day <= dateutil.DateCode(s.To)
}

// InRange reports whether the season overlaps the window of day offsets
// [from, to] counted from the date of now. The regular week always matches.
func (s Season) InRange(now time.Time, from, to int) bool {
	if to < from || to < 0 {
		return false
	}
	if s.IsRegularWeek() {
		return true
	}
	if !s.HasDates() {
		return false
	}

	today := dateutil.DateCode(now)
	first := dateutil.AddDays(today, from)
	last := dateutil.AddDays(today, to)
	return dateutil.DateCode(s.From) <= last && dateutil.DateCode(s.To) >= first
}

// SeasonRecord builds the input record of a season header
func SeasonRecord(id int, name string, from, to time.Time) RawSlot {
	return RawSlot{
		Day:        DayNumber(id),
		StartHours: HHMM(dateutil.DateCode(from)),
		EndHours:   HHMM(dateutil.DateCode(to)),
		Comment:    name,
	}
}
