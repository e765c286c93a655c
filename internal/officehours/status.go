package officehours

import (
	"time"

	"github.com/username/office-hours/pkg/dateutil"
)

// Status is the opening status of a time slot at a given instant
type Status int

const (
	StatusUndefined    Status = -1
	StatusClosedAllDay Status = 0
	StatusIsOpen       Status = 1
	StatusWasOpen      Status = 2
	StatusWillOpen     Status = 3
)

func (s Status) String() string {
	switch s {
	case StatusClosedAllDay:
		return "closed_all_day"
	case StatusIsOpen:
		return "open"
	case StatusWasOpen:
		return "was_open"
	case StatusWillOpen:
		return "will_open"
	default:
		return "undefined"
	}
}

// Status computes the slot's status for a weekday (0=Sunday) and a packed
// HHMM time. Slots of the previous weekday are evaluated for their
// after-midnight carry-over; slots of any other weekday are Undefined.
func (s TimeSlot) Status(nowWeekday, now int) Status {
	day := s.Day.WeekdayNumber()
	if day < 0 {
		return StatusUndefined
	}

	switch day {
	case (nowWeekday + DaysPerWeek - 1) % DaysPerWeek:
		return s.carryOverStatus(now)
	case nowWeekday:
		return s.todayStatus(now)
	default:
		return StatusUndefined
	}
}

// carryOverStatus evaluates yesterday's slot. Only slots that run past
// midnight reach into today; any other slot of yesterday is Undefined.
func (s TimeSlot) carryOverStatus(now int) Status {
	start, end := s.Start.Value(), s.End.Value()
	if start < end || end == 0 {
		return StatusUndefined
	}
	if end > now {
		return StatusIsOpen
	}
	return StatusWasOpen
}

func (s TimeSlot) todayStatus(now int) Status {
	start, end := s.Start.Value(), s.End.Value()

	switch {
	case s.IsClosedAllDay():
		return StatusClosedAllDay
	case start < end && end <= now:
		return StatusWasOpen
	case start > now:
		return StatusWillOpen
	case start > end, // until after midnight
		end == 0, // until midnight
		start == end && s.Start.IsSet(), // 24 hours
		start < end && end > now:
		return StatusIsOpen
	default:
		return StatusUndefined
	}
}

// IsOpen reports whether Status is StatusIsOpen
func (s TimeSlot) IsOpen(nowWeekday, now int) bool {
	return s.Status(nowWeekday, now) == StatusIsOpen
}

// StatusAt evaluates the slot at an instant, using the wall clock of t.
// Exception dates only apply on their own date and, for the overnight
// carry-over, on the following date.
func (s TimeSlot) StatusAt(t time.Time) Status {
	now := dateutil.PackedClock(t)

	if s.Day.IsExceptionDate() {
		today := dateutil.DateCode(t)
		switch s.Day.Code() {
		case today:
			return s.todayStatus(now)
		case dateutil.AddDays(today, -1):
			return s.carryOverStatus(now)
		default:
			return StatusUndefined
		}
	}

	return s.Status(int(t.Weekday()), now)
}

// IsOpenAt reports whether StatusAt is StatusIsOpen
func (s TimeSlot) IsOpenAt(t time.Time) bool {
	return s.StatusAt(t) == StatusIsOpen
}
