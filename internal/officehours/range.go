package officehours

import (
	"time"

	"github.com/username/office-hours/pkg/dateutil"
)

// InRange reports whether the slot applies within the window of day
// offsets [from, to] counted from the date of now (0 = today).
// Exception rows use the date-based rule, all other rows the weekday rule.
func (s TimeSlot) InRange(now time.Time, from, to int) bool {
	if s.Day.IsException() {
		return s.InExceptionRange(now, from, to)
	}
	return s.InWeekdayRange(from, to)
}

// InWeekdayRange reports whether the slot's weekday lies within [from, to].
// Values 0..6 are weekdays already; a larger to is folded into weekday space.
// A slot of the weekday before from also matches when it runs past midnight.
func (s TimeSlot) InWeekdayRange(from, to int) bool {
	if to < from || to < 0 {
		return false
	}

	day := s.Day.WeekdayNumber()
	if day < 0 {
		return false
	}
	if to-from >= DaysPerWeek-1 {
		return true
	}

	if to >= DaysPerWeek {
		from, to = mod7(from), mod7(to)
	}

	if from <= to {
		if day >= from && day <= to {
			return true
		}
	} else if day >= from || day <= to {
		// window wraps past Saturday
		return true
	}

	// Open yesterday evening, possibly still open. Only the day is checked
	// here, the time is up to IsOpenAt.
	return day == mod7(from+DaysPerWeek-1) && s.IsOvernight()
}

// InExceptionRange reports whether an exception date falls in the window.
// to == 0 leaves the window unrestricted. Yesterday's exception only counts
// while it is still open after midnight; older dates never match.
func (s TimeSlot) InExceptionRange(now time.Time, from, to int) bool {
	if to < from || to < 0 {
		return false
	}
	if to == 0 {
		return true
	}

	today := dateutil.DateCode(now)
	yesterday := dateutil.AddDays(today, -1)
	last := dateutil.AddDays(today, from+to)
	day := s.Day.Code()

	switch {
	case day < yesterday:
		return false
	case day == yesterday:
		return day <= last && s.IsOpenAt(now)
	default:
		return day <= last
	}
}

func mod7(n int) int {
	return ((n % DaysPerWeek) + DaysPerWeek) % DaysPerWeek
}
