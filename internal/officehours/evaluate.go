package officehours

import (
	"time"

	"github.com/username/office-hours/pkg/dateutil"
)

// SlotsForDate returns the slots that decide the given calendar date, by
// precedence: exception slots of that date, else the weekday slots of the
// season covering the date, else the regular weekday slots. A covering
// season without slots on that weekday leaves the date closed.
// Empty slots are never returned.
func (s *Schedule) SlotsForDate(date time.Time) []TimeSlot {
	idx := s.Index()

	code := dateutil.DateCode(date)
	var exceptions []TimeSlot
	for _, slot := range idx.ExceptionDays {
		if slot.Day.Code() == code && !slot.IsEmpty() {
			exceptions = append(exceptions, slot)
		}
	}
	if len(exceptions) > 0 {
		return exceptions
	}

	weekday := int(date.Weekday())
	if season, ok := s.activeSeason(date); ok {
		return filterWeekday(idx.SeasonDays, weekday, func(slot TimeSlot) bool {
			return slot.Day.SeasonID() == season.ID
		})
	}
	return filterWeekday(idx.Weekdays, weekday, nil)
}

// activeSeason picks the covering season that started most recently
func (s *Schedule) activeSeason(date time.Time) (Season, bool) {
	var (
		active Season
		found  bool
	)
	for _, season := range s.GetSeasons(SeasonQuery{}) {
		if !season.Covers(date) {
			continue
		}
		if !found || season.From.After(active.From) {
			active, found = season, true
		}
	}
	return active, found
}

func filterWeekday(slots []TimeSlot, weekday int, keep func(TimeSlot) bool) []TimeSlot {
	var out []TimeSlot
	for _, slot := range slots {
		if slot.Day.WeekdayNumber() != weekday || slot.IsEmpty() {
			continue
		}
		if keep != nil && !keep(slot) {
			continue
		}
		out = append(out, slot)
	}
	return out
}

// Evaluation is the combined status of a schedule at one instant
type Evaluation struct {
	Status Status
	// Current is the open slot, when Status is StatusIsOpen
	Current *TimeSlot
	// Today holds the slots that decide today's date
	Today []TimeSlot
}

// Evaluate computes the schedule's status at t. The subject is open when
// any of today's slots, or any of yesterday's slots running past midnight,
// is open. The result is never StatusUndefined.
func (s *Schedule) Evaluate(t time.Time) Evaluation {
	t = s.now(t)

	today := s.SlotsForDate(t)
	yesterday := s.SlotsForDate(t.AddDate(0, 0, -1))
	eval := Evaluation{Status: StatusClosedAllDay, Today: today}

	for _, slot := range yesterday {
		if slot.IsOpenAt(t) {
			slot := slot
			eval.Status, eval.Current = StatusIsOpen, &slot
			return eval
		}
	}

	var willOpen, wasOpen bool
	for _, slot := range today {
		switch slot.StatusAt(t) {
		case StatusIsOpen:
			slot := slot
			eval.Status, eval.Current = StatusIsOpen, &slot
			return eval
		case StatusWillOpen:
			willOpen = true
		case StatusWasOpen:
			wasOpen = true
		}
	}

	switch {
	case willOpen:
		eval.Status = StatusWillOpen
	case wasOpen:
		eval.Status = StatusWasOpen
	}
	return eval
}

// StatusAt returns the combined status at t
func (s *Schedule) StatusAt(t time.Time) Status {
	return s.Evaluate(t).Status
}

// IsOpen reports whether any applicable slot is open at t
func (s *Schedule) IsOpen(t time.Time) bool {
	return s.Evaluate(t).Status == StatusIsOpen
}

// CurrentSlot returns the slot that is open at t
func (s *Schedule) CurrentSlot(t time.Time) (TimeSlot, bool) {
	eval := s.Evaluate(t)
	if eval.Current == nil {
		return TimeSlot{}, false
	}
	return *eval.Current, true
}

// NextOpenDay returns the first date, at most horizon days after t, with
// a slot that still opens. Today only counts while a slot is open or will
// open later.
func (s *Schedule) NextOpenDay(t time.Time, horizon int) (time.Time, []TimeSlot, bool) {
	t = s.now(t)
	start := dateutil.StartOfDay(t)

	for i := 0; i <= horizon; i++ {
		date := start.AddDate(0, 0, i)
		var open []TimeSlot
		for _, slot := range s.SlotsForDate(date) {
			if slot.IsClosedAllDay() {
				continue
			}
			if i == 0 {
				status := slot.StatusAt(t)
				if status != StatusIsOpen && status != StatusWillOpen {
					continue
				}
			}
			open = append(open, slot)
		}
		if len(open) > 0 {
			return date, open, true
		}
	}
	return time.Time{}, nil, false
}
