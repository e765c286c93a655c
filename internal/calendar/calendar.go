package calendar

import (
	"time"

	"github.com/username/office-hours/internal/officehours"
)

// Holiday is one date on which regular hours do not apply
type Holiday struct {
	Date time.Time
	// Start and End are packed HHMM; both absent means closed all day
	Start officehours.Hours
	End   officehours.Hours
	Note  string
}

// IsClosed reports whether the subject is closed for the whole holiday
func (h Holiday) IsClosed() bool {
	return !h.Start.IsSet() && !h.End.IsSet()
}

// Calendar interface for looking up holidays
type Calendar interface {
	// Holidays returns the holidays between from and to, both dates included
	Holidays(from, to time.Time) ([]Holiday, error)
}

// ExceptionRecords turns holidays into exception-day input records. Several
// holidays on one date become consecutive slots of that date.
func ExceptionRecords(holidays []Holiday) []officehours.RawSlot {
	records := make([]officehours.RawSlot, 0, len(holidays))
	delta := make(map[string]int)

	for _, h := range holidays {
		date := h.Date.Format("2006-01-02")
		record := officehours.RawSlot{
			Day:      officehours.DayText(date),
			DayDelta: delta[date],
			Comment:  h.Note,
		}
		if v, ok := h.Start.Get(); ok {
			record.StartHours = officehours.HHMM(v)
		}
		if v, ok := h.End.Get(); ok {
			record.EndHours = officehours.HHMM(v)
		}
		delta[date]++
		records = append(records, record)
	}

	return records
}

// Merge adds holiday records to a stored value. Dates that already carry
// exception slots are left alone, and an exceptions header is added when
// the value has none. It returns the new value and the number of
// holiday records added.
func Merge(records []officehours.RawSlot, holidays []Holiday) ([]officehours.RawSlot, int) {
	schedule := officehours.NewSchedule(records)

	existing := make(map[int]struct{})
	for _, slot := range schedule.Index().ExceptionDays {
		existing[slot.Day.Code()] = struct{}{}
	}

	merged := append([]officehours.RawSlot(nil), records...)
	if len(schedule.Index().ExceptionHeader) == 0 {
		merged = append(merged, officehours.RawSlot{Day: officehours.DayNumber(officehours.ExceptionHeaderCode)})
	}

	added := 0
	for _, record := range ExceptionRecords(holidays) {
		day := officehours.Normalize(record).Day
		if _, ok := existing[day.Code()]; ok {
			continue
		}
		merged = append(merged, record)
		added++
	}

	if added == 0 {
		return records, 0
	}
	return merged, added
}
