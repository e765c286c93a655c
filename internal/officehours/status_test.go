package officehours

import (
	"testing"
	"time"
)

func slot(day, start, end int) TimeSlot {
	return TimeSlot{Day: Classify(day), Start: At(start), End: At(end)}
}

func TestStatusOrdinarySlot(t *testing.T) {
	windows := [][2]int{{900, 1730}, {0, 1200}, {1300, 2359}, {830, 845}}
	times := []int{0, 1, 829, 830, 844, 845, 859, 900, 1159, 1200, 1259, 1300, 1729, 1730, 2000, 2358, 2359}

	for w := 0; w < DaysPerWeek; w++ {
		for _, win := range windows {
			s := slot(w, win[0], win[1])
			for _, now := range times {
				var want Status
				switch {
				case now < win[0]:
					want = StatusWillOpen
				case now < win[1]:
					want = StatusIsOpen
				default:
					want = StatusWasOpen
				}

				if got := s.Status(w, now); got != want {
					t.Errorf("slot %v on weekday %d at %04d: Status() = %v, want %v", s, w, now, got, want)
				}
			}
		}
	}
}

func TestStatusOvernightSlot(t *testing.T) {
	s := slot(1, 2200, 600)

	tests := []struct {
		name    string
		weekday int
		now     int
		want    Status
	}{
		{"Monday afternoon, not yet open", 1, 1500, StatusWillOpen},
		{"Monday late evening", 1, 2300, StatusIsOpen},
		{"Monday at opening", 1, 2200, StatusIsOpen},
		{"Tuesday after midnight", 2, 300, StatusIsOpen},
		{"Tuesday just before closing", 2, 559, StatusIsOpen},
		{"Tuesday morning after closing", 2, 700, StatusWasOpen},
		{"Wednesday is out of reach", 3, 300, StatusUndefined},
		{"Sunday is before the slot", 0, 2300, StatusUndefined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Status(tt.weekday, tt.now); got != tt.want {
				t.Errorf("Status(%d, %04d) = %v, want %v", tt.weekday, tt.now, got, tt.want)
			}
		})
	}
}

func TestStatusSaturdayCarriesIntoSunday(t *testing.T) {
	s := slot(6, 2000, 200)

	if got := s.Status(0, 100); got != StatusIsOpen {
		t.Errorf("Saturday slot on Sunday 01:00 = %v, want open", got)
	}
	if got := s.Status(0, 300); got != StatusWasOpen {
		t.Errorf("Saturday slot on Sunday 03:00 = %v, want was_open", got)
	}
}

func TestStatusAllDay(t *testing.T) {
	s := Normalize(RawSlot{Day: DayNumber(3), AllDay: true})

	for w := 0; w < DaysPerWeek; w++ {
		for _, now := range []int{0, 1, 600, 1200, 2359} {
			want := StatusUndefined
			if w == 3 {
				want = StatusIsOpen
			}
			if got := s.Status(w, now); got != want {
				t.Errorf("all-day slot on weekday %d at %04d = %v, want %v", w, now, got, want)
			}
		}
	}
}

func TestStatusTwentyFourHours(t *testing.T) {
	s := slot(2, 1000, 1000)

	if got := s.Status(2, 900); got != StatusWillOpen {
		t.Errorf("before opening = %v, want will_open", got)
	}
	if got := s.Status(2, 2300); got != StatusIsOpen {
		t.Errorf("evening = %v, want open", got)
	}
	if got := s.Status(3, 900); got != StatusIsOpen {
		t.Errorf("next morning = %v, want open", got)
	}
	if got := s.Status(3, 1000); got != StatusWasOpen {
		t.Errorf("next day at closing = %v, want was_open", got)
	}
}

func TestStatusClosedAllDay(t *testing.T) {
	s := TimeSlot{Day: Classify(4)}

	for _, now := range []int{0, 900, 1800, 2359} {
		if got := s.Status(4, now); got != StatusClosedAllDay {
			t.Errorf("closed slot at %04d = %v, want closed_all_day", now, got)
		}
	}
}

func TestStatusUntilMidnight(t *testing.T) {
	s := slot(5, 1800, 0)

	if got := s.Status(5, 2359); got != StatusIsOpen {
		t.Errorf("Status(5, 2359) = %v, want open", got)
	}
	if got := s.Status(6, 0); got != StatusUndefined {
		t.Errorf("Status(6, 0000) = %v, want undefined", got)
	}
}

func TestStatusSundayScenario(t *testing.T) {
	s := slot(0, 900, 1730)

	tests := []struct {
		weekday int
		now     int
		want    Status
	}{
		{0, 1000, StatusIsOpen},
		{0, 1900, StatusWasOpen},
		{0, 800, StatusWillOpen},
		{1, 1000, StatusUndefined},
	}

	for _, tt := range tests {
		if got := s.Status(tt.weekday, tt.now); got != tt.want {
			t.Errorf("Status(%d, %04d) = %v, want %v", tt.weekday, tt.now, got, tt.want)
		}
		if got := s.IsOpen(tt.weekday, tt.now); got != (tt.want == StatusIsOpen) {
			t.Errorf("IsOpen(%d, %04d) = %v", tt.weekday, tt.now, got)
		}
	}
}

func TestStatusHeadersAreUndefined(t *testing.T) {
	for _, s := range []TimeSlot{
		{Day: ExceptionHeader()},
		{Day: SeasonHeader(100)},
		{Day: NoDay(), Start: At(900), End: At(1700)},
	} {
		for w := 0; w < DaysPerWeek; w++ {
			if got := s.Status(w, 1200); got != StatusUndefined {
				t.Errorf("%v on weekday %d = %v, want undefined", s.Day.Kind(), w, got)
			}
		}
	}
}

func TestStatusSeasonDayUsesItsWeekday(t *testing.T) {
	s := TimeSlot{Day: SeasonDay(200, time.Sunday), Start: At(1000), End: At(1400)}

	if got := s.Status(0, 1200); got != StatusIsOpen {
		t.Errorf("seasonal Sunday on Sunday = %v, want open", got)
	}
	if got := s.Status(6, 1200); got != StatusUndefined {
		t.Errorf("seasonal Sunday on Saturday = %v, want undefined", got)
	}
}

func TestStatusAtExceptionDate(t *testing.T) {
	s := TimeSlot{Day: Classify(jan15), Start: At(2200), End: At(200)}

	tests := []struct {
		name string
		at   time.Time
		want Status
	}{
		{"Same date, evening", time.Date(2025, 1, 15, 23, 0, 0, 0, time.UTC), StatusIsOpen},
		{"Same date, morning", time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC), StatusWillOpen},
		{"Next date after midnight", time.Date(2025, 1, 16, 1, 0, 0, 0, time.UTC), StatusIsOpen},
		{"Next date after closing", time.Date(2025, 1, 16, 3, 0, 0, 0, time.UTC), StatusWasOpen},
		{"Same weekday, other week", time.Date(2025, 1, 22, 23, 0, 0, 0, time.UTC), StatusUndefined},
		{"Day before", time.Date(2025, 1, 14, 23, 0, 0, 0, time.UTC), StatusUndefined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.StatusAt(tt.at); got != tt.want {
				t.Errorf("StatusAt(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestStatusAtUsesWallClock(t *testing.T) {
	s := slot(3, 900, 1700)
	tokyo := time.FixedZone("JST", 9*3600)

	// 2025-01-15 02:00 UTC is Wednesday 11:00 in Tokyo.
	at := time.Date(2025, 1, 15, 2, 0, 0, 0, time.UTC)

	if got := s.StatusAt(at); got != StatusWillOpen {
		t.Errorf("StatusAt(UTC) = %v, want will_open", got)
	}
	if got := s.StatusAt(at.In(tokyo)); got != StatusIsOpen {
		t.Errorf("StatusAt(JST) = %v, want open", got)
	}
}

func TestStatusString(t *testing.T) {
	if StatusIsOpen.String() != "open" || StatusUndefined.String() != "undefined" {
		t.Errorf("unexpected status names: %v %v", StatusIsOpen, StatusUndefined)
	}
}
