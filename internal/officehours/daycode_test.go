package officehours

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		want    DayKind
		season  int
		weekday int
	}{
		{"Sunday", 0, DayKindWeekday, 0, 0},
		{"Saturday", 6, DayKindWeekday, 0, 6},
		{"Season header", 300, DayKindSeasonHeader, 300, -1},
		{"Season Monday", 301, DayKindSeasonWeekday, 300, 1},
		{"Season Saturday", 306, DayKindSeasonWeekday, 300, 6},
		{"Season Sunday", 307, DayKindSeasonWeekday, 300, 0},
		{"Exceptions header", ExceptionHeaderCode, DayKindExceptionHeader, -1, -1},
		{"Exception date (Wednesday)", 1736899200, DayKindExceptionDate, -1, 3},
		{"Below season range", 42, DayKindExceptionDate, -1, 4},
		{"Negative code", -86400, DayKindExceptionDate, -1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := Classify(tt.code)

			if day.Kind() != tt.want {
				t.Errorf("Classify(%d).Kind() = %v, want %v", tt.code, day.Kind(), tt.want)
			}
			if got := day.SeasonID(); got != tt.season {
				t.Errorf("Classify(%d).SeasonID() = %d, want %d", tt.code, got, tt.season)
			}
			if got := day.WeekdayNumber(); got != tt.weekday {
				t.Errorf("Classify(%d).WeekdayNumber() = %d, want %d", tt.code, got, tt.weekday)
			}
			if day.Code() != tt.code {
				t.Errorf("Classify(%d).Code() = %d", tt.code, day.Code())
			}
		})
	}
}

func TestClassifyIsTotal(t *testing.T) {
	codes := []int{-1 << 40, -1, 0, 6, 7, 99, 100, 199, 999_999, ExceptionHeaderCode, ExceptionHeaderCode + 1, 1 << 40}

	for _, code := range codes {
		kind := Classify(code).Kind()
		if kind == DayKindNone {
			t.Errorf("Classify(%d) returned no kind", code)
		}
	}
}

func TestDayConstructors(t *testing.T) {
	if got := SeasonDay(200, time.Sunday).Code(); got != 207 {
		t.Errorf("SeasonDay(200, Sunday) = %d, want 207", got)
	}
	if got := SeasonDay(200, time.Tuesday).Code(); got != 202 {
		t.Errorf("SeasonDay(200, Tuesday) = %d, want 202", got)
	}
	if !SeasonHeader(500).IsSeasonHeader() {
		t.Error("SeasonHeader(500) is not a season header")
	}
	if !ExceptionHeader().IsExceptionHeader() {
		t.Error("ExceptionHeader() is not the exceptions header")
	}

	day := ExceptionDate(time.Date(2025, 1, 15, 18, 0, 0, 0, time.UTC))
	date, ok := day.Date()
	if !ok || !date.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ExceptionDate().Date() = %v, %v", date, ok)
	}
	if day.Label() != "2025-01-15" {
		t.Errorf("Label() = %q, want 2025-01-15", day.Label())
	}
	if Weekday(time.Friday).Label() != "Friday" {
		t.Errorf("Weekday(Friday).Label() = %q", Weekday(time.Friday).Label())
	}
	if NoDay().IsSet() {
		t.Error("NoDay() must not be set")
	}
}
