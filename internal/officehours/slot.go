package officehours

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/username/office-hours/pkg/dateutil"
)

var (
	// ErrInvalidDay is reported when a day can be neither a number nor a date
	ErrInvalidDay = errors.New("invalid day")
	// ErrInvalidHours is reported when a time of day cannot be packed as HHMM
	ErrInvalidHours = errors.New("invalid hours")
)

// RawDay is the loosely typed day of an input record: a day code, a numeric
// string or a "yyyy-mm-dd" date. The zero value is absent.
type RawDay struct {
	text string
	set  bool
}

// DayNumber returns a raw day holding a day code
func DayNumber(code int) RawDay {
	return RawDay{text: strconv.Itoa(code), set: true}
}

// DayText returns a raw day holding text as submitted
func DayText(s string) RawDay {
	return RawDay{text: s, set: true}
}

func (d RawDay) IsSet() bool { return d.set }

func (d RawDay) String() string { return d.text }

func (d *RawDay) UnmarshalJSON(b []byte) error {
	text, set, err := scalarText(b)
	if err != nil {
		return fmt.Errorf("day: %w", err)
	}
	d.text, d.set = text, set
	return nil
}

func (d RawDay) MarshalJSON() ([]byte, error) {
	return marshalScalar(d.text, d.set)
}

// RawHours is the loosely typed time of day of an input record: packed HHMM,
// a numeric string, an "HH:MM" clock string, or the {"time": "HH:MM"} shape
// of HTML5 time inputs. The zero value is absent.
type RawHours struct {
	text string
	set  bool
}

// HHMM returns raw hours holding a packed value
func HHMM(hhmm int) RawHours {
	return RawHours{text: strconv.Itoa(hhmm), set: true}
}

// Clock returns raw hours holding a clock string such as "19:30"
func Clock(s string) RawHours {
	return RawHours{text: s, set: true}
}

// ClockOf returns raw hours for the wall-clock time of t
func ClockOf(t time.Time) RawHours {
	return HHMM(dateutil.PackedClock(t))
}

func (h RawHours) IsSet() bool { return h.set }

// IsBlank reports whether no usable time was submitted
func (h RawHours) IsBlank() bool {
	return !h.set || strings.TrimSpace(h.text) == ""
}

func (h RawHours) String() string { return h.text }

func (h *RawHours) UnmarshalJSON(b []byte) error {
	var wrapped struct {
		Time *string `json:"time"`
	}
	if len(b) > 0 && b[0] == '{' {
		if err := json.Unmarshal(b, &wrapped); err != nil {
			return fmt.Errorf("hours: %w", err)
		}
		if wrapped.Time == nil {
			h.text, h.set = "", false
			return nil
		}
		h.text, h.set = *wrapped.Time, true
		return nil
	}

	text, set, err := scalarText(b)
	if err != nil {
		return fmt.Errorf("hours: %w", err)
	}
	h.text, h.set = text, set
	return nil
}

func (h RawHours) MarshalJSON() ([]byte, error) {
	return marshalScalar(h.text, h.set)
}

// RawSlot is one input record as stored or submitted
type RawSlot struct {
	Day        RawDay   `json:"day"`
	DayDelta   int      `json:"day_delta,omitempty"`
	AllDay     bool     `json:"all_day,omitempty"`
	StartHours RawHours `json:"starthours"`
	EndHours   RawHours `json:"endhours"`
	Comment    string   `json:"comment,omitempty"`
	// Time is the generic time field some widgets submit instead of a day
	Time RawHours `json:"time"`
}

// TimeSlot is one canonical opening interval
type TimeSlot struct {
	Day      Day
	DayDelta int
	AllDay   bool
	Start    Hours
	End      Hours
	Comment  string
}

// IsOvernight reports whether the slot closes after midnight
func (s TimeSlot) IsOvernight() bool {
	return s.Start.Value() > s.End.Value()
}

// IsClosedAllDay reports whether both hours are absent
func (s TimeSlot) IsClosedAllDay() bool {
	return !s.Start.IsSet() && !s.End.IsSet()
}

// IsEmpty reports whether the slot should be dropped before evaluation
func (s TimeSlot) IsEmpty() bool {
	return IsEmpty(s.Raw())
}

// Raw converts the slot back into an input record
func (s TimeSlot) Raw() RawSlot {
	raw := RawSlot{
		DayDelta: s.DayDelta,
		AllDay:   s.AllDay,
		Comment:  s.Comment,
	}
	if s.Day.IsSet() {
		raw.Day = DayNumber(s.Day.Code())
	} else {
		raw.Day = DayText("")
	}
	if v, ok := s.Start.Get(); ok {
		raw.StartHours = HHMM(v)
	}
	if v, ok := s.End.Get(); ok {
		raw.EndHours = HHMM(v)
	}
	return raw
}

func (s TimeSlot) String() string {
	switch {
	case s.Day.IsExceptionHeader():
		return s.Day.Label()
	case s.IsClosedAllDay():
		return fmt.Sprintf("%s: closed", s.Day.Label())
	case s.AllDay:
		return fmt.Sprintf("%s: all day", s.Day.Label())
	default:
		return fmt.Sprintf("%s: %s-%s", s.Day.Label(), s.Start, s.End)
	}
}

// Normalize turns an input record into a canonical TimeSlot. It never fails:
// input that cannot be coerced yields the canonical empty row.
func Normalize(raw RawSlot) TimeSlot {
	slot, _ := normalize(raw)
	return slot
}

// normalize is Normalize plus the reason a record was coerced, for logging
func normalize(raw RawSlot) (TimeSlot, error) {
	if !raw.Day.IsSet() {
		return TimeSlot{Day: NoDay()}, nil
	}

	day, err := parseDay(raw.Day)
	if err != nil {
		return TimeSlot{Day: NoDay()}, err
	}
	if day.IsExceptionHeader() {
		return TimeSlot{Day: day}, nil
	}

	slot := TimeSlot{
		Day:      day,
		DayDelta: raw.DayDelta,
		Comment:  raw.Comment,
	}

	// Season headers keep their date range in the hours fields.
	if day.IsSeasonHeader() {
		slot.Start, err = parseSeasonDate(raw.StartHours)
		if err != nil {
			return slot, err
		}
		slot.End, err = parseSeasonDate(raw.EndHours)
		return slot, err
	}

	var errs []error
	start, err := parseHours(raw.StartHours)
	if err != nil {
		errs = append(errs, fmt.Errorf("starthours: %w", err))
	}
	end, err := parseHours(raw.EndHours)
	if err != nil {
		errs = append(errs, fmt.Errorf("endhours: %w", err))
	}

	switch {
	case raw.AllDay:
		slot.AllDay = true
		start, end = At(0), At(0)
	case start.IsSet() && end.IsSet() && start.Value() == 0 && end.Value() == 0:
		slot.AllDay = true
	}
	slot.Start, slot.End = start, end

	return slot, errors.Join(errs...)
}

// IsEmpty reports whether an input record carries nothing worth keeping.
// The first slot of an exception date is never empty: it means "closed".
func IsEmpty(raw RawSlot) bool {
	if !raw.Day.IsSet() && !raw.Time.IsSet() {
		return true
	}
	if raw.AllDay {
		return false
	}

	if raw.Day.IsSet() {
		if day, err := parseDay(raw.Day); err == nil && day.IsExceptionDate() && raw.DayDelta == 0 {
			return false
		}
		if raw.StartHours.IsBlank() && raw.EndHours.IsBlank() && raw.Comment == "" {
			return true
		}
	}

	return false
}

// parseDay resolves a raw day. Blank text is a day-less row.
func parseDay(raw RawDay) (Day, error) {
	text := strings.TrimSpace(raw.text)
	if text == "" {
		return NoDay(), nil
	}
	if code, err := strconv.Atoi(text); err == nil {
		return Classify(code), nil
	}
	date, err := dateutil.ParseDate(text)
	if err != nil {
		return NoDay(), fmt.Errorf("%w: %v", ErrInvalidDay, err)
	}
	return ExceptionDate(date), nil
}

func parseHours(raw RawHours) (Hours, error) {
	if raw.IsBlank() {
		return NoHours(), nil
	}
	text := strings.TrimSpace(raw.text)

	if n, err := strconv.Atoi(text); err == nil {
		if n == 2400 {
			return At(0), nil
		}
		if n < 0 || n > 2359 || n%100 > 59 {
			return NoHours(), fmt.Errorf("%w: %d", ErrInvalidHours, n)
		}
		return At(n), nil
	}

	hhmm, err := dateutil.ParseClock(text)
	if err != nil {
		return NoHours(), fmt.Errorf("%w: %v", ErrInvalidHours, err)
	}
	return At(hhmm), nil
}

func parseSeasonDate(raw RawHours) (Hours, error) {
	if raw.IsBlank() {
		return NoHours(), nil
	}
	text := strings.TrimSpace(raw.text)
	if code, err := strconv.Atoi(text); err == nil {
		return At(code), nil
	}
	date, err := dateutil.ParseDate(text)
	if err != nil {
		return NoHours(), fmt.Errorf("%w: season date: %v", ErrInvalidDay, err)
	}
	return At(dateutil.DateCode(date)), nil
}

// scalarText reads a JSON null, number or string as text
func scalarText(b []byte) (string, bool, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return "", false, err
	}
	switch x := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return x, true, nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true, nil
	case bool:
		return "", false, fmt.Errorf("unexpected boolean %v", x)
	default:
		return "", false, fmt.Errorf("unexpected value of type %T", x)
	}
}

func marshalScalar(text string, set bool) ([]byte, error) {
	if !set {
		return []byte("null"), nil
	}
	if n, err := strconv.Atoi(text); err == nil {
		return []byte(strconv.Itoa(n)), nil
	}
	return json.Marshal(text)
}
