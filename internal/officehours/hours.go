package officehours

import "github.com/username/office-hours/pkg/dateutil"

// Hours is an optional packed HHMM time of day (930 = 09:30).
// The zero value is absent, which is distinct from midnight.
type Hours struct {
	value int
	valid bool
}

// At returns present hours for a packed HHMM value
func At(hhmm int) Hours {
	return Hours{value: hhmm, valid: true}
}

// NoHours returns absent hours
func NoHours() Hours {
	return Hours{}
}

// IsSet reports whether a value is present
func (h Hours) IsSet() bool { return h.valid }

// Value returns the packed value, or 0 when absent
func (h Hours) Value() int {
	if !h.valid {
		return 0
	}
	return h.value
}

// Get returns the packed value and whether it is present
func (h Hours) Get() (int, bool) { return h.value, h.valid }

// String formats present hours as "HH:MM" and absent hours as ""
func (h Hours) String() string {
	if !h.valid {
		return ""
	}
	return dateutil.FormatClock(h.value)
}
