package officehours

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Schedule owns the full slot list of one subject. The derived Index is
// built lazily from the current value and dropped by SetValue.
//
// SetValue must not run concurrently with anything else; once the value
// is set, concurrent reads are safe.
type Schedule struct {
	slots  []TimeSlot
	logger *zap.Logger
	clock  func(time.Time) time.Time

	derived *derivedIndex
}

type derivedIndex struct {
	once  sync.Once
	index *Index
}

// Option configures a Schedule
type Option func(*Schedule)

// WithLogger sets the logger used to report coerced records
func WithLogger(logger *zap.Logger) Option {
	return func(s *Schedule) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets a hook that adjusts every instant before evaluation,
// e.g. to move it into the subject's time zone
func WithClock(alter func(time.Time) time.Time) Option {
	return func(s *Schedule) {
		s.clock = alter
	}
}

// InLocation is a clock hook that moves instants into loc
func InLocation(loc *time.Location) func(time.Time) time.Time {
	return func(t time.Time) time.Time {
		return t.In(loc)
	}
}

// NewSchedule normalizes records into a schedule
func NewSchedule(records []RawSlot, opts ...Option) *Schedule {
	s := &Schedule{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.SetValue(records)
	return s
}

// SetValue replaces every slot and invalidates the derived index
func (s *Schedule) SetValue(records []RawSlot) {
	slots := make([]TimeSlot, 0, len(records))
	for i, raw := range records {
		slot, err := normalize(raw)
		if err != nil {
			s.logger.Warn("Record coerced during normalization",
				zap.Int("index", i),
				zap.String("day", raw.Day.String()),
				zap.Error(err))
		}
		slots = append(slots, slot)
	}

	s.slots = slots
	s.derived = &derivedIndex{}

	s.logger.Debug("Schedule value set",
		zap.Int("records", len(records)))
}

// Slots returns a copy of the canonical slots, in stored order
func (s *Schedule) Slots() []TimeSlot {
	return append([]TimeSlot(nil), s.slots...)
}

// Records returns the slots as input records, ready for storage
func (s *Schedule) Records() []RawSlot {
	records := make([]RawSlot, 0, len(s.slots))
	for _, slot := range s.slots {
		records = append(records, slot.Raw())
	}
	return records
}

// Index returns the classification of the current value, building it on
// first use
func (s *Schedule) Index() *Index {
	d := s.derived
	if d == nil {
		// zero Schedule, not built by NewSchedule
		return BuildIndex(s.slots)
	}
	d.once.Do(func() {
		d.index = BuildIndex(s.slots)
	})
	return d.index
}

func (s *Schedule) now(t time.Time) time.Time {
	if s.clock != nil {
		return s.clock(t)
	}
	return t
}

// Index partitions a slot list by day kind. It is never mutated after
// BuildIndex returns.
type Index struct {
	Weekdays        []TimeSlot
	SeasonHeaders   []TimeSlot
	SeasonDays      []TimeSlot
	ExceptionHeader []TimeSlot
	ExceptionDays   []TimeSlot
	// Unassigned holds rows without a day, such as new widget rows
	Unassigned []TimeSlot
}

// BuildIndex classifies every slot exactly once
func BuildIndex(slots []TimeSlot) *Index {
	idx := &Index{}
	for _, slot := range slots {
		switch slot.Day.Kind() {
		case DayKindWeekday:
			idx.Weekdays = append(idx.Weekdays, slot)
		case DayKindSeasonHeader:
			idx.SeasonHeaders = append(idx.SeasonHeaders, slot)
		case DayKindSeasonWeekday:
			idx.SeasonDays = append(idx.SeasonDays, slot)
		case DayKindExceptionHeader:
			idx.ExceptionHeader = append(idx.ExceptionHeader, slot)
		case DayKindExceptionDate:
			idx.ExceptionDays = append(idx.ExceptionDays, slot)
		default:
			idx.Unassigned = append(idx.Unassigned, slot)
		}
	}
	return idx
}

// SortOrder orders seasons by start date
type SortOrder int

const (
	SortNone SortOrder = iota
	SortAscending
	SortDescending
)

// SeasonQuery selects seasons for GetSeasons
type SeasonQuery struct {
	// IncludeWeekdays prepends the regular week as season 0
	IncludeWeekdays bool
	// IncludeNewSeason appends an empty season with the next free id
	IncludeNewSeason bool
	Sort             SortOrder
	// Now anchors the [From, To] day-offset window; zero disables filtering
	Now      time.Time
	From, To int
}

// GetSeasons returns the seasons of the schedule, one per id
func (s *Schedule) GetSeasons(q SeasonQuery) []Season {
	var (
		seasons []Season
		maxID   int
	)
	position := make(map[int]int)
	for _, header := range s.Index().SeasonHeaders {
		season := NewSeason(header)
		if season.ID > maxID {
			maxID = season.ID
		}
		// A repeated header replaces the earlier one in place.
		if i, ok := position[season.ID]; ok {
			seasons[i] = season
			continue
		}
		position[season.ID] = len(seasons)
		seasons = append(seasons, season)
	}

	if !q.Now.IsZero() {
		kept := seasons[:0]
		for _, season := range seasons {
			if season.InRange(q.Now, q.From, q.To) {
				kept = append(kept, season)
			}
		}
		seasons = kept
	}

	switch q.Sort {
	case SortAscending:
		sort.SliceStable(seasons, func(i, j int) bool {
			return seasons[i].From.Before(seasons[j].From)
		})
	case SortDescending:
		sort.SliceStable(seasons, func(i, j int) bool {
			return seasons[i].From.After(seasons[j].From)
		})
	}

	if q.IncludeWeekdays {
		seasons = append([]Season{RegularWeek()}, seasons...)
	}
	if q.IncludeNewSeason {
		seasons = append(seasons, Season{ID: maxID + SeasonIDFactor})
	}

	return seasons
}

// Season returns the season with the given id; 0 is the regular week
func (s *Schedule) Season(id int) (Season, bool) {
	for _, season := range s.GetSeasons(SeasonQuery{IncludeWeekdays: true}) {
		if season.ID == id {
			return season, true
		}
	}
	return Season{}, false
}

// ExceptionItems returns the exception dates and the exceptions header
func (s *Schedule) ExceptionItems() []TimeSlot {
	var items []TimeSlot
	for _, slot := range s.slots {
		if slot.Day.IsException() {
			items = append(items, slot)
		}
	}
	return items
}

// SeasonItems returns the slots of one season. Season 0 selects the plain
// weekdays and ExceptionHeaderCode selects the exceptions block.
func (s *Schedule) SeasonItems(seasonID int) []TimeSlot {
	var items []TimeSlot
	for _, slot := range s.slots {
		if slot.Day.IsException() {
			if seasonID == ExceptionHeaderCode {
				items = append(items, slot)
			}
			continue
		}
		if slot.Day.SeasonID() == seasonID {
			items = append(items, slot)
		}
	}
	return items
}

// CountExceptionDays counts distinct exception dates
func (s *Schedule) CountExceptionDays() int {
	days := make(map[int]struct{})
	for _, slot := range s.Index().ExceptionDays {
		days[slot.Day.Code()] = struct{}{}
	}
	return len(days)
}

// SortSlots orders slots by day code, then by position within the day.
// Hours are left in the order the user maintains them. Day-less rows go last.
func SortSlots(slots []TimeSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if a.Day.IsSet() != b.Day.IsSet() {
			return a.Day.IsSet()
		}
		if a.Day.Code() != b.Day.Code() {
			return a.Day.Code() < b.Day.Code()
		}
		return a.DayDelta < b.DayDelta
	})
}
