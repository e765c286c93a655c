package calendar

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

// CompositeCalendar implements Calendar as the union of several calendars,
// e.g. national holidays plus local closures
type CompositeCalendar struct {
	calendars []Calendar
	logger    *zap.Logger
}

// NewCompositeCalendar creates a new CompositeCalendar
func NewCompositeCalendar(logger *zap.Logger, calendars ...Calendar) *CompositeCalendar {
	return &CompositeCalendar{
		calendars: calendars,
		logger:    logger,
	}
}

// Holidays returns the holidays of every calendar ordered by date. Two
// holidays with the same date and hours are reported once.
func (cc *CompositeCalendar) Holidays(from, to time.Time) ([]Holiday, error) {
	var all []Holiday
	for i, cal := range cc.calendars {
		holidays, err := cal.Holidays(from, to)
		if err != nil {
			return nil, fmt.Errorf("calendar %d: %w", i, err)
		}
		all = append(all, holidays...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date.Before(all[j].Date)
	})

	type key struct {
		date       string
		start, end string
	}
	seen := make(map[key]struct{})
	out := all[:0]
	for _, h := range all {
		k := key{h.Date.Format("2006-01-02"), h.Start.String(), h.End.String()}
		if _, ok := seen[k]; ok {
			cc.logger.Debug("Duplicate holiday dropped",
				zap.String("date", k.date),
				zap.String("note", h.Note))
			continue
		}
		seen[k] = struct{}{}
		out = append(out, h)
	}

	return out, nil
}
