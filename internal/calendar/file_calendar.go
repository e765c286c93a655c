package calendar

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/username/office-hours/internal/officehours"
	"github.com/username/office-hours/pkg/dateutil"
)

// FileCalendar implements Calendar interface using a local text file
type FileCalendar struct {
	filePath string
	logger   *zap.Logger
	holidays []Holiday // sorted by date
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, logger *zap.Logger) *FileCalendar {
	return &FileCalendar{
		filePath: filePath,
		logger:   logger,
	}
}

// Load loads holidays from file.
//
// Format: YYYY-MM-DD closed|HHMM-HHMM [note]
//
//	2025-12-25 closed Christmas
//	2025-12-31 0900-1400 New Year's Eve
func (fc *FileCalendar) Load() error {
	file, err := os.Open(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open calendar file: %w", err)
	}
	defer file.Close()

	var holidays []Holiday
	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		holiday, err := parseLine(line)
		if err != nil {
			fc.logger.Warn("Skipping calendar line",
				zap.Int("line", lineNo),
				zap.String("text", line),
				zap.Error(err))
			continue
		}
		holidays = append(holidays, holiday)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading calendar file: %w", err)
	}

	sort.SliceStable(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	fc.holidays = holidays

	fc.logger.Info("Calendar file loaded",
		zap.String("file", fc.filePath),
		zap.Int("holidays", len(holidays)))

	return nil
}

// Holidays returns the holidays between from and to, both dates included
func (fc *FileCalendar) Holidays(from, to time.Time) ([]Holiday, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: %s is before %s",
			to.Format(dateutil.DateLayout), from.Format(dateutil.DateLayout))
	}

	first, last := dateutil.DateCode(from), dateutil.DateCode(to)
	var out []Holiday
	for _, h := range fc.holidays {
		code := dateutil.DateCode(h.Date)
		if code < first {
			continue
		}
		if code > last {
			break
		}
		out = append(out, h)
	}
	return out, nil
}

func parseLine(line string) (Holiday, error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return Holiday{}, fmt.Errorf("expected at least a date and closed or HHMM-HHMM")
	}

	date, err := time.Parse(dateutil.DateLayout, parts[0])
	if err != nil {
		return Holiday{}, fmt.Errorf("failed to parse date: %w", err)
	}

	holiday := Holiday{Date: date}
	if len(parts) == 3 {
		holiday.Note = strings.TrimSpace(parts[2])
	}

	if strings.EqualFold(parts[1], "closed") {
		return holiday, nil
	}

	startText, endText, ok := strings.Cut(parts[1], "-")
	if !ok {
		return Holiday{}, fmt.Errorf("unknown hours %q", parts[1])
	}
	start, err := dateutil.ParseClock(startText)
	if err != nil {
		return Holiday{}, fmt.Errorf("failed to parse opening time: %w", err)
	}
	end, err := dateutil.ParseClock(endText)
	if err != nil {
		return Holiday{}, fmt.Errorf("failed to parse closing time: %w", err)
	}
	holiday.Start, holiday.End = officehours.At(start), officehours.At(end)

	return holiday, nil
}
