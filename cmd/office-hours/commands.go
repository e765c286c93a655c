package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/office-hours/internal/calendar"
	"github.com/username/office-hours/internal/officehours"
	"github.com/username/office-hours/internal/watcher"
	"github.com/username/office-hours/pkg/dateutil"
)

func statusCmd() *cobra.Command {
	var atStr string

	cmd := &cobra.Command{
		Use:   "status [subject]",
		Short: "Show whether subjects are open",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			at, err := parseInstant(atStr, e.loc)
			if err != nil {
				return err
			}
			subjects, err := e.subjects(firstArg(args))
			if err != nil {
				return err
			}

			horizon := e.cfg.Query.ExceptionHorizonDays
			outPrintf("Status at %s\n", at.Format("Mon 2006-01-02 15:04 MST"))
			outPrintln("═══════════════════════════════════════════════════════")
			for _, subject := range subjects {
				schedule := e.schedule(subject)
				eval := schedule.Evaluate(at)

				line := fmt.Sprintf("%-24s %s", subject.Name, statusIcon(eval.Status))
				if eval.Current != nil {
					line += fmt.Sprintf(" (%s)", eval.Current)
				} else if date, slots, ok := schedule.NextOpenDay(at, horizon); ok {
					line += fmt.Sprintf(", next opening %s %s", date.Format("Mon 2006-01-02"), slots[0].Start)
				}
				outPrintln(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&atStr, "at", "", "Evaluate at this time instead of now (RFC3339 or \"2006-01-02 15:04\")")

	return cmd
}

func slotsCmd() *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "slots <subject>",
		Short: "List the slots of a subject, or the slots deciding one date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			subject, err := e.store.Find(args[0])
			if err != nil {
				return err
			}
			schedule := e.schedule(subject)

			var slots []officehours.TimeSlot
			if dateStr != "" {
				date, err := dateutil.ParseDate(dateStr)
				if err != nil {
					return fmt.Errorf("invalid date: %w", err)
				}
				slots = schedule.SlotsForDate(date)
				outPrintf("%s on %s\n", subject.Name, date.Format("Monday 2006-01-02"))
			} else {
				slots = schedule.Slots()
				officehours.SortSlots(slots)
				outPrintf("%s (%s)\n", subject.Name, subject.ID)
			}

			if len(slots) == 0 {
				outPrintln("  closed")
			}
			for _, slot := range slots {
				if slot.IsEmpty() {
					continue
				}
				line := "  " + slot.String()
				if slot.Comment != "" && !slot.Day.IsSeasonHeader() {
					line += "  # " + slot.Comment
				}
				outPrintln(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Only the slots deciding this date (YYYY-MM-DD)")

	return cmd
}

func seasonsCmd() *cobra.Command {
	var (
		sortStr     string
		from, to    int
		current     bool
		withRegular bool
	)

	cmd := &cobra.Command{
		Use:   "seasons <subject>",
		Short: "List the seasons of a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			subject, err := e.store.Find(args[0])
			if err != nil {
				return err
			}

			q := officehours.SeasonQuery{IncludeWeekdays: withRegular}
			switch strings.ToLower(sortStr) {
			case "", "none":
			case "asc":
				q.Sort = officehours.SortAscending
			case "desc":
				q.Sort = officehours.SortDescending
			default:
				return fmt.Errorf("--sort must be asc, desc or none, got %q", sortStr)
			}
			if current {
				q.Now, q.From, q.To = time.Now().In(e.loc), from, to
			}

			schedule := e.schedule(subject)
			for _, season := range schedule.GetSeasons(q) {
				slots := len(schedule.SeasonItems(season.ID))
				if season.IsRegularWeek() {
					outPrintf("%4d  %-20s %d slot(s)\n", season.ID, "Regular week", slots)
					continue
				}
				outPrintf("%4d  %-20s %s .. %s  %d slot(s)\n", season.ID, season.Name,
					formatDate(season.From), formatDate(season.To), slots-1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sortStr, "sort", "asc", "Order by start date: asc, desc or none")
	cmd.Flags().BoolVar(&current, "current", false, "Only seasons overlapping the --from/--to day window")
	cmd.Flags().IntVar(&from, "from", 0, "Window start, in days from today")
	cmd.Flags().IntVar(&to, "to", 0, "Window end, in days from today")
	cmd.Flags().BoolVar(&withRegular, "regular", false, "Include the regular week")

	return cmd
}

func exceptionsCmd() *cobra.Command {
	var horizon int

	cmd := &cobra.Command{
		Use:   "exceptions <subject>",
		Short: "List upcoming exception days of a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			subject, err := e.store.Find(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("horizon") {
				horizon = e.cfg.Query.ExceptionHorizonDays
			}

			schedule := e.schedule(subject)
			now := time.Now().In(e.loc)

			outPrintf("%s: %d exception day(s) in total\n", subject.Name, schedule.CountExceptionDays())
			slots := append([]officehours.TimeSlot(nil), schedule.Index().ExceptionDays...)
			officehours.SortSlots(slots)
			for _, slot := range slots {
				if slot.IsEmpty() || !slot.InRange(now, 0, horizon) {
					continue
				}
				line := "  " + slot.String()
				if slot.Comment != "" {
					line += "  # " + slot.Comment
				}
				outPrintln(line)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&horizon, "horizon", 0, "Days ahead to list; 0 lists every exception (default from query.exception_horizon_days)")

	return cmd
}

func addSubjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-subject <name> <slots.json>",
		Short: "Add a subject with slots read from a JSON file",
		Long: `Add a subject with slots read from a JSON file, e.g.

  [
    {"day": 1, "starthours": "09:00", "endhours": "17:30"},
    {"day": 101, "starthours": 1000, "endhours": 1400},
    {"day": 100, "starthours": "2025-06-01", "endhours": "2025-08-31", "comment": "Summer"},
    {"day": "2025-12-25", "comment": "Christmas"}
  ]`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read slots file: %w", err)
			}
			var records []officehours.RawSlot
			if err := json.Unmarshal(data, &records); err != nil {
				return fmt.Errorf("failed to parse slots file: %w", err)
			}

			// normalize once so the stored value is canonical
			schedule := officehours.NewSchedule(records, officehours.WithLogger(logger))
			id := e.store.Create(args[0], schedule.Records())
			if err := e.store.Save(); err != nil {
				return err
			}

			outPrintf("✅ Added %s with %d slot(s): %s\n", args[0], len(records), id)
			return nil
		},
	}

	return cmd
}

func importHolidaysCmd() *cobra.Command {
	var fromStr, toStr string

	cmd := &cobra.Command{
		Use:   "import-holidays [subject]",
		Short: "Add holidays from the configured calendars as exception days",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}

			today := dateutil.StartOfDay(time.Now().In(e.loc))
			from, to := today, today.AddDate(1, 0, 0)
			if fromStr != "" {
				if from, err = dateutil.ParseDate(fromStr); err != nil {
					return fmt.Errorf("invalid from date: %w", err)
				}
			}
			if toStr != "" {
				if to, err = dateutil.ParseDate(toStr); err != nil {
					return fmt.Errorf("invalid to date: %w", err)
				}
			}

			cal, err := e.calendar()
			if err != nil {
				return err
			}
			holidays, err := cal.Holidays(from, to)
			if err != nil {
				return fmt.Errorf("failed to read holidays: %w", err)
			}

			subjects, err := e.subjects(firstArg(args))
			if err != nil {
				return err
			}

			changed := 0
			for _, subject := range subjects {
				merged, added := calendar.Merge(subject.Slots, holidays)
				if added == 0 {
					outPrintf("  %s: up to date\n", subject.Name)
					continue
				}
				if err := e.store.Put(subject.ID, merged); err != nil {
					return err
				}
				changed++
				outPrintf("  %s: %d holiday slot(s) added\n", subject.Name, added)
				logger.Info("Holidays imported",
					zap.String("subject", subject.ID),
					zap.Int("added", added))
			}

			if changed == 0 {
				return nil
			}
			return e.store.Save()
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "First date to import (default today)")
	cmd.Flags().StringVar(&toStr, "to", "", "Last date to import (default one year from today)")

	return cmd
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Log open/closed transitions of every subject until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}

			w := watcher.NewWatcher(e.store, e.cfg.Watcher.GetInterval(), e.loc, logger)
			return w.Start()
		},
	}

	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "----------"
	}
	return t.Format(dateutil.DateLayout)
}

func statusIcon(s officehours.Status) string {
	switch s {
	case officehours.StatusIsOpen:
		return "🟢 open"
	case officehours.StatusWillOpen:
		return "🟡 opens later today"
	case officehours.StatusWasOpen:
		return "🔴 closed for today"
	case officehours.StatusClosedAllDay:
		return "⚫ closed all day"
	default:
		return s.String()
	}
}
