package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/office-hours/internal/calendar"
	"github.com/username/office-hours/internal/config"
	"github.com/username/office-hours/internal/officehours"
	"github.com/username/office-hours/internal/store"
)

var (
	configPath string
	logger     *zap.Logger
	out        io.Writer = os.Stdout
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "office-hours",
		Short: "Office hours of shops, offices and clinics",
		Long:  "Evaluate weekly office hours with seasons and exception days: open now, next opening, holidays",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: search ./, $HOME/.office-hours, /etc/office-hours)")

	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(slotsCmd())
	rootCmd.AddCommand(seasonsCmd())
	rootCmd.AddCommand(exceptionsCmd())
	rootCmd.AddCommand(addSubjectCmd())
	rootCmd.AddCommand(importHolidaysCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env holds what every command needs
type env struct {
	cfg   *config.Config
	store *store.FileStore
	loc   *time.Location
}

func loadEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	fs := store.NewFileStore(cfg.Store.File, logger)
	if err := fs.Load(); err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	return &env{
		cfg:   cfg,
		store: fs,
		loc:   cfg.Clock.GetLocation(),
	}, nil
}

// schedule builds the evaluation view of a subject in the configured zone
func (e *env) schedule(subject *store.Subject) *officehours.Schedule {
	return subject.Schedule(
		officehours.WithLogger(logger.With(zap.String("subject", subject.ID))),
		officehours.WithClock(officehours.InLocation(e.loc)),
	)
}

// subjects returns the named subject, or all of them when name is empty
func (e *env) subjects(name string) ([]*store.Subject, error) {
	if name == "" {
		return e.store.List(), nil
	}
	subject, err := e.store.Find(name)
	if err != nil {
		return nil, err
	}
	return []*store.Subject{subject}, nil
}

func (e *env) calendar() (calendar.Calendar, error) {
	if len(e.cfg.Calendar.HolidaysFiles) == 0 {
		return nil, fmt.Errorf("no holiday calendar configured (calendar.holidays_files)")
	}

	calendars := make([]calendar.Calendar, 0, len(e.cfg.Calendar.HolidaysFiles))
	for _, file := range e.cfg.Calendar.HolidaysFiles {
		fc := calendar.NewFileCalendar(file, logger)
		if err := fc.Load(); err != nil {
			return nil, err
		}
		calendars = append(calendars, fc)
	}
	if len(calendars) == 1 {
		return calendars[0], nil
	}
	return calendar.NewCompositeCalendar(logger, calendars...), nil
}

// parseInstant parses --at values in the configured zone. Empty means now.
func parseInstant(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Now().In(loc), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q, use RFC3339 or \"2006-01-02 15:04\"", s)
}

func outPrintf(format string, a ...interface{}) {
	fmt.Fprintf(out, format, a...)
}

func outPrintln(a ...interface{}) {
	fmt.Fprintln(out, a...)
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    50, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
