package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Store    StoreConfig    `mapstructure:"store"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Clock    ClockConfig    `mapstructure:"clock"`
	Watcher  WatcherConfig  `mapstructure:"watcher"`
	Log      LogConfig      `mapstructure:"log"`
	Query    QueryConfig    `mapstructure:"query"`
}

// StoreConfig represents subject storage configuration
type StoreConfig struct {
	File string `mapstructure:"file" validate:"required"`
}

// CalendarConfig represents holiday calendar configuration
type CalendarConfig struct {
	// HolidaysFiles are merged in order; the first file wins on duplicates
	HolidaysFiles []string `mapstructure:"holidays_files" validate:"dive,required"`
}

// ClockConfig represents the clock used to evaluate schedules
type ClockConfig struct {
	Timezone string `mapstructure:"timezone"` // IANA name, empty means local time
}

// WatcherConfig represents watch mode configuration
type WatcherConfig struct {
	Interval string `mapstructure:"interval"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}

// QueryConfig represents defaults for schedule queries
type QueryConfig struct {
	// ExceptionHorizonDays is how many days ahead exceptions and openings are listed
	ExceptionHorizonDays int `mapstructure:"exception_horizon_days" validate:"gte=0,lte=366"`
}

// Load loads configuration from file. With an empty configPath the search
// paths are tried and a missing file falls back to defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("store.file", "office-hours.json")
	v.SetDefault("watcher.interval", "1m")
	v.SetDefault("log.level", "info")
	v.SetDefault("query.exception_horizon_days", 7)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.office-hours")
		v.AddConfigPath("/etc/office-hours")
	}

	// OFFICE_HOURS_STORE_FILE overrides store.file
	v.SetEnvPrefix("office_hours")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.ExpandEnvVars()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Clock.Timezone != "" {
		if _, err := time.LoadLocation(c.Clock.Timezone); err != nil {
			return fmt.Errorf("clock.timezone: %w", err)
		}
	}
	if c.Watcher.Interval != "" {
		d, err := time.ParseDuration(c.Watcher.Interval)
		if err != nil {
			return fmt.Errorf("watcher.interval: %w", err)
		}
		if d < time.Second {
			return fmt.Errorf("watcher.interval must be at least 1s, got %s", d)
		}
	}

	return nil
}

// GetLocation returns the evaluation time zone. Default: time.Local
func (c *ClockConfig) GetLocation() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GetInterval returns the watcher tick interval. Default: 1m
func (c *WatcherConfig) GetInterval() time.Duration {
	if c.Interval == "" {
		return time.Minute
	}
	duration, err := time.ParseDuration(c.Interval)
	if err != nil || duration < time.Second {
		return time.Minute
	}
	return duration
}

// ExpandEnvVars expands environment variables in paths
func (c *Config) ExpandEnvVars() {
	c.Store.File = os.ExpandEnv(c.Store.File)
	c.Log.File = os.ExpandEnv(c.Log.File)
	for i, f := range c.Calendar.HolidaysFiles {
		c.Calendar.HolidaysFiles[i] = os.ExpandEnv(f)
	}
}
