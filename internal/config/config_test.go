package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
store:
  file: /var/lib/office-hours/subjects.json
calendar:
  holidays_files:
    - national.txt
    - local.txt
clock:
  timezone: Europe/Berlin
watcher:
  interval: 30s
log:
  file: office-hours.log
  level: debug
query:
  exception_horizon_days: 14
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/office-hours/subjects.json", cfg.Store.File)
	assert.Equal(t, []string{"national.txt", "local.txt"}, cfg.Calendar.HolidaysFiles)
	assert.Equal(t, "Europe/Berlin", cfg.Clock.GetLocation().String())
	assert.Equal(t, 30*time.Second, cfg.Watcher.GetInterval())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 14, cfg.Query.ExceptionHorizonDays)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "log:\n  file: \"\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "office-hours.json", cfg.Store.File)
	assert.Equal(t, time.Minute, cfg.Watcher.GetInterval())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 7, cfg.Query.ExceptionHorizonDays)
	assert.Equal(t, time.Local, cfg.Clock.GetLocation())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("OFFICE_HOURS_STORE_FILE", "/tmp/from-env.json")

	cfg, err := Load(writeConfig(t, "store:\n  file: from-file.json\n"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.json", cfg.Store.File)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Unknown log level", "log:\n  level: verbose\n"},
		{"Unknown time zone", "clock:\n  timezone: Mars/Olympus\n"},
		{"Bad interval", "watcher:\n  interval: soon\n"},
		{"Interval too short", "watcher:\n  interval: 10ms\n"},
		{"Negative horizon", "query:\n  exception_horizon_days: -1\n"},
		{"Empty holidays file", "calendar:\n  holidays_files: [\"\"]\n"},
		{"Empty store file", "store:\n  file: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit config path must exist")
}

func TestGetters(t *testing.T) {
	assert.Equal(t, time.Minute, (&WatcherConfig{Interval: "bogus"}).GetInterval())
	assert.Equal(t, 5*time.Minute, (&WatcherConfig{Interval: "5m"}).GetInterval())
	assert.Equal(t, time.Local, (&ClockConfig{Timezone: "Nowhere/Special"}).GetLocation())
}
