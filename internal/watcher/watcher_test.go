package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/username/office-hours/internal/officehours"
	"github.com/username/office-hours/internal/store"
)

type failingSource struct{}

func (failingSource) Load() error            { return errors.New("disk on fire") }
func (failingSource) List() []*store.Subject { return nil }

func newStore(t *testing.T) (*store.FileStore, string) {
	t.Helper()
	fs := store.NewFileStore(filepath.Join(t.TempDir(), "store.json"), zaptest.NewLogger(t))
	require.NoError(t, fs.Load())

	id := fs.Create("Bakery", []officehours.RawSlot{
		{Day: officehours.DayNumber(1), StartHours: officehours.HHMM(900), EndHours: officehours.HHMM(1700)},
	})
	require.NoError(t, fs.Save())
	return fs, id
}

func TestCheckReportsTransitions(t *testing.T) {
	fs, id := newStore(t)
	w := NewWatcher(fs, time.Minute, time.UTC, zaptest.NewLogger(t))

	// Monday 2025-01-13
	monday := func(hh, mm int) time.Time {
		return time.Date(2025, 1, 13, hh, mm, 0, 0, time.UTC)
	}

	transitions, err := w.Check(monday(8, 0))
	require.NoError(t, err)
	assert.Empty(t, transitions, "first check only records the status")
	assert.Equal(t, officehours.StatusWillOpen, w.Status()[id])

	transitions, err = w.Check(monday(8, 30))
	require.NoError(t, err)
	assert.Empty(t, transitions)

	transitions, err = w.Check(monday(9, 0))
	require.NoError(t, err)
	require.Len(t, transitions, 1)
	assert.Equal(t, id, transitions[0].SubjectID)
	assert.Equal(t, officehours.StatusWillOpen, transitions[0].From)
	assert.Equal(t, officehours.StatusIsOpen, transitions[0].To)
	require.NotNil(t, transitions[0].Slot)
	assert.Equal(t, officehours.At(900), transitions[0].Slot.Start)

	transitions, err = w.Check(monday(17, 0))
	require.NoError(t, err)
	require.Len(t, transitions, 1)
	assert.Equal(t, officehours.StatusWasOpen, transitions[0].To)
	assert.Nil(t, transitions[0].Slot)
}

func TestCheckUsesLocation(t *testing.T) {
	fs, id := newStore(t)
	tokyo := time.FixedZone("JST", 9*3600)
	w := NewWatcher(fs, time.Minute, tokyo, zaptest.NewLogger(t))

	// Monday 2025-01-13 01:00 UTC is 10:00 in Tokyo
	_, err := w.Check(time.Date(2025, 1, 13, 1, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, officehours.StatusIsOpen, w.Status()[id])
}

func TestCheckPicksUpNewAndRemovedSubjects(t *testing.T) {
	fs, _ := newStore(t)
	w := NewWatcher(fs, time.Minute, time.UTC, zaptest.NewLogger(t))

	_, err := w.Check(time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, w.Status(), 1)

	other := fs.Create("Library", nil)
	require.NoError(t, fs.Save())

	_, err = w.Check(time.Date(2025, 1, 13, 10, 1, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, w.Status(), 2)
	assert.Equal(t, officehours.StatusClosedAllDay, w.Status()[other])
}

func TestCheckFailsWhenSourceFails(t *testing.T) {
	w := NewWatcher(failingSource{}, time.Minute, time.UTC, zaptest.NewLogger(t))
	_, err := w.Check(time.Now())
	assert.Error(t, err)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	fs, id := newStore(t)
	w := NewWatcher(fs, 10*time.Millisecond, time.UTC, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool {
		_, ok := w.Status()[id]
		return ok
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestStop(t *testing.T) {
	fs, _ := newStore(t)
	w := NewWatcher(fs, 10*time.Millisecond, time.UTC, zaptest.NewLogger(t))

	done := make(chan error, 1)
	go func() { done <- w.Run(context.Background()) }()

	w.Stop()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
}
